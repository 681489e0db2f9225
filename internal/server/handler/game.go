package handler

import (
	"time"

	"github.com/escapetogether/escape-together/internal/apperrors"
	"github.com/escapetogether/escape-together/internal/game/room"
	"github.com/escapetogether/escape-together/internal/protocol"
	"github.com/escapetogether/escape-together/internal/types"
)

// boundRoom 获取客户端绑定的房间，未绑定时回复错误
func (h *Handler) boundRoom(client types.ClientInterface) (*room.Room, bool) {
	gameRoom, err := h.roomManager.GetRoomOf(client)
	if err != nil {
		h.sendError(client, err)
		return nil, false
	}
	return gameRoom, true
}

// handlePlayerMove 玩家移动：记录位置并转发给房间内其他玩家
func (h *Handler) handlePlayerMove(client types.ClientInterface, msg *protocol.Message) {
	gameRoom, ok := h.boundRoom(client)
	if !ok {
		return
	}

	payload, err := protocol.ParsePayload[protocol.PlayerMovePayload](msg)
	if err != nil || payload.Position == nil {
		h.sendError(client, apperrors.ErrBadPosition)
		return
	}

	if err := gameRoom.UpdatePosition(client.GetID(), *payload.Position); err != nil {
		h.sendError(client, err)
	}
}

// handlePlayerInteract 玩家交互：转发给包括发送者在内的所有玩家
func (h *Handler) handlePlayerInteract(client types.ClientInterface, msg *protocol.Message) {
	gameRoom, ok := h.boundRoom(client)
	if !ok {
		return
	}

	payload, err := protocol.ParsePayload[protocol.PlayerInteractPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	if payload.ObjectID == "" || payload.InteractionType == "" {
		client.SendMessage(protocol.NewErrorMessageWithText("Object id and interaction type are required"))
		return
	}

	gameRoom.Broadcast(protocol.MustNewMessage(protocol.MsgPlayerInteracted, protocol.PlayerInteractedPayload{
		PlayerID:        client.GetID(),
		ObjectID:        payload.ObjectID,
		InteractionType: payload.InteractionType,
		Timestamp:       time.Now().UnixMilli(),
	}))
}

// handleGameStart 开始游戏（仅房主）
func (h *Handler) handleGameStart(client types.ClientInterface, msg *protocol.Message) {
	gameRoom, ok := h.boundRoom(client)
	if !ok {
		return
	}

	if err := gameRoom.StartGame(client.GetID()); err != nil {
		h.sendError(client, err)
		return
	}

	h.roomManager.Persist(gameRoom)
}

// handleGameReset 重置游戏（仅房主）
func (h *Handler) handleGameReset(client types.ClientInterface, msg *protocol.Message) {
	gameRoom, ok := h.boundRoom(client)
	if !ok {
		return
	}

	if err := gameRoom.ResetGame(client.GetID()); err != nil {
		h.sendError(client, err)
		return
	}

	h.roomManager.Persist(gameRoom)
}

// handleDoorStateChange 门状态变更：记录并转发给所有玩家
func (h *Handler) handleDoorStateChange(client types.ClientInterface, msg *protocol.Message) {
	gameRoom, ok := h.boundRoom(client)
	if !ok {
		return
	}

	payload, err := protocol.ParsePayload[protocol.DoorStateChangePayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	if payload.DoorID == "" {
		client.SendMessage(protocol.NewErrorMessageWithText("Door id is required"))
		return
	}

	if err := gameRoom.SetDoorState(client.GetID(), *payload); err != nil {
		h.sendError(client, err)
	}
}
