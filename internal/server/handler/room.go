package handler

import (
	"strings"
	"unicode/utf8"

	"github.com/escapetogether/escape-together/internal/apperrors"
	"github.com/escapetogether/escape-together/internal/protocol"
	"github.com/escapetogether/escape-together/internal/types"
)

const (
	maxNameLength = 20
)

// validPlayerName 校验玩家昵称（1-20 个字符，不含首尾空白）
func validPlayerName(name string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	return n >= 1 && n <= maxNameLength
}

// handleCreateRoom 创建房间
func (h *Handler) handleCreateRoom(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.CreateRoomPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if !validPlayerName(payload.PlayerName) {
		h.sendError(client, apperrors.ErrBadName)
		return
	}

	// 同一连接同一时刻只能在一个房间里
	if client.GetRoom() != "" {
		h.sendError(client, apperrors.ErrAlreadyInRoom)
		return
	}

	playerName := strings.TrimSpace(payload.PlayerName)
	gameRoom, err := h.roomManager.CreateRoom(client, playerName, payload.IsPrivate)
	if err != nil {
		h.sendError(client, err)
		return
	}

	h.sessionManager.Bind(client.GetID(), playerName, gameRoom.Code)

	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomCreated, protocol.RoomCreatedPayload{
		RoomCode:   gameRoom.Code,
		PlayerID:   client.GetID(),
		IsHost:     true,
		PlayerName: playerName,
		Room:       gameRoom.PublicData(),
		Players:    gameRoom.GetAllPlayersInfo(),
	}))
}

// handleJoinRoom 加入房间
func (h *Handler) handleJoinRoom(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.JoinRoomPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if payload.RoomCode == "" || payload.PlayerName == "" {
		client.SendMessage(protocol.NewErrorMessageWithText("Room code and player name are required"))
		return
	}
	if !validPlayerName(payload.PlayerName) {
		h.sendError(client, apperrors.ErrBadName)
		return
	}

	if client.GetRoom() != "" {
		h.sendError(client, apperrors.ErrAlreadyInRoom)
		return
	}

	playerName := strings.TrimSpace(payload.PlayerName)
	gameRoom, err := h.roomManager.JoinRoom(client, playerName, payload.RoomCode)
	if err != nil {
		h.sendError(client, err)
		return
	}

	h.sessionManager.Bind(client.GetID(), playerName, gameRoom.Code)

	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomJoined, protocol.RoomJoinedPayload{
		RoomCode: gameRoom.Code,
		PlayerID: client.GetID(),
		IsHost:   gameRoom.IsHost(client.GetID()),
		Room:     gameRoom.PublicData(),
		Players:  gameRoom.GetAllPlayersInfo(),
	}))
}

// handleLeaveRoom 离开房间。未在房间中时是无害的空操作
func (h *Handler) handleLeaveRoom(client types.ClientInterface, msg *protocol.Message) {
	h.roomManager.LeaveRoom(client)
	h.sessionManager.Unbind(client.GetID())
}

// handleGetRoomList 获取公开房间列表
func (h *Handler) handleGetRoomList(client types.ClientInterface, msg *protocol.Message) {
	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomList, protocol.RoomListPayload{
		Rooms: h.roomManager.ListPublic(),
	}))
}

// handleGetOnlineCount 获取在线人数
func (h *Handler) handleGetOnlineCount(client types.ClientInterface, msg *protocol.Message) {
	client.SendMessage(protocol.MustNewMessage(protocol.MsgOnlineCount, protocol.OnlineCountPayload{
		Count: h.server.GetOnlineCount(),
	}))
}
