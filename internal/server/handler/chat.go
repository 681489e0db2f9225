package handler

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/escapetogether/escape-together/internal/apperrors"
	"github.com/escapetogether/escape-together/internal/protocol"
	"github.com/escapetogether/escape-together/internal/server/storage"
	"github.com/escapetogether/escape-together/internal/types"
)

const maxChatLength = 200

// handleChatMessage 聊天消息：填充发送者信息后广播给包括发送者在内的所有玩家
func (h *Handler) handleChatMessage(client types.ClientInterface, msg *protocol.Message) {
	gameRoom, ok := h.boundRoom(client)
	if !ok {
		return
	}

	// 聊天速率限制
	if allowed, reason := h.chatLimiter.AllowChat(client.GetID()); !allowed {
		client.SendMessage(protocol.NewErrorMessageWithText(reason))
		return
	}

	payload, err := protocol.ParsePayload[protocol.ChatMessagePayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	length := utf8.RuneCountInString(payload.Message)
	if length < 1 || length > maxChatLength {
		h.sendError(client, apperrors.ErrBadMessage)
		return
	}

	// 发送者身份以服务端记录为准，不信任客户端携带的字段
	now := time.Now().UnixMilli()
	outgoing := protocol.ChatMessagePayload{
		PlayerID:   client.GetID(),
		PlayerName: client.GetName(),
		Message:    payload.Message,
		Timestamp:  now,
	}

	gameRoom.Broadcast(protocol.MustNewMessage(protocol.MsgChatMessage, outgoing))

	// 异步落盘聊天记录
	if h.store != nil {
		record := &storage.ChatRecord{
			PlayerID:   outgoing.PlayerID,
			PlayerName: outgoing.PlayerName,
			Message:    outgoing.Message,
			Timestamp:  now,
		}
		roomCode := gameRoom.Code
		go func() { _ = h.store.AppendChat(context.Background(), roomCode, record) }()
	}
}
