package handler

import (
	"time"

	"github.com/escapetogether/escape-together/internal/protocol"
	"github.com/escapetogether/escape-together/internal/types"
)

// handlePing 心跳：回复携带服务器时间戳的 pong
func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	client.SendMessage(protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		Timestamp: time.Now().UnixMilli(),
	}))
}
