package handler

import (
	"errors"
	"fmt"
	"log"

	"github.com/escapetogether/escape-together/internal/apperrors"
	"github.com/escapetogether/escape-together/internal/game/room"
	"github.com/escapetogether/escape-together/internal/protocol"
	"github.com/escapetogether/escape-together/internal/server/session"
	"github.com/escapetogether/escape-together/internal/server/storage"
	"github.com/escapetogether/escape-together/internal/types"
)

// handlerFunc 消息处理函数
type handlerFunc func(client types.ClientInterface, msg *protocol.Message)

// Deps 处理器依赖
type Deps struct {
	Server         types.ServerInterface
	RoomManager    *room.RoomManager
	SessionManager *session.SessionManager
	ChatLimiter    types.ChatLimiter
	Store          *storage.RedisStore // 可为 nil
}

// Handler 消息分发器：按消息类型路由到对应处理函数
type Handler struct {
	server         types.ServerInterface
	roomManager    *room.RoomManager
	sessionManager *session.SessionManager
	chatLimiter    types.ChatLimiter
	store          *storage.RedisStore

	handlers map[protocol.MessageType]handlerFunc
}

// NewHandler 创建消息处理器
func NewHandler(deps *Deps) *Handler {
	h := &Handler{
		server:         deps.Server,
		roomManager:    deps.RoomManager,
		sessionManager: deps.SessionManager,
		chatLimiter:    deps.ChatLimiter,
		store:          deps.Store,
	}
	h.initHandlers()
	return h
}

// initHandlers 注册消息处理函数
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		// 房间操作
		protocol.MsgCreateRoom: h.handleCreateRoom,
		protocol.MsgJoinRoom:   h.handleJoinRoom,
		protocol.MsgLeaveRoom:  h.handleLeaveRoom,

		// 游戏操作
		protocol.MsgPlayerMove:      h.handlePlayerMove,
		protocol.MsgPlayerInteract:  h.handlePlayerInteract,
		protocol.MsgGameStart:       h.handleGameStart,
		protocol.MsgGameReset:       h.handleGameReset,
		protocol.MsgChatMessage:     h.handleChatMessage,
		protocol.MsgDoorStateChange: h.handleDoorStateChange,

		// 大厅查询
		protocol.MsgGetRoomList:    h.handleGetRoomList,
		protocol.MsgGetOnlineCount: h.handleGetOnlineCount,

		// 连接操作
		protocol.MsgPing: h.handlePing,
	}
}

// Handle 分发消息。未知类型回复错误而不断开连接
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	fn, exists := h.handlers[msg.Type]
	if !exists {
		log.Printf("⚠️ 未知消息类型: %s (来自 %s)", msg.Type, client.GetID())
		client.SendMessage(protocol.NewErrorMessageWithText(
			fmt.Sprintf("Unknown message type: %s", msg.Type)))
		return
	}
	fn(client, msg)
}

// sendError 把错误转成 error 消息发给客户端
func (h *Handler) sendError(client types.ClientInterface, err error) {
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		client.SendMessage(protocol.NewErrorMessageWithText(gameErr.Message))
		return
	}
	client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeUnknown))
}
