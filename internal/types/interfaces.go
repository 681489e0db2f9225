package types

import (
	"github.com/escapetogether/escape-together/internal/protocol"
)

// ServerInterface 定义服务器接口（用于打破循环依赖）
type ServerInterface interface {
	GetOnlineCount() int
}

// ClientInterface 定义客户端接口
type ClientInterface interface {
	GetID() string
	GetName() string
	SetName(name string)
	GetRoom() string
	SetRoom(code string)
	SendMessage(msg *protocol.Message)
	Close()
}

// ChatLimiter 聊天速率限制器接口
type ChatLimiter interface {
	AllowChat(clientID string) (allowed bool, reason string)
	RemoveClient(clientID string)
}
