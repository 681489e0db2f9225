package server

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/escapetogether/escape-together/internal/protocol"
)

const (
	// 写入超时
	writeWait = 10 * time.Second

	// 读取超时（pong 等待时间）
	pongWait = 60 * time.Second

	// ping 发送间隔（必须小于 pongWait）
	pingPeriod = (pongWait * 9) / 10

	// 消息最大大小
	maxMessageSize = 4096

	// 连续超速次数上限，超过后断开连接
	maxRateStrikes = 5
)

// Client 代表一个连接的玩家
type Client struct {
	ID     string // 玩家唯一 ID
	Name   string // 玩家昵称（加入房间时设置）
	RoomID string // 当前所在房间号，为空表示未绑定
	IP     string // 客户端 IP 地址

	server *Server
	conn   *websocket.Conn
	send   chan []byte

	mu     sync.RWMutex
	closed bool
}

// NewClient 创建新客户端
func NewClient(s *Server, conn *websocket.Conn) *Client {
	return &Client{
		ID:     uuid.New().String(),
		server: s,
		conn:   conn,
		send:   make(chan []byte, 256),
	}
}

// ReadPump 从 WebSocket 读取消息
func (c *Client) ReadPump() {
	defer func() {
		c.handleDisconnect()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("读取错误: %v", err)
			}
			break
		}

		// 消息速率限制检查
		if !c.server.messageLimiter.AllowMessage(c.ID) {
			c.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeRateLimit))
			if c.server.messageLimiter.Strikes(c.ID) > maxRateStrikes {
				log.Printf("🚫 客户端 %s (IP: %s) 因多次超速被断开连接", c.ID, c.IP)
				break
			}
			continue
		}

		// 解析消息
		msg, err := protocol.Decode(message)
		if err != nil {
			c.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
			continue
		}

		// 交给处理器处理
		c.server.handler.Handle(c, msg)
	}
}

// WritePump 向 WebSocket 写入消息
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// 通道已关闭
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage 发送消息给客户端（尽力投递，不可写时丢弃）
func (c *Client) SendMessage(msg *protocol.Message) {
	data, err := msg.Encode()
	if err != nil {
		log.Printf("消息编码错误: %v", err)
		return
	}

	// 持读锁发送，避免与 Close 关闭通道竞争
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return
	}

	select {
	case c.send <- data:
		c.mu.RUnlock()
	default:
		c.mu.RUnlock()
		// 发送缓冲区已满，判定为死连接
		log.Printf("客户端 %s 发送缓冲区已满，关闭连接", c.ID)
		c.Close()
	}
}

// handleDisconnect 处理断开连接：与主动 leave_room 走同一条清理路径
func (c *Client) handleDisconnect() {
	// 如果在房间中，按离开房间处理（广播 player_left、空房间解散）
	if c.GetRoom() != "" {
		c.server.roomManager.LeaveRoom(c)
	}

	// 清理会话与限流记录
	c.server.sessionManager.DeleteSession(c.ID)
	c.server.messageLimiter.RemoveClient(c.ID)
	c.server.chatLimiter.RemoveClient(c.ID)

	c.server.unregisterClient(c)
}

// Close 关闭客户端连接
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// GetID 获取玩家 ID
func (c *Client) GetID() string { return c.ID }

// GetName 获取玩家昵称
func (c *Client) GetName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Name
}

// SetName 设置玩家昵称
func (c *Client) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Name = name
}

// SetRoom 设置客户端所在房间
func (c *Client) SetRoom(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.RoomID = roomID
}

// GetRoom 获取客户端所在房间
func (c *Client) GetRoom() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.RoomID
}
