package session

import (
	"sync"
	"time"
)

// PlayerSession 玩家会话：连接与玩家身份、房间绑定的服务端记录
type PlayerSession struct {
	PlayerID    string
	Name        string
	RoomCode    string // 为空表示未绑定房间
	ConnectedAt time.Time

	mu sync.RWMutex
}

// GetRoom 获取会话绑定的房间号
func (s *PlayerSession) GetRoom() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.RoomCode
}

// SessionManager 会话注册表：playerID -> 会话
// 作为连接到身份的显式反查索引，取代按连接线性查找玩家
type SessionManager struct {
	sessions map[string]*PlayerSession
	mu       sync.RWMutex
}

// NewSessionManager 创建会话注册表
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*PlayerSession),
	}
}

// CreateSession 连接建立时创建未绑定会话
func (sm *SessionManager) CreateSession(playerID string) *PlayerSession {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session := &PlayerSession{
		PlayerID:    playerID,
		ConnectedAt: time.Now(),
	}
	sm.sessions[playerID] = session
	return session
}

// GetSession 获取会话
func (sm *SessionManager) GetSession(playerID string) *PlayerSession {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[playerID]
}

// Bind 绑定玩家名和房间（加入/创建房间成功后调用）
func (sm *SessionManager) Bind(playerID, name, roomCode string) {
	sm.mu.RLock()
	session, ok := sm.sessions[playerID]
	sm.mu.RUnlock()

	if ok {
		session.mu.Lock()
		session.Name = name
		session.RoomCode = roomCode
		session.mu.Unlock()
	}
}

// Unbind 解除房间绑定（离开房间后调用）
func (sm *SessionManager) Unbind(playerID string) {
	sm.mu.RLock()
	session, ok := sm.sessions[playerID]
	sm.mu.RUnlock()

	if ok {
		session.mu.Lock()
		session.RoomCode = ""
		session.mu.Unlock()
	}
}

// DeleteSession 删除会话（连接关闭后调用）
func (sm *SessionManager) DeleteSession(playerID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, playerID)
}

// Count 获取会话数量
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
