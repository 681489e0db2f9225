package handler

import (
	"time"

	"github.com/escapetogether/escape-together/internal/game/room"
	"github.com/escapetogether/escape-together/internal/server/session"
)

// --- stub server ---

type stubServer struct {
	online int
}

func (s *stubServer) GetOnlineCount() int { return s.online }

// --- stub chat limiter ---

type stubChatLimiter struct {
	allowed bool
	reason  string
}

func (l *stubChatLimiter) AllowChat(clientID string) (bool, string) {
	return l.allowed, l.reason
}

func (l *stubChatLimiter) RemoveClient(clientID string) {}

// --- fixture ---

type testFixture struct {
	handler  *Handler
	rooms    *room.RoomManager
	sessions *session.SessionManager
	server   *stubServer
	limiter  *stubChatLimiter
}

// newTestFixture wires a handler against real room/session managers,
// a stub server and a permissive chat limiter. No Redis involved.
func newTestFixture() *testFixture {
	f := &testFixture{
		rooms:    room.NewRoomManager(nil, 8, 24*time.Hour, time.Hour),
		sessions: session.NewSessionManager(),
		server:   &stubServer{},
		limiter:  &stubChatLimiter{allowed: true},
	}
	f.handler = NewHandler(&Deps{
		Server:         f.server,
		RoomManager:    f.rooms,
		SessionManager: f.sessions,
		ChatLimiter:    f.limiter,
	})
	return f
}
