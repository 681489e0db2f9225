package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	t.Parallel()

	// 5 reqs/sec, 10 reqs/min, 1s ban
	rl := NewRateLimiter(5, 10, 1*time.Second)
	ip := "127.0.0.1"

	// Initial requests should be allowed
	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow(ip), "Request %d should be allowed", i)
	}

	// 6th request should fail due to per-second limit
	assert.False(t, rl.Allow(ip), "6th request should be blocked")
	assert.True(t, rl.IsBanned(ip), "IP should be banned")
}

func TestRateLimiter_BanExpires(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(2, 50, 500*time.Millisecond)
	ip := "192.168.1.1"

	assert.True(t, rl.Allow(ip))
	assert.True(t, rl.Allow(ip))
	assert.False(t, rl.Allow(ip))
	assert.True(t, rl.IsBanned(ip))

	// Wait for the ban and the per-second window to expire
	time.Sleep(1100 * time.Millisecond)

	assert.False(t, rl.IsBanned(ip))
	assert.True(t, rl.Allow(ip))
}

func TestRateLimiter_SeparateIPs(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, 50, time.Minute)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	// A different IP is unaffected
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestMessageRateLimiter(t *testing.T) {
	t.Parallel()

	ml := NewMessageRateLimiter(3)

	for i := 0; i < 3; i++ {
		assert.True(t, ml.AllowMessage("c1"), "message %d should be allowed", i)
	}
	assert.False(t, ml.AllowMessage("c1"))
	assert.Equal(t, 1, ml.Strikes("c1"))

	// Other clients are unaffected
	assert.True(t, ml.AllowMessage("c2"))
	assert.Equal(t, 0, ml.Strikes("c2"))

	ml.RemoveClient("c1")
	assert.Equal(t, 0, ml.Strikes("c1"))
}

func TestMessageRateLimiter_WindowResets(t *testing.T) {
	t.Parallel()

	ml := NewMessageRateLimiter(1)

	assert.True(t, ml.AllowMessage("c1"))
	assert.False(t, ml.AllowMessage("c1"))

	time.Sleep(1100 * time.Millisecond)
	assert.True(t, ml.AllowMessage("c1"))
}

func TestChatRateLimiter_Cooldown(t *testing.T) {
	t.Parallel()

	cl := NewChatRateLimiter(2, 100, 500*time.Millisecond)

	ok, _ := cl.AllowChat("c1")
	assert.True(t, ok)
	ok, _ = cl.AllowChat("c1")
	assert.True(t, ok)

	ok, reason := cl.AllowChat("c1")
	assert.False(t, ok)
	assert.Equal(t, "You are sending messages too fast, please wait", reason)

	// Still in cooldown even after the second window rolls over
	time.Sleep(100 * time.Millisecond)
	ok, _ = cl.AllowChat("c1")
	assert.False(t, ok)

	// After the cooldown, chatting works again
	time.Sleep(1100 * time.Millisecond)
	ok, _ = cl.AllowChat("c1")
	assert.True(t, ok)
}

func TestOriginChecker(t *testing.T) {
	t.Parallel()

	makeReq := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	// Empty list allows everything
	oc := NewOriginChecker(nil)
	assert.True(t, oc.Check(makeReq("https://evil.example")))

	// Wildcard allows everything
	oc = NewOriginChecker([]string{"https://game.example", "*"})
	assert.True(t, oc.Check(makeReq("https://evil.example")))

	// Explicit list is enforced, case-insensitively
	oc = NewOriginChecker([]string{"https://game.example"})
	assert.True(t, oc.Check(makeReq("https://game.example")))
	assert.True(t, oc.Check(makeReq("HTTPS://GAME.EXAMPLE")))
	assert.False(t, oc.Check(makeReq("https://evil.example")))

	// Missing Origin header is allowed (non-browser clients)
	assert.True(t, oc.Check(makeReq("")))
}

func TestGetClientIP(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.RemoteAddr = "203.0.113.5:54321"
	assert.Equal(t, "203.0.113.5", GetClientIP(r))

	r.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", GetClientIP(r))

	// X-Forwarded-For wins and only the first hop counts
	r.Header.Set("X-Forwarded-For", "192.0.2.9, 198.51.100.7")
	assert.Equal(t, "192.0.2.9", GetClientIP(r))
}
