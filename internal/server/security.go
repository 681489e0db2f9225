package server

import (
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// --- 连接速率限制 ---

// RateLimiter 按 IP 的连接速率限制器
type RateLimiter struct {
	requests map[string]*clientRate
	mu       sync.RWMutex

	maxPerSecond int           // 每秒最大连接数
	maxPerMinute int           // 每分钟最大连接数
	banDuration  time.Duration // 封禁时长
}

// clientRate 客户端速率记录
type clientRate struct {
	secondCount int
	minuteCount int
	lastSecond  time.Time
	lastMinute  time.Time
	bannedUntil time.Time
}

// NewRateLimiter 创建连接速率限制器
func NewRateLimiter(maxPerSecond, maxPerMinute int, banDuration time.Duration) *RateLimiter {
	rl := &RateLimiter{
		requests:     make(map[string]*clientRate),
		maxPerSecond: maxPerSecond,
		maxPerMinute: maxPerMinute,
		banDuration:  banDuration,
	}

	go rl.cleanupLoop()

	return rl
}

// Allow 检查 IP 是否允许建立连接
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rate, exists := rl.requests[ip]
	if !exists {
		rl.requests[ip] = &clientRate{
			secondCount: 1,
			minuteCount: 1,
			lastSecond:  now,
			lastMinute:  now,
		}
		return true
	}

	if now.Before(rate.bannedUntil) {
		return false
	}

	if now.Sub(rate.lastSecond) >= time.Second {
		rate.secondCount = 0
		rate.lastSecond = now
	}
	if now.Sub(rate.lastMinute) >= time.Minute {
		rate.minuteCount = 0
		rate.lastMinute = now
	}

	rate.secondCount++
	rate.minuteCount++

	if rate.secondCount > rl.maxPerSecond || rate.minuteCount > rl.maxPerMinute {
		rate.bannedUntil = now.Add(rl.banDuration)
		log.Printf("⚠️ IP %s 连接过于频繁，封禁 %v", ip, rl.banDuration)
		return false
	}

	return true
}

// IsBanned 检查 IP 是否处于封禁期
func (rl *RateLimiter) IsBanned(ip string) bool {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	rate, exists := rl.requests[ip]
	if !exists {
		return false
	}
	return time.Now().Before(rate.bannedUntil)
}

// cleanupLoop 定期清理不活跃的记录
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, rate := range rl.requests {
			if now.Sub(rate.lastMinute) > 10*time.Minute && now.After(rate.bannedUntil) {
				delete(rl.requests, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// --- 消息速率限制 ---

// MessageRateLimiter 单连接消息速率限制器
type MessageRateLimiter struct {
	limits map[string]*messageRate
	mu     sync.Mutex

	maxPerSecond int
}

type messageRate struct {
	count     int
	lastReset time.Time
	strikes   int // 超限次数，达到阈值后由调用方断开连接
}

// NewMessageRateLimiter 创建消息速率限制器
func NewMessageRateLimiter(maxPerSecond int) *MessageRateLimiter {
	return &MessageRateLimiter{
		limits:       make(map[string]*messageRate),
		maxPerSecond: maxPerSecond,
	}
}

// AllowMessage 检查客户端是否允许再发一条消息
func (ml *MessageRateLimiter) AllowMessage(clientID string) bool {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	now := time.Now()
	rate, exists := ml.limits[clientID]
	if !exists {
		ml.limits[clientID] = &messageRate{count: 1, lastReset: now}
		return true
	}

	if now.Sub(rate.lastReset) >= time.Second {
		rate.count = 1
		rate.lastReset = now
		return true
	}

	rate.count++
	if rate.count > ml.maxPerSecond {
		rate.strikes++
		return false
	}
	return true
}

// Strikes 获取客户端超限次数
func (ml *MessageRateLimiter) Strikes(clientID string) int {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	rate, exists := ml.limits[clientID]
	if !exists {
		return 0
	}
	return rate.strikes
}

// RemoveClient 移除客户端记录
func (ml *MessageRateLimiter) RemoveClient(clientID string) {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	delete(ml.limits, clientID)
}

// --- 聊天速率限制 ---

// ChatRateLimiter 聊天消息速率限制器，超限后进入冷却
type ChatRateLimiter struct {
	limits map[string]*chatRate
	mu     sync.Mutex

	maxPerSecond int
	maxPerMinute int
	cooldown     time.Duration
}

type chatRate struct {
	secondCount   int
	minuteCount   int
	lastSecond    time.Time
	lastMinute    time.Time
	cooldownUntil time.Time
}

// NewChatRateLimiter 创建聊天速率限制器
func NewChatRateLimiter(maxPerSecond, maxPerMinute int, cooldown time.Duration) *ChatRateLimiter {
	return &ChatRateLimiter{
		limits:       make(map[string]*chatRate),
		maxPerSecond: maxPerSecond,
		maxPerMinute: maxPerMinute,
		cooldown:     cooldown,
	}
}

// AllowChat 检查客户端是否允许发送聊天消息
func (cl *ChatRateLimiter) AllowChat(clientID string) (bool, string) {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := time.Now()
	rate, exists := cl.limits[clientID]
	if !exists {
		cl.limits[clientID] = &chatRate{
			secondCount: 1,
			minuteCount: 1,
			lastSecond:  now,
			lastMinute:  now,
		}
		return true, ""
	}

	if now.Before(rate.cooldownUntil) {
		return false, "You are sending messages too fast, please wait"
	}

	if now.Sub(rate.lastSecond) >= time.Second {
		rate.secondCount = 0
		rate.lastSecond = now
	}
	if now.Sub(rate.lastMinute) >= time.Minute {
		rate.minuteCount = 0
		rate.lastMinute = now
	}

	rate.secondCount++
	rate.minuteCount++

	if rate.secondCount > cl.maxPerSecond || rate.minuteCount > cl.maxPerMinute {
		rate.cooldownUntil = now.Add(cl.cooldown)
		return false, "You are sending messages too fast, please wait"
	}

	return true, ""
}

// RemoveClient 移除客户端记录
func (cl *ChatRateLimiter) RemoveClient(clientID string) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	delete(cl.limits, clientID)
}

// --- 来源验证 ---

// OriginChecker 来源验证器
type OriginChecker struct {
	allowedOrigins map[string]bool
	allowAll       bool
}

// NewOriginChecker 创建来源验证器。列表为空或含 "*" 时放行所有来源
func NewOriginChecker(origins []string) *OriginChecker {
	oc := &OriginChecker{
		allowedOrigins: make(map[string]bool),
	}

	if len(origins) == 0 {
		oc.allowAll = true
		return oc
	}
	for _, origin := range origins {
		if origin == "*" {
			oc.allowAll = true
			return oc
		}
		oc.allowedOrigins[strings.ToLower(origin)] = true
	}

	return oc
}

// Check 检查请求来源是否允许
func (oc *OriginChecker) Check(r *http.Request) bool {
	if oc.allowAll {
		return true
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		// 没有 Origin 头，可能是同源请求或非浏览器客户端
		return true
	}

	return oc.allowedOrigins[strings.ToLower(origin)]
}

// --- 辅助函数 ---

// GetClientIP 获取客户端真实 IP（优先代理头）
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
