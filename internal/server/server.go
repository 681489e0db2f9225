package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/escapetogether/escape-together/internal/config"
	"github.com/escapetogether/escape-together/internal/game/room"
	"github.com/escapetogether/escape-together/internal/server/handler"
	"github.com/escapetogether/escape-together/internal/server/session"
	"github.com/escapetogether/escape-together/internal/server/storage"
)

// Server 游戏服务器
type Server struct {
	config *config.Config

	redis      *redis.Client       // 可为 nil（纯内存模式）
	redisStore *storage.RedisStore // 可为 nil

	roomManager    *room.RoomManager
	sessionManager *session.SessionManager
	handler        *handler.Handler

	clients   map[string]*Client
	clientsMu sync.RWMutex

	rateLimiter    *RateLimiter
	originChecker  *OriginChecker
	messageLimiter *MessageRateLimiter
	chatLimiter    *ChatRateLimiter

	// 并发连接上限信号量
	semaphore chan struct{}

	done       chan struct{}
	httpServer *http.Server
	upgrader   websocket.Upgrader
}

// NewServer 创建游戏服务器
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		config:         cfg,
		sessionManager: session.NewSessionManager(),
		clients:        make(map[string]*Client),
		semaphore:      make(chan struct{}, cfg.Server.MaxConnections),
		done:           make(chan struct{}),
	}

	// 连接 Redis，失败时降级为纯内存模式
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis 连接失败，以纯内存模式运行: %v", err)
		rdb.Close()
	} else {
		s.redis = rdb
		s.redisStore = storage.NewRedisStore(rdb)
		log.Printf("✅ Redis 已连接: %s", cfg.Redis.Addr)
	}

	s.roomManager = room.NewRoomManager(
		s.redisStore,
		cfg.Room.MaxPlayers,
		cfg.Room.RoomTTLDuration(),
		cfg.Room.SweepIntervalDuration(),
	)

	s.rateLimiter = NewRateLimiter(
		cfg.Security.RateLimit.MaxPerSecond,
		cfg.Security.RateLimit.MaxPerMinute,
		cfg.Security.RateLimit.BanDurationTime(),
	)
	s.originChecker = NewOriginChecker(cfg.Security.AllowedOrigins)
	s.messageLimiter = NewMessageRateLimiter(cfg.Security.MessageLimit.MaxPerSecond)
	s.chatLimiter = NewChatRateLimiter(
		cfg.Security.ChatLimit.MaxPerSecond,
		cfg.Security.ChatLimit.MaxPerMinute,
		cfg.Security.ChatLimit.CooldownDuration(),
	)

	s.handler = handler.NewHandler(&handler.Deps{
		Server:         s,
		RoomManager:    s.roomManager,
		SessionManager: s.sessionManager,
		ChatLimiter:    s.chatLimiter,
		Store:          s.redisStore,
	})

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.originChecker.Check,
	}

	return s
}

// Start 启动服务器（阻塞直到 HTTP 服务退出）
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/rooms", s.handleRooms)

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.monitorStats()

	log.Printf("🚀 服务器启动，监听 %s", addr)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// handleWebSocket 处理 WebSocket 连接请求
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ip := GetClientIP(r)

	// 连接速率限制
	if !s.rateLimiter.Allow(ip) {
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		return
	}

	// 并发连接上限
	select {
	case s.semaphore <- struct{}{}:
	default:
		log.Printf("⚠️ 服务器连接数已满，拒绝 IP %s", ip)
		http.Error(w, "Server Full", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		<-s.semaphore
		log.Printf("WebSocket 升级失败: %v", err)
		return
	}

	client := NewClient(s, conn)
	client.IP = ip

	s.registerClient(client)
	s.sessionManager.CreateSession(client.ID)

	log.Printf("👤 玩家已连接: %s (IP: %s)，当前在线 %d", client.ID, ip, s.GetOnlineCount())

	go client.WritePump()
	go client.ReadPump()
}

// handleHealth 健康检查端点
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"online":  s.GetOnlineCount(),
		"rooms":   s.roomManager.RoomCount(),
		"storage": s.redisStore != nil,
	})
}

// handleRooms 公开房间列表端点
func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"rooms":   s.roomManager.ListPublic(),
	})
}

// registerClient 注册客户端
func (s *Server) registerClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client.ID] = client
}

// unregisterClient 注销客户端并释放连接名额
func (s *Server) unregisterClient(client *Client) {
	s.clientsMu.Lock()
	_, exists := s.clients[client.ID]
	if exists {
		delete(s.clients, client.ID)
	}
	s.clientsMu.Unlock()

	if exists {
		<-s.semaphore
		client.Close()
		log.Printf("👋 玩家已断开: %s，当前在线 %d", client.ID, s.GetOnlineCount())
	}
}

// GetOnlineCount 获取在线人数
func (s *Server) GetOnlineCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// monitorStats 定期输出运行状态，直到服务器关闭
func (s *Server) monitorStats() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			log.Printf("📊 在线: %d | 房间: %d | Goroutines: %d | 内存: %.1fMB",
				s.GetOnlineCount(),
				s.roomManager.RoomCount(),
				runtime.NumGoroutine(),
				float64(m.Alloc)/1024/1024)
		case <-s.done:
			return
		}
	}
}

// Shutdown 优雅关闭服务器
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("正在关闭服务器...")

	// 停止后台协程（状态监控、过期清扫）
	close(s.done)
	s.roomManager.Stop()

	// 停止接收新连接
	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}

	// 关闭所有客户端连接
	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clientsMu.Unlock()

	if s.redis != nil {
		s.redis.Close()
	}

	log.Println("✅ 服务器已关闭")
	return err
}
