package room

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/escapetogether/escape-together/internal/apperrors"
)

// generateRoomCode 生成唯一房间号。调用方需持有 rm.mu
func (rm *RoomManager) generateRoomCode() (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := make([]byte, roomCodeLength)
		for i := range code {
			code[i] = roomCodeChars[rand.Intn(len(roomCodeChars))]
		}
		codeStr := string(code)
		if _, exists := rm.rooms[codeStr]; !exists {
			return codeStr, nil
		}
	}
	return "", apperrors.ErrCodeExhausted
}

// sweepLoop 定期清理过期的空房间，直到 Stop 被调用
func (rm *RoomManager) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// Stop 和 tick 同时就绪时不再清扫
			select {
			case <-rm.done:
				return
			default:
			}
			rm.Sweep(time.Now())
		case <-rm.done:
			return
		}
	}
}

// Stop 停止过期清扫协程，可重复调用
func (rm *RoomManager) Stop() {
	rm.stopOnce.Do(func() { close(rm.done) })
}

// Sweep 清理创建超过 TTL 且已无人的房间
// 兜底处理创建后从未有人加入的房间（比如客户端创建后立即崩溃）
func (rm *RoomManager) Sweep(now time.Time) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	for code, room := range rm.rooms {
		room.mu.RLock()
		expired := len(room.Players) == 0 && now.Sub(room.CreatedAt) > rm.roomTTL
		room.mu.RUnlock()

		if expired {
			delete(rm.rooms, code)
			if rm.store != nil {
				go func(code string) { _ = rm.store.DeleteRoom(context.Background(), code) }(code)
			}
			log.Printf("🧹 房间 %s 过期已清理", code)
		}
	}
}
