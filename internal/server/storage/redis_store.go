package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key 前缀
	roomKeyPrefix = "room:"
	chatKeySuffix = ":chat"

	// 房间快照过期时间
	roomExpiration = 48 * time.Hour

	// 每个房间保留的聊天条数
	chatHistoryLimit = 100
)

// RoomData 房间快照（用于 Redis 序列化）
type RoomData struct {
	Code       string       `json:"code"`
	HostID     string       `json:"host_id"`
	IsPrivate  bool         `json:"is_private"`
	MaxPlayers int          `json:"max_players"`
	Started    bool         `json:"started"`
	StartedAt  int64        `json:"started_at,omitempty"`
	Players    []PlayerData `json:"players"`
	CreatedAt  int64        `json:"created_at"`
}

// PlayerData 玩家快照
type PlayerData struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	IsHost   bool    `json:"is_host"`
	JoinedAt int64   `json:"joined_at"`
}

// ChatRecord 聊天记录条目
type ChatRecord struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Message    string `json:"message"`
	Timestamp  int64  `json:"timestamp"` // 毫秒
}

// RedisStore Redis 存储
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// --- 房间快照 ---

// SaveRoom 保存房间快照到 Redis
func (rs *RedisStore) SaveRoom(ctx context.Context, roomCode string, data *RoomData) error {
	if data == nil {
		return nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal room data: %w", err)
	}

	key := roomKeyPrefix + roomCode
	return rs.client.Set(ctx, key, jsonData, roomExpiration).Err()
}

// LoadRoom 从 Redis 加载房间快照，不存在返回 nil
func (rs *RedisStore) LoadRoom(ctx context.Context, code string) (*RoomData, error) {
	key := roomKeyPrefix + code
	data, err := rs.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // 房间不存在
		}
		return nil, err
	}

	var roomData RoomData
	if err := json.Unmarshal(data, &roomData); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room data: %w", err)
	}

	return &roomData, nil
}

// DeleteRoom 删除房间快照及其聊天记录
func (rs *RedisStore) DeleteRoom(ctx context.Context, code string) error {
	key := roomKeyPrefix + code
	return rs.client.Del(ctx, key, key+chatKeySuffix).Err()
}

// --- 聊天记录 ---

// AppendChat 追加一条聊天记录，只保留最近 chatHistoryLimit 条
func (rs *RedisStore) AppendChat(ctx context.Context, roomCode string, record *ChatRecord) error {
	jsonData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal chat record: %w", err)
	}

	key := roomKeyPrefix + roomCode + chatKeySuffix
	pipe := rs.client.Pipeline()
	pipe.LPush(ctx, key, jsonData)
	pipe.LTrim(ctx, key, 0, chatHistoryLimit-1)
	pipe.Expire(ctx, key, roomExpiration)
	_, err = pipe.Exec(ctx)
	return err
}

// RecentChat 获取最近的聊天记录，最新的在前
func (rs *RedisStore) RecentChat(ctx context.Context, roomCode string, limit int) ([]ChatRecord, error) {
	if limit <= 0 || limit > chatHistoryLimit {
		limit = chatHistoryLimit
	}

	key := roomKeyPrefix + roomCode + chatKeySuffix
	items, err := rs.client.LRange(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	records := make([]ChatRecord, 0, len(items))
	for _, item := range items {
		var record ChatRecord
		if err := json.Unmarshal([]byte(item), &record); err != nil {
			continue // 跳过损坏的条目
		}
		records = append(records, record)
	}
	return records, nil
}
