package room

import (
	"math"
	"sync"
	"time"

	"github.com/escapetogether/escape-together/internal/apperrors"
	"github.com/escapetogether/escape-together/internal/protocol"
	"github.com/escapetogether/escape-together/internal/server/storage"
	"github.com/escapetogether/escape-together/internal/types"
)

const (
	// 房间号为 6 位大写字母/数字
	roomCodeLength = 6
	roomCodeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// 房间号生成重试上限（码空间远大于并发房间数，命中即病态情况）
	maxCodeAttempts = 100

	// 出生点坐标
	spawnX = 100
	spawnY = 100
)

// SpawnPosition 返回默认出生点
func SpawnPosition() protocol.Position {
	return protocol.Position{X: spawnX, Y: spawnY}
}

// RoomPlayer 房间中的玩家
type RoomPlayer struct {
	Client   types.ClientInterface
	Name     string
	Position protocol.Position
	IsHost   bool      // 是否是房主
	JoinedAt time.Time // 加入时间
}

// GameState 房间内的游戏状态
type GameState struct {
	Started   bool
	StartedAt time.Time
	Doors     map[string]bool // doorId -> 是否打开
}

// Room 游戏房间
type Room struct {
	Code       string                 // 房间号
	HostID     string                 // 房主玩家 ID
	IsPrivate  bool                   // 是否私密（不出现在大厅列表）
	MaxPlayers int                    // 人数上限
	Players    map[string]*RoomPlayer // 玩家列表
	JoinOrder  []string               // 加入顺序（房主移交用）
	Game       GameState              // 游戏状态
	CreatedAt  time.Time              // 创建时间

	mu sync.RWMutex
}

// RoomManager 房间管理器
type RoomManager struct {
	store      *storage.RedisStore // 可为 nil（纯内存模式）
	maxPlayers int
	roomTTL    time.Duration
	rooms      map[string]*Room
	mu         sync.RWMutex

	done     chan struct{}
	stopOnce sync.Once
}

// NewRoomManager 创建房间管理器并启动过期清扫协程
func NewRoomManager(store *storage.RedisStore, maxPlayers int, roomTTL, sweepInterval time.Duration) *RoomManager {
	rm := &RoomManager{
		store:      store,
		maxPlayers: maxPlayers,
		roomTTL:    roomTTL,
		rooms:      make(map[string]*Room),
		done:       make(chan struct{}),
	}

	go rm.sweepLoop(sweepInterval)

	return rm
}

// addPlayer 向房间添加玩家，满员返回 false。调用方需持有 r.mu
func (r *Room) addPlayer(playerID, name string, client types.ClientInterface) bool {
	if len(r.Players) >= r.MaxPlayers {
		return false
	}

	// 加入空房间的玩家接任房主（房主离开与新玩家加入并发时的兜底）
	if len(r.Players) == 0 {
		r.HostID = playerID
	}

	r.Players[playerID] = &RoomPlayer{
		Client:   client,
		Name:     name,
		Position: SpawnPosition(),
		IsHost:   playerID == r.HostID,
		JoinedAt: time.Now(),
	}
	r.JoinOrder = append(r.JoinOrder, playerID)
	return true
}

// removePlayer 移除玩家并在需要时移交房主。调用方需持有 r.mu
// 返回新房主 ID（未发生移交时为空）
func (r *Room) removePlayer(playerID string) string {
	delete(r.Players, playerID)
	for i, id := range r.JoinOrder {
		if id == playerID {
			r.JoinOrder = append(r.JoinOrder[:i], r.JoinOrder[i+1:]...)
			break
		}
	}

	// 房主离开时移交给最早加入的剩余玩家
	if playerID == r.HostID && len(r.JoinOrder) > 0 {
		next := r.JoinOrder[0]
		r.HostID = next
		r.Players[next].IsHost = true
		return next
	}
	return ""
}

// Broadcast 广播消息给房间内所有玩家
func (r *Room) Broadcast(msg *protocol.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.broadcast(msg, "")
}

// BroadcastExcept 广播消息给除指定玩家外的所有玩家
func (r *Room) BroadcastExcept(excludeID string, msg *protocol.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.broadcast(msg, excludeID)
}

// broadcast 尽力投递：连接不可写的成员直接跳过。调用方需持有 r.mu
func (r *Room) broadcast(msg *protocol.Message, excludeID string) {
	for id, player := range r.Players {
		if id == excludeID || player.Client == nil {
			continue
		}
		player.Client.SendMessage(msg)
	}
}

// UpdatePosition 更新玩家位置并广播给其他玩家
func (r *Room) UpdatePosition(playerID string, pos protocol.Position) error {
	if math.IsNaN(pos.X) || math.IsInf(pos.X, 0) || math.IsNaN(pos.Y) || math.IsInf(pos.Y, 0) {
		return apperrors.ErrBadPosition
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	player, exists := r.Players[playerID]
	if !exists {
		return apperrors.ErrNotInRoom
	}
	player.Position = pos

	r.broadcast(protocol.MustNewMessage(protocol.MsgPlayerMoved, protocol.PlayerMovedPayload{
		PlayerID: playerID,
		Position: pos,
	}), playerID)

	return nil
}

// StartGame 开始游戏（仅房主），广播给包括房主在内的所有玩家
func (r *Room) StartGame(requesterID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if requesterID != r.HostID {
		return apperrors.ErrNotHostStart
	}
	if len(r.Players) == 0 {
		return apperrors.ErrEmptyRoom
	}
	if r.Game.Started {
		return apperrors.ErrGameStarted
	}

	now := time.Now()
	r.Game.Started = true
	r.Game.StartedAt = now

	r.broadcast(protocol.MustNewMessage(protocol.MsgGameStarted, protocol.GameStartedPayload{
		Timestamp: now.UnixMilli(),
		Players:   r.playersSnapshot(),
	}), "")

	return nil
}

// ResetGame 重置游戏（仅房主）：清空游戏状态并把所有玩家拉回出生点
func (r *Room) ResetGame(requesterID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if requesterID != r.HostID {
		return apperrors.ErrNotHostReset
	}

	r.Game = GameState{}
	for _, player := range r.Players {
		player.Position = SpawnPosition()
	}

	r.broadcast(protocol.MustNewMessage(protocol.MsgGameReset, protocol.GameResetPayload{
		Timestamp: time.Now().UnixMilli(),
	}), "")

	return nil
}

// SetDoorState 记录门状态并广播给包括发送者在内的所有玩家
func (r *Room) SetDoorState(playerID string, payload protocol.DoorStateChangePayload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.Players[playerID]; !exists {
		return apperrors.ErrNotInRoom
	}

	if r.Game.Doors == nil {
		r.Game.Doors = make(map[string]bool)
	}
	r.Game.Doors[payload.DoorID] = payload.IsOpen
	payload.ChangedBy = playerID

	r.broadcast(protocol.MustNewMessage(protocol.MsgDoorStateChange, payload), "")

	return nil
}

// HasPlayer 检查玩家是否在房间中
func (r *Room) HasPlayer(playerID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.Players[playerID]
	return exists
}

// PlayerCount 获取房间人数
func (r *Room) PlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.Players)
}

// IsHost 检查玩家是否是房主
func (r *Room) IsHost(playerID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return playerID == r.HostID
}

// GetPlayerInfo 获取单个玩家信息快照
func (r *Room) GetPlayerInfo(playerID string) protocol.PlayerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	player, exists := r.Players[playerID]
	if !exists {
		return protocol.PlayerInfo{}
	}
	return protocol.PlayerInfo{
		PlayerID: playerID,
		Name:     player.Name,
		Position: player.Position,
		IsHost:   player.IsHost,
	}
}

// GetAllPlayersInfo 获取所有玩家信息快照（按加入顺序）
func (r *Room) GetAllPlayersInfo() []protocol.PlayerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.playersSnapshot()
}

// playersSnapshot 按加入顺序生成玩家快照。调用方需持有 r.mu
func (r *Room) playersSnapshot() []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, 0, len(r.Players))
	for _, id := range r.JoinOrder {
		player, exists := r.Players[id]
		if !exists {
			continue
		}
		infos = append(infos, protocol.PlayerInfo{
			PlayerID: id,
			Name:     player.Name,
			Position: player.Position,
			IsHost:   player.IsHost,
		})
	}
	return infos
}

// PublicData 获取房间公开信息（大厅列表用）
func (r *Room) PublicData() protocol.RoomPublicData {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hostName := "Unknown"
	if host, exists := r.Players[r.HostID]; exists {
		hostName = host.Name
	}

	return protocol.RoomPublicData{
		RoomCode:    r.Code,
		PlayerCount: len(r.Players),
		MaxPlayers:  r.MaxPlayers,
		IsPrivate:   r.IsPrivate,
		GameStarted: r.Game.Started,
		HostName:    hostName,
	}
}
