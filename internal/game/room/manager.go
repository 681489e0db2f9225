package room

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/escapetogether/escape-together/internal/apperrors"
	"github.com/escapetogether/escape-together/internal/protocol"
	"github.com/escapetogether/escape-together/internal/types"
)

// CreateRoom 创建房间，创建者自动成为房主
func (rm *RoomManager) CreateRoom(client types.ClientInterface, playerName string, isPrivate bool) (*Room, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	code, err := rm.generateRoomCode()
	if err != nil {
		return nil, err
	}

	room := &Room{
		Code:       code,
		HostID:     client.GetID(),
		IsPrivate:  isPrivate,
		MaxPlayers: rm.maxPlayers,
		Players:    make(map[string]*RoomPlayer),
		CreatedAt:  time.Now(),
	}
	room.addPlayer(client.GetID(), playerName, client)

	client.SetName(playerName)
	client.SetRoom(code)
	rm.rooms[code] = room

	// 保存到 Redis
	rm.persist(room)

	log.Printf("🏠 房间 %s 已创建，房主 %s", code, playerName)

	return room, nil
}

// JoinRoom 加入房间。房间号大小写不敏感，统一转为大写查找
func (rm *RoomManager) JoinRoom(client types.ClientInterface, playerName, code string) (*Room, error) {
	code = strings.ToUpper(code)

	rm.mu.RLock()
	room, exists := rm.rooms[code]
	rm.mu.RUnlock()
	if !exists {
		return nil, apperrors.ErrRoomNotFound
	}

	room.mu.Lock()

	if room.Game.Started {
		room.mu.Unlock()
		return nil, apperrors.ErrGameInProgress
	}
	if !room.addPlayer(client.GetID(), playerName, client) {
		room.mu.Unlock()
		return nil, apperrors.ErrRoomFull
	}

	client.SetName(playerName)
	client.SetRoom(code)
	room.mu.Unlock()

	// 与空房间清理并发时，房间可能在解析后、入座前被删除。
	// 入座后确认房间仍在目录中，已被删除则回滚入座并按不存在处理
	rm.mu.RLock()
	current := rm.rooms[code]
	rm.mu.RUnlock()
	if current != room {
		room.mu.Lock()
		room.removePlayer(client.GetID())
		room.mu.Unlock()
		client.SetRoom("")
		return nil, apperrors.ErrRoomNotFound
	}

	// 通知房间内其他玩家
	room.BroadcastExcept(client.GetID(), protocol.MustNewMessage(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
		PlayerID: client.GetID(),
		Name:     playerName,
		Position: SpawnPosition(),
	}))

	rm.persist(room)

	log.Printf("👤 玩家 %s 加入房间 %s", playerName, code)

	return room, nil
}

// LeaveRoom 离开房间。未绑定房间的调用是无害的空操作（幂等）
func (rm *RoomManager) LeaveRoom(client types.ClientInterface) {
	roomCode := client.GetRoom()
	if roomCode == "" {
		return
	}

	rm.mu.RLock()
	room, exists := rm.rooms[roomCode]
	rm.mu.RUnlock()

	client.SetRoom("")
	if !exists {
		return
	}

	room.mu.Lock()
	if _, ok := room.Players[client.GetID()]; !ok {
		room.mu.Unlock()
		return
	}

	newHost := room.removePlayer(client.GetID())

	// 通知剩余玩家
	room.broadcast(protocol.MustNewMessage(protocol.MsgPlayerLeft, protocol.PlayerLeftPayload{
		PlayerID:   client.GetID(),
		PlayerName: client.GetName(),
	}), "")

	empty := len(room.Players) == 0
	room.mu.Unlock()

	log.Printf("👋 玩家 %s 离开房间 %s", client.GetName(), roomCode)
	if newHost != "" {
		log.Printf("👑 房间 %s 房主移交给 %s", roomCode, newHost)
	}

	// 如果房间空了，删除房间
	if empty {
		rm.removeRoom(roomCode)
	} else {
		rm.persist(room)
	}
}

// GetRoom 获取房间（大小写不敏感），不存在返回 nil
func (rm *RoomManager) GetRoom(code string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.rooms[strings.ToUpper(code)]
}

// GetRoomOf 获取客户端所在的房间
func (rm *RoomManager) GetRoomOf(client types.ClientInterface) (*Room, error) {
	roomCode := client.GetRoom()
	if roomCode == "" {
		return nil, apperrors.ErrNotInRoom
	}

	rm.mu.RLock()
	room, exists := rm.rooms[roomCode]
	rm.mu.RUnlock()
	if !exists || !room.HasPlayer(client.GetID()) {
		return nil, apperrors.ErrNotInRoom
	}
	return room, nil
}

// ListPublic 获取公开房间列表（有人且非私密），按创建时间倒序
func (rm *RoomManager) ListPublic() []protocol.RoomPublicData {
	rm.mu.RLock()
	candidates := make([]*Room, 0, len(rm.rooms))
	for _, room := range rm.rooms {
		candidates = append(candidates, room)
	}
	rm.mu.RUnlock()

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})

	rooms := make([]protocol.RoomPublicData, 0, len(candidates))
	for _, room := range candidates {
		room.mu.RLock()
		visible := !room.IsPrivate && len(room.Players) > 0
		room.mu.RUnlock()
		if visible {
			rooms = append(rooms, room.PublicData())
		}
	}
	return rooms
}

// RoomCount 获取当前房间总数
func (rm *RoomManager) RoomCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.rooms)
}

// Persist 保存房间快照（游戏开始/重置等状态变化后调用）
func (rm *RoomManager) Persist(room *Room) {
	rm.persist(room)
}

// persist 异步保存房间快照到 Redis
func (rm *RoomManager) persist(room *Room) {
	if rm.store == nil {
		return
	}
	data := room.ToRoomData()
	go func() { _ = rm.store.SaveRoom(context.Background(), data.Code, data) }()
}

// removeRoom 删除房间并清理持久化数据。
// 观察到空房间和删除之间可能有玩家并发加入，删除前重新校验仍为空
func (rm *RoomManager) removeRoom(code string) {
	rm.mu.Lock()
	room, exists := rm.rooms[code]
	if !exists {
		rm.mu.Unlock()
		return
	}

	room.mu.RLock()
	empty := len(room.Players) == 0
	room.mu.RUnlock()
	if !empty {
		rm.mu.Unlock()
		return
	}

	delete(rm.rooms, code)
	rm.mu.Unlock()

	if rm.store != nil {
		go func() { _ = rm.store.DeleteRoom(context.Background(), code) }()
	}
	log.Printf("🏠 房间 %s 已解散", code)
}
