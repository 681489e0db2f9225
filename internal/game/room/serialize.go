package room

import (
	"github.com/escapetogether/escape-together/internal/server/storage"
)

// ToRoomData 将 Room 转换为可序列化的 RoomData
func (r *Room) ToRoomData() *storage.RoomData {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data := &storage.RoomData{
		Code:       r.Code,
		HostID:     r.HostID,
		IsPrivate:  r.IsPrivate,
		MaxPlayers: r.MaxPlayers,
		Started:    r.Game.Started,
		Players:    make([]storage.PlayerData, 0, len(r.Players)),
		CreatedAt:  r.CreatedAt.Unix(),
	}
	if r.Game.Started {
		data.StartedAt = r.Game.StartedAt.UnixMilli()
	}

	for _, id := range r.JoinOrder {
		player, exists := r.Players[id]
		if !exists {
			continue
		}
		data.Players = append(data.Players, storage.PlayerData{
			ID:       id,
			Name:     player.Name,
			X:        player.Position.X,
			Y:        player.Position.Y,
			IsHost:   player.IsHost,
			JoinedAt: player.JoinedAt.Unix(),
		})
	}

	return data
}
