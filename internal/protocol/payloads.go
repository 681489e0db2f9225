package protocol

// --- 客户端请求 Payloads ---

// CreateRoomPayload 创建房间请求
type CreateRoomPayload struct {
	PlayerName string `json:"playerName"`
	IsPrivate  bool   `json:"isPrivate,omitempty"`
}

// JoinRoomPayload 加入房间请求
type JoinRoomPayload struct {
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
}

// PlayerMovePayload 玩家移动请求
type PlayerMovePayload struct {
	Position *Position `json:"position"`
}

// PlayerInteractPayload 玩家交互请求
type PlayerInteractPayload struct {
	ObjectID        string `json:"objectId"`
	InteractionType string `json:"interactionType"`
}

// ChatMessagePayload 聊天消息（服务端广播时填充发送者信息）
type ChatMessagePayload struct {
	PlayerID   string `json:"playerId,omitempty"`   // 服务端填充
	PlayerName string `json:"playerName,omitempty"` // 服务端填充
	Message    string `json:"message"`
	Timestamp  int64  `json:"timestamp,omitempty"` // 服务端填充（毫秒）
}

// DoorStateChangePayload 门状态变更（服务端广播时填充 changedBy）
type DoorStateChangePayload struct {
	DoorID     string `json:"doorId"`
	IsOpen     bool   `json:"isOpen"`
	FromRoom   string `json:"fromRoom,omitempty"`
	TargetRoom string `json:"targetRoom,omitempty"`
	ChangedBy  string `json:"changedBy,omitempty"` // 服务端填充
}

// --- 服务端响应 Payloads ---

// RoomCreatedPayload 房间创建成功响应
type RoomCreatedPayload struct {
	RoomCode   string         `json:"roomCode"`
	PlayerID   string         `json:"playerId"`
	IsHost     bool           `json:"isHost"`
	PlayerName string         `json:"playerName"`
	Room       RoomPublicData `json:"room"`
	Players    []PlayerInfo   `json:"players"`
}

// RoomJoinedPayload 加入房间成功响应
type RoomJoinedPayload struct {
	RoomCode string         `json:"roomCode"`
	PlayerID string         `json:"playerId"`
	IsHost   bool           `json:"isHost"`
	Room     RoomPublicData `json:"room"`
	Players  []PlayerInfo   `json:"players"`
}

// PlayerJoinedPayload 其他玩家加入通知
type PlayerJoinedPayload struct {
	PlayerID string   `json:"playerId"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
}

// PlayerLeftPayload 玩家离开通知
type PlayerLeftPayload struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

// PlayerMovedPayload 玩家移动通知
type PlayerMovedPayload struct {
	PlayerID string   `json:"playerId"`
	Position Position `json:"position"`
}

// PlayerInteractedPayload 玩家交互通知
type PlayerInteractedPayload struct {
	PlayerID        string `json:"playerId"`
	ObjectID        string `json:"objectId"`
	InteractionType string `json:"interactionType"`
	Timestamp       int64  `json:"timestamp"` // 毫秒
}

// GameStartedPayload 游戏开始通知
type GameStartedPayload struct {
	Timestamp int64        `json:"timestamp"` // 毫秒
	Players   []PlayerInfo `json:"players"`
}

// GameResetPayload 游戏重置通知
type GameResetPayload struct {
	Timestamp int64 `json:"timestamp"` // 毫秒
}

// PongPayload 心跳响应
type PongPayload struct {
	Timestamp int64 `json:"timestamp"` // 服务器时间戳（毫秒）
}

// RoomListPayload 公开房间列表结果
type RoomListPayload struct {
	Rooms []RoomPublicData `json:"rooms"`
}

// OnlineCountPayload 在线人数结果
type OnlineCountPayload struct {
	Count int `json:"count"`
}

// --- 通用数据结构 ---

// Position 玩家坐标
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlayerInfo 玩家信息快照
type PlayerInfo struct {
	PlayerID string   `json:"playerId"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
	IsHost   bool     `json:"isHost"`
}

// RoomPublicData 房间公开信息（大厅列表用）
type RoomPublicData struct {
	RoomCode    string `json:"roomCode"`
	PlayerCount int    `json:"playerCount"`
	MaxPlayers  int    `json:"maxPlayers"`
	IsPrivate   bool   `json:"isPrivate"`
	GameStarted bool   `json:"gameStarted"`
	HostName    string `json:"hostName"`
}
