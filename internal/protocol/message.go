package protocol

import "encoding/json"

// Message 基础消息结构
//
// 线上格式为 {type, data, timestamp}，错误消息额外携带顶层 message 字段
// （与浏览器客户端的既有约定保持一致）。
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp int64           `json:"timestamp,omitempty"`
	Message   string          `json:"message,omitempty"` // 仅 error 消息使用
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 房间操作
	MsgCreateRoom MessageType = "create_room" // 创建房间
	MsgJoinRoom   MessageType = "join_room"   // 加入房间
	MsgLeaveRoom  MessageType = "leave_room"  // 离开房间

	// 游戏操作
	MsgPlayerMove      MessageType = "player_move"       // 玩家移动
	MsgPlayerInteract  MessageType = "player_interact"   // 玩家交互
	MsgGameStart       MessageType = "game_start"        // 开始游戏（仅房主）
	MsgGameReset       MessageType = "game_reset"        // 重置游戏（仅房主，双向复用）
	MsgChatMessage     MessageType = "chat_message"      // 聊天消息（双向复用）
	MsgDoorStateChange MessageType = "door_state_change" // 门状态变更（双向复用）

	// 大厅查询
	MsgGetRoomList    MessageType = "get_room_list"    // 获取公开房间列表
	MsgGetOnlineCount MessageType = "get_online_count" // 获取在线人数

	// 连接操作
	MsgPing MessageType = "ping" // 心跳 ping
)

// 服务端 → 客户端 消息类型
const (
	// 房间相关
	MsgRoomCreated  MessageType = "room_created"  // 房间创建成功
	MsgRoomJoined   MessageType = "room_joined"   // 加入房间成功
	MsgPlayerJoined MessageType = "player_joined" // 其他玩家加入
	MsgPlayerLeft   MessageType = "player_left"   // 玩家离开

	// 游戏相关
	MsgPlayerMoved      MessageType = "player_moved"      // 玩家移动通知
	MsgPlayerInteracted MessageType = "player_interacted" // 玩家交互通知
	MsgGameStarted      MessageType = "game_started"      // 游戏开始通知

	// 大厅相关
	MsgRoomList    MessageType = "room_list"    // 房间列表结果
	MsgOnlineCount MessageType = "online_count" // 在线人数结果

	// 连接相关
	MsgPong  MessageType = "pong"  // 心跳 pong
	MsgError MessageType = "error" // 错误
)
