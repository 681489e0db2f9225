package protocol

// 错误码
const (
	ErrCodeUnknown     = 1000
	ErrCodeInvalidMsg  = 1001
	ErrCodeUnknownType = 1002
	ErrCodeBadName     = 1003
	ErrCodeBadMessage  = 1004
	ErrCodeBadPosition = 1005
	ErrCodeRateLimit   = 1006 // 速率限制

	ErrCodeRoomNotFound   = 2001
	ErrCodeRoomFull       = 2002
	ErrCodeNotInRoom      = 2003
	ErrCodeAlreadyInRoom  = 2004
	ErrCodeGameInProgress = 2005 // 游戏进行中，无法加入
	ErrCodeCodeGeneration = 2006 // 房间号生成失败

	ErrCodeNotHost     = 3001
	ErrCodeGameStarted = 3002
	ErrCodeEmptyRoom   = 3003
)

// ErrorMessages 错误码对应的消息（发给客户端的文案沿用浏览器端约定）
var ErrorMessages = map[int]string{
	ErrCodeUnknown:     "Internal server error",
	ErrCodeInvalidMsg:  "Invalid JSON format",
	ErrCodeUnknownType: "Unknown message type",
	ErrCodeBadName:     "Player name must be between 1 and 20 characters",
	ErrCodeBadMessage:  "Message must be between 1 and 200 characters",
	ErrCodeBadPosition: "Position must contain numeric x and y",
	ErrCodeRateLimit:   "Too many requests, slow down",

	ErrCodeRoomNotFound:   "Room not found",
	ErrCodeRoomFull:       "Room is full",
	ErrCodeNotInRoom:      "You are not in a room",
	ErrCodeAlreadyInRoom:  "Already in a room",
	ErrCodeGameInProgress: "Game already in progress",
	ErrCodeCodeGeneration: "Could not allocate a room code",

	ErrCodeNotHost:     "Only the host can perform this action",
	ErrCodeGameStarted: "Game has already started",
	ErrCodeEmptyRoom:   "Need at least 1 player to start",
}
