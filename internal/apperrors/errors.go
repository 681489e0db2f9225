package apperrors

import (
	"github.com/escapetogether/escape-together/internal/protocol"
)

// GameError 协议层错误（房间和会话共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrRoomNotFound   = &GameError{Code: protocol.ErrCodeRoomNotFound, Message: protocol.ErrorMessages[protocol.ErrCodeRoomNotFound]}
	ErrRoomFull       = &GameError{Code: protocol.ErrCodeRoomFull, Message: protocol.ErrorMessages[protocol.ErrCodeRoomFull]}
	ErrNotInRoom      = &GameError{Code: protocol.ErrCodeNotInRoom, Message: protocol.ErrorMessages[protocol.ErrCodeNotInRoom]}
	ErrAlreadyInRoom  = &GameError{Code: protocol.ErrCodeAlreadyInRoom, Message: protocol.ErrorMessages[protocol.ErrCodeAlreadyInRoom]}
	ErrGameInProgress = &GameError{Code: protocol.ErrCodeGameInProgress, Message: protocol.ErrorMessages[protocol.ErrCodeGameInProgress]}
	ErrCodeExhausted  = &GameError{Code: protocol.ErrCodeCodeGeneration, Message: protocol.ErrorMessages[protocol.ErrCodeCodeGeneration]}

	ErrGameStarted = &GameError{Code: protocol.ErrCodeGameStarted, Message: protocol.ErrorMessages[protocol.ErrCodeGameStarted]}
	ErrEmptyRoom   = &GameError{Code: protocol.ErrCodeEmptyRoom, Message: protocol.ErrorMessages[protocol.ErrCodeEmptyRoom]}

	// 房主权限错误按操作区分文案，共用一个错误码
	ErrNotHostStart = &GameError{Code: protocol.ErrCodeNotHost, Message: "Only the host can start the game"}
	ErrNotHostReset = &GameError{Code: protocol.ErrCodeNotHost, Message: "Only the host can reset the game"}

	ErrBadName     = &GameError{Code: protocol.ErrCodeBadName, Message: protocol.ErrorMessages[protocol.ErrCodeBadName]}
	ErrBadMessage  = &GameError{Code: protocol.ErrCodeBadMessage, Message: protocol.ErrorMessages[protocol.ErrCodeBadMessage]}
	ErrBadPosition = &GameError{Code: protocol.ErrCodeBadPosition, Message: protocol.ErrorMessages[protocol.ErrCodeBadPosition]}
)
