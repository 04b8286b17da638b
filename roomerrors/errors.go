package roomerrors

import "errors"

// Room/orchestrator sentinel errors. Shared by the rooms and ws
// packages to avoid circular imports. These are structural rejections:
// they are decided at the orchestrator boundary and never reach a game
// session.
var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomFull       = errors.New("room is full")
	ErrNotASeat       = errors.New("player is not seated in this room")
	ErrAlreadySeated  = errors.New("player is already in a room")
	ErrNoSession      = errors.New("no active session for this room")
	ErrSessionRunning = errors.New("a session is already running for this room")
	ErrInvalidMode    = errors.New("invalid game mode")
)
