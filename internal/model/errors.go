package model

import "errors"

// Common errors used across the application
var (
	// Registration errors
	ErrServerFull     = errors.New("server is at capacity")
	ErrPlayerNotFound = errors.New("player not found")

	// Matchmaking errors
	ErrAlreadyInGame = errors.New("player is already in a game")
	ErrAlreadyQueued = errors.New("player is already queued")

	// Room errors
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")
)
