package model

import "time"

// QueueEntry is one player's place in the matchmaking queue.
// At most one entry exists per player at any time.
type QueueEntry struct {
	PlayerID      PlayerID
	Name          string
	Loadout       Loadout
	SpawnDistance int
	EnqueuedAt    time.Time
}
