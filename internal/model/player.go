package model

import "time"

// PlayerID uniquely identifies a player across the system.
// It is the id of the player's live connection.
type PlayerID string

// Loadout is a player's cosmetic selection for a duel
type Loadout struct {
	Character string `json:"character"`
	Weapon    string `json:"weapon"`
}

// Player represents a connected participant.
// Owned by the player registry; rooms and queue entries reference it by id.
type Player struct {
	ID          PlayerID
	DisplayName string
	Loadout     Loadout
	InGame      bool
	RoomID      *RoomID // nil when not seated in a room
	Wins        int
	Losses      int
	ConnectedAt time.Time
}
