package model

import "time"

// RoomID is a human-readable identifier for joining rooms
type RoomID string

// RoomState represents the current state of a room
type RoomState string

const (
	RoomStateWaiting RoomState = "waiting" // slot2 empty, publicly joinable
	RoomStateReady   RoomState = "ready"   // both slots filled, duel not started
	RoomStateActive  RoomState = "active"  // duel in progress
)

// RoomSlot holds one occupant's identity and loadout
type RoomSlot struct {
	PlayerID PlayerID `json:"player_id"`
	Name     string   `json:"name"`
	Loadout  Loadout  `json:"loadout"`
}

// Room is a bounded session context mediating a single duel.
// Slot1 is always present once the room exists; Slot2 is nil while waiting.
type Room struct {
	ID            RoomID
	State         RoomState
	Slot1         RoomSlot
	Slot2         *RoomSlot
	SpawnDistance int
	CreatedAt     time.Time
	StartedAt     time.Time // zero until the duel starts
}

// IsFull reports whether both slots are occupied
func (r *Room) IsFull() bool {
	return r.Slot2 != nil
}

// Occupants returns the ids of everyone currently seated
func (r *Room) Occupants() []PlayerID {
	ids := []PlayerID{r.Slot1.PlayerID}
	if r.Slot2 != nil {
		ids = append(ids, r.Slot2.PlayerID)
	}
	return ids
}

// HasOccupant reports whether the given player is seated in this room
func (r *Room) HasOccupant(id PlayerID) bool {
	if r.Slot1.PlayerID == id {
		return true
	}
	return r.Slot2 != nil && r.Slot2.PlayerID == id
}

// RoomSummary is the public listing form of a waiting room
type RoomSummary struct {
	ID          RoomID  `json:"room_id"`
	HostName    string  `json:"host_name"`
	HostLoadout Loadout `json:"host_loadout"`
	Status      string  `json:"status"`
}

// Summary returns the room's public listing entry
func (r *Room) Summary() RoomSummary {
	return RoomSummary{
		ID:          r.ID,
		HostName:    r.Slot1.Name,
		HostLoadout: r.Slot1.Loadout,
		Status:      string(r.State),
	}
}
