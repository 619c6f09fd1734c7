package response

import (
	"github.com/mcoot/quickdrawgame-go/internal/core"
	"github.com/mcoot/quickdrawgame-go/internal/model"
)

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}

// Stats represents server population statistics in API responses
type Stats struct {
	PlayerCount    int `json:"player_count"`
	MaxPlayers     int `json:"max_players"`
	AvailableSlots int `json:"available_slots"`
	QueueLength    int `json:"queue_length"`
	RoomCount      int `json:"room_count"`
}

// StatsFromCore converts a core.Stats snapshot to a response Stats
func StatsFromCore(s core.Stats) Stats {
	return Stats{
		PlayerCount:    s.PlayerCount,
		MaxPlayers:     s.MaxPlayers,
		AvailableSlots: s.AvailableSlots,
		QueueLength:    s.QueueLength,
		RoomCount:      s.RoomCount,
	}
}

// RoomList wraps the public room listing
type RoomList struct {
	Rooms []model.RoomSummary `json:"rooms"`
}

// NewRoomList builds a RoomList, normalizing nil to an empty slice
func NewRoomList(rooms []model.RoomSummary) RoomList {
	if rooms == nil {
		rooms = []model.RoomSummary{}
	}
	return RoomList{Rooms: rooms}
}

// Leaderboard wraps the leaderboard listing
type Leaderboard struct {
	Entries []model.LeaderboardEntry `json:"entries"`
}

// NewLeaderboard builds a Leaderboard, normalizing nil to an empty slice
func NewLeaderboard(entries []model.LeaderboardEntry) Leaderboard {
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	return Leaderboard{Entries: entries}
}
