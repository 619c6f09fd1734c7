package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		o.printHealthResult(v)
	case StatsResult:
		o.printStatsResult(v)
	case RoomListResult:
		o.printRoomList(v)
	case LeaderboardResult:
		o.printLeaderboard(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

// StatsResult response type
type StatsResult struct {
	PlayerCount    int `json:"player_count"`
	MaxPlayers     int `json:"max_players"`
	AvailableSlots int `json:"available_slots"`
	QueueLength    int `json:"queue_length"`
	RoomCount      int `json:"room_count"`
}

// RoomSummary response type
type RoomSummary struct {
	RoomID      string  `json:"room_id"`
	HostName    string  `json:"host_name"`
	HostLoadout Loadout `json:"host_loadout"`
	Status      string  `json:"status"`
}

// Loadout response type
type Loadout struct {
	Character string `json:"character"`
	Weapon    string `json:"weapon"`
}

// RoomListResult response type
type RoomListResult struct {
	Rooms []RoomSummary `json:"rooms"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	PlayerID   string  `json:"player_id"`
	Name       string  `json:"name"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	TotalGames int     `json:"total_games"`
	WinRate    float64 `json:"win_rate"`
}

// LeaderboardResult response type
type LeaderboardResult struct {
	Entries []LeaderboardEntry `json:"entries"`
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

func (o *Output) printStatsResult(s StatsResult) {
	fmt.Printf("Players: %d/%d (%d slots free)\n", s.PlayerCount, s.MaxPlayers, s.AvailableSlots)
	fmt.Printf("Queue: %d waiting\n", s.QueueLength)
	fmt.Printf("Rooms: %d\n", s.RoomCount)
}

func (o *Output) printRoomList(r RoomListResult) {
	if len(r.Rooms) == 0 {
		fmt.Println("No open rooms")
		return
	}

	fmt.Printf("Open Rooms (%d):\n", len(r.Rooms))
	for _, room := range r.Rooms {
		fmt.Printf("  %s - %s (%s / %s)\n",
			room.RoomID, room.HostName, room.HostLoadout.Character, room.HostLoadout.Weapon)
	}
}

func (o *Output) printLeaderboard(l LeaderboardResult) {
	if len(l.Entries) == 0 {
		fmt.Println("Leaderboard is empty")
		return
	}

	fmt.Printf("%-4s %-20s %6s %8s %8s\n", "#", "Name", "Wins", "Losses", "Rate")
	for i, e := range l.Entries {
		fmt.Printf("%-4d %-20s %6d %8d %7.2f%%\n", i+1, e.Name, e.Wins, e.Losses, e.WinRate)
	}
}
