package model

import "math"

// LeaderboardEntry is a process-lifetime record of one player's outcomes.
// Unlike Player it survives disconnection; it is never deleted.
type LeaderboardEntry struct {
	PlayerID   PlayerID `json:"player_id"`
	Name       string   `json:"name"`
	Wins       int      `json:"wins"`
	Losses     int      `json:"losses"`
	TotalGames int      `json:"total_games"`
	WinRate    float64  `json:"win_rate"` // percentage, two-decimal precision
}

// Recompute refreshes the derived fields after a mutation.
// Invariant: TotalGames == Wins + Losses; WinRate is 0 for no games.
func (e *LeaderboardEntry) Recompute() {
	e.TotalGames = e.Wins + e.Losses
	if e.TotalGames == 0 {
		e.WinRate = 0
		return
	}
	rate := float64(e.Wins) / float64(e.TotalGames) * 100
	e.WinRate = math.Round(rate*100) / 100
}
