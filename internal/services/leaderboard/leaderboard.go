package leaderboard

import (
	"log/slog"
	"sort"

	"github.com/mcoot/quickdrawgame-go/internal/model"
)

// Service maintains per-player win/loss records for the lifetime of the
// process. Entries outlive their player's connection and are never
// deleted.
//
// Service is not internally synchronized; the core serializes access.
type Service struct {
	entries map[model.PlayerID]*model.LeaderboardEntry
	order   []model.PlayerID // insertion order, used as the stable tie-break
	logger  *slog.Logger
}

// New creates a new leaderboard Service
func New(logger *slog.Logger) *Service {
	return &Service{
		entries: make(map[model.PlayerID]*model.LeaderboardEntry),
		logger:  logger.With(slog.String("component", "leaderboard")),
	}
}

// Seed ensures an entry exists for the player, creating it with zero
// counters if absent. The display name is refreshed either way.
func (s *Service) Seed(id model.PlayerID, name string) {
	if entry, ok := s.entries[id]; ok {
		entry.Name = name
		return
	}
	entry := &model.LeaderboardEntry{PlayerID: id, Name: name}
	entry.Recompute()
	s.entries[id] = entry
	s.order = append(s.order, id)
}

// RecordOutcome increments the player's win or loss counter, creating
// the entry if absent, and recomputes the derived fields
func (s *Service) RecordOutcome(id model.PlayerID, name string, won bool) {
	s.Seed(id, name)
	entry := s.entries[id]
	if won {
		entry.Wins++
	} else {
		entry.Losses++
	}
	entry.Recompute()

	s.logger.Info("outcome recorded",
		slog.String("player_id", string(id)),
		slog.Bool("won", won),
		slog.Int("wins", entry.Wins),
		slog.Int("losses", entry.Losses))
}

// Top returns up to n entries ranked by wins descending, then win rate
// descending. The win rate comparison is computed from the counters
// rather than the stored field so a stale value can never reorder the
// ranking. Equal ranks keep insertion order.
func (s *Service) Top(n int) []model.LeaderboardEntry {
	ranked := make([]model.LeaderboardEntry, 0, len(s.order))
	for _, id := range s.order {
		ranked = append(ranked, *s.entries[id])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Wins != ranked[j].Wins {
			return ranked[i].Wins > ranked[j].Wins
		}
		return winRate(&ranked[i]) > winRate(&ranked[j])
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Get returns a copy of the player's entry, or nil if absent
func (s *Service) Get(id model.PlayerID) *model.LeaderboardEntry {
	entry, ok := s.entries[id]
	if !ok {
		return nil
	}
	copied := *entry
	return &copied
}

// Size returns the number of entries
func (s *Service) Size() int {
	return len(s.entries)
}

func winRate(e *model.LeaderboardEntry) float64 {
	total := e.Wins + e.Losses
	if total == 0 {
		return 0
	}
	return float64(e.Wins) / float64(total)
}
