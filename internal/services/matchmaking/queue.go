package matchmaking

import (
	"log/slog"

	"github.com/mcoot/quickdrawgame-go/internal/dependencies/clock"
	"github.com/mcoot/quickdrawgame-go/internal/model"
)

// Pair is two queue entries matched against each other, in arrival order
type Pair struct {
	First  *model.QueueEntry
	Second *model.QueueEntry
}

// Queue holds players awaiting an automatic opponent and pairs them in
// strict arrival order. No skill or latency weighting, no randomization.
//
// Queue is not internally synchronized; the core serializes access.
type Queue struct {
	entries []*model.QueueEntry
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new matchmaking Queue
func New(clk clock.Clock, logger *slog.Logger) *Queue {
	return &Queue{
		clock:  clk,
		logger: logger.With(slog.String("component", "matchmaking")),
	}
}

// Enqueue appends a player to the back of the queue and returns their
// 1-based position. Players already in a game or already queued are
// rejected.
func (q *Queue) Enqueue(player *model.Player, loadout model.Loadout, spawnDistance int) (int, error) {
	if player.InGame {
		return 0, model.ErrAlreadyInGame
	}
	if q.contains(player.ID) {
		return 0, model.ErrAlreadyQueued
	}

	q.entries = append(q.entries, &model.QueueEntry{
		PlayerID:      player.ID,
		Name:          player.DisplayName,
		Loadout:       loadout,
		SpawnDistance: spawnDistance,
		EnqueuedAt:    q.clock.Now(),
	})

	position := len(q.entries)
	q.logger.Info("player queued",
		slog.String("player_id", string(player.ID)),
		slog.Int("position", position))
	return position, nil
}

// Remove deletes the entry for the given player if present.
// Idempotent; reports whether an entry was removed.
func (q *Queue) Remove(id model.PlayerID) bool {
	for i, e := range q.entries {
		if e.PlayerID == id {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			q.logger.Info("player dequeued", slog.String("player_id", string(id)))
			return true
		}
	}
	return false
}

// DrainPairs repeatedly removes the two entries at the front of the
// queue and yields them as a pair, until fewer than two remain. This is
// the only pairing rule: pure FIFO.
func (q *Queue) DrainPairs() []Pair {
	var pairs []Pair
	for len(q.entries) >= 2 {
		pairs = append(pairs, Pair{First: q.entries[0], Second: q.entries[1]})
		q.entries = q.entries[2:]
	}
	return pairs
}

// Size returns the number of waiting entries
func (q *Queue) Size() int {
	return len(q.entries)
}

func (q *Queue) contains(id model.PlayerID) bool {
	for _, e := range q.entries {
		if e.PlayerID == id {
			return true
		}
	}
	return false
}
