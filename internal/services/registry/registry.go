package registry

import (
	"log/slog"

	"github.com/mcoot/quickdrawgame-go/internal/dependencies/clock"
	"github.com/mcoot/quickdrawgame-go/internal/model"
)

// Registry tracks connected players and enforces the global population
// cap. It has no side effects beyond its own state; callers are
// responsible for queue and room cleanup on unregister.
//
// Registry is not internally synchronized; the core serializes access.
type Registry struct {
	maxPlayers int
	players    map[model.PlayerID]*model.Player
	clock      clock.Clock
	logger     *slog.Logger
}

// New creates a new Registry with the given population cap
func New(maxPlayers int, clk clock.Clock, logger *slog.Logger) *Registry {
	return &Registry{
		maxPlayers: maxPlayers,
		players:    make(map[model.PlayerID]*model.Player),
		clock:      clk,
		logger:     logger.With(slog.String("component", "registry")),
	}
}

// Register adds a new player, failing when the server is at capacity
func (r *Registry) Register(id model.PlayerID, name string, loadout model.Loadout) (*model.Player, error) {
	if len(r.players) >= r.maxPlayers {
		return nil, model.ErrServerFull
	}

	player := &model.Player{
		ID:          id,
		DisplayName: name,
		Loadout:     loadout,
		InGame:      false,
		RoomID:      nil,
		ConnectedAt: r.clock.Now(),
	}
	r.players[id] = player

	r.logger.Info("player registered",
		slog.String("player_id", string(id)),
		slog.String("name", name),
		slog.Int("player_count", len(r.players)))

	return player, nil
}

// Unregister removes a player. Idempotent; unknown ids are a no-op.
func (r *Registry) Unregister(id model.PlayerID) {
	if _, ok := r.players[id]; !ok {
		return
	}
	delete(r.players, id)
	r.logger.Info("player unregistered",
		slog.String("player_id", string(id)),
		slog.Int("player_count", len(r.players)))
}

// Lookup returns the player with the given id, or nil if not registered
func (r *Registry) Lookup(id model.PlayerID) *model.Player {
	return r.players[id]
}

// Count returns the number of registered players
func (r *Registry) Count() int {
	return len(r.players)
}

// AvailableSlots returns how many more players can register
func (r *Registry) AvailableSlots() int {
	return r.maxPlayers - len(r.players)
}

// MaxPlayers returns the global population cap
func (r *Registry) MaxPlayers() int {
	return r.maxPlayers
}
