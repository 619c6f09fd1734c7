package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/quickdrawgame-go/internal/broadcast"
	"github.com/mcoot/quickdrawgame-go/internal/core"
	"github.com/mcoot/quickdrawgame-go/internal/dependencies/clock"
	"github.com/mcoot/quickdrawgame-go/internal/dependencies/random"
	"github.com/mcoot/quickdrawgame-go/internal/services/leaderboard"
	"github.com/mcoot/quickdrawgame-go/internal/services/matchmaking"
	"github.com/mcoot/quickdrawgame-go/internal/services/registry"
	"github.com/mcoot/quickdrawgame-go/internal/ws"
)

// Defaults applied when Config fields are left zero
const (
	DefaultMaxPlayers  = 100
	DefaultRoomTimeout = 5 * time.Minute
)

// App contains all wired application components
type App struct {
	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Transport
	Hub *ws.Hub

	// Services
	Registry    *registry.Registry
	Queue       *matchmaking.Queue
	Leaderboard *leaderboard.Service
	Core        *core.Core
}

// Config holds configuration for the application factory
type Config struct {
	// MaxPlayers is the global population cap
	// If zero, defaults to DefaultMaxPlayers
	MaxPlayers int
	// RoomTimeout is the room reclamation window
	// If zero, defaults to DefaultRoomTimeout
	RoomTimeout time.Duration
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired. The
// websocket hub doubles as the broadcaster.
func New(cfg Config) *App {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	if cfg.MaxPlayers == 0 {
		cfg.MaxPlayers = DefaultMaxPlayers
	}
	if cfg.RoomTimeout == 0 {
		cfg.RoomTimeout = DefaultRoomTimeout
	}

	clk := clock.New()
	rnd := random.New()
	hub := ws.NewHub(logger)

	app := newWithDependencies(cfg, hub, clk, rnd, logger)
	app.Hub = hub
	return app
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(cfg Config, bc broadcast.Broadcaster, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	reg := registry.New(cfg.MaxPlayers, clk, logger)
	queue := matchmaking.New(clk, logger)
	lb := leaderboard.New(logger)
	c := core.New(reg, queue, lb, bc, clk, rnd, cfg.RoomTimeout, logger)

	return &App{
		Clock:       clk,
		Random:      rnd,
		Registry:    reg,
		Queue:       queue,
		Leaderboard: lb,
		Core:        c,
	}
}
