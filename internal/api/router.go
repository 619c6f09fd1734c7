package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/quickdrawgame-go/internal/api/handler"
	"github.com/mcoot/quickdrawgame-go/internal/api/middleware"
	"github.com/mcoot/quickdrawgame-go/internal/core"
	"github.com/mcoot/quickdrawgame-go/internal/ws"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger *slog.Logger
	Core   *core.Core
	Hub    *ws.Hub
}

// NewRouter creates a new router with all routes configured. The game
// protocol runs over /ws; the /api/v1 routes are a read-only view for
// dashboards and the CLI.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	statusHandler := handler.NewStatusHandler(cfg.Core)
	roomsHandler := handler.NewRoomsHandler(cfg.Core)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.Core)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/health", statusHandler.Health).Methods(http.MethodGet)
	api.HandleFunc("/stats", statusHandler.Stats).Methods(http.MethodGet)
	api.HandleFunc("/rooms", roomsHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", leaderboardHandler.Get).Methods(http.MethodGet)

	// The websocket endpoint skips the logging middleware; connections
	// are long-lived and logged by the hub instead
	r.Handle("/ws", recoveryMiddleware(ws.Handler(cfg.Hub, cfg.Core, cfg.Logger)))

	return r
}
