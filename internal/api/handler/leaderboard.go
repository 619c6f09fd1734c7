package handler

import (
	"net/http"
	"strconv"

	"github.com/mcoot/quickdrawgame-go/internal/api/response"
	"github.com/mcoot/quickdrawgame-go/internal/core"
)

// DefaultLeaderboardSize is how many entries the leaderboard endpoint
// returns when no count is requested
const DefaultLeaderboardSize = 10

// LeaderboardHandler handles the leaderboard endpoint
type LeaderboardHandler struct {
	core *core.Core
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(c *core.Core) *LeaderboardHandler {
	return &LeaderboardHandler{core: c}
}

// Get handles GET /api/v1/leaderboard?n=
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	n := DefaultLeaderboardSize
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			WriteError(w, NewInvalidRequestError("n must be a positive integer"))
			return
		}
		n = parsed
	}

	response.JSON(w, http.StatusOK, response.NewLeaderboard(h.core.TopEntries(n)))
}
