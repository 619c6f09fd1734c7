package handler

import (
	"net/http"

	"github.com/mcoot/quickdrawgame-go/internal/api/response"
	"github.com/mcoot/quickdrawgame-go/internal/core"
)

// StatusHandler handles the health and stats endpoints
type StatusHandler struct {
	core *core.Core
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(c *core.Core) *StatusHandler {
	return &StatusHandler{core: c}
}

// Health handles GET /api/v1/health
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}

// Stats handles GET /api/v1/stats
func (h *StatusHandler) Stats(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.StatsFromCore(h.core.Snapshot()))
}
