package handler

import (
	"net/http"

	"github.com/mcoot/quickdrawgame-go/internal/api/response"
	"github.com/mcoot/quickdrawgame-go/internal/core"
)

// RoomsHandler handles the public room listing endpoint
type RoomsHandler struct {
	core *core.Core
}

// NewRoomsHandler creates a new rooms handler
func NewRoomsHandler(c *core.Core) *RoomsHandler {
	return &RoomsHandler{core: c}
}

// List handles GET /api/v1/rooms
func (h *RoomsHandler) List(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.NewRoomList(h.core.PublicRooms()))
}
