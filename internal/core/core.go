package core

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/quickdrawgame-go/internal/broadcast"
	"github.com/mcoot/quickdrawgame-go/internal/dependencies/clock"
	"github.com/mcoot/quickdrawgame-go/internal/dependencies/random"
	"github.com/mcoot/quickdrawgame-go/internal/model"
	"github.com/mcoot/quickdrawgame-go/internal/services/leaderboard"
	"github.com/mcoot/quickdrawgame-go/internal/services/matchmaking"
	"github.com/mcoot/quickdrawgame-go/internal/services/registry"
	"github.com/mcoot/quickdrawgame-go/internal/services/room"
)

// DefaultSpawnDistance is the paces between duelists when a request
// doesn't ask for a distance
const DefaultSpawnDistance = 10

// Core owns the four shared registries and serializes every mutation
// against them: connection events, HTTP reads, and timer firings all
// take the same mutex, so no partial interleaving is possible.
type Core struct {
	mu sync.Mutex

	registry    *registry.Registry
	queue       *matchmaking.Queue
	leaderboard *leaderboard.Service
	rooms       *room.Manager
	broadcaster broadcast.Broadcaster
	logger      *slog.Logger
}

// New creates a Core and wires the room manager's reclamation timers
// back through the Core's serialization
func New(
	reg *registry.Registry,
	queue *matchmaking.Queue,
	lb *leaderboard.Service,
	bc broadcast.Broadcaster,
	clk clock.Clock,
	rnd random.Random,
	roomTimeout time.Duration,
	logger *slog.Logger,
) *Core {
	c := &Core{
		registry:    reg,
		queue:       queue,
		leaderboard: lb,
		broadcaster: bc,
		logger:      logger.With(slog.String("component", "core")),
	}
	c.rooms = room.New(reg, lb, bc, clk, rnd, roomTimeout, c.roomTimedOut, logger)
	return c
}

// Register admits a new connection, failing when the server is full.
// Capacity rejections are reported to the connection and then force a
// disconnect.
func (c *Core) Register(id model.PlayerID, req model.RegisterPayload) {
	c.mu.Lock()
	defer c.mu.Unlock()

	loadout := model.Loadout{Character: req.Character, Weapon: req.Weapon}
	player, err := c.registry.Register(id, req.Name, loadout)
	if err != nil {
		c.sendError(id, err)
		c.broadcaster.Close(id)
		return
	}

	c.leaderboard.Seed(id, player.DisplayName)

	c.broadcaster.Send(id, model.NewEvent(model.EventRegistered, model.RegisteredPayload{
		PlayerID:       id,
		PlayerCount:    c.registry.Count(),
		MaxPlayers:     c.registry.MaxPlayers(),
		AvailableSlots: c.registry.AvailableSlots(),
	}))
	c.broadcastServerStats()
}

// QuickPlay queues the player for automatic matching and drains any
// pairs the new entry completes. Dequeue and room creation happen under
// the same lock acquisition, so a racing disconnect can never orphan an
// entry.
func (c *Core) QuickPlay(id model.PlayerID, req model.QuickPlayPayload) {
	c.mu.Lock()
	defer c.mu.Unlock()

	player := c.registry.Lookup(id)
	if player == nil {
		return
	}

	loadout := model.Loadout{Character: req.Character, Weapon: req.Weapon}
	position, err := c.queue.Enqueue(player, loadout, spawnOrDefault(req.SpawnDistance))
	if err != nil {
		c.sendError(id, err)
		return
	}

	c.broadcaster.Send(id, model.NewEvent(model.EventQueued, model.QueuedPayload{
		Position: position,
	}))
	c.broadcastQueueStatus()
	c.drainMatches()
}

// CreateRoom creates a hosted room with the player in slot1
func (c *Core) CreateRoom(id model.PlayerID, req model.CreateRoomPayload) {
	c.mu.Lock()
	defer c.mu.Unlock()

	player := c.registry.Lookup(id)
	if player == nil {
		return
	}
	if player.InGame {
		c.sendError(id, model.ErrAlreadyInGame)
		return
	}

	loadout := model.Loadout{Character: req.Character, Weapon: req.Weapon}
	c.rooms.CreateHosted(player, loadout, spawnOrDefault(req.SpawnDistance))
}

// JoinRoom seats the player in slot2 of an existing waiting room
func (c *Core) JoinRoom(id model.PlayerID, req model.JoinRoomPayload) {
	c.mu.Lock()
	defer c.mu.Unlock()

	player := c.registry.Lookup(id)
	if player == nil {
		return
	}
	if player.InGame {
		c.sendError(id, model.ErrAlreadyInGame)
		return
	}

	loadout := model.Loadout{Character: req.Character, Weapon: req.Weapon}
	if err := c.rooms.Join(req.RoomID, player, loadout); err != nil {
		c.sendError(id, err)
	}
}

// ListRooms sends the public room listing to the requesting connection
func (c *Core) ListRooms(id model.PlayerID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.broadcaster.Send(id, model.NewEvent(model.EventRoomsList, model.RoomListPayload{
		Rooms: c.rooms.ListPublic(),
	}))
}

// GetLeaderboard sends the top ranking plus the caller's own entry
func (c *Core) GetLeaderboard(id model.PlayerID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.broadcaster.Send(id, model.NewEvent(model.EventLeaderboardUpdate, model.LeaderboardUpdatePayload{
		Top:      c.leaderboard.Top(room.LeaderboardBroadcastSize),
		OwnStats: c.leaderboard.Get(id),
	}))
}

// StartGame starts the duel in the player's room. A player with no
// room is a silent no-op, tolerating stale client state.
func (c *Core) StartGame(id model.PlayerID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	player := c.registry.Lookup(id)
	if player == nil || player.RoomID == nil {
		return
	}
	c.rooms.Start(*player.RoomID)
}

// GameAction relays a gameplay action to the player's room. A player
// with no room is a silent no-op.
func (c *Core) GameAction(id model.PlayerID, req model.GameActionPayload) {
	c.mu.Lock()
	defer c.mu.Unlock()

	player := c.registry.Lookup(id)
	if player == nil || player.RoomID == nil {
		return
	}
	c.rooms.RelayAction(*player.RoomID, id, req.Action, req.Data)
}

// GameOver settles the duel in the player's room. A player with no
// room is a silent no-op.
func (c *Core) GameOver(id model.PlayerID, req model.GameOverPayload) {
	c.mu.Lock()
	defer c.mu.Unlock()

	player := c.registry.Lookup(id)
	if player == nil || player.RoomID == nil {
		return
	}
	if err := c.rooms.Settle(*player.RoomID, req.WinnerID); err != nil {
		c.logger.Warn("settle failed",
			slog.String("player_id", string(id)),
			slog.Any("error", err))
	}
}

// Disconnect cleans up everything a closed connection owned: its queue
// entry, its room, and its registry record
func (c *Core) Disconnect(id model.PlayerID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	player := c.registry.Lookup(id)
	if player == nil {
		return
	}

	if c.queue.Remove(id) {
		c.broadcastQueueStatus()
	}

	if player.RoomID != nil {
		c.rooms.DisconnectOccupant(*player.RoomID, id, player.DisplayName)
	}

	c.registry.Unregister(id)
	c.broadcastServerStats()
}

// Stats is a point-in-time view of the server population for the HTTP
// surface
type Stats struct {
	PlayerCount    int
	MaxPlayers     int
	AvailableSlots int
	QueueLength    int
	RoomCount      int
}

// Snapshot returns current population statistics
func (c *Core) Snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		PlayerCount:    c.registry.Count(),
		MaxPlayers:     c.registry.MaxPlayers(),
		AvailableSlots: c.registry.AvailableSlots(),
		QueueLength:    c.queue.Size(),
		RoomCount:      c.rooms.Count(),
	}
}

// TopEntries returns the top n leaderboard entries
func (c *Core) TopEntries(n int) []model.LeaderboardEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.leaderboard.Top(n)
}

// PublicRooms returns the public room listing
func (c *Core) PublicRooms() []model.RoomSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rooms.ListPublic()
}

// drainMatches pairs queued players FIFO and creates their rooms.
// Caller must hold the lock.
func (c *Core) drainMatches() {
	pairs := c.queue.DrainPairs()
	for _, pair := range pairs {
		p1 := c.registry.Lookup(pair.First.PlayerID)
		p2 := c.registry.Lookup(pair.Second.PlayerID)
		if p1 == nil || p2 == nil {
			continue
		}
		c.rooms.CreateMatched(p1, p2, pair.First.Loadout, pair.Second.Loadout, pair.First.SpawnDistance)
	}
	if len(pairs) > 0 {
		c.broadcastQueueStatus()
	}
}

// roomTimedOut re-enters the lock for a reclamation timer firing; the
// manager re-validates room state once inside
func (c *Core) roomTimedOut(id model.RoomID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rooms.ReclaimOnTimeout(id)
}

func (c *Core) broadcastServerStats() {
	c.broadcaster.SendAll(model.NewEvent(model.EventServerStats, model.ServerStatsPayload{
		PlayerCount:    c.registry.Count(),
		MaxPlayers:     c.registry.MaxPlayers(),
		AvailableSlots: c.registry.AvailableSlots(),
	}))
}

func (c *Core) broadcastQueueStatus() {
	c.broadcaster.SendAll(model.NewEvent(model.EventQueueStatus, model.QueueStatusPayload{
		QueueLength: c.queue.Size(),
	}))
}

// sendError reports a failure to the originating connection only;
// errors are never broadcast
func (c *Core) sendError(id model.PlayerID, err error) {
	c.broadcaster.Send(id, model.NewEvent(model.EventError, model.ErrorPayload{
		Code:    errorCode(err),
		Message: err.Error(),
	}))
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, model.ErrServerFull):
		return "CAPACITY_EXCEEDED"
	case errors.Is(err, model.ErrAlreadyInGame):
		return "ALREADY_IN_GAME"
	case errors.Is(err, model.ErrAlreadyQueued):
		return "ALREADY_QUEUED"
	case errors.Is(err, model.ErrRoomNotFound):
		return "ROOM_NOT_FOUND"
	case errors.Is(err, model.ErrRoomFull):
		return "ROOM_FULL"
	default:
		return "INTERNAL_ERROR"
	}
}

func spawnOrDefault(spawn int) int {
	if spawn <= 0 {
		return DefaultSpawnDistance
	}
	return spawn
}
