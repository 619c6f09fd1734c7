package room

import (
	"log/slog"
	"sort"
	"time"

	"github.com/mcoot/quickdrawgame-go/internal/broadcast"
	"github.com/mcoot/quickdrawgame-go/internal/dependencies/clock"
	"github.com/mcoot/quickdrawgame-go/internal/dependencies/random"
	"github.com/mcoot/quickdrawgame-go/internal/model"
	"github.com/mcoot/quickdrawgame-go/internal/services/leaderboard"
	"github.com/mcoot/quickdrawgame-go/internal/services/registry"
)

const (
	// RoomIDLength is the length of generated room ids
	RoomIDLength = 6
	// RoomIDAlphabet is the characters used in room ids (avoid confusing chars)
	RoomIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// LeaderboardBroadcastSize is how many entries the global
	// leaderboard_update broadcast carries
	LeaderboardBroadcastSize = 10
)

// Manager owns the room lifecycle: hosted and matched creation, joins,
// the duel itself, settlement, and timeout-based reclamation.
//
// Rooms move Waiting -> Ready -> Active and are deleted on teardown.
// Manager is not internally synchronized; the core serializes access,
// including the reclamation callbacks it routes back in.
type Manager struct {
	rooms  map[model.RoomID]*model.Room
	timers map[model.RoomID]clock.Timer

	reclaimAfter time.Duration
	onReclaim    func(model.RoomID)

	registry    *registry.Registry
	leaderboard *leaderboard.Service
	broadcaster broadcast.Broadcaster
	clock       clock.Clock
	random      random.Random
	logger      *slog.Logger
}

// New creates a room Manager. onReclaim is invoked when a room's
// reclamation timer fires; it must route back into ReclaimOnTimeout
// under the caller's serialization. A nil onReclaim calls
// ReclaimOnTimeout directly (only safe single-threaded, i.e. in tests).
func New(
	reg *registry.Registry,
	lb *leaderboard.Service,
	bc broadcast.Broadcaster,
	clk clock.Clock,
	rnd random.Random,
	reclaimAfter time.Duration,
	onReclaim func(model.RoomID),
	logger *slog.Logger,
) *Manager {
	m := &Manager{
		rooms:        make(map[model.RoomID]*model.Room),
		timers:       make(map[model.RoomID]clock.Timer),
		reclaimAfter: reclaimAfter,
		onReclaim:    onReclaim,
		registry:     reg,
		leaderboard:  lb,
		broadcaster:  bc,
		clock:        clk,
		random:       rnd,
		logger:       logger.With(slog.String("component", "room")),
	}
	if m.onReclaim == nil {
		m.onReclaim = m.ReclaimOnTimeout
	}
	return m
}

// CreateHosted creates a Waiting room with the host in slot1, starts
// its reclamation timer, and publishes the updated room listing
func (m *Manager) CreateHosted(host *model.Player, loadout model.Loadout, spawnDistance int) *model.Room {
	id := m.generateRoomID()
	room := &model.Room{
		ID:    id,
		State: model.RoomStateWaiting,
		Slot1: model.RoomSlot{
			PlayerID: host.ID,
			Name:     host.DisplayName,
			Loadout:  loadout,
		},
		SpawnDistance: spawnDistance,
		CreatedAt:     m.clock.Now(),
	}
	m.rooms[id] = room

	m.seatPlayer(host, room, loadout)
	m.scheduleReclaim(id)

	m.logger.Info("room created",
		slog.String("room_id", string(id)),
		slog.String("host", string(host.ID)))

	m.broadcaster.Send(host.ID, model.NewEvent(model.EventRoomCreated, model.RoomCreatedPayload{
		RoomID: id,
		Room:   room.Summary(),
	}))
	m.broadcastRoomList()
	return room
}

// CreateMatched creates a Ready room with both slots filled atomically
// and notifies both players with full match details. The first player
// (earlier arrival) takes slot1.
func (m *Manager) CreateMatched(p1, p2 *model.Player, loadout1, loadout2 model.Loadout, spawnDistance int) *model.Room {
	id := m.generateRoomID()
	room := &model.Room{
		ID:    id,
		State: model.RoomStateReady,
		Slot1: model.RoomSlot{
			PlayerID: p1.ID,
			Name:     p1.DisplayName,
			Loadout:  loadout1,
		},
		Slot2: &model.RoomSlot{
			PlayerID: p2.ID,
			Name:     p2.DisplayName,
			Loadout:  loadout2,
		},
		SpawnDistance: spawnDistance,
		CreatedAt:     m.clock.Now(),
	}
	m.rooms[id] = room

	m.seatPlayer(p1, room, loadout1)
	m.seatPlayer(p2, room, loadout2)
	m.scheduleReclaim(id)

	m.logger.Info("room matched",
		slog.String("room_id", string(id)),
		slog.String("player1", string(p1.ID)),
		slog.String("player2", string(p2.ID)))

	m.broadcaster.SendGroup(groupFor(id), model.NewEvent(model.EventMatched, model.MatchedPayload{
		RoomID:        id,
		Player1:       model.PlayerInfoFrom(p1),
		Player2:       model.PlayerInfoFrom(p2),
		SpawnDistance: spawnDistance,
	}))
	return room
}

// Join fills slot2 of a Waiting room and notifies both occupants
func (m *Manager) Join(id model.RoomID, player *model.Player, loadout model.Loadout) error {
	room, ok := m.rooms[id]
	if !ok {
		return model.ErrRoomNotFound
	}
	if room.IsFull() {
		return model.ErrRoomFull
	}

	room.Slot2 = &model.RoomSlot{
		PlayerID: player.ID,
		Name:     player.DisplayName,
		Loadout:  loadout,
	}
	room.State = model.RoomStateReady
	m.seatPlayer(player, room, loadout)

	m.logger.Info("room joined",
		slog.String("room_id", string(id)),
		slog.String("player_id", string(player.ID)))

	m.broadcaster.SendGroup(groupFor(id), model.NewEvent(model.EventPlayersReady, model.PlayersReadyPayload{
		RoomID:        id,
		Player1:       m.occupantInfo(room.Slot1),
		Player2:       model.PlayerInfoFrom(player),
		SpawnDistance: room.SpawnDistance,
	}))
	m.broadcastRoomList()
	return nil
}

// ListPublic returns summaries of joinable rooms: Waiting rooms only.
// Full or active rooms are never listed.
func (m *Manager) ListPublic() []model.RoomSummary {
	var waiting []*model.Room
	for _, room := range m.rooms {
		if room.State == model.RoomStateWaiting {
			waiting = append(waiting, room)
		}
	}
	sort.Slice(waiting, func(i, j int) bool {
		if !waiting[i].CreatedAt.Equal(waiting[j].CreatedAt) {
			return waiting[i].CreatedAt.Before(waiting[j].CreatedAt)
		}
		return waiting[i].ID < waiting[j].ID
	})

	summaries := make([]model.RoomSummary, len(waiting))
	for i, room := range waiting {
		summaries[i] = room.Summary()
	}
	return summaries
}

// Start transitions a Ready room to Active and broadcasts the duel
// start with a server timestamp the clients use to synchronize.
// Unknown room ids are ignored silently.
func (m *Manager) Start(id model.RoomID) {
	room, ok := m.rooms[id]
	if !ok || !room.IsFull() || room.State == model.RoomStateActive {
		return
	}

	now := m.clock.Now()
	room.State = model.RoomStateActive
	room.StartedAt = now

	m.logger.Info("game started", slog.String("room_id", string(id)))

	m.broadcaster.SendGroup(groupFor(id), model.NewEvent(model.EventGameStarted, model.GameStartedPayload{
		RoomID:        id,
		Player1:       m.occupantInfo(room.Slot1),
		Player2:       m.occupantInfo(*room.Slot2),
		SpawnDistance: room.SpawnDistance,
		Timestamp:     now,
	}))
}

// RelayAction rebroadcasts a gameplay action verbatim to the whole
// room, sender included. The server does not validate game semantics.
// Unknown room ids are ignored silently.
func (m *Manager) RelayAction(id model.RoomID, from model.PlayerID, action string, data any) {
	if _, ok := m.rooms[id]; !ok {
		return
	}
	m.broadcaster.SendGroup(groupFor(id), model.NewEvent(model.EventUpdateGame, model.UpdateGamePayload{
		PlayerID: from,
		Action:   action,
		Data:     data,
	}))
}

// Settle finalizes a duel's outcome: the occupant matching winnerID
// against slot1 wins, the other loses. Counters are updated on the live
// players and pushed into the leaderboard, the room is told the result,
// the top ranking is broadcast globally, and the room is torn down.
func (m *Manager) Settle(id model.RoomID, winnerID model.PlayerID) error {
	room, ok := m.rooms[id]
	if !ok || !room.IsFull() {
		return model.ErrRoomNotFound
	}

	winnerSlot, loserSlot := room.Slot1, *room.Slot2
	if winnerID != room.Slot1.PlayerID {
		winnerSlot, loserSlot = *room.Slot2, room.Slot1
	}

	if winner := m.registry.Lookup(winnerSlot.PlayerID); winner != nil {
		winner.Wins++
	}
	if loser := m.registry.Lookup(loserSlot.PlayerID); loser != nil {
		loser.Losses++
	}
	m.leaderboard.RecordOutcome(winnerSlot.PlayerID, winnerSlot.Name, true)
	m.leaderboard.RecordOutcome(loserSlot.PlayerID, loserSlot.Name, false)

	m.logger.Info("game settled",
		slog.String("room_id", string(id)),
		slog.String("winner", string(winnerSlot.PlayerID)),
		slog.String("loser", string(loserSlot.PlayerID)))

	m.broadcaster.SendGroup(groupFor(id), model.NewEvent(model.EventGameEnded, model.GameEndedPayload{
		WinnerID:     winnerSlot.PlayerID,
		Player1Stats: m.occupantInfo(room.Slot1),
		Player2Stats: m.occupantInfo(*room.Slot2),
	}))
	m.broadcastLeaderboard()

	// Settled rooms are reclaimed immediately so nobody is left with a
	// stale inGame flag.
	m.Teardown(id)
	return nil
}

// DisconnectOccupant tells the room an occupant's connection closed,
// then tears the room down. Unknown rooms and non-occupants are no-ops.
func (m *Manager) DisconnectOccupant(id model.RoomID, playerID model.PlayerID, name string) {
	room, ok := m.rooms[id]
	if !ok || !room.HasOccupant(playerID) {
		return
	}

	m.logger.Info("occupant disconnected",
		slog.String("room_id", string(id)),
		slog.String("player_id", string(playerID)))

	m.broadcaster.SendGroup(groupFor(id), model.NewEvent(model.EventPlayerDisconnected, model.PlayerDisconnectedPayload{
		PlayerID: playerID,
		Message:  name + " disconnected",
	}))
	m.Teardown(id)
}

// ReclaimOnTimeout handles a room's reclamation deadline. Existence and
// state are checked now, at fire time: a room that was torn down or
// reached Active keeps running and the firing is a no-op.
func (m *Manager) ReclaimOnTimeout(id model.RoomID) {
	room, ok := m.rooms[id]
	if !ok || room.State == model.RoomStateActive {
		delete(m.timers, id)
		return
	}

	m.logger.Info("room timed out", slog.String("room_id", string(id)))

	m.broadcaster.SendGroup(groupFor(id), model.NewEvent(model.EventRoomTimeout, model.RoomTimeoutPayload{
		RoomID:  id,
		Message: "room timed out waiting for the duel to start",
	}))
	m.Teardown(id)
}

// Teardown cancels the room's reclamation timer, releases its
// occupants, removes the room, and re-publishes the room listing.
// Idempotent: tearing down an absent id still re-publishes the listing.
func (m *Manager) Teardown(id model.RoomID) {
	if timer, ok := m.timers[id]; ok {
		timer.Stop()
		delete(m.timers, id)
	}

	if room, ok := m.rooms[id]; ok {
		for _, occupant := range room.Occupants() {
			if p := m.registry.Lookup(occupant); p != nil {
				p.InGame = false
				p.RoomID = nil
			}
		}
		m.broadcaster.DropGroup(groupFor(id))
		delete(m.rooms, id)
		m.logger.Info("room torn down", slog.String("room_id", string(id)))
	}

	m.broadcastRoomList()
}

// Get returns the room with the given id, or nil if absent
func (m *Manager) Get(id model.RoomID) *model.Room {
	return m.rooms[id]
}

// Count returns the number of live rooms
func (m *Manager) Count() int {
	return len(m.rooms)
}

func (m *Manager) seatPlayer(p *model.Player, room *model.Room, loadout model.Loadout) {
	rid := room.ID
	p.InGame = true
	p.RoomID = &rid
	p.Loadout = loadout
	m.broadcaster.AddToGroup(p.ID, groupFor(room.ID))
}

func (m *Manager) scheduleReclaim(id model.RoomID) {
	m.timers[id] = m.clock.AfterFunc(m.reclaimAfter, func() {
		m.onReclaim(id)
	})
}

func (m *Manager) generateRoomID() model.RoomID {
	for {
		id := model.RoomID(m.random.String(RoomIDLength, RoomIDAlphabet))
		if _, exists := m.rooms[id]; !exists {
			return id
		}
	}
}

func (m *Manager) broadcastRoomList() {
	m.broadcaster.SendAll(model.NewEvent(model.EventRoomListUpdated, model.RoomListPayload{
		Rooms: m.ListPublic(),
	}))
}

func (m *Manager) broadcastLeaderboard() {
	m.broadcaster.SendAll(model.NewEvent(model.EventLeaderboardUpdate, model.LeaderboardUpdatePayload{
		Top: m.leaderboard.Top(LeaderboardBroadcastSize),
	}))
}

// occupantInfo builds the wire form of a seated player, preferring the
// live player record for up-to-date counters and falling back to the
// leaderboard when they have disconnected
func (m *Manager) occupantInfo(slot model.RoomSlot) model.PlayerInfo {
	if p := m.registry.Lookup(slot.PlayerID); p != nil {
		info := model.PlayerInfoFrom(p)
		info.Loadout = slot.Loadout
		return info
	}
	info := model.PlayerInfo{ID: slot.PlayerID, Name: slot.Name, Loadout: slot.Loadout}
	if entry := m.leaderboard.Get(slot.PlayerID); entry != nil {
		info.Wins = entry.Wins
		info.Losses = entry.Losses
	}
	return info
}

func groupFor(id model.RoomID) string {
	return "room:" + string(id)
}
