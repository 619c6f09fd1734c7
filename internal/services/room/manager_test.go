package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/quickdrawgame-go/internal/dependencies/mocks"
	"github.com/mcoot/quickdrawgame-go/internal/model"
	"github.com/mcoot/quickdrawgame-go/internal/services/leaderboard"
	"github.com/mcoot/quickdrawgame-go/internal/services/registry"
	"github.com/mcoot/quickdrawgame-go/internal/testutil"
)

const testTimeout = 5 * time.Minute

type ManagerSuite struct {
	suite.Suite
	registry    *registry.Registry
	leaderboard *leaderboard.Service
	broadcaster *mocks.MockBroadcaster
	clock       *mocks.MockClock
	random      *mocks.MockRandom
	manager     *Manager
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	logger := testutil.NopLogger()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.broadcaster = mocks.NewMockBroadcaster()
	s.registry = registry.New(100, s.clock, logger)
	s.leaderboard = leaderboard.New(logger)
	s.manager = New(s.registry, s.leaderboard, s.broadcaster, s.clock, s.random, testTimeout, nil, logger)
}

func (s *ManagerSuite) registerPlayer(id, name string) *model.Player {
	player, err := s.registry.Register(model.PlayerID(id), name, model.Loadout{Character: "cowboy", Weapon: "revolver"})
	s.Require().NoError(err)
	return player
}

func (s *ManagerSuite) hostRoom(roomID string, host *model.Player) *model.Room {
	s.random.QueueString(roomID)
	return s.manager.CreateHosted(host, host.Loadout, 10)
}

// Hosted rooms

func (s *ManagerSuite) TestCreateHostedSeatsHost() {
	host := s.registerPlayer("p1", "Doc")
	room := s.hostRoom("ROOM01", host)

	s.Equal(model.RoomID("ROOM01"), room.ID)
	s.Equal(model.RoomStateWaiting, room.State)
	s.Equal(host.ID, room.Slot1.PlayerID)
	s.Nil(room.Slot2)
	s.True(host.InGame)
	s.Require().NotNil(host.RoomID)
	s.Equal(room.ID, *host.RoomID)
}

func (s *ManagerSuite) TestCreateHostedNotifiesHostAndListing() {
	host := s.registerPlayer("p1", "Doc")
	s.hostRoom("ROOM01", host)

	created := s.broadcaster.LastOfType(model.EventRoomCreated)
	s.Require().NotNil(created)
	s.Equal(host.ID, created.To)

	listing := s.broadcaster.LastOfType(model.EventRoomListUpdated)
	s.Require().NotNil(listing)
	s.True(listing.All)
	payload := listing.Event.Payload.(model.RoomListPayload)
	s.Require().Len(payload.Rooms, 1)
	s.Equal(model.RoomID("ROOM01"), payload.Rooms[0].ID)
}

func (s *ManagerSuite) TestCreateHostedSchedulesReclamation() {
	host := s.registerPlayer("p1", "Doc")
	s.hostRoom("ROOM01", host)

	s.Equal(1, s.clock.PendingTimers())
}

func (s *ManagerSuite) TestRoomIDCollisionRetries() {
	host1 := s.registerPlayer("p1", "Doc")
	s.hostRoom("ROOM01", host1)

	host2 := s.registerPlayer("p2", "Wyatt")
	s.random.QueueString("ROOM01", "ROOM02")
	room := s.manager.CreateHosted(host2, host2.Loadout, 10)

	s.Equal(model.RoomID("ROOM02"), room.ID)
	s.Equal(2, s.manager.Count())
}

// Matched rooms

func (s *ManagerSuite) TestCreateMatchedSeatsBothPlayers() {
	p1 := s.registerPlayer("p1", "Doc")
	p2 := s.registerPlayer("p2", "Wyatt")
	s.random.QueueString("ROOM01")

	room := s.manager.CreateMatched(p1, p2, p1.Loadout, p2.Loadout, 12)

	s.Equal(model.RoomStateReady, room.State)
	s.Equal(p1.ID, room.Slot1.PlayerID)
	s.Require().NotNil(room.Slot2)
	s.Equal(p2.ID, room.Slot2.PlayerID)
	s.True(p1.InGame)
	s.True(p2.InGame)

	matched := s.broadcaster.LastOfType(model.EventMatched)
	s.Require().NotNil(matched)
	s.Equal("room:ROOM01", matched.Group)
	payload := matched.Event.Payload.(model.MatchedPayload)
	s.Equal(p1.ID, payload.Player1.ID)
	s.Equal(p2.ID, payload.Player2.ID)
	s.Equal(12, payload.SpawnDistance)
}

func (s *ManagerSuite) TestMatchedRoomsNeverListed() {
	p1 := s.registerPlayer("p1", "Doc")
	p2 := s.registerPlayer("p2", "Wyatt")
	s.random.QueueString("ROOM01")
	s.manager.CreateMatched(p1, p2, p1.Loadout, p2.Loadout, 10)

	s.Empty(s.manager.ListPublic())
}

// Joining

func (s *ManagerSuite) TestJoinFillsRoom() {
	host := s.registerPlayer("p1", "Doc")
	room := s.hostRoom("ROOM01", host)

	joiner := s.registerPlayer("p2", "Wyatt")
	err := s.manager.Join(room.ID, joiner, joiner.Loadout)
	s.Require().NoError(err)

	s.Equal(model.RoomStateReady, room.State)
	s.Require().NotNil(room.Slot2)
	s.Equal(joiner.ID, room.Slot2.PlayerID)
	s.True(joiner.InGame)

	ready := s.broadcaster.LastOfType(model.EventPlayersReady)
	s.Require().NotNil(ready)
	s.Equal("room:ROOM01", ready.Group)

	// The now-full room disappears from the listing
	s.Empty(s.manager.ListPublic())
}

func (s *ManagerSuite) TestJoinUnknownRoomFails() {
	joiner := s.registerPlayer("p1", "Wyatt")
	err := s.manager.Join("MISSING", joiner, joiner.Loadout)
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *ManagerSuite) TestJoinFullRoomFails() {
	host := s.registerPlayer("p1", "Doc")
	room := s.hostRoom("ROOM01", host)
	joiner := s.registerPlayer("p2", "Wyatt")
	s.Require().NoError(s.manager.Join(room.ID, joiner, joiner.Loadout))

	third := s.registerPlayer("p3", "Billy")
	err := s.manager.Join(room.ID, third, third.Loadout)
	s.ErrorIs(err, model.ErrRoomFull)
	s.False(third.InGame)
}

// Listing

func (s *ManagerSuite) TestListPublicOrdersByCreation() {
	h1 := s.registerPlayer("p1", "Doc")
	s.hostRoom("ROOM01", h1)

	s.clock.Advance(time.Second)
	h2 := s.registerPlayer("p2", "Wyatt")
	s.hostRoom("ROOM02", h2)

	listing := s.manager.ListPublic()
	s.Require().Len(listing, 2)
	s.Equal(model.RoomID("ROOM01"), listing[0].ID)
	s.Equal(model.RoomID("ROOM02"), listing[1].ID)
}

// Starting

func (s *ManagerSuite) TestStartActivatesReadyRoom() {
	host := s.registerPlayer("p1", "Doc")
	room := s.hostRoom("ROOM01", host)
	joiner := s.registerPlayer("p2", "Wyatt")
	s.Require().NoError(s.manager.Join(room.ID, joiner, joiner.Loadout))

	s.manager.Start(room.ID)

	s.Equal(model.RoomStateActive, room.State)
	s.Equal(s.clock.Now(), room.StartedAt)

	started := s.broadcaster.LastOfType(model.EventGameStarted)
	s.Require().NotNil(started)
	payload := started.Event.Payload.(model.GameStartedPayload)
	s.Equal(s.clock.Now(), payload.Timestamp)
}

func (s *ManagerSuite) TestStartWaitingRoomIsNoop() {
	host := s.registerPlayer("p1", "Doc")
	room := s.hostRoom("ROOM01", host)

	s.manager.Start(room.ID)

	s.Equal(model.RoomStateWaiting, room.State)
	s.Nil(s.broadcaster.LastOfType(model.EventGameStarted))
}

func (s *ManagerSuite) TestStartTwiceKeepsOriginalTimestamp() {
	host := s.registerPlayer("p1", "Doc")
	room := s.hostRoom("ROOM01", host)
	joiner := s.registerPlayer("p2", "Wyatt")
	s.Require().NoError(s.manager.Join(room.ID, joiner, joiner.Loadout))

	s.manager.Start(room.ID)
	started := room.StartedAt

	s.clock.Advance(time.Second)
	s.manager.Start(room.ID)

	s.Equal(started, room.StartedAt)
	s.Len(s.broadcaster.EventsOfType(model.EventGameStarted), 1)
}

// Relaying

func (s *ManagerSuite) TestRelayActionReachesWholeRoom() {
	host := s.registerPlayer("p1", "Doc")
	room := s.hostRoom("ROOM01", host)
	joiner := s.registerPlayer("p2", "Wyatt")
	s.Require().NoError(s.manager.Join(room.ID, joiner, joiner.Loadout))

	s.manager.RelayAction(room.ID, host.ID, "draw", map[string]any{"angle": 45})

	update := s.broadcaster.LastOfType(model.EventUpdateGame)
	s.Require().NotNil(update)
	s.Equal("room:ROOM01", update.Group)
	payload := update.Event.Payload.(model.UpdateGamePayload)
	s.Equal(host.ID, payload.PlayerID)
	s.Equal("draw", payload.Action)
}

func (s *ManagerSuite) TestRelayActionUnknownRoomIsNoop() {
	s.manager.RelayAction("MISSING", "p1", "draw", nil)
	s.Nil(s.broadcaster.LastOfType(model.EventUpdateGame))
}

// Settlement

func (s *ManagerSuite) TestSettleRecordsOutcomeAndTearsDown() {
	host := s.registerPlayer("p1", "Doc")
	room := s.hostRoom("ROOM01", host)
	joiner := s.registerPlayer("p2", "Wyatt")
	s.Require().NoError(s.manager.Join(room.ID, joiner, joiner.Loadout))
	s.manager.Start(room.ID)

	err := s.manager.Settle(room.ID, host.ID)
	s.Require().NoError(err)

	s.Equal(1, host.Wins)
	s.Equal(0, host.Losses)
	s.Equal(1, joiner.Losses)
	s.Equal(1, s.leaderboard.Get(host.ID).Wins)
	s.Equal(1, s.leaderboard.Get(joiner.ID).Losses)

	ended := s.broadcaster.LastOfType(model.EventGameEnded)
	s.Require().NotNil(ended)
	s.Equal(host.ID, ended.Event.Payload.(model.GameEndedPayload).WinnerID)

	update := s.broadcaster.LastOfType(model.EventLeaderboardUpdate)
	s.Require().NotNil(update)
	s.True(update.All)

	// Settlement reclaims the room and frees both players
	s.Nil(s.manager.Get(room.ID))
	s.False(host.InGame)
	s.False(joiner.InGame)
	s.Equal(0, s.clock.PendingTimers())
}

func (s *ManagerSuite) TestSettleUnknownWinnerFavorsSlot2() {
	host := s.registerPlayer("p1", "Doc")
	room := s.hostRoom("ROOM01", host)
	joiner := s.registerPlayer("p2", "Wyatt")
	s.Require().NoError(s.manager.Join(room.ID, joiner, joiner.Loadout))

	// A winner id matching neither slot counts against slot1
	err := s.manager.Settle(room.ID, "nobody")
	s.Require().NoError(err)
	s.Equal(1, host.Losses)
	s.Equal(1, joiner.Wins)
}

func (s *ManagerSuite) TestSettleHalfFilledRoomFails() {
	host := s.registerPlayer("p1", "Doc")
	room := s.hostRoom("ROOM01", host)

	err := s.manager.Settle(room.ID, host.ID)
	s.ErrorIs(err, model.ErrRoomNotFound)
	s.NotNil(s.manager.Get(room.ID))
}

// Disconnects

func (s *ManagerSuite) TestDisconnectOccupantTearsDownRoom() {
	host := s.registerPlayer("p1", "Doc")
	room := s.hostRoom("ROOM01", host)
	joiner := s.registerPlayer("p2", "Wyatt")
	s.Require().NoError(s.manager.Join(room.ID, joiner, joiner.Loadout))

	s.manager.DisconnectOccupant(room.ID, joiner.ID, joiner.DisplayName)

	gone := s.broadcaster.LastOfType(model.EventPlayerDisconnected)
	s.Require().NotNil(gone)
	s.Equal(joiner.ID, gone.Event.Payload.(model.PlayerDisconnectedPayload).PlayerID)

	s.Nil(s.manager.Get(room.ID))
	s.False(host.InGame)
	s.Nil(host.RoomID)
}

func (s *ManagerSuite) TestDisconnectNonOccupantIsNoop() {
	host := s.registerPlayer("p1", "Doc")
	room := s.hostRoom("ROOM01", host)

	s.manager.DisconnectOccupant(room.ID, "stranger", "Stranger")

	s.NotNil(s.manager.Get(room.ID))
	s.Nil(s.broadcaster.LastOfType(model.EventPlayerDisconnected))
}

// Reclamation

func (s *ManagerSuite) TestTimeoutReclaimsWaitingRoom() {
	host := s.registerPlayer("p1", "Doc")
	room := s.hostRoom("ROOM01", host)

	s.clock.Advance(testTimeout)

	timeout := s.broadcaster.LastOfType(model.EventRoomTimeout)
	s.Require().NotNil(timeout)
	s.Equal("room:ROOM01", timeout.Group)

	s.Nil(s.manager.Get(room.ID))
	s.False(host.InGame)
}

func (s *ManagerSuite) TestTimeoutReclaimsReadyRoom() {
	host := s.registerPlayer("p1", "Doc")
	room := s.hostRoom("ROOM01", host)
	joiner := s.registerPlayer("p2", "Wyatt")
	s.Require().NoError(s.manager.Join(room.ID, joiner, joiner.Loadout))

	s.clock.Advance(testTimeout)

	s.Nil(s.manager.Get(room.ID))
	s.False(host.InGame)
	s.False(joiner.InGame)
}

func (s *ManagerSuite) TestTimeoutSparesActiveRoom() {
	host := s.registerPlayer("p1", "Doc")
	room := s.hostRoom("ROOM01", host)
	joiner := s.registerPlayer("p2", "Wyatt")
	s.Require().NoError(s.manager.Join(room.ID, joiner, joiner.Loadout))
	s.manager.Start(room.ID)

	s.clock.Advance(testTimeout)

	s.NotNil(s.manager.Get(room.ID))
	s.Equal(model.RoomStateActive, room.State)
	s.Nil(s.broadcaster.LastOfType(model.EventRoomTimeout))
}

func (s *ManagerSuite) TestTimeoutAfterTeardownIsNoop() {
	host := s.registerPlayer("p1", "Doc")
	room := s.hostRoom("ROOM01", host)

	s.manager.Teardown(room.ID)
	s.broadcaster.Reset()

	// The timer was cancelled; advancing fires nothing
	s.clock.Advance(testTimeout)
	s.Nil(s.broadcaster.LastOfType(model.EventRoomTimeout))
}

func (s *ManagerSuite) TestReclaimFireTimeRevalidation() {
	host := s.registerPlayer("p1", "Doc")
	room := s.hostRoom("ROOM01", host)

	// Simulate a firing that lost the race with teardown: the room is
	// gone by the time the callback runs
	delete(s.manager.rooms, room.ID)
	s.broadcaster.Reset()

	s.manager.ReclaimOnTimeout(room.ID)

	s.Nil(s.broadcaster.LastOfType(model.EventRoomTimeout))
	s.Empty(s.manager.timers)
}

// Teardown

func (s *ManagerSuite) TestTeardownIsIdempotent() {
	host := s.registerPlayer("p1", "Doc")
	room := s.hostRoom("ROOM01", host)

	s.manager.Teardown(room.ID)
	s.manager.Teardown(room.ID)

	s.Nil(s.manager.Get(room.ID))
	s.Equal(0, s.manager.Count())
}

func (s *ManagerSuite) TestTeardownDropsBroadcastGroup() {
	host := s.registerPlayer("p1", "Doc")
	room := s.hostRoom("ROOM01", host)
	s.Contains(s.broadcaster.Groups, "room:ROOM01")

	s.manager.Teardown(room.ID)

	s.NotContains(s.broadcaster.Groups, "room:ROOM01")
}
