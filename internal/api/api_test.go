package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/quickdrawgame-go/internal/api"
	"github.com/mcoot/quickdrawgame-go/internal/api/response"
	"github.com/mcoot/quickdrawgame-go/internal/factory"
	"github.com/mcoot/quickdrawgame-go/internal/model"
	"github.com/mcoot/quickdrawgame-go/internal/testutil"
	"github.com/mcoot/quickdrawgame-go/internal/ws"
)

// testServer wires the read API over a mocked application
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := testutil.NopLogger()
	app := factory.NewTestApp(factory.Config{MaxPlayers: 10})

	router := api.NewRouter(api.RouterConfig{
		Logger: logger,
		Core:   app.Core,
		Hub:    ws.NewHub(logger),
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) register(id, name string) {
	ts.app.Core.Register(model.PlayerID(id), model.RegisterPayload{
		Name:      name,
		Character: "cowboy",
		Weapon:    "revolver",
	})
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.get("/api/v1/health")
	assert.Equal(t, http.StatusOK, rr.Code)

	health := decode[response.Health](t, rr)
	assert.Equal(t, "ok", health.Status)
}

func TestStatsReflectPopulation(t *testing.T) {
	ts := newTestServer(t)
	ts.register("p1", "Doc")
	ts.register("p2", "Wyatt")

	rr := ts.get("/api/v1/stats")
	require.Equal(t, http.StatusOK, rr.Code)

	stats := decode[response.Stats](t, rr)
	assert.Equal(t, 2, stats.PlayerCount)
	assert.Equal(t, 10, stats.MaxPlayers)
	assert.Equal(t, 8, stats.AvailableSlots)
	assert.Equal(t, 0, stats.QueueLength)
	assert.Equal(t, 0, stats.RoomCount)
}

func TestRoomsEmptyListing(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.get("/api/v1/rooms")
	require.Equal(t, http.StatusOK, rr.Code)

	rooms := decode[response.RoomList](t, rr)
	assert.NotNil(t, rooms.Rooms)
	assert.Empty(t, rooms.Rooms)
}

func TestRoomsListsHostedRoom(t *testing.T) {
	ts := newTestServer(t)
	ts.register("p1", "Doc")
	ts.app.MockRandom.QueueString("ROOM01")
	ts.app.Core.CreateRoom("p1", model.CreateRoomPayload{Character: "cowboy", Weapon: "revolver"})

	rr := ts.get("/api/v1/rooms")
	require.Equal(t, http.StatusOK, rr.Code)

	rooms := decode[response.RoomList](t, rr)
	require.Len(t, rooms.Rooms, 1)
	assert.Equal(t, model.RoomID("ROOM01"), rooms.Rooms[0].ID)
	assert.Equal(t, "Doc", rooms.Rooms[0].HostName)
}

func TestLeaderboardDefaultSize(t *testing.T) {
	ts := newTestServer(t)
	for i := 0; i < 15; i++ {
		id := model.PlayerID(fmt.Sprintf("p%d", i))
		ts.app.Leaderboard.RecordOutcome(id, "Player", true)
	}

	rr := ts.get("/api/v1/leaderboard")
	require.Equal(t, http.StatusOK, rr.Code)

	lb := decode[response.Leaderboard](t, rr)
	assert.Len(t, lb.Entries, 10)
}

func TestLeaderboardCustomSize(t *testing.T) {
	ts := newTestServer(t)
	for _, id := range []model.PlayerID{"a", "b", "c"} {
		ts.app.Leaderboard.RecordOutcome(id, "Player", true)
	}

	rr := ts.get("/api/v1/leaderboard?n=2")
	require.Equal(t, http.StatusOK, rr.Code)

	lb := decode[response.Leaderboard](t, rr)
	assert.Len(t, lb.Entries, 2)
}

func TestLeaderboardRejectsBadCount(t *testing.T) {
	ts := newTestServer(t)

	for _, q := range []string{"?n=0", "?n=-3", "?n=abc"} {
		rr := ts.get("/api/v1/leaderboard" + q)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "query %q", q)

		var errResp struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
		assert.Equal(t, "INVALID_REQUEST", errResp.Error.Code)
	}
}

func TestLeaderboardEmptyIsArray(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.get("/api/v1/leaderboard")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"entries":[]}`, rr.Body.String())
}

func TestUnknownRouteIs404(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.get("/api/v1/duels")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
