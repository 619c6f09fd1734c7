package factory

import (
	"time"

	"github.com/mcoot/quickdrawgame-go/internal/dependencies/mocks"
	"github.com/mcoot/quickdrawgame-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock       *mocks.MockClock
	MockRandom      *mocks.MockRandom
	MockBroadcaster *mocks.MockBroadcaster
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp(cfg Config) *TestApp {
	if cfg.MaxPlayers == 0 {
		cfg.MaxPlayers = DefaultMaxPlayers
	}
	if cfg.RoomTimeout == 0 {
		cfg.RoomTimeout = DefaultRoomTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = testutil.NopLogger()
	}

	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockBroadcaster := mocks.NewMockBroadcaster()

	app := newWithDependencies(cfg, mockBroadcaster, mockClock, mockRandom, cfg.Logger)

	return &TestApp{
		App:             app,
		MockClock:       mockClock,
		MockRandom:      mockRandom,
		MockBroadcaster: mockBroadcaster,
	}
}
