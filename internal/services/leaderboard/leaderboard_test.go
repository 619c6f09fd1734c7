package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/quickdrawgame-go/internal/model"
	"github.com/mcoot/quickdrawgame-go/internal/testutil"
)

type LeaderboardSuite struct {
	suite.Suite
	service *Service
}

func TestLeaderboardSuite(t *testing.T) {
	suite.Run(t, new(LeaderboardSuite))
}

func (s *LeaderboardSuite) SetupTest() {
	s.service = New(testutil.NopLogger())
}

func (s *LeaderboardSuite) record(id string, wins, losses int) {
	for i := 0; i < wins; i++ {
		s.service.RecordOutcome(model.PlayerID(id), "Player "+id, true)
	}
	for i := 0; i < losses; i++ {
		s.service.RecordOutcome(model.PlayerID(id), "Player "+id, false)
	}
}

func (s *LeaderboardSuite) TestSeedCreatesZeroEntry() {
	s.service.Seed("p1", "Doc")

	entry := s.service.Get("p1")
	s.Require().NotNil(entry)
	s.Equal("Doc", entry.Name)
	s.Equal(0, entry.Wins)
	s.Equal(0, entry.Losses)
	s.Equal(0, entry.TotalGames)
	s.Equal(0.0, entry.WinRate)
}

func (s *LeaderboardSuite) TestSeedRefreshesNameWithoutResettingCounters() {
	s.record("p1", 2, 1)

	s.service.Seed("p1", "New Name")

	entry := s.service.Get("p1")
	s.Equal("New Name", entry.Name)
	s.Equal(2, entry.Wins)
	s.Equal(1, entry.Losses)
}

func (s *LeaderboardSuite) TestRecordOutcomeMaintainsDerivedFields() {
	s.record("p1", 2, 1)

	entry := s.service.Get("p1")
	s.Equal(3, entry.TotalGames)
	s.Equal(66.67, entry.WinRate)
}

func (s *LeaderboardSuite) TestWinRateIsRoundedToTwoDecimals() {
	// 1 win of 3 games = 33.333...%
	s.record("p1", 1, 2)
	s.Equal(33.33, s.service.Get("p1").WinRate)

	// 1 win of 6 games = 16.666...%
	s.record("p2", 1, 5)
	s.Equal(16.67, s.service.Get("p2").WinRate)
}

func (s *LeaderboardSuite) TestTopRanksByWinsThenWinRate() {
	s.record("low", 1, 0)
	s.record("grinder", 3, 3) // 3 wins, 50%
	s.record("ace", 3, 0)     // 3 wins, 100%

	top := s.service.Top(10)
	s.Require().Len(top, 3)
	s.Equal(model.PlayerID("ace"), top[0].PlayerID)
	s.Equal(model.PlayerID("grinder"), top[1].PlayerID)
	s.Equal(model.PlayerID("low"), top[2].PlayerID)
}

func (s *LeaderboardSuite) TestTopTiesKeepInsertionOrder() {
	s.record("first", 2, 2)
	s.record("second", 2, 2)
	s.record("third", 2, 2)

	top := s.service.Top(10)
	s.Require().Len(top, 3)
	s.Equal(model.PlayerID("first"), top[0].PlayerID)
	s.Equal(model.PlayerID("second"), top[1].PlayerID)
	s.Equal(model.PlayerID("third"), top[2].PlayerID)
}

func (s *LeaderboardSuite) TestTopTruncatesToN() {
	for _, id := range []string{"a", "b", "c", "d"} {
		s.record(id, 1, 0)
	}

	s.Len(s.service.Top(2), 2)
	s.Len(s.service.Top(10), 4)
}

func (s *LeaderboardSuite) TestEntriesSurviveWithoutConnection() {
	// Nothing ties entries to live connections; records simply persist
	s.record("gone", 4, 1)

	entry := s.service.Get("gone")
	s.Require().NotNil(entry)
	s.Equal(4, entry.Wins)
	s.Equal(1, s.service.Size())
}

func (s *LeaderboardSuite) TestGetReturnsCopy() {
	s.record("p1", 1, 0)

	entry := s.service.Get("p1")
	entry.Wins = 100

	s.Equal(1, s.service.Get("p1").Wins)
}

func (s *LeaderboardSuite) TestGetUnknownReturnsNil() {
	s.Nil(s.service.Get("ghost"))
}
