package points

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yultimate/pavilion/internal/match"
)

const (
	winPoints    = 2
	tiePoints    = 1
	lossPoints   = 0
	ballsPerOver = 6
)

func uintPtr(v uint) *uint { return &v }

func completedMatch(team1, team2 uint, runs1, balls1, runs2, balls2 int) CompletedMatch {
	m := match.TournamentMatch{
		Team1ID:     team1,
		Team2ID:     team2,
		Team1Runs:   runs1,
		Team2Runs:   runs2,
		Status:      match.StatusCompleted,
		IsCompleted: true,
	}
	switch {
	case runs1 > runs2:
		m.WinnerTeamID = uintPtr(team1)
	case runs2 > runs1:
		m.WinnerTeamID = uintPtr(team2)
	default:
		m.IsTie = true
	}
	return CompletedMatch{
		Match: m,
		State: match.MatchState{Team1Balls: balls1, Team2Balls: balls2},
	}
}

func entryFor(t *testing.T, entries []PointsTableEntry, teamID uint) PointsTableEntry {
	t.Helper()
	for _, e := range entries {
		if e.TeamID == teamID {
			return e
		}
	}
	t.Fatalf("no entry for team %d", teamID)
	return PointsTableEntry{}
}

func TestBuildTableChaseAwardsWinnerPoints(t *testing.T) {
	// Team 1 posts 150/6 in 20 overs, team 2 chases it down with 151 in
	// 18.3 overs.
	table := BuildTable([]uint{1, 2},
		[]CompletedMatch{completedMatch(1, 2, 150, 120, 151, 111)},
		winPoints, tiePoints, lossPoints, ballsPerOver)

	require.Len(t, table, 2)
	winner := entryFor(t, table, 2)
	loser := entryFor(t, table, 1)

	assert.Equal(t, 1, winner.MatchesPlayed)
	assert.Equal(t, 1, winner.MatchesWon)
	assert.Equal(t, winPoints, winner.Points)
	assert.Equal(t, 1, loser.MatchesLost)
	assert.Equal(t, 0, loser.Points)

	// The chasing side scored faster, so its net run rate is positive.
	assert.Greater(t, winner.NetRunRate, 0.0)
	assert.Less(t, loser.NetRunRate, 0.0)
	assert.Equal(t, uint(2), table[0].TeamID)
}

func TestBuildTableTieSplitsPoints(t *testing.T) {
	table := BuildTable([]uint{1, 2},
		[]CompletedMatch{completedMatch(1, 2, 140, 120, 140, 120)},
		winPoints, tiePoints, lossPoints, ballsPerOver)

	for _, teamID := range []uint{1, 2} {
		e := entryFor(t, table, teamID)
		assert.Equal(t, 1, e.MatchesTied)
		assert.Equal(t, tiePoints, e.Points)
		assert.Equal(t, 0.0, e.NetRunRate)
	}
}

func TestBuildTableZeroedForTeamsWithoutMatches(t *testing.T) {
	table := BuildTable([]uint{1, 2, 3}, nil, winPoints, tiePoints, lossPoints, ballsPerOver)

	require.Len(t, table, 3)
	for _, e := range table {
		assert.Equal(t, 0, e.MatchesPlayed)
		assert.Equal(t, 0, e.Points)
		assert.Equal(t, 0.0, e.NetRunRate)
	}
}

func TestBuildTableNetRunRateBreaksPointsTie(t *testing.T) {
	// Teams 1 and 3 both beat team 2 once; team 1 wins with the bigger
	// margin and must rank first.
	table := BuildTable([]uint{1, 2, 3},
		[]CompletedMatch{
			completedMatch(1, 2, 200, 120, 100, 120),
			completedMatch(3, 2, 150, 120, 140, 120),
		},
		winPoints, tiePoints, lossPoints, ballsPerOver)

	require.Len(t, table, 3)
	assert.Equal(t, uint(1), table[0].TeamID)
	assert.Equal(t, uint(3), table[1].TeamID)
	assert.Equal(t, uint(2), table[2].TeamID)
	assert.Equal(t, table[0].Points, table[1].Points)
	assert.Greater(t, table[0].NetRunRate, table[1].NetRunRate)
}

func TestBuildTableAggregatesAcrossMatches(t *testing.T) {
	table := BuildTable([]uint{1, 2},
		[]CompletedMatch{
			completedMatch(1, 2, 150, 120, 151, 111),
			completedMatch(1, 2, 180, 120, 120, 120),
		},
		winPoints, tiePoints, lossPoints, ballsPerOver)

	one := entryFor(t, table, 1)
	assert.Equal(t, 2, one.MatchesPlayed)
	assert.Equal(t, 1, one.MatchesWon)
	assert.Equal(t, 1, one.MatchesLost)
	assert.Equal(t, winPoints, one.Points)
}

func TestBuildTableDropsRowsWithoutOutcome(t *testing.T) {
	good := completedMatch(1, 2, 150, 120, 151, 111)

	// A completed row carrying neither a winner nor the tie flag is
	// malformed and must not be tallied for either side.
	bad := completedMatch(1, 2, 140, 120, 130, 120)
	bad.Match.WinnerTeamID = nil
	bad.Match.IsTie = false

	// Same for a winner that is not one of the two participants.
	stray := completedMatch(1, 2, 160, 120, 150, 120)
	stray.Match.WinnerTeamID = uintPtr(99)

	table := BuildTable([]uint{1, 2}, []CompletedMatch{good, bad, stray},
		winPoints, tiePoints, lossPoints, ballsPerOver)

	require.Len(t, table, 2)
	one := entryFor(t, table, 1)
	two := entryFor(t, table, 2)

	assert.Equal(t, 1, one.MatchesPlayed)
	assert.Equal(t, 1, one.MatchesLost)
	assert.Equal(t, 0, one.Points)
	assert.Equal(t, 1, two.MatchesPlayed)
	assert.Equal(t, 1, two.MatchesWon)
	assert.Equal(t, winPoints, two.Points)
}
