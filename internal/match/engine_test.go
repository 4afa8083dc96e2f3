package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testOvers        = 20
	testBallsPerOver = 6
)

func uintPtr(v uint) *uint { return &v }

// newLiveMatch builds an in-progress match between teams 1 and 2 with the
// opening pair 101/102 (101 on strike) and bowler 201 already set.
func newLiveMatch() (*TournamentMatch, *MatchState, map[uint]*MatchPlayerStats) {
	m := &TournamentMatch{
		TournamentID:       1,
		Team1ID:            1,
		Team2ID:            2,
		Status:             StatusInProgress,
		BattingFirstTeamID: uintPtr(1),
	}
	st := &MatchState{
		MatchID:              1,
		CurrentBattingTeamID: 1,
		CurrentBowlingTeamID: 2,
		InningsNumber:        1,
		Batsman1ID:           uintPtr(101),
		Batsman2ID:           uintPtr(102),
		StrikerID:            uintPtr(101),
		BowlerID:             uintPtr(201),
	}

	stats := make(map[uint]*MatchPlayerStats)
	for playerID := uint(101); playerID <= 111; playerID++ {
		stats[playerID] = &MatchPlayerStats{MatchID: 1, PlayerID: playerID, TeamID: 1}
	}
	for playerID := uint(201); playerID <= 211; playerID++ {
		stats[playerID] = &MatchPlayerStats{MatchID: 1, PlayerID: playerID, TeamID: 2}
	}
	return m, st, stats
}

func score(t *testing.T, m *TournamentMatch, st *MatchState, stats map[uint]*MatchPlayerStats, runs int) {
	t.Helper()
	striker := stats[*st.StrikerID]
	bowler := stats[*st.BowlerID]
	require.NoError(t, applyScore(m, st, striker, bowler, runs, testBallsPerOver, testOvers))
	if st.BowlerID == nil {
		// New over, same bowler for test purposes.
		st.BowlerID = uintPtr(bowler.PlayerID)
	}
}

func TestApplyScoreCreditsStrikerBowlerAndTeam(t *testing.T) {
	m, st, stats := newLiveMatch()

	score(t, m, st, stats, 4)

	assert.Equal(t, 4, m.Team1Runs)
	assert.Equal(t, 4, stats[101].RunsScored)
	assert.Equal(t, 1, stats[101].BallsFaced)
	assert.Equal(t, 1, stats[101].Fours)
	assert.Equal(t, 4, stats[201].RunsConceded)
	assert.Equal(t, 1, stats[201].BallsBowled)
	assert.Equal(t, 1, st.CurrentBall)
	assert.Equal(t, 1, st.TotalBalls)
	assert.Equal(t, 1, st.Team1Balls)
	assert.Equal(t, 0, st.Team2Balls)
}

func TestStrikeSwapsOnOddRunsMidOver(t *testing.T) {
	m, st, stats := newLiveMatch()

	score(t, m, st, stats, 1)
	assert.Equal(t, uint(102), *st.StrikerID)

	score(t, m, st, stats, 2)
	assert.Equal(t, uint(102), *st.StrikerID)

	score(t, m, st, stats, 3)
	assert.Equal(t, uint(101), *st.StrikerID)
}

func TestOverOfSinglesLeavesStrikerChanged(t *testing.T) {
	m, st, stats := newLiveMatch()

	for i := 0; i < testBallsPerOver; i++ {
		score(t, m, st, stats, 1)
	}

	// Six mid-over swaps plus the end-of-over swap leave the non-striker
	// on strike.
	assert.Equal(t, uint(102), *st.StrikerID)
	assert.Equal(t, 1, st.CurrentOver)
	assert.Equal(t, 0, st.CurrentBall)
}

func TestOverOfTwosSwapsStrikeExactlyOnce(t *testing.T) {
	m, st, stats := newLiveMatch()

	for i := 0; i < testBallsPerOver-1; i++ {
		score(t, m, st, stats, 2)
		assert.Equal(t, uint(101), *st.StrikerID)
	}
	score(t, m, st, stats, 2)

	assert.Equal(t, uint(102), *st.StrikerID)
	assert.Equal(t, 12, m.Team1Runs)
}

func TestSingleOffLastBallOfOverKeepsStriker(t *testing.T) {
	m, st, stats := newLiveMatch()

	for i := 0; i < testBallsPerOver-1; i++ {
		score(t, m, st, stats, 0)
	}
	score(t, m, st, stats, 1)

	// The mid-over swap and the over-end swap cancel out.
	assert.Equal(t, uint(101), *st.StrikerID)
	assert.Equal(t, 1, st.CurrentOver)
}

func TestOverRolloverClearsBowler(t *testing.T) {
	m, st, stats := newLiveMatch()
	striker := stats[*st.StrikerID]
	bowler := stats[*st.BowlerID]

	for i := 0; i < testBallsPerOver-1; i++ {
		require.NoError(t, applyScore(m, st, striker, bowler, 0, testBallsPerOver, testOvers))
	}
	require.NoError(t, applyScore(m, st, striker, bowler, 0, testBallsPerOver, testOvers))

	assert.Nil(t, st.BowlerID)
	assert.Equal(t, 1, st.CurrentOver)
	assert.Equal(t, 0, st.CurrentBall)

	// Scoring without a bowler set for the new over is rejected.
	err := applyScore(m, st, striker, bowler, 1, testBallsPerOver, testOvers)
	assert.ErrorIs(t, err, ErrPlayersNotSet)
}

func TestCurrentBallStaysInRange(t *testing.T) {
	m, st, stats := newLiveMatch()

	for i := 0; i < 23; i++ {
		score(t, m, st, stats, 0)
		assert.GreaterOrEqual(t, st.CurrentBall, 0)
		assert.Less(t, st.CurrentBall, testBallsPerOver)
	}
	assert.Equal(t, 3, st.CurrentOver)
	assert.Equal(t, 5, st.CurrentBall)
	assert.Equal(t, 23, st.TotalBalls)
}

func TestApplyScoreRejectsInvalidRuns(t *testing.T) {
	m, st, stats := newLiveMatch()
	err := applyScore(m, st, stats[101], stats[201], 7, testBallsPerOver, testOvers)
	assert.ErrorIs(t, err, ErrInvalidRuns)
	assert.Equal(t, 0, m.Team1Runs)
}

func TestApplyScoreRejectsCompletedMatch(t *testing.T) {
	m, st, stats := newLiveMatch()
	m.Status = StatusCompleted
	err := applyScore(m, st, stats[101], stats[201], 1, testBallsPerOver, testOvers)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestApplyScoreRejectsWhenOversExhausted(t *testing.T) {
	m, st, stats := newLiveMatch()
	st.CurrentOver = testOvers
	err := applyScore(m, st, stats[101], stats[201], 1, testBallsPerOver, testOvers)
	assert.ErrorIs(t, err, ErrOversExhausted)
}

func TestApplyWicketStrikerDismissed(t *testing.T) {
	m, st, stats := newLiveMatch()

	err := applyWicket(m, st, stats[101], stats[201], stats[101], stats[103], testBallsPerOver, testOvers)
	require.NoError(t, err)

	assert.Equal(t, 1, m.Team1Wickets)
	assert.Equal(t, 1, stats[201].WicketsTaken)
	assert.Equal(t, 1, stats[201].BallsBowled)
	assert.Equal(t, 1, stats[101].BallsFaced)
	assert.True(t, stats[101].IsOut)

	// Incoming batsman takes the dismissed slot at the non-striker's end.
	assert.Equal(t, uint(103), *st.Batsman1ID)
	assert.Equal(t, uint(102), *st.Batsman2ID)
	assert.Equal(t, uint(102), *st.StrikerID)
	assert.Equal(t, 1, st.CurrentBall)
}

func TestApplyWicketNonStrikerRunOut(t *testing.T) {
	m, st, stats := newLiveMatch()

	err := applyWicket(m, st, stats[101], stats[201], stats[102], stats[103], testBallsPerOver, testOvers)
	require.NoError(t, err)

	assert.True(t, stats[102].IsOut)
	assert.False(t, stats[101].IsOut)
	// The striker still faced the delivery and keeps strike.
	assert.Equal(t, 1, stats[101].BallsFaced)
	assert.Equal(t, uint(101), *st.StrikerID)
	assert.Equal(t, uint(103), *st.Batsman2ID)
}

func TestApplyWicketRejectsWhenAllOut(t *testing.T) {
	m, st, stats := newLiveMatch()
	m.Team1Wickets = MaxWickets

	before := *st
	err := applyWicket(m, st, stats[101], stats[201], stats[101], stats[103], testBallsPerOver, testOvers)

	assert.ErrorIs(t, err, ErrAllOut)
	assert.Equal(t, MaxWickets, m.Team1Wickets)
	assert.Equal(t, before, *st)
	assert.False(t, stats[101].IsOut)
}

func TestApplyWicketRejectsIneligibleIncomingBatsman(t *testing.T) {
	m, st, stats := newLiveMatch()

	// A current batsman cannot come in again.
	err := applyWicket(m, st, stats[101], stats[201], stats[101], stats[102], testBallsPerOver, testOvers)
	assert.ErrorIs(t, err, ErrInvalidBatsman)

	// Nor can a dismissed one.
	stats[104].IsOut = true
	err = applyWicket(m, st, stats[101], stats[201], stats[101], stats[104], testBallsPerOver, testOvers)
	assert.ErrorIs(t, err, ErrInvalidBatsman)
	assert.Equal(t, 0, m.Team1Wickets)
}

func TestSwitchInningsResetsStateAndKeepsTarget(t *testing.T) {
	m, st, stats := newLiveMatch()

	score(t, m, st, stats, 4)
	score(t, m, st, stats, 1)

	require.NoError(t, applySwitchInnings(m, st))

	assert.Equal(t, 2, st.InningsNumber)
	assert.Equal(t, uint(2), st.CurrentBattingTeamID)
	assert.Equal(t, uint(1), st.CurrentBowlingTeamID)
	assert.Equal(t, 0, st.CurrentOver)
	assert.Equal(t, 0, st.CurrentBall)
	assert.Nil(t, st.Batsman1ID)
	assert.Nil(t, st.Batsman2ID)
	assert.Nil(t, st.StrikerID)
	assert.Nil(t, st.BowlerID)
	require.NotNil(t, st.TargetRuns)
	assert.Equal(t, 5, *st.TargetRuns)

	// Only one switch per match.
	assert.ErrorIs(t, applySwitchInnings(m, st), ErrInvalidState)
}

func TestPlayerRunsSumToTeamTotal(t *testing.T) {
	m, st, stats := newLiveMatch()

	for _, runs := range []int{1, 4, 0, 2, 6, 1, 3, 0, 1, 2} {
		score(t, m, st, stats, runs)
	}
	err := applyWicket(m, st, stats[*st.StrikerID], stats[*st.BowlerID], stats[*st.StrikerID], stats[105], testBallsPerOver, testOvers)
	require.NoError(t, err)

	sum := 0
	balls := 0
	for playerID := uint(101); playerID <= 111; playerID++ {
		sum += stats[playerID].RunsScored
		balls += stats[playerID].BallsFaced
	}
	assert.Equal(t, m.Team1Runs, sum)
	assert.Equal(t, st.Team1Balls, balls)
}

func TestDetermineOutcome(t *testing.T) {
	m := &TournamentMatch{Team1ID: 1, Team2ID: 2, Team1Runs: 150, Team2Runs: 151}
	winner, tie := determineOutcome(m)
	require.NotNil(t, winner)
	assert.Equal(t, uint(2), *winner)
	assert.False(t, tie)

	m.Team2Runs = 150
	winner, tie = determineOutcome(m)
	assert.Nil(t, winner)
	assert.True(t, tie)
}

func TestFullChaseScenario(t *testing.T) {
	m, st, stats := newLiveMatch()

	// First innings: a quick 23/1.
	for _, runs := range []int{4, 6, 1, 2, 4, 6} {
		score(t, m, st, stats, runs)
	}
	err := applyWicket(m, st, stats[*st.StrikerID], stats[*st.BowlerID], stats[*st.StrikerID], stats[103], testBallsPerOver, testOvers)
	require.NoError(t, err)

	require.NoError(t, applySwitchInnings(m, st))
	require.NotNil(t, st.TargetRuns)
	assert.Equal(t, 23, *st.TargetRuns)

	// Second innings: the chase passes the target.
	st.Batsman1ID = uintPtr(201)
	st.Batsman2ID = uintPtr(202)
	st.StrikerID = uintPtr(201)
	st.BowlerID = uintPtr(101)
	for _, runs := range []int{6, 6, 6, 6} {
		score(t, m, st, stats, runs)
	}

	assert.Equal(t, 24, m.Team2Runs)
	winner, tie := determineOutcome(m)
	require.NotNil(t, winner)
	assert.Equal(t, m.Team2ID, *winner)
	assert.False(t, tie)
}
