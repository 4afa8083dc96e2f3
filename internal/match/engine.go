package match

// The scoring engine is a set of pure transitions over the in-memory match,
// state and stats rows. Persistence, locking and roster checks live in the
// service; everything here is deterministic and testable without a database.

func battingRuns(m *TournamentMatch, teamID uint) int {
	if teamID == m.Team1ID {
		return m.Team1Runs
	}
	return m.Team2Runs
}

func battingWickets(m *TournamentMatch, teamID uint) int {
	if teamID == m.Team1ID {
		return m.Team1Wickets
	}
	return m.Team2Wickets
}

func addTeamRuns(m *TournamentMatch, teamID uint, runs int) {
	if teamID == m.Team1ID {
		m.Team1Runs += runs
	} else {
		m.Team2Runs += runs
	}
}

func addTeamWicket(m *TournamentMatch, teamID uint) {
	if teamID == m.Team1ID {
		m.Team1Wickets++
	} else {
		m.Team2Wickets++
	}
}

func swapStriker(st *MatchState) {
	if st.StrikerID == nil || st.Batsman1ID == nil || st.Batsman2ID == nil {
		return
	}
	if *st.StrikerID == *st.Batsman1ID {
		st.StrikerID = st.Batsman2ID
	} else {
		st.StrikerID = st.Batsman1ID
	}
}

// advanceBall consumes one legal delivery: bumps the per-team and match ball
// counters and the over/ball pointer. Completing an over swaps strike
// unconditionally and clears the bowler, who must be set again for the next
// over. Returns true when the delivery ended the over.
func advanceBall(m *TournamentMatch, st *MatchState, ballsPerOver int) bool {
	st.TotalBalls++
	if st.CurrentBattingTeamID == m.Team1ID {
		st.Team1Balls++
	} else {
		st.Team2Balls++
	}

	st.CurrentBall++
	if st.CurrentBall >= ballsPerOver {
		st.CurrentBall = 0
		st.CurrentOver++
		swapStriker(st)
		st.BowlerID = nil
		return true
	}
	return false
}

func requirePlayersSet(st *MatchState) error {
	if st.Batsman1ID == nil || st.Batsman2ID == nil || st.StrikerID == nil || st.BowlerID == nil {
		return ErrPlayersNotSet
	}
	return nil
}

// applyScore credits runs off one delivery to the striker, the bowler and
// the batting team, then advances the ball pointer. Odd runs swap strike
// mid-over; the end-of-over swap in advanceBall applies on top, so an odd
// single off the last ball of an over leaves the striker unchanged.
func applyScore(m *TournamentMatch, st *MatchState, striker, bowler *MatchPlayerStats, runs, ballsPerOver, oversPerMatch int) error {
	if m.Status != StatusInProgress {
		return ErrInvalidState
	}
	if err := requirePlayersSet(st); err != nil {
		return err
	}
	if runs < 0 || runs > 6 {
		return ErrInvalidRuns
	}
	if battingWickets(m, st.CurrentBattingTeamID) >= MaxWickets {
		return ErrAllOut
	}
	if st.CurrentOver >= oversPerMatch {
		return ErrOversExhausted
	}

	addTeamRuns(m, st.CurrentBattingTeamID, runs)
	striker.RunsScored += runs
	striker.BallsFaced++
	switch runs {
	case 4:
		striker.Fours++
	case 6:
		striker.Sixes++
	}
	bowler.BallsBowled++
	bowler.RunsConceded += runs

	if runs%2 == 1 {
		swapStriker(st)
	}
	advanceBall(m, st, ballsPerOver)
	return nil
}

// applyWicket dismisses one of the two current batsmen and brings in the
// next. The incoming batsman takes the non-striker's end, so strike stays
// with the surviving batsman. The delivery still counts against the striker
// and the bowler, same as a dot ball.
func applyWicket(m *TournamentMatch, st *MatchState, striker, bowler, dismissed, next *MatchPlayerStats, ballsPerOver, oversPerMatch int) error {
	if m.Status != StatusInProgress {
		return ErrInvalidState
	}
	if err := requirePlayersSet(st); err != nil {
		return err
	}
	if battingWickets(m, st.CurrentBattingTeamID) >= MaxWickets {
		return ErrAllOut
	}
	if st.CurrentOver >= oversPerMatch {
		return ErrOversExhausted
	}
	if dismissed.PlayerID != *st.Batsman1ID && dismissed.PlayerID != *st.Batsman2ID {
		return ErrInvalidBatsman
	}
	if next.PlayerID == *st.Batsman1ID || next.PlayerID == *st.Batsman2ID {
		return ErrInvalidBatsman
	}
	if next.IsOut {
		return ErrInvalidBatsman
	}

	addTeamWicket(m, st.CurrentBattingTeamID)
	bowler.WicketsTaken++
	bowler.BallsBowled++
	striker.BallsFaced++
	dismissed.IsOut = true

	var surviving uint
	if dismissed.PlayerID == *st.Batsman1ID {
		st.Batsman1ID = &next.PlayerID
		surviving = *st.Batsman2ID
	} else {
		st.Batsman2ID = &next.PlayerID
		surviving = *st.Batsman1ID
	}
	st.StrikerID = &surviving

	advanceBall(m, st, ballsPerOver)
	return nil
}

// applySwitchInnings moves the match into the second innings. Whether the
// first innings is actually over is the operator's call; the engine only
// refuses a second switch.
func applySwitchInnings(m *TournamentMatch, st *MatchState) error {
	if m.Status != StatusInProgress {
		return ErrInvalidState
	}
	if st.InningsNumber != 1 {
		return ErrInvalidState
	}

	target := battingRuns(m, st.CurrentBattingTeamID)
	st.TargetRuns = &target

	st.CurrentBattingTeamID, st.CurrentBowlingTeamID = st.CurrentBowlingTeamID, st.CurrentBattingTeamID
	st.InningsNumber = 2
	st.CurrentOver = 0
	st.CurrentBall = 0
	st.Batsman1ID = nil
	st.Batsman2ID = nil
	st.StrikerID = nil
	st.BowlerID = nil
	return nil
}

// determineOutcome compares final totals. Equal totals are a tie and leave
// the winner unset.
func determineOutcome(m *TournamentMatch) (winnerTeamID *uint, tie bool) {
	switch {
	case m.Team1Runs > m.Team2Runs:
		return &m.Team1ID, false
	case m.Team2Runs > m.Team1Runs:
		return &m.Team2ID, false
	default:
		return nil, true
	}
}
