package match

import (
	"fmt"

	"github.com/yultimate/pavilion/config"
	"github.com/yultimate/pavilion/internal/team"
	"github.com/yultimate/pavilion/internal/tournament"
)

// StatsFinalizer rolls a completed match's player stats into career
// aggregates. Implemented by the stats aggregator.
type StatsFinalizer interface {
	FinalizeMatch(matchID uint) error
}

// PointsRecomputer rebuilds a tournament's points table from its completed
// matches. Implemented by the points calculator.
type PointsRecomputer interface {
	Recompute(tournamentID uint) error
}

// ScoringService wraps the pure engine with persistence, per-match locking,
// roster checks and the tournament gating rules.
type ScoringService struct {
	repo           MatchRepository
	teamRepo       team.TeamRepository
	tournamentRepo tournament.TournamentRepository
	cfg            *config.Config
	locks          *matchLocks
	finalizer      StatsFinalizer
	recomputer     PointsRecomputer
}

func NewScoringService(
	repo MatchRepository,
	teamRepo team.TeamRepository,
	tournamentRepo tournament.TournamentRepository,
	cfg *config.Config,
	finalizer StatsFinalizer,
	recomputer PointsRecomputer,
) *ScoringService {
	return &ScoringService{
		repo:           repo,
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
		cfg:            cfg,
		locks:          newMatchLocks(),
		finalizer:      finalizer,
		recomputer:     recomputer,
	}
}

func (s *ScoringService) loadMatch(matchID uint) (*TournamentMatch, error) {
	m, err := s.repo.FindMatchByID(matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}
	return m, nil
}

func (s *ScoringService) loadLiveMatch(matchID uint) (*TournamentMatch, *MatchState, error) {
	m, err := s.loadMatch(matchID)
	if err != nil {
		return nil, nil, err
	}
	if m.Status != StatusInProgress {
		return nil, nil, ErrInvalidState
	}
	st, err := s.repo.FindStateByMatchID(matchID)
	if err != nil {
		return nil, nil, err
	}
	if st == nil {
		return nil, nil, ErrInvalidState
	}
	return m, st, nil
}

func (s *ScoringService) oversPerMatch(tournamentID uint) (int, error) {
	t, err := s.tournamentRepo.FindByID(tournamentID)
	if err != nil {
		return 0, err
	}
	if t == nil || t.OversPerMatch <= 0 {
		return s.cfg.Scoring.OversPerMatch, nil
	}
	return t.OversPerMatch, nil
}

// Start moves a scheduled match into play: records the toss, creates the
// scoring state and seeds a zeroed stats row for every active roster member
// on both sides. An empty roster does not block the start; batsman and
// bowler assignment will reject until the roster is populated.
func (s *ScoringService) Start(matchID, tossWonByTeamID, battingFirstTeamID uint) (*MatchState, error) {
	l := s.locks.lock(matchID)
	defer l.Unlock()

	m, err := s.loadMatch(matchID)
	if err != nil {
		return nil, err
	}
	if m.Status != StatusScheduled {
		return nil, ErrInvalidState
	}
	if !s.isParticipant(m, tossWonByTeamID) || !s.isParticipant(m, battingFirstTeamID) {
		return nil, ErrInvalidParticipant
	}

	t, err := s.tournamentRepo.FindByID(m.TournamentID)
	if err != nil {
		return nil, err
	}
	if t == nil || t.Status != tournament.StatusOngoing {
		return nil, ErrInvalidState
	}

	var statsRows []MatchPlayerStats
	for _, teamID := range []uint{m.Team1ID, m.Team2ID} {
		playerIDs, err := s.teamRepo.ActiveRosterIDs(teamID)
		if err != nil {
			return nil, err
		}
		for _, playerID := range playerIDs {
			statsRows = append(statsRows, MatchPlayerStats{
				MatchID:  matchID,
				PlayerID: playerID,
				TeamID:   teamID,
			})
		}
	}

	bowlingTeamID := m.Team1ID
	if battingFirstTeamID == m.Team1ID {
		bowlingTeamID = m.Team2ID
	}

	st := &MatchState{
		MatchID:              matchID,
		CurrentBattingTeamID: battingFirstTeamID,
		CurrentBowlingTeamID: bowlingTeamID,
		InningsNumber:        1,
	}

	err = s.repo.WithTransaction(func(tx MatchRepository) error {
		m.Status = StatusInProgress
		m.TossWonByTeamID = &tossWonByTeamID
		m.BattingFirstTeamID = &battingFirstTeamID
		if err := tx.UpdateMatch(m); err != nil {
			return err
		}
		if err := tx.CreateState(st); err != nil {
			return err
		}
		return tx.CreateStats(statsRows)
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// SetBatsmen assigns the opening pair and the striker. The assignment can be
// corrected freely until the first ball of the innings is bowled; after that
// the batting order changes only through wickets.
func (s *ScoringService) SetBatsmen(matchID, batsman1ID, batsman2ID, strikerID uint) (*MatchState, error) {
	l := s.locks.lock(matchID)
	defer l.Unlock()

	m, st, err := s.loadLiveMatch(matchID)
	if err != nil {
		return nil, err
	}
	if batsman1ID == batsman2ID {
		return nil, ErrInvalidBatsman
	}
	if strikerID != batsman1ID && strikerID != batsman2ID {
		return nil, ErrInvalidBatsman
	}
	if st.Batsman1ID != nil && s.inningsBalls(m, st) > 0 {
		return nil, ErrInvalidState
	}

	for _, playerID := range []uint{batsman1ID, batsman2ID} {
		if err := s.checkBattingEligibility(matchID, st.CurrentBattingTeamID, playerID); err != nil {
			return nil, err
		}
	}

	st.Batsman1ID = &batsman1ID
	st.Batsman2ID = &batsman2ID
	st.StrikerID = &strikerID
	if err := s.repo.UpdateState(st); err != nil {
		return nil, err
	}
	return st, nil
}

// SetBowler assigns the bowler for the upcoming over. The bowler is cleared
// at the end of each over and must be set again; no anti-consecutive-over
// rule is enforced.
func (s *ScoringService) SetBowler(matchID, bowlerID uint) (*MatchState, error) {
	l := s.locks.lock(matchID)
	defer l.Unlock()

	_, st, err := s.loadLiveMatch(matchID)
	if err != nil {
		return nil, err
	}

	rosterIDs, err := s.teamRepo.ActiveRosterIDs(st.CurrentBowlingTeamID)
	if err != nil {
		return nil, err
	}
	if len(rosterIDs) == 0 {
		return nil, ErrEmptyRoster
	}
	onRoster, err := s.teamRepo.IsOnRoster(st.CurrentBowlingTeamID, bowlerID)
	if err != nil {
		return nil, err
	}
	if !onRoster {
		return nil, ErrInvalidBowler
	}

	st.BowlerID = &bowlerID
	if err := s.repo.UpdateState(st); err != nil {
		return nil, err
	}
	return st, nil
}

// AddScore records one legal delivery worth the given runs. If the client
// supplies its view of the ball sequence number, a mismatch with the stored
// state rejects the call, which catches duplicate submissions and retries.
func (s *ScoringService) AddScore(matchID uint, runs int, clientSequence *int) (*MatchState, error) {
	l := s.locks.lock(matchID)
	defer l.Unlock()

	m, st, err := s.loadLiveMatch(matchID)
	if err != nil {
		return nil, err
	}
	if clientSequence != nil && *clientSequence != st.TotalBalls {
		return nil, ErrStaleSequence
	}
	if err := requirePlayersSet(st); err != nil {
		return nil, err
	}

	striker, err := s.mustStats(matchID, *st.StrikerID)
	if err != nil {
		return nil, err
	}
	bowler, err := s.mustStats(matchID, *st.BowlerID)
	if err != nil {
		return nil, err
	}
	overs, err := s.oversPerMatch(m.TournamentID)
	if err != nil {
		return nil, err
	}

	event := BallEvent{
		MatchID:       matchID,
		InningsNumber: st.InningsNumber,
		Over:          st.CurrentOver,
		Ball:          st.CurrentBall,
		EventType:     EventScore,
		Runs:          runs,
		StrikerID:     striker.PlayerID,
		BowlerID:      bowler.PlayerID,
	}

	if err := applyScore(m, st, striker, bowler, runs, s.cfg.Scoring.BallsPerOver, overs); err != nil {
		return nil, err
	}
	event.Sequence = st.TotalBalls

	err = s.repo.WithTransaction(func(tx MatchRepository) error {
		if err := tx.UpdateMatch(m); err != nil {
			return err
		}
		if err := tx.UpdateState(st); err != nil {
			return err
		}
		if err := tx.UpdateStats(striker); err != nil {
			return err
		}
		if err := tx.UpdateStats(bowler); err != nil {
			return err
		}
		return tx.CreateBallEvent(&event)
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// AddWicket records a dismissal off one delivery. The dismissed batsman
// defaults to the striker; a run-out of the non-striker can be recorded by
// naming them explicitly. The incoming batsman starts at the non-striker's
// end.
func (s *ScoringService) AddWicket(matchID, nextBatsmanID uint, dismissedBatsmanID *uint, clientSequence *int) (*MatchState, error) {
	l := s.locks.lock(matchID)
	defer l.Unlock()

	m, st, err := s.loadLiveMatch(matchID)
	if err != nil {
		return nil, err
	}
	if clientSequence != nil && *clientSequence != st.TotalBalls {
		return nil, ErrStaleSequence
	}
	if err := requirePlayersSet(st); err != nil {
		return nil, err
	}

	dismissedID := *st.StrikerID
	if dismissedBatsmanID != nil {
		dismissedID = *dismissedBatsmanID
	}

	striker, err := s.mustStats(matchID, *st.StrikerID)
	if err != nil {
		return nil, err
	}
	bowler, err := s.mustStats(matchID, *st.BowlerID)
	if err != nil {
		return nil, err
	}
	dismissed := striker
	if dismissedID != striker.PlayerID {
		dismissed, err = s.mustStats(matchID, dismissedID)
		if err != nil {
			return nil, err
		}
	}
	if err := s.checkBattingEligibility(matchID, st.CurrentBattingTeamID, nextBatsmanID); err != nil {
		return nil, err
	}
	next, err := s.mustStats(matchID, nextBatsmanID)
	if err != nil {
		return nil, err
	}
	overs, err := s.oversPerMatch(m.TournamentID)
	if err != nil {
		return nil, err
	}

	event := BallEvent{
		MatchID:       matchID,
		InningsNumber: st.InningsNumber,
		Over:          st.CurrentOver,
		Ball:          st.CurrentBall,
		EventType:     EventWicket,
		StrikerID:     striker.PlayerID,
		BowlerID:      bowler.PlayerID,
		DismissedID:   &dismissed.PlayerID,
		NextBatsmanID: &next.PlayerID,
	}

	if err := applyWicket(m, st, striker, bowler, dismissed, next, s.cfg.Scoring.BallsPerOver, overs); err != nil {
		return nil, err
	}
	event.Sequence = st.TotalBalls

	err = s.repo.WithTransaction(func(tx MatchRepository) error {
		if err := tx.UpdateMatch(m); err != nil {
			return err
		}
		if err := tx.UpdateState(st); err != nil {
			return err
		}
		for _, row := range []*MatchPlayerStats{striker, bowler, dismissed} {
			if err := tx.UpdateStats(row); err != nil {
				return err
			}
		}
		return tx.CreateBallEvent(&event)
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// SwitchInnings hands the bat to the other side. Whether the first innings
// is actually finished is the operator's decision, made from the state they
// can read back.
func (s *ScoringService) SwitchInnings(matchID uint) (*MatchState, error) {
	l := s.locks.lock(matchID)
	defer l.Unlock()

	m, st, err := s.loadLiveMatch(matchID)
	if err != nil {
		return nil, err
	}
	if err := applySwitchInnings(m, st); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateState(st); err != nil {
		return nil, err
	}
	return st, nil
}

// Complete closes a second-innings match, decides the outcome by comparing
// the final totals, then recomputes the points table and rolls the player
// stats into careers. A hook failure reverts the match to in_progress so the
// operator can retry; nothing stays half-applied.
func (s *ScoringService) Complete(matchID uint, manOfTheMatchID *uint) (*TournamentMatch, error) {
	l := s.locks.lock(matchID)
	completed := false
	defer func() {
		l.Unlock()
		if completed {
			s.locks.release(matchID)
		}
	}()

	m, st, err := s.loadLiveMatch(matchID)
	if err != nil {
		return nil, err
	}
	if st.InningsNumber != 2 {
		return nil, ErrInvalidState
	}
	if manOfTheMatchID != nil {
		if _, err := s.mustStats(matchID, *manOfTheMatchID); err != nil {
			return nil, ErrInvalidParticipant
		}
	}

	winnerID, tie := determineOutcome(m)
	m.Status = StatusCompleted
	m.IsCompleted = true
	m.WinnerTeamID = winnerID
	m.IsTie = tie
	m.ManOfTheMatchID = manOfTheMatchID

	if err := s.repo.UpdateMatch(m); err != nil {
		return nil, err
	}

	// The recompute replaces the table wholesale, so re-running it on a
	// retry is safe; the career rollup runs last and is transactional.
	if err := s.recomputer.Recompute(m.TournamentID); err != nil {
		return nil, s.revertCompletion(m, err)
	}
	if err := s.finalizer.FinalizeMatch(matchID); err != nil {
		return nil, s.revertCompletion(m, err)
	}

	completed = true
	return m, nil
}

// revertCompletion puts a match whose completion hooks failed back into
// in_progress, returning the hook's error so the caller sees the cause.
func (s *ScoringService) revertCompletion(m *TournamentMatch, cause error) error {
	m.Status = StatusInProgress
	m.IsCompleted = false
	m.WinnerTeamID = nil
	m.IsTie = false
	m.ManOfTheMatchID = nil
	if err := s.repo.UpdateMatch(m); err != nil {
		return fmt.Errorf("completion hook failed (%v), revert failed: %w", cause, err)
	}
	return cause
}

// Cancel abandons a live match. Its stats rows are discarded so nothing
// leaks into aggregates, and the points table is untouched.
func (s *ScoringService) Cancel(matchID uint) (*TournamentMatch, error) {
	l := s.locks.lock(matchID)
	cancelled := false
	defer func() {
		l.Unlock()
		if cancelled {
			s.locks.release(matchID)
		}
	}()

	m, err := s.loadMatch(matchID)
	if err != nil {
		return nil, err
	}
	if m.Status != StatusInProgress {
		return nil, ErrInvalidState
	}

	err = s.repo.WithTransaction(func(tx MatchRepository) error {
		m.Status = StatusCancelled
		if err := tx.UpdateMatch(m); err != nil {
			return err
		}
		return tx.DeleteStatsByMatch(matchID)
	})
	if err != nil {
		return nil, err
	}

	cancelled = true
	return m, nil
}

// State returns the live scoring snapshot. Reads take no lock.
func (s *ScoringService) State(matchID uint) (*MatchState, error) {
	if _, err := s.loadMatch(matchID); err != nil {
		return nil, err
	}
	st, err := s.repo.FindStateByMatchID(matchID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrInvalidState
	}
	return st, nil
}

func (s *ScoringService) PlayerStats(matchID uint) ([]MatchPlayerStats, error) {
	if _, err := s.loadMatch(matchID); err != nil {
		return nil, err
	}
	return s.repo.ListStatsByMatch(matchID)
}

func (s *ScoringService) Balls(matchID uint) ([]BallEvent, error) {
	if _, err := s.loadMatch(matchID); err != nil {
		return nil, err
	}
	return s.repo.ListBallEvents(matchID)
}

func (s *ScoringService) isParticipant(m *TournamentMatch, teamID uint) bool {
	return teamID == m.Team1ID || teamID == m.Team2ID
}

func (s *ScoringService) inningsBalls(m *TournamentMatch, st *MatchState) int {
	if st.CurrentBattingTeamID == m.Team1ID {
		return st.Team1Balls
	}
	return st.Team2Balls
}

func (s *ScoringService) checkBattingEligibility(matchID, battingTeamID, playerID uint) error {
	rosterIDs, err := s.teamRepo.ActiveRosterIDs(battingTeamID)
	if err != nil {
		return err
	}
	if len(rosterIDs) == 0 {
		return ErrEmptyRoster
	}
	onRoster := false
	for _, id := range rosterIDs {
		if id == playerID {
			onRoster = true
			break
		}
	}
	if !onRoster {
		return ErrInvalidBatsman
	}
	row, err := s.repo.FindStats(matchID, playerID)
	if err != nil {
		return err
	}
	if row == nil || row.IsOut {
		return ErrInvalidBatsman
	}
	return nil
}

func (s *ScoringService) mustStats(matchID, playerID uint) (*MatchPlayerStats, error) {
	row, err := s.repo.FindStats(matchID, playerID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrInvalidParticipant
	}
	return row, nil
}
