package match

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yultimate/pavilion/config"
	"github.com/yultimate/pavilion/internal/team"
	"github.com/yultimate/pavilion/internal/tournament"
)

// fakeMatchRepo keeps everything in maps so service behavior can be tested
// without a database. Transactions apply directly; the service's rollback
// behavior is the database's job, not under test here.
type fakeMatchRepo struct {
	matches map[uint]*TournamentMatch
	states  map[uint]*MatchState
	stats   map[uint]map[uint]*MatchPlayerStats
	events  []BallEvent
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{
		matches: make(map[uint]*TournamentMatch),
		states:  make(map[uint]*MatchState),
		stats:   make(map[uint]map[uint]*MatchPlayerStats),
	}
}

func (f *fakeMatchRepo) WithTransaction(fn func(MatchRepository) error) error { return fn(f) }

func (f *fakeMatchRepo) CreateMatch(m *TournamentMatch) error {
	m.ID = uint(len(f.matches) + 1)
	f.matches[m.ID] = m
	return nil
}

func (f *fakeMatchRepo) FindMatchByID(id uint) (*TournamentMatch, error) {
	m, ok := f.matches[id]
	if !ok {
		return nil, nil
	}
	return m, nil
}

func (f *fakeMatchRepo) ListMatches(uint, string, int, int) ([]TournamentMatch, int64, error) {
	return nil, 0, nil
}

func (f *fakeMatchRepo) UpdateMatch(m *TournamentMatch) error {
	f.matches[m.ID] = m
	return nil
}

func (f *fakeMatchRepo) CompletedMatches(tournamentID uint) ([]TournamentMatch, error) {
	var out []TournamentMatch
	for _, m := range f.matches {
		if m.TournamentID == tournamentID && m.Status == StatusCompleted {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) OpenMatchCount(tournamentID uint) (int64, error) {
	var count int64
	for _, m := range f.matches {
		if m.TournamentID == tournamentID && m.Status == StatusInProgress {
			count++
		}
	}
	return count, nil
}

func (f *fakeMatchRepo) StaleInProgress(time.Time) ([]TournamentMatch, error) { return nil, nil }

func (f *fakeMatchRepo) CreateState(st *MatchState) error {
	f.states[st.MatchID] = st
	return nil
}

func (f *fakeMatchRepo) FindStateByMatchID(matchID uint) (*MatchState, error) {
	st, ok := f.states[matchID]
	if !ok {
		return nil, nil
	}
	return st, nil
}

func (f *fakeMatchRepo) UpdateState(st *MatchState) error {
	f.states[st.MatchID] = st
	return nil
}

func (f *fakeMatchRepo) CreateStats(rows []MatchPlayerStats) error {
	for i := range rows {
		row := rows[i]
		if f.stats[row.MatchID] == nil {
			f.stats[row.MatchID] = make(map[uint]*MatchPlayerStats)
		}
		f.stats[row.MatchID][row.PlayerID] = &row
	}
	return nil
}

func (f *fakeMatchRepo) FindStats(matchID, playerID uint) (*MatchPlayerStats, error) {
	row, ok := f.stats[matchID][playerID]
	if !ok {
		return nil, nil
	}
	return row, nil
}

func (f *fakeMatchRepo) ListStatsByMatch(matchID uint) ([]MatchPlayerStats, error) {
	var out []MatchPlayerStats
	for _, row := range f.stats[matchID] {
		out = append(out, *row)
	}
	return out, nil
}

func (f *fakeMatchRepo) UpdateStats(row *MatchPlayerStats) error {
	f.stats[row.MatchID][row.PlayerID] = row
	return nil
}

func (f *fakeMatchRepo) DeleteStatsByMatch(matchID uint) error {
	delete(f.stats, matchID)
	return nil
}

func (f *fakeMatchRepo) CreateBallEvent(ev *BallEvent) error {
	f.events = append(f.events, *ev)
	return nil
}

func (f *fakeMatchRepo) ListBallEvents(matchID uint) ([]BallEvent, error) {
	var out []BallEvent
	for _, ev := range f.events {
		if ev.MatchID == matchID {
			out = append(out, ev)
		}
	}
	return out, nil
}

// fakeTeamRepo only implements the roster lookups the scoring service uses.
type fakeTeamRepo struct {
	team.TeamRepository
	rosters map[uint][]uint
}

func (f *fakeTeamRepo) ActiveRosterIDs(teamID uint) ([]uint, error) {
	return f.rosters[teamID], nil
}

func (f *fakeTeamRepo) IsOnRoster(teamID, playerID uint) (bool, error) {
	for _, id := range f.rosters[teamID] {
		if id == playerID {
			return true, nil
		}
	}
	return false, nil
}

type fakeTournamentRepo struct {
	tournament.TournamentRepository
	tournaments map[uint]*tournament.Tournament
}

func (f *fakeTournamentRepo) FindByID(id uint) (*tournament.Tournament, error) {
	return f.tournaments[id], nil
}

type recordingHooks struct {
	finalized    []uint
	recomputed   []uint
	finalizeErr  error
	recomputeErr error
}

func (r *recordingHooks) FinalizeMatch(matchID uint) error {
	if r.finalizeErr != nil {
		return r.finalizeErr
	}
	r.finalized = append(r.finalized, matchID)
	return nil
}

func (r *recordingHooks) Recompute(tournamentID uint) error {
	if r.recomputeErr != nil {
		return r.recomputeErr
	}
	r.recomputed = append(r.recomputed, tournamentID)
	return nil
}

func newTestService() (*ScoringService, *fakeMatchRepo, *recordingHooks) {
	return newTestServiceWithRosters(map[uint][]uint{
		1: {101, 102, 103},
		2: {201, 202, 203},
	})
}

func newTestServiceWithRosters(rosters map[uint][]uint) (*ScoringService, *fakeMatchRepo, *recordingHooks) {
	repo := newFakeMatchRepo()
	repo.matches[1] = &TournamentMatch{
		Model:        gorm.Model{ID: 1},
		TournamentID: 10,
		Team1ID:      1,
		Team2ID:      2,
		Status:       StatusScheduled,
	}

	teams := &fakeTeamRepo{rosters: rosters}
	tournaments := &fakeTournamentRepo{tournaments: map[uint]*tournament.Tournament{
		10: {Status: tournament.StatusOngoing, OversPerMatch: 20},
	}}

	cfg := &config.Config{}
	cfg.Scoring.WinPoints = 2
	cfg.Scoring.TiePoints = 1
	cfg.Scoring.OversPerMatch = 20
	cfg.Scoring.BallsPerOver = 6

	hooks := &recordingHooks{}
	service := NewScoringService(repo, teams, tournaments, cfg, hooks, hooks)
	return service, repo, hooks
}

func startScoringTest(t *testing.T, service *ScoringService) {
	t.Helper()
	_, err := service.Start(1, 1, 1)
	require.NoError(t, err)
	_, err = service.SetBatsmen(1, 101, 102, 101)
	require.NoError(t, err)
	_, err = service.SetBowler(1, 201)
	require.NoError(t, err)
}

func TestServiceStartSeedsStateAndStats(t *testing.T) {
	service, repo, _ := newTestService()

	st, err := service.Start(1, 2, 1)
	require.NoError(t, err)

	assert.Equal(t, StatusInProgress, repo.matches[1].Status)
	assert.Equal(t, uint(1), st.CurrentBattingTeamID)
	assert.Equal(t, uint(2), st.CurrentBowlingTeamID)
	assert.Equal(t, 1, st.InningsNumber)
	assert.Len(t, repo.stats[1], 6)
	for _, row := range repo.stats[1] {
		assert.Zero(t, row.RunsScored)
		assert.False(t, row.IsOut)
	}
}

func TestServiceStartRejectsOutsideTeam(t *testing.T) {
	service, _, _ := newTestService()
	_, err := service.Start(1, 9, 1)
	assert.ErrorIs(t, err, ErrInvalidParticipant)
}

func TestServiceStartRejectsDoubleStart(t *testing.T) {
	service, _, _ := newTestService()
	_, err := service.Start(1, 1, 1)
	require.NoError(t, err)
	_, err = service.Start(1, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestServiceSetBatsmenValidatesRoster(t *testing.T) {
	service, _, _ := newTestService()
	_, err := service.Start(1, 1, 1)
	require.NoError(t, err)

	// A bowling-side player cannot open the batting.
	_, err = service.SetBatsmen(1, 201, 102, 201)
	assert.ErrorIs(t, err, ErrInvalidBatsman)

	// Striker must be one of the pair.
	_, err = service.SetBatsmen(1, 101, 102, 103)
	assert.ErrorIs(t, err, ErrInvalidBatsman)

	_, err = service.SetBatsmen(1, 101, 102, 101)
	assert.NoError(t, err)
}

func TestServiceScoreBeforePlayersSetRejected(t *testing.T) {
	service, _, _ := newTestService()
	_, err := service.Start(1, 1, 1)
	require.NoError(t, err)

	_, err = service.AddScore(1, 4, nil)
	assert.ErrorIs(t, err, ErrPlayersNotSet)
}

func TestServiceStaleSequenceRejected(t *testing.T) {
	service, repo, _ := newTestService()
	startScoringTest(t, service)

	seq := 0
	_, err := service.AddScore(1, 4, &seq)
	require.NoError(t, err)

	// A duplicate submission carries the old sequence number.
	_, err = service.AddScore(1, 4, &seq)
	assert.ErrorIs(t, err, ErrStaleSequence)
	assert.Equal(t, 4, repo.matches[1].Team1Runs)

	seq = 1
	_, err = service.AddScore(1, 1, &seq)
	assert.NoError(t, err)
}

func TestServiceScoreAppendsLedger(t *testing.T) {
	service, repo, _ := newTestService()
	startScoringTest(t, service)

	_, err := service.AddScore(1, 6, nil)
	require.NoError(t, err)
	_, err = service.AddWicket(1, 103, nil, nil)
	require.NoError(t, err)

	require.Len(t, repo.events, 2)
	assert.Equal(t, EventScore, repo.events[0].EventType)
	assert.Equal(t, 1, repo.events[0].Sequence)
	assert.Equal(t, EventWicket, repo.events[1].EventType)
	assert.Equal(t, 2, repo.events[1].Sequence)
	require.NotNil(t, repo.events[1].DismissedID)
	assert.Equal(t, uint(101), *repo.events[1].DismissedID)
}

func TestServiceCompleteRequiresSecondInnings(t *testing.T) {
	service, _, hooks := newTestService()
	startScoringTest(t, service)

	_, err := service.Complete(1, nil)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Empty(t, hooks.finalized)
}

func TestServiceCompleteFiresHooksAndDecidesWinner(t *testing.T) {
	service, repo, hooks := newTestService()
	startScoringTest(t, service)

	_, err := service.AddScore(1, 4, nil)
	require.NoError(t, err)

	_, err = service.SwitchInnings(1)
	require.NoError(t, err)
	_, err = service.SetBatsmen(1, 201, 202, 201)
	require.NoError(t, err)
	_, err = service.SetBowler(1, 101)
	require.NoError(t, err)
	_, err = service.AddScore(1, 6, nil)
	require.NoError(t, err)

	m, err := service.Complete(1, nil)
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, m.Status)
	assert.True(t, m.IsCompleted)
	require.NotNil(t, m.WinnerTeamID)
	assert.Equal(t, uint(2), *m.WinnerTeamID)
	assert.Equal(t, []uint{1}, hooks.finalized)
	assert.Equal(t, []uint{10}, hooks.recomputed)
	assert.Equal(t, StatusCompleted, repo.matches[1].Status)
}

func TestServiceCompleteRevertsWhenFinalizerFails(t *testing.T) {
	service, repo, hooks := newTestService()
	startScoringTest(t, service)

	_, err := service.AddScore(1, 4, nil)
	require.NoError(t, err)
	_, err = service.SwitchInnings(1)
	require.NoError(t, err)
	_, err = service.SetBatsmen(1, 201, 202, 201)
	require.NoError(t, err)
	_, err = service.SetBowler(1, 101)
	require.NoError(t, err)
	_, err = service.AddScore(1, 6, nil)
	require.NoError(t, err)

	hooks.finalizeErr = errors.New("career rollup unavailable")
	_, err = service.Complete(1, nil)
	require.Error(t, err)

	// The match must stay live and retryable, with no outcome persisted.
	m := repo.matches[1]
	assert.Equal(t, StatusInProgress, m.Status)
	assert.False(t, m.IsCompleted)
	assert.Nil(t, m.WinnerTeamID)
	assert.False(t, m.IsTie)
	assert.Empty(t, hooks.finalized)

	hooks.finalizeErr = nil
	m, err = service.Complete(1, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, m.Status)
	require.NotNil(t, m.WinnerTeamID)
	assert.Equal(t, uint(2), *m.WinnerTeamID)
	assert.Equal(t, []uint{1}, hooks.finalized)
}

func TestServiceCompleteRevertsWhenRecomputeFails(t *testing.T) {
	service, repo, hooks := newTestService()
	startScoringTest(t, service)

	_, err := service.AddScore(1, 4, nil)
	require.NoError(t, err)
	_, err = service.SwitchInnings(1)
	require.NoError(t, err)
	_, err = service.SetBatsmen(1, 201, 202, 201)
	require.NoError(t, err)
	_, err = service.SetBowler(1, 101)
	require.NoError(t, err)

	hooks.recomputeErr = errors.New("points table unavailable")
	_, err = service.Complete(1, nil)
	require.Error(t, err)

	assert.Equal(t, StatusInProgress, repo.matches[1].Status)
	assert.Empty(t, hooks.finalized)
	assert.Empty(t, hooks.recomputed)
}

func TestServiceEmptyRosterBlocksAssignments(t *testing.T) {
	service, repo, _ := newTestServiceWithRosters(map[uint][]uint{1: {}, 2: {}})

	// A roster-less match can still start; it just has no stats to seed.
	_, err := service.Start(1, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, repo.stats[1])

	_, err = service.SetBatsmen(1, 101, 102, 101)
	assert.ErrorIs(t, err, ErrEmptyRoster)

	_, err = service.SetBowler(1, 201)
	assert.ErrorIs(t, err, ErrEmptyRoster)
}

func TestServiceCancelDiscardsStats(t *testing.T) {
	service, repo, hooks := newTestService()
	startScoringTest(t, service)

	_, err := service.AddScore(1, 4, nil)
	require.NoError(t, err)

	m, err := service.Cancel(1)
	require.NoError(t, err)

	assert.Equal(t, StatusCancelled, m.Status)
	assert.Empty(t, repo.stats[1])
	assert.Empty(t, hooks.recomputed)

	// Terminal: no further scoring.
	_, err = service.AddScore(1, 1, nil)
	assert.ErrorIs(t, err, ErrInvalidState)
}
