package points

import (
	"sort"

	"github.com/yultimate/pavilion/config"
	"github.com/yultimate/pavilion/internal/match"
	"github.com/yultimate/pavilion/internal/tournament"
)

// CompletedMatch pairs a finished match with its retained scoring state,
// which carries the per-team ball counts the net run rate needs.
type CompletedMatch struct {
	Match match.TournamentMatch
	State match.MatchState
}

type teamTally struct {
	played, won, lost, tied int
	runsFor, ballsFaced     int
	runsAgainst, ballsBowled int
}

// BuildTable replays the completed matches of a tournament into a standings
// table. Cancelled and still-open matches must not be passed in. Ordering is
// points then net run rate, both descending, then team ID for stability.
func BuildTable(teamIDs []uint, completed []CompletedMatch, winPoints, tiePoints, lossPoints, ballsPerOver int) []PointsTableEntry {
	tallies := make(map[uint]*teamTally, len(teamIDs))
	for _, id := range teamIDs {
		tallies[id] = &teamTally{}
	}

	tally := func(teamID uint) *teamTally {
		t, ok := tallies[teamID]
		if !ok {
			t = &teamTally{}
			tallies[teamID] = t
		}
		return t
	}

	for _, cm := range completed {
		m := cm.Match
		if !outcomeRecorded(&m) {
			continue
		}
		t1 := tally(m.Team1ID)
		t2 := tally(m.Team2ID)

		t1.played++
		t2.played++

		t1.runsFor += m.Team1Runs
		t1.runsAgainst += m.Team2Runs
		t1.ballsFaced += cm.State.Team1Balls
		t1.ballsBowled += cm.State.Team2Balls

		t2.runsFor += m.Team2Runs
		t2.runsAgainst += m.Team1Runs
		t2.ballsFaced += cm.State.Team2Balls
		t2.ballsBowled += cm.State.Team1Balls

		switch {
		case m.IsTie:
			t1.tied++
			t2.tied++
		case *m.WinnerTeamID == m.Team1ID:
			t1.won++
			t2.lost++
		case *m.WinnerTeamID == m.Team2ID:
			t2.won++
			t1.lost++
		}
	}

	entries := make([]PointsTableEntry, 0, len(tallies))
	for teamID, t := range tallies {
		entries = append(entries, PointsTableEntry{
			TeamID:        teamID,
			MatchesPlayed: t.played,
			MatchesWon:    t.won,
			MatchesLost:   t.lost,
			MatchesTied:   t.tied,
			Points:        t.won*winPoints + t.tied*tiePoints + t.lost*lossPoints,
			NetRunRate:    runRate(t.runsFor, t.ballsFaced, ballsPerOver) - runRate(t.runsAgainst, t.ballsBowled, ballsPerOver),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		if entries[i].NetRunRate != entries[j].NetRunRate {
			return entries[i].NetRunRate > entries[j].NetRunRate
		}
		return entries[i].TeamID < entries[j].TeamID
	})
	return entries
}

// outcomeRecorded reports whether a completed match carries a usable result.
// A row with no winner and no tie flag is malformed and must not skew the
// table, so BuildTable drops it entirely.
func outcomeRecorded(m *match.TournamentMatch) bool {
	if m.IsTie {
		return true
	}
	return m.WinnerTeamID != nil && (*m.WinnerTeamID == m.Team1ID || *m.WinnerTeamID == m.Team2ID)
}

func runRate(runs, balls, ballsPerOver int) float64 {
	if balls == 0 {
		return 0
	}
	return float64(runs) / (float64(balls) / float64(ballsPerOver))
}

// Calculator persists recomputed standings and serves them back. It
// implements the recompute hook the scoring service fires on completion and
// the standings lookup the tournament lifecycle uses for the winner award.
type Calculator struct {
	repo      PointsRepository
	matchRepo match.MatchRepository
	tourRepo  tournament.TournamentRepository
	cfg       *config.Config
}

func NewCalculator(repo PointsRepository, matchRepo match.MatchRepository, tourRepo tournament.TournamentRepository, cfg *config.Config) *Calculator {
	return &Calculator{repo: repo, matchRepo: matchRepo, tourRepo: tourRepo, cfg: cfg}
}

// Recompute rebuilds the tournament's table from every completed match.
// Matches whose scoring state has been lost are skipped rather than failing
// the whole recompute.
func (calc *Calculator) Recompute(tournamentID uint) error {
	teamIDs, err := calc.tourRepo.TeamIDs(tournamentID)
	if err != nil {
		return err
	}
	matches, err := calc.matchRepo.CompletedMatches(tournamentID)
	if err != nil {
		return err
	}

	completed := make([]CompletedMatch, 0, len(matches))
	for _, m := range matches {
		st, err := calc.matchRepo.FindStateByMatchID(m.ID)
		if err != nil {
			return err
		}
		if st == nil {
			continue
		}
		completed = append(completed, CompletedMatch{Match: m, State: *st})
	}

	entries := BuildTable(teamIDs, completed,
		calc.cfg.Scoring.WinPoints, calc.cfg.Scoring.TiePoints, calc.cfg.Scoring.LossPoints,
		calc.cfg.Scoring.BallsPerOver)
	for i := range entries {
		entries[i].TournamentID = tournamentID
	}
	return calc.repo.ReplaceTable(tournamentID, entries)
}

// Table returns the stored standings in ranking order.
func (calc *Calculator) Table(tournamentID uint) ([]PointsTableEntry, error) {
	return calc.repo.Table(tournamentID)
}

// WinningTeam returns the top-ranked team, or zero when no match has been
// completed yet.
func (calc *Calculator) WinningTeam(tournamentID uint) (uint, int, error) {
	entries, err := calc.repo.Table(tournamentID)
	if err != nil {
		return 0, 0, err
	}
	if len(entries) == 0 || entries[0].MatchesPlayed == 0 {
		return 0, 0, nil
	}
	return entries[0].TeamID, entries[0].Points, nil
}

var _ match.PointsRecomputer = (*Calculator)(nil)
var _ tournament.StandingsProvider = (*Calculator)(nil)
