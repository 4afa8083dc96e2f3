package stats

import (
	"github.com/yultimate/pavilion/config"
	"github.com/yultimate/pavilion/internal/match"
	"github.com/yultimate/pavilion/internal/tournament"
)

// Aggregator rolls per-match player stats into career totals and serves
// tournament leaderboards. It implements the finalizer hook the scoring
// service fires on match completion and the honours lookup the tournament
// lifecycle consumes when a tournament ends.
type Aggregator struct {
	repo StatsRepository
	cfg  *config.Config
}

func NewAggregator(repo StatsRepository, cfg *config.Config) *Aggregator {
	return &Aggregator{repo: repo, cfg: cfg}
}

// FinalizeMatch folds every stats row of a completed match into the owning
// player's career totals. Players who never faced or bowled a ball still get
// a match played. The rollup runs in one transaction so a failed run leaves
// every career untouched and can be retried.
func (a *Aggregator) FinalizeMatch(matchID uint) error {
	rows, err := a.repo.MatchStats(matchID)
	if err != nil {
		return err
	}
	momID, err := a.repo.ManOfTheMatch(matchID)
	if err != nil {
		return err
	}

	return a.repo.WithTransaction(func(tx StatsRepository) error {
		for _, row := range rows {
			career, err := tx.FindCareerByPlayerID(row.PlayerID)
			if err != nil {
				return err
			}
			if career == nil {
				career = &PlayerCareerStats{PlayerID: row.PlayerID}
			}

			career.MatchesPlayed++
			career.TotalRuns += row.RunsScored
			career.TotalBallsFaced += row.BallsFaced
			career.TotalFours += row.Fours
			career.TotalSixes += row.Sixes
			if row.IsOut {
				career.TimesOut++
			}
			career.TotalWickets += row.WicketsTaken
			career.TotalBallsBowled += row.BallsBowled
			career.TotalRunsConceded += row.RunsConceded
			if row.RunsScored > career.HighestScore {
				career.HighestScore = row.RunsScored
			}
			if momID != nil && *momID == row.PlayerID {
				career.ManOfTheMatchAwards++
			}

			if err := tx.SaveCareer(career); err != nil {
				return err
			}
		}
		return nil
	})
}

// Career returns a player's career totals with the derived rates filled in.
// A player with no completed matches gets a zeroed summary.
func (a *Aggregator) Career(playerID uint) (*CareerSummary, error) {
	career, err := a.repo.FindCareerByPlayerID(playerID)
	if err != nil {
		return nil, err
	}
	if career == nil {
		career = &PlayerCareerStats{PlayerID: playerID}
	}

	return &CareerSummary{
		PlayerCareerStats: *career,
		StrikeRate:        StrikeRate(career.TotalRuns, career.TotalBallsFaced),
		BattingAverage:    BattingAverage(career.TotalRuns, career.TimesOut),
		BowlingEconomy:    BowlingEconomy(career.TotalRunsConceded, career.TotalBallsBowled, a.cfg.Scoring.BallsPerOver),
	}, nil
}

// Leaderboard returns the tournament's per-player aggregates, best batting
// first.
func (a *Aggregator) Leaderboard(tournamentID uint) ([]LeaderboardEntry, error) {
	return a.repo.TournamentLeaderboard(tournamentID)
}

// TournamentHonours picks the top scorer and the leading wicket taker out of
// the tournament leaderboard. Either can be absent when no completed match
// produced runs or wickets.
func (a *Aggregator) TournamentHonours(tournamentID uint) (*tournament.HonoursSummary, error) {
	entries, err := a.repo.TournamentLeaderboard(tournamentID)
	if err != nil {
		return nil, err
	}

	honours := &tournament.HonoursSummary{}
	for _, e := range entries {
		if e.Runs > honours.TopScorerRuns {
			honours.TopScorerID = e.PlayerID
			honours.TopScorerRuns = e.Runs
		}
		if e.Wickets > honours.TopWicketTakerWickets {
			honours.TopWicketTakerID = e.PlayerID
			honours.TopWicketTakerWickets = e.Wickets
		}
	}
	return honours, nil
}

var _ match.StatsFinalizer = (*Aggregator)(nil)
var _ tournament.LeaderboardProvider = (*Aggregator)(nil)
