package stats

import "gorm.io/gorm"

// PlayerCareerStats accumulates a player's totals across completed matches.
// Rates are derived on read, never stored.
type PlayerCareerStats struct {
	gorm.Model
	PlayerID uint `gorm:"not null;uniqueIndex" json:"player_id"`

	MatchesPlayed int `gorm:"not null;default:0" json:"matches_played"`

	TotalRuns       int `gorm:"not null;default:0" json:"total_runs"`
	TotalBallsFaced int `gorm:"not null;default:0" json:"total_balls_faced"`
	TotalFours      int `gorm:"not null;default:0" json:"total_fours"`
	TotalSixes      int `gorm:"not null;default:0" json:"total_sixes"`
	TimesOut        int `gorm:"not null;default:0" json:"times_out"`

	TotalWickets      int `gorm:"not null;default:0" json:"total_wickets"`
	TotalBallsBowled  int `gorm:"not null;default:0" json:"total_balls_bowled"`
	TotalRunsConceded int `gorm:"not null;default:0" json:"total_runs_conceded"`

	HighestScore        int `gorm:"not null;default:0" json:"highest_score"`
	ManOfTheMatchAwards int `gorm:"not null;default:0" json:"man_of_the_match_awards"`
}

// CareerSummary is the read view served to player dashboards, with the
// derived rates filled in.
type CareerSummary struct {
	PlayerCareerStats
	StrikeRate     float64 `json:"strike_rate"`
	BattingAverage float64 `json:"batting_average"`
	BowlingEconomy float64 `json:"bowling_economy"`
}

// StrikeRate is runs per hundred balls faced, zero before the first ball.
func StrikeRate(runs, ballsFaced int) float64 {
	if ballsFaced == 0 {
		return 0
	}
	return float64(runs) * 100 / float64(ballsFaced)
}

// BattingAverage is runs per dismissal. A never-dismissed batsman has no
// meaningful average; total runs is returned so dashboards show something.
func BattingAverage(runs, timesOut int) float64 {
	if timesOut == 0 {
		return float64(runs)
	}
	return float64(runs) / float64(timesOut)
}

// BowlingEconomy is runs conceded per over bowled, zero before the first
// delivery.
func BowlingEconomy(runsConceded, ballsBowled, ballsPerOver int) float64 {
	if ballsBowled == 0 {
		return 0
	}
	return float64(runsConceded) / (float64(ballsBowled) / float64(ballsPerOver))
}

// LeaderboardEntry is one player's line in a tournament leaderboard,
// aggregated across the tournament's completed matches.
type LeaderboardEntry struct {
	PlayerID     uint `json:"player_id"`
	Runs         int  `json:"runs"`
	BallsFaced   int  `json:"balls_faced"`
	Fours        int  `json:"fours"`
	Sixes        int  `json:"sixes"`
	Wickets      int  `json:"wickets"`
	RunsConceded int  `json:"runs_conceded"`
	BallsBowled  int  `json:"balls_bowled"`
}
