package points

import "gorm.io/gorm"

// PointsTableEntry is one team's line in a tournament standings table. The
// whole table is rebuilt from completed matches on every recompute, so rows
// never drift from the match history.
type PointsTableEntry struct {
	gorm.Model
	TournamentID uint `gorm:"not null;index:idx_tournament_team_points,unique" json:"tournament_id"`
	TeamID       uint `gorm:"not null;index:idx_tournament_team_points,unique" json:"team_id"`

	MatchesPlayed int `gorm:"not null;default:0" json:"matches_played"`
	MatchesWon    int `gorm:"not null;default:0" json:"matches_won"`
	MatchesLost   int `gorm:"not null;default:0" json:"matches_lost"`
	MatchesTied   int `gorm:"not null;default:0" json:"matches_tied"`
	Points        int `gorm:"not null;default:0" json:"points"`

	NetRunRate float64 `gorm:"not null;default:0" json:"net_run_rate"`
}
