package stats

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yultimate/pavilion/internal/match"
)

type StatsRepository interface {
	WithTransaction(fn func(StatsRepository) error) error
	FindCareerByPlayerID(playerID uint) (*PlayerCareerStats, error)
	SaveCareer(row *PlayerCareerStats) error
	MatchStats(matchID uint) ([]match.MatchPlayerStats, error)
	ManOfTheMatch(matchID uint) (*uint, error)
	TournamentLeaderboard(tournamentID uint) ([]LeaderboardEntry, error)
}

type GormStatsRepository struct {
	db *gorm.DB
}

func NewGormStatsRepository(db *gorm.DB) *GormStatsRepository {
	return &GormStatsRepository{db: db}
}

func (r *GormStatsRepository) WithTransaction(fn func(StatsRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGormStatsRepository(tx))
	})
}

func (r *GormStatsRepository) FindCareerByPlayerID(playerID uint) (*PlayerCareerStats, error) {
	var row PlayerCareerStats
	err := r.db.Where("player_id = ?", playerID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormStatsRepository) SaveCareer(row *PlayerCareerStats) error {
	return r.db.Save(row).Error
}

func (r *GormStatsRepository) MatchStats(matchID uint) ([]match.MatchPlayerStats, error) {
	var rows []match.MatchPlayerStats
	err := r.db.Where("match_id = ?", matchID).Find(&rows).Error
	return rows, err
}

func (r *GormStatsRepository) ManOfTheMatch(matchID uint) (*uint, error) {
	var m match.TournamentMatch
	err := r.db.Select("man_of_the_match_id").First(&m, matchID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m.ManOfTheMatchID, nil
}

// TournamentLeaderboard aggregates match stats across the tournament's
// completed matches. Cancelled matches have no stats rows left, so only the
// status filter on the join is needed.
func (r *GormStatsRepository) TournamentLeaderboard(tournamentID uint) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	err := r.db.Model(&match.MatchPlayerStats{}).
		Select(`match_player_stats.player_id,
			SUM(match_player_stats.runs_scored) AS runs,
			SUM(match_player_stats.balls_faced) AS balls_faced,
			SUM(match_player_stats.fours) AS fours,
			SUM(match_player_stats.sixes) AS sixes,
			SUM(match_player_stats.wickets_taken) AS wickets,
			SUM(match_player_stats.runs_conceded) AS runs_conceded,
			SUM(match_player_stats.balls_bowled) AS balls_bowled`).
		Joins("JOIN tournament_matches ON tournament_matches.id = match_player_stats.match_id").
		Where("tournament_matches.tournament_id = ? AND tournament_matches.status = ?",
			tournamentID, match.StatusCompleted).
		Group("match_player_stats.player_id").
		Order("runs DESC, wickets DESC, match_player_stats.player_id").
		Scan(&entries).Error
	return entries, err
}
