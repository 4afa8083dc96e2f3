package match

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type MatchRepository interface {
	WithTransaction(fn func(MatchRepository) error) error

	CreateMatch(m *TournamentMatch) error
	FindMatchByID(id uint) (*TournamentMatch, error)
	ListMatches(tournamentID uint, status string, limit, offset int) ([]TournamentMatch, int64, error)
	UpdateMatch(m *TournamentMatch) error
	CompletedMatches(tournamentID uint) ([]TournamentMatch, error)
	OpenMatchCount(tournamentID uint) (int64, error)
	StaleInProgress(startedBefore time.Time) ([]TournamentMatch, error)

	CreateState(st *MatchState) error
	FindStateByMatchID(matchID uint) (*MatchState, error)
	UpdateState(st *MatchState) error

	CreateStats(rows []MatchPlayerStats) error
	FindStats(matchID, playerID uint) (*MatchPlayerStats, error)
	ListStatsByMatch(matchID uint) ([]MatchPlayerStats, error)
	UpdateStats(row *MatchPlayerStats) error
	DeleteStatsByMatch(matchID uint) error

	CreateBallEvent(ev *BallEvent) error
	ListBallEvents(matchID uint) ([]BallEvent, error)
}

type GormMatchRepository struct {
	db *gorm.DB
}

func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

func (r *GormMatchRepository) WithTransaction(fn func(MatchRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGormMatchRepository(tx))
	})
}

func (r *GormMatchRepository) CreateMatch(m *TournamentMatch) error {
	return r.db.Create(m).Error
}

func (r *GormMatchRepository) FindMatchByID(id uint) (*TournamentMatch, error) {
	var m TournamentMatch
	err := r.db.First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GormMatchRepository) ListMatches(tournamentID uint, status string, limit, offset int) ([]TournamentMatch, int64, error) {
	var matches []TournamentMatch
	var total int64

	query := r.db.Model(&TournamentMatch{})
	if tournamentID != 0 {
		query = query.Where("tournament_id = ?", tournamentID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Limit(limit).Offset(offset).Order("id").Find(&matches).Error; err != nil {
		return nil, 0, err
	}
	return matches, total, nil
}

func (r *GormMatchRepository) UpdateMatch(m *TournamentMatch) error {
	return r.db.Save(m).Error
}

func (r *GormMatchRepository) CompletedMatches(tournamentID uint) ([]TournamentMatch, error) {
	var matches []TournamentMatch
	err := r.db.Where("tournament_id = ? AND status = ?", tournamentID, StatusCompleted).
		Order("id").Find(&matches).Error
	return matches, err
}

func (r *GormMatchRepository) OpenMatchCount(tournamentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&TournamentMatch{}).
		Where("tournament_id = ? AND status = ?", tournamentID, StatusInProgress).
		Count(&count).Error
	return count, err
}

func (r *GormMatchRepository) StaleInProgress(startedBefore time.Time) ([]TournamentMatch, error) {
	var matches []TournamentMatch
	err := r.db.Where("status = ? AND updated_at < ?", StatusInProgress, startedBefore).
		Find(&matches).Error
	return matches, err
}

func (r *GormMatchRepository) CreateState(st *MatchState) error {
	return r.db.Create(st).Error
}

func (r *GormMatchRepository) FindStateByMatchID(matchID uint) (*MatchState, error) {
	var st MatchState
	err := r.db.Where("match_id = ?", matchID).First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *GormMatchRepository) UpdateState(st *MatchState) error {
	return r.db.Save(st).Error
}

func (r *GormMatchRepository) CreateStats(rows []MatchPlayerStats) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.Create(&rows).Error
}

func (r *GormMatchRepository) FindStats(matchID, playerID uint) (*MatchPlayerStats, error) {
	var row MatchPlayerStats
	err := r.db.Where("match_id = ? AND player_id = ?", matchID, playerID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormMatchRepository) ListStatsByMatch(matchID uint) ([]MatchPlayerStats, error) {
	var rows []MatchPlayerStats
	err := r.db.Where("match_id = ?", matchID).Order("team_id, player_id").Find(&rows).Error
	return rows, err
}

func (r *GormMatchRepository) UpdateStats(row *MatchPlayerStats) error {
	return r.db.Save(row).Error
}

func (r *GormMatchRepository) DeleteStatsByMatch(matchID uint) error {
	return r.db.Unscoped().Where("match_id = ?", matchID).Delete(&MatchPlayerStats{}).Error
}

func (r *GormMatchRepository) CreateBallEvent(ev *BallEvent) error {
	return r.db.Create(ev).Error
}

func (r *GormMatchRepository) ListBallEvents(matchID uint) ([]BallEvent, error) {
	var events []BallEvent
	err := r.db.Where("match_id = ?", matchID).Order("sequence").Find(&events).Error
	return events, err
}
