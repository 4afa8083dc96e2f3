package tournament

import (
	"errors"

	"gorm.io/gorm"
)

type TournamentRepository interface {
	Create(t *Tournament) error
	FindByID(id uint) (*Tournament, error)
	FindByName(name string) (*Tournament, error)
	List(status string, limit, offset int) ([]Tournament, int64, error)
	Update(t *Tournament) error

	AddTeam(entry *TournamentTeam) error
	HasTeam(tournamentID, teamID uint) (bool, error)
	TeamIDs(tournamentID uint) ([]uint, error)

	CreateAchievements(achievements []Achievement) error
	ListAchievements(tournamentID uint) ([]Achievement, error)
}

type GormTournamentRepository struct {
	db *gorm.DB
}

func NewGormTournamentRepository(db *gorm.DB) *GormTournamentRepository {
	return &GormTournamentRepository{db: db}
}

func (r *GormTournamentRepository) Create(t *Tournament) error {
	return r.db.Create(t).Error
}

func (r *GormTournamentRepository) FindByID(id uint) (*Tournament, error) {
	var t Tournament
	err := r.db.Preload("Teams").First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *GormTournamentRepository) FindByName(name string) (*Tournament, error) {
	var t Tournament
	err := r.db.Where("name = ?", name).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *GormTournamentRepository) List(status string, limit, offset int) ([]Tournament, int64, error) {
	var tournaments []Tournament
	var total int64

	query := r.db.Model(&Tournament{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Limit(limit).Offset(offset).Order("id").Find(&tournaments).Error; err != nil {
		return nil, 0, err
	}
	return tournaments, total, nil
}

func (r *GormTournamentRepository) Update(t *Tournament) error {
	return r.db.Save(t).Error
}

func (r *GormTournamentRepository) AddTeam(entry *TournamentTeam) error {
	return r.db.Create(entry).Error
}

func (r *GormTournamentRepository) HasTeam(tournamentID, teamID uint) (bool, error) {
	var count int64
	err := r.db.Model(&TournamentTeam{}).
		Where("tournament_id = ? AND team_id = ?", tournamentID, teamID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormTournamentRepository) TeamIDs(tournamentID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&TournamentTeam{}).
		Where("tournament_id = ?", tournamentID).
		Order("team_id").Pluck("team_id", &ids).Error
	return ids, err
}

func (r *GormTournamentRepository) CreateAchievements(achievements []Achievement) error {
	if len(achievements) == 0 {
		return nil
	}
	return r.db.Create(&achievements).Error
}

func (r *GormTournamentRepository) ListAchievements(tournamentID uint) ([]Achievement, error) {
	var achievements []Achievement
	err := r.db.Where("tournament_id = ?", tournamentID).Order("id").Find(&achievements).Error
	return achievements, err
}
