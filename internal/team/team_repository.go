package team

import (
	"errors"

	"gorm.io/gorm"
)

type TeamRepository interface {
	CreateTeam(team *Team) error
	FindTeamByID(id uint) (*Team, error)
	FindTeamByName(name string) (*Team, error)
	ListTeams(sport string, limit, offset int) ([]Team, int64, error)
	UpdateTeam(team *Team) error
	DeleteTeam(id uint) error

	AddMember(member *TeamMember) error
	UpdateMember(member *TeamMember) error
	FindMember(teamID, playerID uint) (*TeamMember, error)
	DeactivateMember(teamID, playerID uint) error
	ActiveRoster(teamID uint) ([]TeamMember, error)
	ActiveRosterIDs(teamID uint) ([]uint, error)
	IsOnRoster(teamID, playerID uint) (bool, error)
}

type GormTeamRepository struct {
	db *gorm.DB
}

func NewGormTeamRepository(db *gorm.DB) *GormTeamRepository {
	return &GormTeamRepository{db: db}
}

func (r *GormTeamRepository) CreateTeam(team *Team) error {
	return r.db.Create(team).Error
}

func (r *GormTeamRepository) FindTeamByID(id uint) (*Team, error) {
	var team Team
	err := r.db.Preload("Members", "is_active = ?", true).First(&team, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *GormTeamRepository) FindTeamByName(name string) (*Team, error) {
	var team Team
	err := r.db.Where("name = ?", name).First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *GormTeamRepository) ListTeams(sport string, limit, offset int) ([]Team, int64, error) {
	var teams []Team
	var total int64

	query := r.db.Model(&Team{})
	if sport != "" {
		query = query.Where("sport = ?", sport)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Limit(limit).Offset(offset).Order("id").Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (r *GormTeamRepository) UpdateTeam(team *Team) error {
	return r.db.Save(team).Error
}

func (r *GormTeamRepository) DeleteTeam(id uint) error {
	return r.db.Delete(&Team{}, id).Error
}

func (r *GormTeamRepository) AddMember(member *TeamMember) error {
	return r.db.Create(member).Error
}

func (r *GormTeamRepository) UpdateMember(member *TeamMember) error {
	return r.db.Save(member).Error
}

func (r *GormTeamRepository) FindMember(teamID, playerID uint) (*TeamMember, error) {
	var member TeamMember
	err := r.db.Where("team_id = ? AND player_id = ?", teamID, playerID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *GormTeamRepository) DeactivateMember(teamID, playerID uint) error {
	return r.db.Model(&TeamMember{}).
		Where("team_id = ? AND player_id = ?", teamID, playerID).
		Update("is_active", false).Error
}

func (r *GormTeamRepository) ActiveRoster(teamID uint) ([]TeamMember, error) {
	var members []TeamMember
	err := r.db.Where("team_id = ? AND is_active = ?", teamID, true).
		Order("id").Find(&members).Error
	return members, err
}

func (r *GormTeamRepository) ActiveRosterIDs(teamID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&TeamMember{}).
		Where("team_id = ? AND is_active = ?", teamID, true).
		Order("id").Pluck("player_id", &ids).Error
	return ids, err
}

func (r *GormTeamRepository) IsOnRoster(teamID, playerID uint) (bool, error) {
	var count int64
	err := r.db.Model(&TeamMember{}).
		Where("team_id = ? AND player_id = ? AND is_active = ?", teamID, playerID, true).
		Count(&count).Error
	return count > 0, err
}
