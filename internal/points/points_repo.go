package points

import "gorm.io/gorm"

type PointsRepository interface {
	ReplaceTable(tournamentID uint, entries []PointsTableEntry) error
	Table(tournamentID uint) ([]PointsTableEntry, error)
}

type GormPointsRepository struct {
	db *gorm.DB
}

func NewGormPointsRepository(db *gorm.DB) *GormPointsRepository {
	return &GormPointsRepository{db: db}
}

// ReplaceTable swaps the tournament's standings wholesale inside one
// transaction, so readers never observe a half-written table.
func (r *GormPointsRepository) ReplaceTable(tournamentID uint, entries []PointsTableEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("tournament_id = ?", tournamentID).
			Delete(&PointsTableEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

func (r *GormPointsRepository) Table(tournamentID uint) ([]PointsTableEntry, error) {
	var entries []PointsTableEntry
	err := r.db.Where("tournament_id = ?", tournamentID).
		Order("points DESC, net_run_rate DESC, team_id").
		Find(&entries).Error
	return entries, err
}
