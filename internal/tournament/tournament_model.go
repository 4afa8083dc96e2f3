package tournament

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
)

// Tournament moves through upcoming -> ongoing -> completed. Matches can only
// be scheduled and scored while the tournament is ongoing.
type Tournament struct {
	gorm.Model
	Name          string     `gorm:"not null;uniqueIndex" json:"name"`
	Sport         string     `gorm:"not null;index" json:"sport"`
	Status        string     `gorm:"not null;default:'upcoming';index" json:"status"`
	ManagerID     uint       `gorm:"not null;index" json:"manager_id"`
	OversPerMatch int        `gorm:"not null;default:20" json:"overs_per_match"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`

	Teams []TournamentTeam `gorm:"foreignKey:TournamentID" json:"teams,omitempty"`
}

// TournamentTeam is the entry of a team into a tournament.
type TournamentTeam struct {
	gorm.Model
	TournamentID uint `gorm:"not null;index:idx_tournament_team,unique" json:"tournament_id"`
	TeamID       uint `gorm:"not null;index:idx_tournament_team,unique" json:"team_id"`
}

// Achievement records tournament honours awarded when the tournament ends,
// such as the winning team, top scorer and leading wicket taker.
type Achievement struct {
	gorm.Model
	TournamentID uint   `gorm:"not null;index" json:"tournament_id"`
	Title        string `gorm:"not null" json:"title"`
	TeamID       *uint  `json:"team_id,omitempty"`
	PlayerID     *uint  `json:"player_id,omitempty"`
	Value        int    `json:"value"`
}
