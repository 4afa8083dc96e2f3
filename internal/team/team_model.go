package team

import "gorm.io/gorm"

// Team is a named squad owned by a coach. Sport is free text but must match
// the tournament's sport before the team can be entered into it.
type Team struct {
	gorm.Model
	Name    string `gorm:"not null;uniqueIndex" json:"name"`
	Sport   string `gorm:"not null;index" json:"sport"`
	CoachID uint   `gorm:"not null;index" json:"coach_id"`
	City    string `json:"city"`

	Members []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}

// TeamMember links a player account to a team roster. Inactive rows are kept
// for history; only active members count toward match eligibility.
type TeamMember struct {
	gorm.Model
	TeamID   uint   `gorm:"not null;index:idx_team_player,unique" json:"team_id"`
	PlayerID uint   `gorm:"not null;index:idx_team_player,unique" json:"player_id"`
	Position string `json:"position"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`
}
