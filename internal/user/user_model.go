package user

import "gorm.io/gorm"

// Role values a user account may hold. A single role per account; the match
// scoring surface is writable by managers and admins only.
const (
	RolePlayer  = "player"
	RoleCoach   = "coach"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	Role     string `gorm:"index;not null;default:'player'" json:"role"`
	FullName string `json:"full_name,omitempty"`
}
