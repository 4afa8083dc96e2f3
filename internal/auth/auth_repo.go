package auth

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yultimate/pavilion/internal/user"
)

// AuthRepository defines the account lookups the auth handlers need.
type AuthRepository interface {
	CreateUser(u *user.User) error
	FindUserByUsername(username string) (*user.User, error)
	FindUserByEmail(email string) (*user.User, error)
	FindUserByID(id uint) (*user.User, error)
}

type GormAuthRepository struct {
	db *gorm.DB
}

func NewGormAuthRepository(db *gorm.DB) *GormAuthRepository {
	return &GormAuthRepository{db: db}
}

func (r *GormAuthRepository) CreateUser(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *GormAuthRepository) FindUserByUsername(username string) (*user.User, error) {
	var u user.User
	result := r.db.Where("username = ?", username).First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &u, nil
}

func (r *GormAuthRepository) FindUserByEmail(email string) (*user.User, error) {
	var u user.User
	result := r.db.Where("email = ?", email).First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &u, nil
}

func (r *GormAuthRepository) FindUserByID(id uint) (*user.User, error) {
	var u user.User
	result := r.db.First(&u, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &u, nil
}
