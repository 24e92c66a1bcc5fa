package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/muniempleo/intake-api/internal/models"
)

// UserRepository persists staff accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindActiveByCredentials(ctx context.Context, username, password string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	SetActive(ctx context.Context, username string, active bool) (int64, error)
	SetPassword(ctx context.Context, username, password string) (int64, error)
	Delete(ctx context.Context, username string) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs a repository backed by GORM.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindActiveByCredentials matches the stored password verbatim, as the
// legacy account data requires.
func (r *userRepository) FindActiveByCredentials(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("username = ? AND password = ? AND activo = 1", username, password).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) SetActive(ctx context.Context, username string, active bool) (int64, error) {
	value := 0
	if active {
		value = 1
	}

	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", username).
		Update("activo", value)
	return result.RowsAffected, result.Error
}

func (r *userRepository) SetPassword(ctx context.Context, username, password string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", username).
		Update("password", password)
	return result.RowsAffected, result.Error
}

func (r *userRepository) Delete(ctx context.Context, username string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("username = ?", username).
		Delete(&models.User{})
	return result.RowsAffected, result.Error
}
