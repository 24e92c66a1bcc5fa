package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/muniempleo/intake-api/internal/models"
)

// SettingRepository stores key-value configuration rows.
type SettingRepository interface {
	Get(ctx context.Context, clave string) (string, bool, error)
	Set(ctx context.Context, clave, valor string) error
}

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository constructs a repository backed by GORM.
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get(ctx context.Context, clave string) (string, bool, error) {
	var setting models.Setting
	err := r.db.WithContext(ctx).Where("clave = ?", clave).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return setting.Valor, true, nil
}

func (r *settingRepository) Set(ctx context.Context, clave, valor string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "clave"}},
			DoUpdates: clause.AssignmentColumns([]string{"valor"}),
		}).
		Create(&models.Setting{Clave: clave, Valor: valor}).Error
}
