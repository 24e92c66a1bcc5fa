package database

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/muniempleo/intake-api/internal/models"
)

// DefaultAdminPassword seeds the built-in administrator account on first
// start, matching the credentials the municipality already distributes.
const DefaultAdminPassword = "Admin2026@Muni!"

// SeedDefaults creates the built-in admin account and opens intake when
// the corresponding rows are missing. Existing rows are left untouched.
func SeedDefaults(db *gorm.DB, now time.Time) error {
	var admin models.User
	err := db.Where("username = ?", models.AdminUsername).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		admin = models.User{
			Username:  models.AdminUsername,
			Password:  DefaultAdminPassword,
			Rol:       models.RoleAdmin,
			Activo:    1,
			CreatedAt: now,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	var setting models.Setting
	err = db.Where("clave = ?", models.SettingIntakeOpen).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(&models.Setting{Clave: models.SettingIntakeOpen, Valor: "1"}).Error
	}

	return err
}
