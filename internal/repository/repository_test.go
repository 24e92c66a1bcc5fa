package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/muniempleo/intake-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Applicant{},
		&models.User{},
		&models.AuditLog{},
		&models.Setting{},
		&models.Presence{},
	)
	require.NoError(t, err)

	return db
}

func newApplicant(numeroDocumento string) *models.Applicant {
	return &models.Applicant{
		Convocatoria:    "CAS 001-2026",
		Apellidos:       "QUISPE HUAMAN",
		Nombres:         "ROSA",
		TipoDocumento:   "DNI",
		NumeroDocumento: numeroDocumento,
		FechaNacimiento: "1995-04-12",
		Sexo:            "Femenino",
		Celular:         "987654321",
		Correo:          "rosa@example.com",
		FuerzasArmadas:  "No",
		Area:            "Logística",
		CreatedAt:       time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC),
	}
}
