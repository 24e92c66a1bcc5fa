package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/muniempleo/intake-api/internal/dto"
	"github.com/muniempleo/intake-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
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

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

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

func newSubmitRequest(numeroDocumento string) dto.SubmitRequest {
	return dto.SubmitRequest{
		Area:              "Logística",
		Convocatoria:      "CAS 001-2026",
		Apellidos:         "quispe huaman",
		Nombres:           "rosa",
		TipoDocumento:     "DNI",
		NumeroDocumento:   numeroDocumento,
		FechaNacimiento:   "1995-04-12",
		Sexo:              "Femenino",
		Celular:           "987654321",
		Correo:            "rosa@example.com",
		FuerzasArmadas:    "No",
		TieneDiscapacidad: "No",
	}
}
