package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/muniempleo/intake-api/internal/config"
	"github.com/muniempleo/intake-api/internal/database"
	"github.com/muniempleo/intake-api/internal/handler"
	"github.com/muniempleo/intake-api/internal/middleware"
	"github.com/muniempleo/intake-api/internal/models"
	"github.com/muniempleo/intake-api/internal/ratelimit"
	"github.com/muniempleo/intake-api/internal/repository"
	"github.com/muniempleo/intake-api/internal/router"
	"github.com/muniempleo/intake-api/internal/service"
	"github.com/muniempleo/intake-api/internal/session"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

// testEnv wires the full HTTP surface against an in-memory store, the way
// main does, minus the listener.
type testEnv struct {
	app   *fiber.App
	db    *gorm.DB
	clock *fakeClock
	users repository.UserRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:api_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Applicant{},
		&models.User{},
		&models.AuditLog{},
		&models.Setting{},
		&models.Presence{},
	))

	clock := &fakeClock{now: time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)}
	require.NoError(t, database.SeedDefaults(db, clock.Now()))

	logger := zerolog.Nop()
	validate := validator.New(validator.WithRequiredStructEnabled())
	sessions := session.NewManager("test-secret", 8*time.Hour)
	limiter := ratelimit.NewLoginLimiter(5, 5*time.Minute, clock.Now)

	applicantRepo := repository.NewApplicantRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	presenceRepo := repository.NewPresenceRepository(db)

	auditService := service.NewAuditService(auditRepo, clock.Now, logger)
	authService := service.NewAuthService(userRepo, limiter, sessions, auditService, clock.Now, logger)
	intakeService := service.NewIntakeService(applicantRepo, settingRepo, auditService, validate, clock.Now, logger)
	claimService := service.NewClaimService(applicantRepo, auditService, validate, clock.Now, logger)
	userAdminService := service.NewUserAdminService(userRepo, auditService, validate, clock.Now, logger)
	presenceService := service.NewPresenceService(presenceRepo, 90*time.Second, clock.Now, logger)
	logService := service.NewLogService(auditRepo, auditService, logger)
	statsService := service.NewStatsService(applicantRepo, nil, time.Minute, logger)
	exportService := service.NewExportService(applicantRepo, clock.Now, logger)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Muni Intake API", Location: time.UTC}, router.Dependencies{
		Auth:       handler.NewAuthHandler(authService, 8*time.Hour, clock.Now, logger),
		Intake:     handler.NewIntakeHandler(intakeService, logger),
		Applicants: handler.NewApplicantHandler(applicantRepo, claimService, logger),
		Users:      handler.NewUserAdminHandler(userAdminService, logger),
		Logs:       handler.NewLogHandler(logService, logger),
		Presence:   handler.NewPresenceHandler(presenceService, logger),
		Stats:      handler.NewStatsHandler(statsService, logger),
		Exports:    handler.NewExportHandler(exportService, logger),
		Session:    middleware.WithSession(sessions, clock.Now),
		Dialect:    database.DialectSQLite,
	})

	return &testEnv{app: app, db: db, clock: clock, users: userRepo}
}

func (e *testEnv) createStaff(t *testing.T, username, password string) {
	t.Helper()

	require.NoError(t, e.users.Create(context.Background(), &models.User{
		Username:  username,
		Password:  password,
		Rol:       models.RoleUsuario,
		Activo:    1,
		CreatedAt: e.clock.Now(),
	}))
}

type client struct {
	cookie *http.Cookie
	csrf   string
}

func (e *testEnv) login(t *testing.T, username, password string) client {
	t.Helper()

	resp := e.postJSON(t, client{}, "/login", fiber.Map{"usuario": username, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName && c.Value != "" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	body := decodeBody(t, resp)
	csrf, _ := body["csrf_token"].(string)
	require.NotEmpty(t, csrf)

	return client{cookie: cookie, csrf: csrf}
}

func (e *testEnv) postJSON(t *testing.T, cl client, path string, payload interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cl.cookie != nil {
		req.AddCookie(cl.cookie)
	}
	if cl.csrf != "" {
		req.Header.Set(middleware.CSRFHeader, cl.csrf)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) get(t *testing.T, cl client, path string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cl.cookie != nil {
		req.AddCookie(cl.cookie)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func submitPayload(numeroDocumento string) fiber.Map {
	return fiber.Map{
		"area":               "Logística",
		"convocatoria":       "CAS 001-2026",
		"apellidos":          "quispe huaman",
		"nombres":            "rosa",
		"tipo_documento":     "DNI",
		"numero_documento":   numeroDocumento,
		"fecha_nacimiento":   "1995-04-12",
		"sexo":               "Femenino",
		"celular":            "987654321",
		"correo":             "rosa@example.com",
		"fuerzas_armadas":    "No",
		"tiene_discapacidad": "No",
	}
}
