package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

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

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, dialect, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Applicant{}, &models.User{}, &models.AuditLog{}, &models.Setting{}, &models.Presence{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if err := database.SeedDefaults(db, cfg.Now()); err != nil {
		log.Fatalf("failed to seed defaults: %v", err)
	}

	logger.Info().Str("dialect", string(dialect)).Msg("database ready")

	var statsService service.StatsService
	applicantRepo := repository.NewApplicantRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	presenceRepo := repository.NewPresenceRepository(db)

	if cfg.RedisURL != "" {
		redisClient, err := database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		statsService = service.NewStatsService(applicantRepo, redisClient, cfg.StatsCacheTTL, logger)
	} else {
		statsService = service.NewStatsService(applicantRepo, nil, cfg.StatsCacheTTL, logger)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	limiter := ratelimit.NewLoginLimiter(cfg.LoginMaxFailures, cfg.LoginWindow, cfg.Now)

	auditService := service.NewAuditService(auditRepo, cfg.Now, logger)
	authService := service.NewAuthService(userRepo, limiter, sessions, auditService, cfg.Now, logger)
	intakeService := service.NewIntakeService(applicantRepo, settingRepo, auditService, validate, cfg.Now, logger)
	claimService := service.NewClaimService(applicantRepo, auditService, validate, cfg.Now, logger)
	userAdminService := service.NewUserAdminService(userRepo, auditService, validate, cfg.Now, logger)
	presenceService := service.NewPresenceService(presenceRepo, cfg.PresenceWindow, cfg.Now, logger)
	logService := service.NewLogService(auditRepo, auditService, logger)
	exportService := service.NewExportService(applicantRepo, cfg.Now, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		Auth:       handler.NewAuthHandler(authService, cfg.SessionTTL, cfg.Now, logger),
		Intake:     handler.NewIntakeHandler(intakeService, logger),
		Applicants: handler.NewApplicantHandler(applicantRepo, claimService, logger),
		Users:      handler.NewUserAdminHandler(userAdminService, logger),
		Logs:       handler.NewLogHandler(logService, logger),
		Presence:   handler.NewPresenceHandler(presenceService, logger),
		Stats:      handler.NewStatsHandler(statsService, logger),
		Exports:    handler.NewExportHandler(exportService, logger),
		Session:    middleware.WithSession(sessions, cfg.Now),
		Dialect:    dialect,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
