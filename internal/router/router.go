package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/muniempleo/intake-api/internal/config"
	"github.com/muniempleo/intake-api/internal/database"
	"github.com/muniempleo/intake-api/internal/handler"
	"github.com/muniempleo/intake-api/internal/middleware"
	"github.com/muniempleo/intake-api/internal/models"
	"github.com/muniempleo/intake-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	Auth       *handler.AuthHandler
	Intake     *handler.IntakeHandler
	Applicants *handler.ApplicantHandler
	Users      *handler.UserAdminHandler
	Logs       *handler.LogHandler
	Presence   *handler.PresenceHandler
	Stats      *handler.StatsHandler
	Exports    *handler.ExportHandler
	Session    fiber.Handler
	Dialect    database.Dialect
}

// Register wires the HTTP routes into the fiber application. Guard order
// on protected routes is fixed: session binding, then role, then CSRF for
// mutations, so identity is resolved before any CSRF evaluation.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	session := deps.Session
	if session == nil {
		session = func(c *fiber.Ctx) error { return c.Next() }
	}

	admin := middleware.RequireRole(models.RoleAdmin)
	usuario := middleware.RequireRole(models.RoleUsuario)
	staff := middleware.RequireRole(models.RoleAdmin, models.RoleUsuario)
	authenticated := middleware.RequireAuth()
	csrf := middleware.RequireCSRF()

	app.Get("/api/health", handler.HealthCheck(deps.Dialect))
	app.Get("/metrics", observability.MetricsHandler())

	// Public intake surface.
	app.Post("/api/submit", deps.Intake.Submit)
	app.Post("/api/verificar-postulante", deps.Intake.Verify)
	app.Get("/api/convocatoria/estado", deps.Intake.State)

	// Auth.
	app.Post("/login", deps.Auth.Login)
	app.Get("/logout", session, deps.Auth.Logout)
	app.Get("/api/session", session, authenticated, deps.Auth.Session)

	// Applicant listings and polling cursors.
	app.Get("/api/postulantes/nuevos", session, admin, deps.Applicants.New)
	app.Get("/api/postulantes/pendientes-nuevos", session, usuario, deps.Applicants.PendingNew)
	app.Get("/api/postulantes/atendidos-nuevos", session, admin, deps.Applicants.ClaimedNew)
	app.Get("/api/postulantes/registrados", session, admin, deps.Applicants.Pending)

	// Claim workflow.
	app.Post("/api/recibir-postulante", session, usuario, csrf, deps.Applicants.Claim)
	app.Post("/api/editar-postulante", session, staff, csrf, deps.Applicants.Edit)
	app.Post("/api/eliminar/:id", session, staff, csrf, deps.Applicants.Delete)

	// Staff account management.
	app.Get("/api/usuarios", session, admin, deps.Users.List)
	app.Post("/api/crear-usuario", session, admin, csrf, deps.Users.Create)
	app.Post("/api/activar-usuario", session, admin, csrf, deps.Users.Activate)
	app.Post("/api/desactivar-usuario", session, admin, csrf, deps.Users.Deactivate)
	app.Post("/api/eliminar-usuario", session, admin, csrf, deps.Users.Delete)
	app.Post("/api/cambiar-password", session, admin, csrf, deps.Users.ChangePassword)
	app.Post("/api/obtener-password", session, admin, csrf, deps.Users.GetPassword)

	// Audit log.
	app.Get("/api/logs", session, admin, deps.Logs.List)
	app.Post("/api/limpiar-logs", session, admin, csrf, deps.Logs.Purge)

	// Presence.
	app.Post("/api/heartbeat", session, authenticated, csrf, deps.Presence.Heartbeat)
	app.Get("/api/usuarios-activos", session, admin, deps.Presence.Active)

	// Dashboard and intake toggle.
	app.Get("/api/estadisticas", session, admin, deps.Stats.Stats)
	app.Post("/api/convocatoria/estado", session, admin, csrf, deps.Intake.SetState)

	// Exports.
	app.Get("/admin/export/csv", session, admin, deps.Exports.CSV)
	app.Get("/admin/export/excel", session, admin, deps.Exports.Excel)
}
