package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/muniempleo/intake-api/internal/dto"
	"github.com/muniempleo/intake-api/internal/middleware"
	"github.com/muniempleo/intake-api/internal/service"
	"github.com/muniempleo/intake-api/internal/utils"
)

// LogHandler serves the admin audit-log views.
type LogHandler struct {
	service service.LogService
	logger  zerolog.Logger
}

// NewLogHandler constructs the audit-log endpoints.
func NewLogHandler(service service.LogService, logger zerolog.Logger) *LogHandler {
	return &LogHandler{
		service: service,
		logger:  logger.With().Str("component", "log_handler").Logger(),
	}
}

// List returns audit entries, newest first, paginated and optionally
// filtered by substring.
func (h *LogHandler) List(c *fiber.Ctx) error {
	var query dto.LogQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "parámetros inválidos")
	}

	entries, total, err := h.service.List(c.Context(), query)
	if err != nil {
		return failDomain(c, requestLogger(h.logger, c), err)
	}

	return utils.OK(c, fiber.Map{"items": entries, "total": total})
}

// Purge clears the audit log and reports how many entries were removed.
func (h *LogHandler) Purge(c *fiber.Ctx) error {
	principal, _ := middleware.Principal(c)
	removed, err := h.service.Purge(c.Context(), principal.Username)
	if err != nil {
		return failDomain(c, requestLogger(h.logger, c), err)
	}

	return utils.OK(c, fiber.Map{"eliminados": removed})
}
