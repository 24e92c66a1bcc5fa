package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/muniempleo/intake-api/internal/middleware"
	"github.com/muniempleo/intake-api/internal/service"
	"github.com/muniempleo/intake-api/internal/utils"
)

// PresenceHandler serves heartbeats and the active-staff listing.
type PresenceHandler struct {
	service service.PresenceService
	logger  zerolog.Logger
}

// NewPresenceHandler constructs the presence endpoints.
func NewPresenceHandler(service service.PresenceService, logger zerolog.Logger) *PresenceHandler {
	return &PresenceHandler{
		service: service,
		logger:  logger.With().Str("component", "presence_handler").Logger(),
	}
}

// Heartbeat records liveness for the authenticated account.
func (h *PresenceHandler) Heartbeat(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return utils.Fail(c, fiber.StatusForbidden, "no autorizado")
	}

	if err := h.service.Heartbeat(c.Context(), principal.Username); err != nil {
		return failDomain(c, requestLogger(h.logger, c), err)
	}

	return utils.OK(c, nil)
}

// Active lists the accounts seen within the liveness window.
func (h *PresenceHandler) Active(c *fiber.Ctx) error {
	usernames, err := h.service.ListActive(c.Context())
	if err != nil {
		return failDomain(c, requestLogger(h.logger, c), err)
	}

	return utils.OK(c, fiber.Map{"usuarios": usernames})
}
