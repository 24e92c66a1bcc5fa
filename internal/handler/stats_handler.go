package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/muniempleo/intake-api/internal/service"
	"github.com/muniempleo/intake-api/internal/utils"
)

// StatsHandler serves the admin dashboard counters.
type StatsHandler struct {
	service service.StatsService
	logger  zerolog.Logger
}

// NewStatsHandler constructs the stats endpoint.
func NewStatsHandler(service service.StatsService, logger zerolog.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		logger:  logger.With().Str("component", "stats_handler").Logger(),
	}
}

// Stats returns registration counters split by gender and area.
func (h *StatsHandler) Stats(c *fiber.Ctx) error {
	result, err := h.service.Stats(c.Context())
	if err != nil {
		return failDomain(c, requestLogger(h.logger, c), err)
	}

	return utils.OK(c, fiber.Map{
		"registrados_mujeres": result.RegistradosMujeres,
		"registrados_hombres": result.RegistradosHombres,
		"recibidos_mujeres":   result.RecibidosMujeres,
		"recibidos_hombres":   result.RecibidosHombres,
		"por_area":            result.PorArea,
	})
}
