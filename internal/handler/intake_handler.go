package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/muniempleo/intake-api/internal/dto"
	"github.com/muniempleo/intake-api/internal/middleware"
	"github.com/muniempleo/intake-api/internal/service"
	"github.com/muniempleo/intake-api/internal/utils"
)

// IntakeHandler serves the public submission form endpoints and the
// admin intake toggle.
type IntakeHandler struct {
	service service.IntakeService
	logger  zerolog.Logger
}

// NewIntakeHandler constructs the intake endpoints.
func NewIntakeHandler(service service.IntakeService, logger zerolog.Logger) *IntakeHandler {
	return &IntakeHandler{
		service: service,
		logger:  logger.With().Str("component", "intake_handler").Logger(),
	}
}

// Submit registers a new applicant from the public form.
func (h *IntakeHandler) Submit(c *fiber.Ctx) error {
	var payload dto.SubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Completa todos los campos")
	}

	applicant, err := h.service.Submit(c.Context(), payload)
	if err != nil {
		return failDomain(c, requestLogger(h.logger, c), err)
	}

	return utils.OK(c, fiber.Map{"id": applicant.ID})
}

// Verify looks up an applicant by identity document.
func (h *IntakeHandler) Verify(c *fiber.Ctx) error {
	var payload dto.VerifyRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Datos incompletos")
	}
	if payload.TipoDocumento == "" || payload.NumeroDocumento == "" {
		return utils.Fail(c, fiber.StatusBadRequest, "Datos incompletos")
	}

	result, err := h.service.Verify(c.Context(), payload)
	if err != nil {
		return failDomain(c, requestLogger(h.logger, c), err)
	}

	if !result.Existe {
		return utils.OK(c, fiber.Map{"existe": false})
	}

	return utils.OK(c, fiber.Map{
		"existe":         true,
		"convocatoria":   result.Convocatoria,
		"area":           result.Area,
		"apellidos":      result.Apellidos,
		"nombres":        result.Nombres,
		"fecha_registro": result.FechaRegistro,
	})
}

// State reports whether intake is open. Public so the form can render the
// closed notice without authenticating.
func (h *IntakeHandler) State(c *fiber.Ctx) error {
	open, err := h.service.IntakeOpen(c.Context())
	if err != nil {
		return failDomain(c, requestLogger(h.logger, c), err)
	}

	return utils.OK(c, fiber.Map{"activa": open})
}

// SetState toggles intake on or off. Admin only.
func (h *IntakeHandler) SetState(c *fiber.Ctx) error {
	var payload dto.IntakeStateRequest
	if err := c.BodyParser(&payload); err != nil || payload.Activa == nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Datos incompletos")
	}

	principal, _ := middleware.Principal(c)
	if err := h.service.SetIntakeOpen(c.Context(), *payload.Activa, principal.Username); err != nil {
		return failDomain(c, requestLogger(h.logger, c), err)
	}

	return utils.OK(c, fiber.Map{"activa": *payload.Activa})
}
