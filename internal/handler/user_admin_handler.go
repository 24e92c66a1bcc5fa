package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/muniempleo/intake-api/internal/dto"
	"github.com/muniempleo/intake-api/internal/middleware"
	"github.com/muniempleo/intake-api/internal/service"
	"github.com/muniempleo/intake-api/internal/utils"
)

// UserAdminHandler serves the admin staff-account management endpoints.
type UserAdminHandler struct {
	service service.UserAdminService
	logger  zerolog.Logger
}

// NewUserAdminHandler constructs the user management endpoints.
func NewUserAdminHandler(service service.UserAdminService, logger zerolog.Logger) *UserAdminHandler {
	return &UserAdminHandler{
		service: service,
		logger:  logger.With().Str("component", "user_admin_handler").Logger(),
	}
}

// List returns every staff account.
func (h *UserAdminHandler) List(c *fiber.Ctx) error {
	users, err := h.service.List(c.Context())
	if err != nil {
		return failDomain(c, requestLogger(h.logger, c), err)
	}

	return utils.OK(c, fiber.Map{"items": users})
}

// Create registers a new staff account.
func (h *UserAdminHandler) Create(c *fiber.Ctx) error {
	var payload dto.CreateUserRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Datos incompletos")
	}

	principal, _ := middleware.Principal(c)
	if err := h.service.Create(c.Context(), payload, principal.Username); err != nil {
		return failDomain(c, requestLogger(h.logger, c), err)
	}

	return utils.OK(c, nil)
}

// Activate re-enables a staff account.
func (h *UserAdminHandler) Activate(c *fiber.Ctx) error {
	return h.setActive(c, true)
}

// Deactivate disables a staff account. The admin account is protected.
func (h *UserAdminHandler) Deactivate(c *fiber.Ctx) error {
	return h.setActive(c, false)
}

func (h *UserAdminHandler) setActive(c *fiber.Ctx, active bool) error {
	var payload dto.UsernameRequest
	if err := c.BodyParser(&payload); err != nil || payload.Username == "" {
		return utils.Fail(c, fiber.StatusBadRequest, "Usuario no especificado")
	}

	principal, _ := middleware.Principal(c)
	if err := h.service.SetActive(c.Context(), payload.Username, active, principal.Username); err != nil {
		return failDomain(c, requestLogger(h.logger, c), err)
	}

	return utils.OK(c, nil)
}

// Delete removes a staff account. The admin account is protected.
func (h *UserAdminHandler) Delete(c *fiber.Ctx) error {
	var payload dto.UsernameRequest
	if err := c.BodyParser(&payload); err != nil || payload.Username == "" {
		return utils.Fail(c, fiber.StatusBadRequest, "Usuario no especificado")
	}

	principal, _ := middleware.Principal(c)
	if err := h.service.Delete(c.Context(), payload.Username, principal.Username); err != nil {
		return failDomain(c, requestLogger(h.logger, c), err)
	}

	return utils.OK(c, nil)
}

// ChangePassword replaces a staff account's password.
func (h *UserAdminHandler) ChangePassword(c *fiber.Ctx) error {
	var payload dto.ChangePasswordRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Datos incompletos")
	}

	principal, _ := middleware.Principal(c)
	if err := h.service.ChangePassword(c.Context(), payload, principal.Username); err != nil {
		return failDomain(c, requestLogger(h.logger, c), err)
	}

	return utils.OK(c, nil)
}

// GetPassword returns a staff account's stored password.
func (h *UserAdminHandler) GetPassword(c *fiber.Ctx) error {
	var payload dto.UsernameRequest
	if err := c.BodyParser(&payload); err != nil || payload.Username == "" {
		return utils.Fail(c, fiber.StatusBadRequest, "Usuario no especificado")
	}

	password, err := h.service.GetPassword(c.Context(), payload.Username)
	if err != nil {
		return failDomain(c, requestLogger(h.logger, c), err)
	}

	return utils.OK(c, fiber.Map{"password": password})
}
