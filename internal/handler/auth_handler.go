package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/muniempleo/intake-api/internal/dto"
	"github.com/muniempleo/intake-api/internal/middleware"
	"github.com/muniempleo/intake-api/internal/models"
	"github.com/muniempleo/intake-api/internal/service"
	"github.com/muniempleo/intake-api/internal/utils"
)

// AuthHandler serves login, logout and the session echo.
type AuthHandler struct {
	service   service.AuthService
	cookieTTL time.Duration
	clock     func() time.Time
	logger    zerolog.Logger
}

// NewAuthHandler constructs the auth endpoints. cookieTTL matches the
// absolute session lifetime so the cookie and token expire together.
func NewAuthHandler(service service.AuthService, cookieTTL time.Duration, clock func() time.Time, logger zerolog.Logger) *AuthHandler {
	if clock == nil {
		clock = time.Now
	}

	return &AuthHandler{
		service:   service,
		cookieTTL: cookieTTL,
		clock:     clock,
		logger:    logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Login accepts JSON or form credentials and mints a fresh session cookie
// plus CSRF token on success.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Completa todos los campos")
	}
	if payload.Usuario == "" || payload.Password == "" {
		return utils.Fail(c, fiber.StatusBadRequest, "Completa todos los campos")
	}

	token, principal, err := h.service.Login(c.Context(), payload.Usuario, payload.Password, c.IP())
	if err != nil {
		return failDomain(c, requestLogger(h.logger, c), err)
	}

	middleware.SetSessionCookie(c, token, h.cookieTTL, h.clock())

	redirect := "/usuario"
	if principal.Role == models.RoleAdmin {
		redirect = "/admin"
	}

	return utils.OK(c, fiber.Map{
		"usuario":    principal.Username,
		"rol":        principal.Role,
		"csrf_token": principal.CSRFToken,
		"redirect":   redirect,
	})
}

// Logout records the event for staff accounts and clears the cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if principal, ok := middleware.Principal(c); ok {
		h.service.Logout(c.Context(), principal)
	}

	middleware.ClearSessionCookie(c)

	return utils.OK(c, nil)
}

// Session echoes the authenticated principal, including the CSRF token the
// client must replay on mutations.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return utils.Fail(c, fiber.StatusForbidden, "no autorizado")
	}

	return utils.OK(c, fiber.Map{
		"usuario":    principal.Username,
		"rol":        principal.Role,
		"csrf_token": principal.CSRFToken,
	})
}
