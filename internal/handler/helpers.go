package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/muniempleo/intake-api/internal/middleware"
	"github.com/muniempleo/intake-api/internal/service"
	"github.com/muniempleo/intake-api/internal/utils"
)

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

// validationMessage keeps the legacy form error wording: a distinct message
// for a malformed email, one catch-all for missing fields.
func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			if fieldError.Tag() == "email" {
				return "Correo inválido"
			}
		}
	}
	return "Completa todos los campos"
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// failDomain converts service-level errors into the response taxonomy.
func failDomain(c *fiber.Ctx, logger *zerolog.Logger, err error) error {
	var (
		closedErr    *service.IntakeClosedError
		duplicateErr *service.DuplicateError
		conflictErr  *service.ConflictError
		throttled    *service.ThrottledError
		failedLogin  *service.FailedLoginError
	)

	switch {
	case isValidationError(err):
		return utils.Fail(c, fiber.StatusBadRequest, validationMessage(err))
	case errors.As(err, &closedErr):
		return utils.FailWith(c, fiber.StatusForbidden, closedErr.Error(), fiber.Map{"cerrada": true})
	case errors.As(err, &duplicateErr):
		return utils.Fail(c, fiber.StatusBadRequest, duplicateErr.Error())
	case errors.As(err, &conflictErr):
		return utils.FailWith(c, fiber.StatusConflict, conflictErr.Error(), fiber.Map{"atendido_por": conflictErr.Claimant})
	case errors.As(err, &throttled):
		return utils.Fail(c, fiber.StatusTooManyRequests, throttled.Error())
	case errors.As(err, &failedLogin):
		return utils.Fail(c, fiber.StatusUnauthorized, failedLogin.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.Fail(c, fiber.StatusUnauthorized, "Credenciales incorrectas")
	case errors.Is(err, service.ErrApplicantNotFound), errors.Is(err, service.ErrUserNotFound):
		return utils.Fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUserExists), errors.Is(err, service.ErrAdminProtected), errors.Is(err, service.ErrInvalidRole):
		return utils.Fail(c, fiber.StatusBadRequest, err.Error())
	default:
		logger.Error().Err(err).Msg("request failed on store access")
		return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
	}
}
