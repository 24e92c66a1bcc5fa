package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/muniempleo/intake-api/internal/database"
	"github.com/muniempleo/intake-api/internal/utils"
)

// HealthCheck reports service liveness and the active SQL dialect.
func HealthCheck(dialect database.Dialect) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return utils.OK(c, fiber.Map{"db": string(dialect)})
	}
}
