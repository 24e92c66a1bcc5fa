package middleware

import (
	"crypto/subtle"
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/muniempleo/intake-api/internal/utils"
)

// CSRFHeader is checked first; the form field and JSON body field follow,
// in that order.
const (
	CSRFHeader = "X-CSRF-Token"
	CSRFField  = "csrf_token"
)

// RequireCSRF verifies the per-session CSRF secret on mutating requests.
// It must run after WithSession and RequireRole so a revoked session never
// learns anything about token validity.
func RequireCSRF() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := Principal(c)
		if !ok {
			return utils.Fail(c, fiber.StatusForbidden, "no autorizado")
		}

		supplied := csrfToken(c)
		if supplied == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(principal.CSRFToken)) != 1 {
			return utils.Fail(c, fiber.StatusForbidden, "token CSRF inválido")
		}

		return c.Next()
	}
}

func csrfToken(c *fiber.Ctx) string {
	if token := c.Get(CSRFHeader); token != "" {
		return token
	}
	if token := c.FormValue(CSRFField); token != "" {
		return token
	}

	var body struct {
		Token string `json:"csrf_token"`
	}
	if err := json.Unmarshal(c.Body(), &body); err == nil {
		return body.Token
	}

	return ""
}
