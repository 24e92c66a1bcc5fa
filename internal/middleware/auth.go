package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/muniempleo/intake-api/internal/session"
	"github.com/muniempleo/intake-api/internal/utils"
)

const principalKey = "principal"

// WithSession binds the principal reconstructed from the session cookie to
// the request. An expired session is rejected outright and the cookie is
// cleared, before any role or CSRF evaluation; a missing or invalid cookie
// leaves the request unauthenticated for RequireRole to reject.
func WithSession(manager *session.Manager, clock func() time.Time) fiber.Handler {
	if clock == nil {
		clock = time.Now
	}

	return func(c *fiber.Ctx) error {
		token := c.Cookies(session.CookieName)
		if token == "" {
			return c.Next()
		}

		principal, err := manager.Parse(token, clock())
		switch err {
		case nil:
			c.Locals(principalKey, principal)
		case session.ErrExpired:
			ClearSessionCookie(c)
			return utils.Fail(c, fiber.StatusUnauthorized, "sesión expirada")
		}

		return c.Next()
	}
}

// RequireRole admits only authenticated principals holding one of the
// allowed roles.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := Principal(c)
		if !ok {
			return utils.Fail(c, fiber.StatusForbidden, "no autorizado")
		}
		if _, ok := allowed[principal.Role]; !ok {
			return utils.Fail(c, fiber.StatusForbidden, "no autorizado")
		}

		return c.Next()
	}
}

// RequireAuth admits any authenticated principal regardless of role.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := Principal(c); !ok {
			return utils.Fail(c, fiber.StatusForbidden, "no autorizado")
		}

		return c.Next()
	}
}

// Principal returns the authenticated principal bound to the request.
func Principal(c *fiber.Ctx) (session.Principal, bool) {
	principal, ok := c.Locals(principalKey).(session.Principal)
	return principal, ok
}

// SetSessionCookie writes the signed session token. The cookie expiry is
// anchored to the caller's clock so it matches the token's absolute
// lifetime.
func SetSessionCookie(c *fiber.Ctx, token string, ttl time.Duration, now time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Expires:  now.Add(ttl),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
