package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stitchpos/internal/identity"
	applog "stitchpos/internal/log"
)

// RequireUser enforces an authenticated session.
func RequireUser(auth *identity.Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return fail(c, fiber.StatusUnauthorized, "sign in required")
		}
		u, err := auth.CurrentUser(c.Context(), sid)
		if err != nil || u == nil {
			return fail(c, fiber.StatusUnauthorized, "sign in required")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireAdmin additionally checks the elevated role; any lookup failure has
// already collapsed the role to the default, which is denied here.
func RequireAdmin(auth *identity.Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return fail(c, fiber.StatusUnauthorized, "sign in required")
		}
		u, err := auth.CurrentUser(c.Context(), sid)
		if err != nil || !u.IsAdmin() {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			return fail(c, fiber.StatusForbidden, "Access denied")
		}
		c.Locals("user", u)
		return c.Next()
	}
}
