package handlers

import (
	"github.com/gofiber/fiber/v2"

	"jerseystore/internal/domain"
	applog "jerseystore/internal/log"
	"jerseystore/internal/services"
)

// AttachUser puts the session user, if any, into c.Locals("user").
func AttachUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := auth.CurrentUser(c.UserContext(), sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	}
}

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			applog.Security(c, "access.denied.admin", map[string]any{"reason": "no_session"})
			return jsonError(c, fiber.StatusUnauthorized, "Login required")
		}
		u, err := auth.CurrentUser(c.UserContext(), sid)
		if err != nil || u == nil {
			applog.Security(c, "access.denied.admin", map[string]any{"reason": "unknown_session"})
			return jsonError(c, fiber.StatusUnauthorized, "Login required")
		}
		if u.Role != domain.RoleAdmin {
			applog.Security(c, "access.denied.admin", map[string]any{"reason": "not_admin", "user": u.ID})
			return jsonError(c, fiber.StatusForbidden, "Access denied")
		}
		c.Locals("user", u)
		return c.Next()
	}
}
