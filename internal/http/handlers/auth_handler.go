package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jerseystore/internal/log"
	"jerseystore/internal/services"
	"jerseystore/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func setSID(c *fiber.Ctx, sid string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false, // enable true behind TLS
		Expires:  expires,
	})
}

// Login issues a fresh session id on every successful login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"reason": "bad_body"})
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	email, ok := validate.Email(req.Email)
	if !ok || !validate.Password(req.Password) {
		log.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "reason": "bad_format"})
		return jsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	sid := uuid.NewString()
	u, err := h.Auth.Login(c.UserContext(), sid, email, req.Password)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return jsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if old := c.Cookies("sid"); old != "" && old != sid {
		_ = h.Auth.Logout(c.UserContext(), old)
	}
	setSID(c, sid, time.Time{})
	c.Locals("user", u)

	log.Audit(c, "admin.login.success", map[string]any{"email": email})
	return c.JSON(fiber.Map{"user": u})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid != "" {
		if err := h.Auth.Logout(c.UserContext(), sid); err != nil {
			log.Error(c, "auth.logout.fail", err, nil)
		}
	}
	setSID(c, "", time.Now().Add(-1*time.Hour))
	log.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"message": "Logged out"})
}
