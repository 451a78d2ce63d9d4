package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"stitchpos/internal/identity"
	applog "stitchpos/internal/log"
	"stitchpos/internal/metrics"
	"stitchpos/internal/validate"
)

type AuthHandler struct {
	Auth *identity.Provider
	Met  *metrics.Registry
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Login verifies credentials and sets the session cookie. Each provider
// error keeps its own message; none of them are fatal.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed request")
	}
	if _, ok := validate.Email(req.Email); !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "reason": "bad_format"})
		return fail(c, fiber.StatusUnauthorized, identity.ErrInvalidCredential.Error())
	}

	token, u, err := h.Auth.SignIn(c.Context(), req.Email, req.Password)
	if err != nil {
		if h.Met != nil {
			h.Met.LoginFailures.Inc()
		}
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email})
		msg := "Login failed. Please try again."
		switch {
		case errors.Is(err, identity.ErrUnknownAccount),
			errors.Is(err, identity.ErrWrongPassword),
			errors.Is(err, identity.ErrInvalidCredential):
			msg = err.Error()
		}
		return fail(c, fiber.StatusUnauthorized, msg)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false, // set true behind HTTPS
	})
	if h.Met != nil {
		h.Met.Logins.Inc()
	}
	applog.Audit(c, "auth.login.success", map[string]any{"email": u.Email})
	return c.JSON(fiber.Map{"name": u.Name, "email": u.Email, "role": u.Role})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies("sid"); sid != "" {
		h.Auth.SignOut(sid)
	}
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"ok": true})
}

// Session reports the currently signed-in user, 401 when none.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid == "" {
		return fail(c, fiber.StatusUnauthorized, "not signed in")
	}
	u, err := h.Auth.CurrentUser(c.Context(), sid)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "not signed in")
	}
	return c.JSON(fiber.Map{"name": u.Name, "email": u.Email, "role": u.Role})
}
