package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"arcticfresh/internal/errs"
	"arcticfresh/internal/i18n"
	"arcticfresh/internal/log"
	"arcticfresh/internal/services"
)

type AuthHandler struct {
	Auth   *services.AuthService
	Secure bool
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (h *AuthHandler) setToken(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.Secure,
	})
}

func (h *AuthHandler) clearToken(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-1 * time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.Secure,
	})
}

func badCredentials() *errs.Error {
	e := errs.Unauthorized("Invalid username or password")
	e.Reason = "bad_credentials"
	return e
}

func (h *AuthHandler) login(c *fiber.Ctx, req loginRequest) (*services.Claims, error) {
	token, claims, err := h.Auth.Login(req.Username, req.Password)
	if errors.Is(err, services.ErrBadCreds) {
		log.Security(c, "auth.login.fail", map[string]any{"username": req.Username})
		return nil, badCredentials()
	}
	if err != nil {
		return nil, err
	}
	h.setToken(c, token, claims.ExpiresAt.Time)
	c.Locals(log.AdminKey, claims.Username)
	log.Audit(c, "auth.login.success", map[string]any{"username": claims.Username})
	return claims, nil
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c, err)
	}
	claims, err := h.login(c, req)
	if err != nil {
		return fail(c, err)
	}
	return success(c, fiber.StatusOK, "Logged in", fiber.Map{
		"username": claims.Username, "role": claims.Role, "expiresAt": claims.ExpiresAt.Time,
	}, nil)
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, err := claimsOf(c)
	if err != nil {
		return fail(c, err)
	}
	return success(c, fiber.StatusOK, "", fiber.Map{
		"username": claims.Username, "role": claims.Role, "expiresAt": claims.ExpiresAt.Time,
	}, nil)
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearToken(c)
	log.Audit(c, "auth.logout", nil)
	return success(c, fiber.StatusOK, "Logged out", nil, nil)
}

// GET /admin/login
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	if _, err := h.Auth.Parse(tokenFrom(c)); err == nil {
		return c.Redirect("/admin")
	}
	return render(c, "admin_login", fiber.Map{"Err": ""})
}

// POST /admin/login
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	req := loginRequest{Username: c.FormValue("username"), Password: c.FormValue("password")}
	if _, err := h.login(c, req); err != nil {
		status := fiber.StatusUnauthorized
		msg := i18n.T(localeOf(c), "err.bad_credentials")
		if e, ok := errs.As(err); ok && e.Code == errs.CodeInternal {
			log.Error(c, "auth.login.error", e.Err, nil)
			status, msg = fiber.StatusInternalServerError, i18n.T(localeOf(c), "page.error")
		}
		c.Status(status)
		return render(c, "admin_login", fiber.Map{"Err": msg, "Username": req.Username})
	}
	return c.Redirect("/admin")
}

// POST /admin/logout
func (h *AuthHandler) LogoutPage(c *fiber.Ctx) error {
	h.clearToken(c)
	log.Audit(c, "auth.logout", nil)
	return c.Redirect("/admin/login")
}
