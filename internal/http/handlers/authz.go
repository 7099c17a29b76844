package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"arcticfresh/internal/errs"
	applog "arcticfresh/internal/log"
	"arcticfresh/internal/services"
)

const (
	authCookie = "auth-token"
	claimsKey  = "admin_claims"
)

func tokenFrom(c *fiber.Ctx) string {
	if tok := c.Cookies(authCookie); tok != "" {
		return tok
	}
	if h := c.Get(fiber.HeaderAuthorization); len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func isAPI(c *fiber.Ctx) bool { return strings.HasPrefix(c.Path(), "/api/") }

// RequireAdmin admits requests carrying a valid admin token. API callers get
// a 401 envelope; page visitors are sent to the login form.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Parse(tokenFrom(c))
		if err != nil {
			applog.Security(c, "access.denied.admin", nil)
			if isAPI(c) {
				return fail(c, err)
			}
			return c.Redirect("/admin/login")
		}
		c.Locals(applog.AdminKey, claims.Username)
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// AttachAdmin exposes a valid admin session to templates without
// requiring one.
func AttachAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tok := tokenFrom(c); tok != "" {
			if claims, err := auth.Parse(tok); err == nil {
				c.Locals(applog.AdminKey, claims.Username)
				c.Locals(claimsKey, claims)
			}
		}
		return c.Next()
	}
}

func claimsOf(c *fiber.Ctx) (*services.Claims, error) {
	if cl, ok := c.Locals(claimsKey).(*services.Claims); ok {
		return cl, nil
	}
	return nil, errs.Unauthorized("Authentication required")
}
