package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/utils"

	"arcticfresh/internal/i18n"
	applog "arcticfresh/internal/log"
)

// Limits tunes the per-route guards.
type Limits struct {
	LoginMax     int
	LoginWindow  time.Duration
	SubmitMax    int
	SubmitWindow time.Duration
	// BodyBytes caps request bodies everywhere except image uploads.
	BodyBytes int
}

func DefaultLimits() Limits {
	return Limits{
		LoginMax:     5,
		LoginWindow:  10 * time.Minute,
		SubmitMax:    5,
		SubmitWindow: time.Minute,
		BodyBytes:    1 << 20,
	}
}

const uploadPath = "/api/uploads"

// bodyCap rejects oversized bodies before they reach a handler.
func bodyCap(limit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == uploadPath || limit <= 0 {
			return c.Next()
		}
		if c.Request().Header.ContentLength() > limit || len(c.Body()) > limit {
			applog.Security(c, "body.size.block", map[string]any{"bytes": c.Request().Header.ContentLength()})
			return c.Status(fiber.StatusRequestEntityTooLarge).SendString("request body too large")
		}
		return c.Next()
	}
}

func rateLimited(c *fiber.Ctx) error {
	applog.Security(c, "rate."+strings.Trim(strings.ReplaceAll(c.Path(), "/", "."), ".")+".hit", nil)
	if isAPI(c) {
		return failure(c, fiber.StatusTooManyRequests, ErrorDetail{
			Code:    "rate_limited",
			Reason:  "rate_limited",
			Message: i18n.T(localeOf(c), "err.rate_limited"),
		})
	}
	c.Status(fiber.StatusTooManyRequests)
	return render(c, "notfound", fiber.Map{"Message": i18n.T(localeOf(c), "err.rate_limited")})
}

func newLimiter(n int, window time.Duration, scope string, reached fiber.Handler) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        n,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|" + scope
		},
		LimitReached: reached,
	})
}

// Mount installs the request-scoped middleware and every route of the site.
func Mount(app *fiber.App, d *Deps, lim Limits) {
	app.Use(Locale(d.Secure))
	app.Use(AttachAdmin(d.Auth))
	app.Use(bodyCap(lim.BodyBytes))
	// Only server-rendered forms carry the token; the JSON API relies on
	// SameSite cookies and JSON content types.
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		ContextKey:     csrfLocalsKey,
		CookieSameSite: "Lax",
		CookieSecure:   d.Secure,
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return isAPI(c) || strings.HasPrefix(p, "/media/") || p == "/healthz"
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"error": err.Error()})
			c.Status(fiber.StatusForbidden)
			return render(c, "notfound", fiber.Map{"Message": i18n.T(localeOf(c), "err.csrf")})
		},
	}))

	loginPageLimiter := newLimiter(lim.LoginMax, lim.LoginWindow, "login", func(c *fiber.Ctx) error {
		applog.Security(c, "rate.login.hit", nil)
		c.Status(fiber.StatusTooManyRequests)
		return render(c, "admin_login", fiber.Map{"Err": i18n.T(localeOf(c), "err.rate_limited")})
	})
	loginAPILimiter := newLimiter(lim.LoginMax, lim.LoginWindow, "login", rateLimited)
	submitLimiter := newLimiter(lim.SubmitMax, lim.SubmitWindow, "submit", rateLimited)
	admin := RequireAdmin(d.Auth)

	// Pages
	app.Get("/", d.CategoryHandler.Home)
	app.Get("/about", d.CategoryHandler.About)
	app.Get("/products", d.ProductHandler.Index)
	app.Get("/products/:slug", d.ProductHandler.Detail)
	app.Get("/wishlist", d.WishlistHandler.Page)
	app.Post("/wishlist/toggle", d.WishlistHandler.ToggleForm)
	app.Get("/contact", d.ContactHandler.Page)
	app.Post("/contact", submitLimiter, d.ContactHandler.Submit)
	app.Post("/quote-request", submitLimiter, d.ContactHandler.SubmitQuote)

	app.Get("/admin/login", d.AuthHandler.LoginForm)
	app.Post("/admin/login", loginPageLimiter, d.AuthHandler.LoginPage)
	app.Post("/admin/logout", d.AuthHandler.LogoutPage)
	app.Get("/admin", admin, d.AdminHandler.Dashboard)

	app.Get("/media/*", d.UploadHandler.Serve)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	// JSON API
	api := app.Group("/api")

	api.Post("/auth/login", loginAPILimiter, d.AuthHandler.Login)
	api.Get("/auth/me", admin, d.AuthHandler.Me)
	api.Post("/auth/logout", d.AuthHandler.Logout)

	api.Get("/products", d.ProductHandler.List)
	api.Get("/products/:slug", d.ProductHandler.Get)
	api.Get("/products/:slug/related", d.ProductHandler.Related)
	api.Post("/products", admin, d.ProductHandler.Create)
	api.Put("/products/:slug", admin, d.ProductHandler.Update)
	api.Delete("/products/:slug", admin, d.ProductHandler.Delete)

	api.Get("/categories", d.CategoryHandler.List)
	api.Get("/categories/:slug", d.CategoryHandler.Get)
	api.Post("/categories", admin, d.CategoryHandler.Create)
	api.Put("/categories/:slug", admin, d.CategoryHandler.Update)
	api.Delete("/categories/:slug", admin, d.CategoryHandler.Delete)

	api.Post("/contact", submitLimiter, d.ContactHandler.Contact)
	api.Post("/quote-request", submitLimiter, d.ContactHandler.Quote)
	api.Post("/quote", submitLimiter, d.ContactHandler.Quote)

	api.Get("/wishlist", d.WishlistHandler.Get)
	api.Post("/wishlist", d.WishlistHandler.Add)
	api.Delete("/wishlist", d.WishlistHandler.Clear)
	api.Post("/wishlist/toggle", d.WishlistHandler.Toggle)
	api.Get("/wishlist/products", d.WishlistHandler.Products)
	api.Get("/wishlist/stream", d.WishlistHandler.Stream)
	api.Delete("/wishlist/:ref", d.WishlistHandler.Remove)

	api.Get("/inquiries", admin, d.AdminHandler.Inquiries)
	api.Post("/uploads", admin, d.UploadHandler.Upload)

	app.Use(func(c *fiber.Ctx) error {
		if isAPI(c) {
			c.Status(fiber.StatusNotFound)
			return failure(c, fiber.StatusNotFound, ErrorDetail{
				Code:    "not_found",
				Reason:  "not_found",
				Message: i18n.ErrorMessage(localeOf(c), "not_found", "Not found"),
			})
		}
		return notFound(c)
	})
}

// ErrorHandler answers errors that escaped a handler without leaking their
// text. Framework errors such as an oversized body keep their status.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	if fe, ok := err.(*fiber.Error); ok && fe.Code < fiber.StatusInternalServerError {
		status = fe.Code
	}
	if status >= fiber.StatusInternalServerError {
		applog.Error(c, "server.error", err, nil)
	} else {
		applog.Security(c, "request.reject", map[string]any{"status": status})
	}
	msg := i18n.T(localeOf(c), "page.error")
	if status == fiber.StatusNotFound {
		msg = i18n.T(localeOf(c), "page.not_found")
	}
	if isAPI(c) {
		return failure(c, status, ErrorDetail{Code: strings.ToLower(strings.ReplaceAll(utils.StatusMessage(status), " ", "_")), Message: msg})
	}
	c.Status(status)
	if rerr := render(c, "notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(status).SendString(msg)
	}
	return nil
}
