package handlers

import (
	"github.com/gofiber/fiber/v2"

	"arcticfresh/internal/domain"
	"arcticfresh/internal/i18n"
)

const localeKey = "locale"

// Locale resolves the visitor's language for every request and persists an
// explicit ?lang= choice in the lang cookie.
func Locale(secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		loc, persist := i18n.Resolve(c.Query(i18n.LangParam), c.Cookies(i18n.LangCookieName), c.Get(fiber.HeaderAcceptLanguage))
		if persist {
			c.Cookie(&fiber.Cookie{
				Name:     i18n.LangCookieName,
				Value:    string(loc),
				Path:     "/",
				MaxAge:   int(i18n.CookieMaxAge.Seconds()),
				SameSite: fiber.CookieSameSiteLaxMode,
				Secure:   secure,
			})
		}
		c.Locals(localeKey, loc)
		return c.Next()
	}
}

func localeOf(c *fiber.Ctx) domain.Locale {
	if loc, ok := c.Locals(localeKey).(domain.Locale); ok {
		return loc
	}
	return domain.LocaleEN
}

// apiLocale prefers an explicit ?locale= over the negotiated language.
func apiLocale(c *fiber.Ctx) domain.Locale {
	if loc, ok := domain.ParseLocale(c.Query("locale")); ok {
		return loc
	}
	return localeOf(c)
}
