package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"arcticfresh/internal/i18n"
	applog "arcticfresh/internal/log"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	loc := localeOf(c)
	data["T"] = i18n.Translator{Locale: loc}
	data["Locale"] = string(loc)
	data["Dir"] = loc.Dir()
	data["Path"] = c.Path()
	data["Year"] = strconv.Itoa(time.Now().Year())
	if admin, ok := c.Locals(applog.AdminKey).(string); ok {
		data["Admin"] = admin
	}
	if tok, _ := c.Locals(csrfLocalsKey).(string); tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

// csrfLocalsKey is where the CSRF middleware leaves the token for forms.
const csrfLocalsKey = "csrf"

// notFound renders the localized 404 page.
func notFound(c *fiber.Ctx) error {
	c.Status(fiber.StatusNotFound)
	return render(c, "notfound", fiber.Map{"Message": i18n.T(localeOf(c), "page.not_found")})
}

// pageError logs err and renders the generic error page.
func pageError(c *fiber.Ctx, action string, err error) error {
	c.Status(fiber.StatusInternalServerError)
	applog.Error(c, action, err, nil)
	return render(c, "notfound", fiber.Map{"Message": i18n.T(localeOf(c), "page.error")})
}
