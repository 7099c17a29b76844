package handlers

import (
	"github.com/gofiber/fiber/v2"

	"arcticfresh/internal/domain"
	"arcticfresh/internal/errs"
	"arcticfresh/internal/i18n"
	applog "arcticfresh/internal/log"
	"arcticfresh/internal/services"
)

type ContactHandler struct {
	Service *services.ContactService
}

func inquiryAck(in domain.Inquiry) fiber.Map {
	return fiber.Map{"id": in.ID, "kind": in.Kind, "mailed": in.Mailed}
}

// POST /api/contact
func (h *ContactHandler) Contact(c *fiber.Ctx) error {
	var in services.ContactInput
	if err := c.BodyParser(&in); err != nil {
		return badJSON(c, err)
	}
	inq, err := h.Service.SubmitContact(c.UserContext(), apiLocale(c), in)
	if err != nil {
		return fail(c, err)
	}
	applog.Info(c, "contact.submit", map[string]any{"inquiry": inq.ID, "mailed": inq.Mailed})
	return success(c, fiber.StatusCreated, i18n.T(apiLocale(c), "contact.sent"), inquiryAck(inq), nil)
}

// POST /api/quote-request
func (h *ContactHandler) Quote(c *fiber.Ctx) error {
	var in services.QuoteInput
	if err := c.BodyParser(&in); err != nil {
		return badJSON(c, err)
	}
	inq, err := h.Service.SubmitQuote(c.UserContext(), apiLocale(c), in)
	if err != nil {
		return fail(c, err)
	}
	applog.Info(c, "quote.submit", map[string]any{"inquiry": inq.ID, "products": len(inq.Products), "mailed": inq.Mailed})
	return success(c, fiber.StatusCreated, i18n.T(apiLocale(c), "quote.sent"), inquiryAck(inq), nil)
}

// GET /contact
func (h *ContactHandler) Page(c *fiber.Ctx) error {
	return render(c, "contact", fiber.Map{})
}

// formError turns a submission error into page data, logging it like the
// API does.
func formError(c *fiber.Ctx, err error) (fiber.Map, int) {
	e, ok := errs.As(err)
	if !ok {
		e = errs.Internal(err)
	}
	if e.Code == errs.CodeInternal {
		applog.Error(c, "server.error", e, nil)
		return fiber.Map{"Err": i18n.ErrorMessage(localeOf(c), "internal", e.Message)}, fiber.StatusInternalServerError
	}
	applog.Security(c, "validation.fail", map[string]any{"reason": e.Reason, "field": e.Field})
	return fiber.Map{"Err": i18n.ErrorMessage(localeOf(c), e.Reason, e.Message), "Field": e.Field}, e.Status()
}

// POST /contact
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	in := services.ContactInput{
		Name:    c.FormValue("name"),
		Email:   c.FormValue("email"),
		Phone:   c.FormValue("phone"),
		Subject: c.FormValue("subject"),
		Message: c.FormValue("message"),
	}
	inq, err := h.Service.SubmitContact(c.UserContext(), localeOf(c), in)
	if err != nil {
		data, status := formError(c, err)
		data["Form"] = in
		c.Status(status)
		return render(c, "contact", data)
	}
	applog.Info(c, "contact.submit", map[string]any{"inquiry": inq.ID, "mailed": inq.Mailed})
	return render(c, "contact", fiber.Map{"Sent": i18n.T(localeOf(c), "contact.sent")})
}

// POST /quote-request
//
// Posted from the wishlist page; products arrive as repeated form values.
func (h *ContactHandler) SubmitQuote(c *fiber.Ctx) error {
	in := services.QuoteInput{
		FullName: c.FormValue("fullName"),
		Email:    c.FormValue("email"),
		Phone:    c.FormValue("phone"),
		Company:  c.FormValue("company"),
		Country:  c.FormValue("country"),
		Message:  c.FormValue("message"),
	}
	for _, v := range c.Request().PostArgs().PeekMulti("products") {
		in.Products = append(in.Products, string(v))
	}
	inq, err := h.Service.SubmitQuote(c.UserContext(), localeOf(c), in)
	if err != nil {
		data, status := formError(c, err)
		data["Form"] = in
		c.Status(status)
		return render(c, "quote_result", data)
	}
	applog.Info(c, "quote.submit", map[string]any{"inquiry": inq.ID, "products": len(inq.Products), "mailed": inq.Mailed})
	return render(c, "quote_result", fiber.Map{"Sent": i18n.T(localeOf(c), "quote.sent")})
}
