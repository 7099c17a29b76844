package handlers

import (
	"github.com/gofiber/fiber/v2"

	"arcticfresh/internal/domain"
	applog "arcticfresh/internal/log"
	"arcticfresh/internal/services"
	"arcticfresh/internal/validate"
)

type AdminHandler struct {
	Catalog *services.CatalogService
	Contact *services.ContactService
	// MediaBackend names where uploads go, shown on the dashboard.
	MediaBackend string
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()
	loc := localeOf(c)
	prods, err := h.Catalog.ListProducts(ctx, domain.ProductQuery{Locale: loc, Sort: domain.SortNewest, Limit: services.MaxPageSize})
	if err != nil {
		return pageError(c, "admin.products.list.fail", err)
	}
	cats, err := h.Catalog.ListCategories(ctx, domain.CategoryQuery{Locale: loc})
	if err != nil {
		return pageError(c, "admin.categories.list.fail", err)
	}
	inqs, err := h.Contact.Recent(ctx, 10)
	if err != nil {
		return pageError(c, "admin.inquiries.list.fail", err)
	}
	return render(c, "admin_dashboard", fiber.Map{
		"Products":       prods.Items,
		"ProductTotal":   prods.Total,
		"Categories":     cats,
		"Inquiries":      inqs,
		"MailConfigured": h.Contact.MailConfigured(),
		"MediaBackend":   h.MediaBackend,
	})
}

// GET /api/inquiries
func (h *AdminHandler) Inquiries(c *fiber.Ctx) error {
	limit := validate.Limit(c.Query("limit"), services.InquiryPageSize, services.InquiryPageSize)
	inqs, err := h.Contact.Recent(c.UserContext(), limit)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.inquiries.list", map[string]any{"count": len(inqs)})
	return success(c, fiber.StatusOK, "", inqs, nil)
}
