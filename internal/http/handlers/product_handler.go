package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"arcticfresh/internal/domain"
	"arcticfresh/internal/errs"
	"arcticfresh/internal/i18n"
	applog "arcticfresh/internal/log"
	"arcticfresh/internal/services"
	"arcticfresh/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func isAdmin(c *fiber.Ctx) bool {
	_, ok := c.Locals(applog.AdminKey).(string)
	return ok
}

// productQuery reads listing filters. Inactive products and the all-locales
// audit view are only available to an admin session.
func productQuery(c *fiber.Ctx, locale domain.Locale) (domain.ProductQuery, error) {
	q := domain.ProductQuery{
		Locale:     locale,
		ActiveOnly: true,
		Sort:       c.Query("sort", domain.SortNewest),
		Page:       validate.Page(c.Query("page")),
		Limit:      validate.Limit(c.Query("limit"), services.DefaultPageSize, services.MaxPageSize),
	}
	if isAdmin(c) {
		if all, ok := validate.Bool(c.Query("all")); ok && all {
			q.AllLocales, q.ActiveOnly = true, false
		}
		if active, ok := validate.Bool(c.Query("active")); ok && !active {
			q.ActiveOnly = false
		}
	}
	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		cat, ok := validate.Slug(raw)
		if !ok {
			return q, errs.Validation("category_invalid", "category", "Invalid category")
		}
		q.Category = cat
	}
	if raw := strings.TrimSpace(c.Query("search")); raw != "" {
		s, ok := validate.Q(raw)
		if !ok {
			return q, errs.Validation("search_invalid", "search", "Enter a valid search term")
		}
		q.Search = s
	}
	if v, ok := validate.Bool(c.Query("featured")); ok {
		q.Featured = &v
	}
	if v, ok := validate.Bool(c.Query("new")); ok {
		q.New = &v
	}
	return q, nil
}

// GET /api/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	q, err := productQuery(c, apiLocale(c))
	if err != nil {
		return fail(c, err)
	}
	page, err := h.Catalog.ListProducts(c.UserContext(), q)
	if err != nil {
		return fail(c, err)
	}
	items := page.Items
	if items == nil {
		items = []domain.Product{}
	}
	return success(c, fiber.StatusOK, "", items, NewPaginationMeta(page.Page, page.Limit, page.Total))
}

func (h *ProductHandler) visible(c *fiber.Ctx, p domain.Product) bool {
	return p.Active || isAdmin(c)
}

// GET /api/products/:slug
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return fail(c, errs.NotFound("Product not found"))
	}
	if both, _ := validate.Bool(c.Query("both")); both {
		docs, err := h.Catalog.ProductPair(c.UserContext(), slug)
		if err != nil {
			return fail(c, err)
		}
		if !h.visible(c, docs[0]) {
			return fail(c, errs.NotFound("Product not found"))
		}
		return success(c, fiber.StatusOK, "", docs, nil)
	}
	p, err := h.Catalog.GetProduct(c.UserContext(), slug, apiLocale(c))
	if err != nil {
		return fail(c, err)
	}
	if !h.visible(c, p) {
		return fail(c, errs.NotFound("Product not found"))
	}
	return success(c, fiber.StatusOK, "", p, nil)
}

// GET /api/products/:slug/related
func (h *ProductHandler) Related(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return fail(c, errs.NotFound("Product not found"))
	}
	p, err := h.Catalog.GetProduct(c.UserContext(), slug, apiLocale(c))
	if err != nil {
		return fail(c, err)
	}
	items, err := h.Catalog.Related(c.UserContext(), p, validate.Limit(c.Query("limit"), services.RelatedLimit, 12))
	if err != nil {
		return fail(c, err)
	}
	return success(c, fiber.StatusOK, "", items, nil)
}

// POST /api/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badJSON(c, err)
	}
	docs, err := h.Catalog.CreateProduct(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.product.create", map[string]any{"slug": docs[0].Slug})
	return success(c, fiber.StatusCreated, "Product created", docs, nil)
}

// PUT /api/products/:slug
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in services.ProductUpdate
	if err := c.BodyParser(&in); err != nil {
		return badJSON(c, err)
	}
	slug := c.Params("slug")
	docs, err := h.Catalog.UpdateProduct(c.UserContext(), slug, in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.product.update", map[string]any{"slug": slug, "new_slug": docs[0].Slug})
	return success(c, fiber.StatusOK, "Product updated", docs, nil)
}

// DELETE /api/products/:slug
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	slug := c.Params("slug")
	n, err := h.Catalog.DeleteProduct(c.UserContext(), slug)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.product.delete", map[string]any{"slug": slug, "deleted": n})
	return success(c, fiber.StatusOK, "Product deleted", fiber.Map{"deleted": n}, nil)
}

// GET /products
func (h *ProductHandler) Index(c *fiber.Ctx) error {
	loc := localeOf(c)
	q, err := productQuery(c, loc)
	if err != nil {
		applog.Security(c, "validation.fail", map[string]any{"page": "products"})
		q = domain.ProductQuery{Locale: loc, ActiveOnly: true, Page: 1, Limit: services.DefaultPageSize}
	}
	page, perr := h.Catalog.ListProducts(c.UserContext(), q)
	if perr != nil {
		return pageError(c, "products.list.fail", perr)
	}
	cats, cerr := h.Catalog.ListCategories(c.UserContext(), domain.CategoryQuery{Locale: loc})
	if cerr != nil {
		return pageError(c, "products.categories.fail", cerr)
	}
	data := fiber.Map{
		"Products":   page.Items,
		"Categories": cats,
		"Meta":       NewPaginationMeta(page.Page, page.Limit, page.Total),
		"PrevPage":   page.Page - 1,
		"NextPage":   page.Page + 1,
		"Q":          q,
		"Featured":   q.Featured != nil && *q.Featured,
		"New":        q.New != nil && *q.New,
	}
	if err != nil {
		c.Status(fiber.StatusBadRequest)
		if e, ok := errs.As(err); ok {
			data["Err"] = i18n.ErrorMessage(loc, e.Reason, e.Message)
		}
	}
	return render(c, "products", data)
}

// GET /products/:slug
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "slug"})
		return notFound(c)
	}
	p, err := h.Catalog.GetProduct(c.UserContext(), slug, localeOf(c))
	if e, isDomain := errs.As(err); isDomain && e.Code == errs.CodeNotFound {
		return notFound(c)
	}
	if err != nil {
		return pageError(c, "product.detail.fail", err)
	}
	if !h.visible(c, p) {
		return notFound(c)
	}
	related, err := h.Catalog.Related(c.UserContext(), p, services.RelatedLimit)
	if err != nil {
		return pageError(c, "product.related.fail", err)
	}
	return render(c, "product", fiber.Map{"P": p, "Related": related})
}
