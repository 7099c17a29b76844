package handlers

import (
	"github.com/gofiber/fiber/v2"

	"arcticfresh/internal/domain"
	"arcticfresh/internal/errs"
	applog "arcticfresh/internal/log"
	"arcticfresh/internal/services"
	"arcticfresh/internal/validate"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

const homeShelf = 8

// GET /
func (h *CategoryHandler) Home(c *fiber.Ctx) error {
	loc := localeOf(c)
	ctx := c.UserContext()
	cats, err := h.Catalog.ListCategories(ctx, domain.CategoryQuery{Locale: loc})
	if err != nil {
		return pageError(c, "home.categories.fail", err)
	}
	yes := true
	featured, err := h.Catalog.ListProducts(ctx, domain.ProductQuery{
		Locale: loc, ActiveOnly: true, Featured: &yes, Page: 1, Limit: homeShelf,
	})
	if err != nil {
		return pageError(c, "home.featured.fail", err)
	}
	fresh, err := h.Catalog.ListProducts(ctx, domain.ProductQuery{
		Locale: loc, ActiveOnly: true, New: &yes, Page: 1, Limit: homeShelf,
	})
	if err != nil {
		return pageError(c, "home.new.fail", err)
	}
	return render(c, "home", fiber.Map{
		"Categories": cats,
		"Featured":   featured.Items,
		"New":        fresh.Items,
	})
}

// GET /about
func (h *CategoryHandler) About(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories(c.UserContext(), domain.CategoryQuery{Locale: localeOf(c)})
	if err != nil {
		return pageError(c, "about.categories.fail", err)
	}
	return render(c, "about", fiber.Map{"Categories": cats})
}

// GET /api/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	q := domain.CategoryQuery{Locale: apiLocale(c)}
	if all, _ := validate.Bool(c.Query("all")); all && isAdmin(c) {
		q.AllLocales = true
	}
	cats, err := h.Catalog.ListCategories(c.UserContext(), q)
	if err != nil {
		return fail(c, err)
	}
	if cats == nil {
		cats = []domain.Category{}
	}
	return success(c, fiber.StatusOK, "", cats, nil)
}

// GET /api/categories/:slug
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return fail(c, errs.NotFound("Category not found"))
	}
	if both, _ := validate.Bool(c.Query("both")); both {
		docs, err := h.Catalog.CategoryPair(c.UserContext(), slug)
		if err != nil {
			return fail(c, err)
		}
		return success(c, fiber.StatusOK, "", docs, nil)
	}
	cat, err := h.Catalog.GetCategory(c.UserContext(), slug, apiLocale(c))
	if err != nil {
		return fail(c, err)
	}
	return success(c, fiber.StatusOK, "", cat, nil)
}

// POST /api/categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return badJSON(c, err)
	}
	docs, err := h.Catalog.CreateCategory(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.category.create", map[string]any{"slug": docs[0].Slug})
	return success(c, fiber.StatusCreated, "Category created", docs, nil)
}

// PUT /api/categories/:slug
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in services.CategoryUpdate
	if err := c.BodyParser(&in); err != nil {
		return badJSON(c, err)
	}
	slug := c.Params("slug")
	docs, err := h.Catalog.UpdateCategory(c.UserContext(), slug, in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.category.update", map[string]any{"slug": slug, "new_slug": docs[0].Slug})
	return success(c, fiber.StatusOK, "Category updated", docs, nil)
}

// DELETE /api/categories/:slug
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	slug := c.Params("slug")
	n, err := h.Catalog.DeleteCategory(c.UserContext(), slug)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.category.delete", map[string]any{"slug": slug, "deleted": n})
	return success(c, fiber.StatusOK, "Category deleted", fiber.Map{"deleted": n}, nil)
}
