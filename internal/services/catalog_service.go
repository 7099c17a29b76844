package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"arcticfresh/internal/domain"
	"arcticfresh/internal/errs"
	"arcticfresh/internal/validate"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
	RelatedLimit    = 4
)

type CatalogService struct {
	Prods ProductStore
	Cats  CategoryStore
	Now   func() time.Time
}

func NewCatalogService(prods ProductStore, cats CategoryStore) *CatalogService {
	return &CatalogService{Prods: prods, Cats: cats, Now: func() time.Time { return time.Now().UTC() }}
}

// ProductInput is the create payload of a logical product.
type ProductInput struct {
	Slug          string   `json:"slug"`
	NameEn        string   `json:"nameEn"`
	NameAr        string   `json:"nameAr"`
	DescriptionEn string   `json:"descriptionEn"`
	DescriptionAr string   `json:"descriptionAr"`
	Category      string   `json:"category"`
	Image         string   `json:"image"`
	Gallery       []string `json:"gallery"`
	Weight        string   `json:"weight"`
	MinOrder      string   `json:"minOrder"`
	Grade         string   `json:"grade"`
	Featured      bool     `json:"featured"`
	New           bool     `json:"new"`
	Active        *bool    `json:"active"`
}

// ProductUpdate is a partial update; absent fields are left untouched.
type ProductUpdate struct {
	Slug          *string   `json:"slug"`
	NameEn        *string   `json:"nameEn"`
	NameAr        *string   `json:"nameAr"`
	DescriptionEn *string   `json:"descriptionEn"`
	DescriptionAr *string   `json:"descriptionAr"`
	Category      *string   `json:"category"`
	Image         *string   `json:"image"`
	Gallery       *[]string `json:"gallery"`
	Weight        *string   `json:"weight"`
	MinOrder      *string   `json:"minOrder"`
	Grade         *string   `json:"grade"`
	Featured      *bool     `json:"featured"`
	New           *bool     `json:"new"`
	Active        *bool     `json:"active"`
}

type CategoryInput struct {
	Slug   string `json:"slug"`
	NameEn string `json:"nameEn"`
	NameAr string `json:"nameAr"`
	Icon   string `json:"icon"`
	Order  int    `json:"order"`
}

type CategoryUpdate struct {
	Slug   *string `json:"slug"`
	NameEn *string `json:"nameEn"`
	NameAr *string `json:"nameAr"`
	Icon   *string `json:"icon"`
	Order  *int    `json:"order"`
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Items []domain.Product
	Total int
	Page  int
	Limit int
}

// storeErr maps store sentinels onto domain errors. Anything unexpected
// becomes an internal error whose cause is only logged.
func storeErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if _, ok := errs.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return errs.NotFound(what + " not found")
	case errors.Is(err, errs.ErrDuplicate):
		return errs.Conflict("A " + strings.ToLower(what) + " with this slug already exists")
	default:
		return errs.Internal(err)
	}
}

func normalizeQuery(q domain.ProductQuery) domain.ProductQuery {
	if _, ok := domain.ParseLocale(string(q.Locale)); !ok {
		q.Locale = domain.LocaleEN
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	switch q.Sort {
	case domain.SortNewest, domain.SortOldest, domain.SortName:
	default:
		q.Sort = domain.SortNewest
	}
	return q
}

func (s *CatalogService) ListProducts(ctx context.Context, q domain.ProductQuery) (ProductPage, error) {
	q = normalizeQuery(q)
	items, total, err := s.Prods.ListProducts(ctx, q)
	if err != nil {
		return ProductPage{}, errs.Internal(err)
	}
	return ProductPage{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, slug string, locale domain.Locale) (domain.Product, error) {
	p, err := s.Prods.GetProduct(ctx, slug, locale)
	return p, storeErr(err, "Product")
}

// ProductPair returns both locale documents of slug, en first.
func (s *CatalogService) ProductPair(ctx context.Context, slug string) ([]domain.Product, error) {
	docs, err := s.Prods.ProductPair(ctx, slug)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if len(docs) == 0 {
		return nil, errs.NotFound("Product not found")
	}
	return docs, nil
}

// Related returns active products of p's category in p's locale, newest
// first, excluding p.
func (s *CatalogService) Related(ctx context.Context, p domain.Product, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = RelatedLimit
	}
	if p.Category == "" {
		return []domain.Product{}, nil
	}
	items, _, err := s.Prods.ListProducts(ctx, domain.ProductQuery{
		Locale: p.Locale, Category: p.Category, ActiveOnly: true, Exclude: p.Slug,
		Sort: domain.SortNewest, Page: 1, Limit: limit,
	})
	if err != nil {
		return nil, errs.Internal(err)
	}
	return items, nil
}

func requireSlug(slug string) (string, error) {
	if strings.TrimSpace(slug) == "" {
		return "", errs.Validation("slug_required", "slug", "Slug is required")
	}
	s, ok := validate.Slug(slug)
	if !ok {
		return "", errs.Validation("slug_invalid", "slug", "Slug may only contain lowercase letters, digits and dashes")
	}
	return s, nil
}

func requireText(v, reason, field, msg string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", errs.Validation(reason, field, msg)
	}
	return v, nil
}

func optionalText(v *string, reason, field, msg string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	t, err := requireText(*v, reason, field, msg)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}

func cleanGallery(in []string) []string {
	out := make([]string, 0, len(in))
	for _, u := range in {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// CreateProduct validates in and stores one document per locale.
func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) ([]domain.Product, error) {
	slug, err := requireSlug(in.Slug)
	if err != nil {
		return nil, err
	}
	nameEn, err := requireText(in.NameEn, "name_en_required", "nameEn", "English name is required")
	if err != nil {
		return nil, err
	}
	nameAr, err := requireText(in.NameAr, "name_ar_required", "nameAr", "Arabic name is required")
	if err != nil {
		return nil, err
	}
	category, err := requireText(in.Category, "category_required", "category", "Category is required")
	if err != nil {
		return nil, err
	}

	taken, err := s.Prods.ProductSlugExists(ctx, slug)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if taken {
		return nil, errs.Conflict("A product with this slug already exists")
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := s.Now()
	base := domain.Product{
		Slug: slug, Category: category, Image: strings.TrimSpace(in.Image), Gallery: cleanGallery(in.Gallery),
		Weight: strings.TrimSpace(in.Weight), MinOrder: strings.TrimSpace(in.MinOrder), Grade: strings.TrimSpace(in.Grade),
		Featured: in.Featured, New: in.New, Active: active, CreatedAt: now, UpdatedAt: now,
	}
	en, ar := base, base
	en.ID, en.Locale, en.Name, en.Description = uuid.NewString(), domain.LocaleEN, nameEn, strings.TrimSpace(in.DescriptionEn)
	ar.ID, ar.Locale, ar.Name, ar.Description = uuid.NewString(), domain.LocaleAR, nameAr, strings.TrimSpace(in.DescriptionAr)

	if err := s.Prods.InsertProductPair(ctx, []domain.Product{en, ar}); err != nil {
		return nil, storeErr(err, "Product")
	}
	return s.ProductPair(ctx, slug)
}

// UpdateProduct applies in to both locale documents of slug and returns the
// updated pair.
func (s *CatalogService) UpdateProduct(ctx context.Context, slug string, in ProductUpdate) ([]domain.Product, error) {
	var patch domain.ProductPatch
	newSlug := slug
	if in.Slug != nil {
		v, err := requireSlug(*in.Slug)
		if err != nil {
			return nil, err
		}
		if v != slug {
			found, err := s.Prods.ProductSlugExists(ctx, slug)
			if err != nil {
				return nil, errs.Internal(err)
			}
			if !found {
				return nil, errs.NotFound("Product not found")
			}
			taken, err := s.Prods.ProductSlugExists(ctx, v)
			if err != nil {
				return nil, errs.Internal(err)
			}
			if taken {
				return nil, errs.Conflict("A product with this slug already exists")
			}
		}
		patch.Shared.Slug, newSlug = &v, v
	}
	nameEn, err := optionalText(in.NameEn, "name_en_required", "nameEn", "English name is required")
	if err != nil {
		return nil, err
	}
	nameAr, err := optionalText(in.NameAr, "name_ar_required", "nameAr", "Arabic name is required")
	if err != nil {
		return nil, err
	}
	category, err := optionalText(in.Category, "category_required", "category", "Category is required")
	if err != nil {
		return nil, err
	}

	patch.Shared.Category = category
	patch.Shared.Image = trimmed(in.Image)
	if in.Gallery != nil {
		patch.Shared.Gallery = cleanGallery(*in.Gallery)
	}
	patch.Shared.Weight = trimmed(in.Weight)
	patch.Shared.MinOrder = trimmed(in.MinOrder)
	patch.Shared.Grade = trimmed(in.Grade)
	patch.Shared.Featured, patch.Shared.New, patch.Shared.Active = in.Featured, in.New, in.Active
	patch.PerLocale = map[domain.Locale]domain.Localized{
		domain.LocaleEN: {Name: nameEn, Description: trimmed(in.DescriptionEn)},
		domain.LocaleAR: {Name: nameAr, Description: trimmed(in.DescriptionAr)},
	}

	if _, err := s.Prods.UpdateProductPair(ctx, slug, patch, s.Now()); err != nil {
		return nil, storeErr(err, "Product")
	}
	return s.ProductPair(ctx, newSlug)
}

// DeleteProduct removes every locale document of slug and returns how many
// were removed. Nothing removed is reported as not found.
func (s *CatalogService) DeleteProduct(ctx context.Context, slug string) (int, error) {
	n, err := s.Prods.DeleteProductPair(ctx, slug)
	if err != nil {
		return 0, errs.Internal(err)
	}
	if n == 0 {
		return 0, errs.NotFound("Product not found")
	}
	return n, nil
}

func (s *CatalogService) ListCategories(ctx context.Context, q domain.CategoryQuery) ([]domain.Category, error) {
	if _, ok := domain.ParseLocale(string(q.Locale)); !ok {
		q.Locale = domain.LocaleEN
	}
	cats, err := s.Cats.ListCategories(ctx, q)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return cats, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, slug string, locale domain.Locale) (domain.Category, error) {
	c, err := s.Cats.GetCategory(ctx, slug, locale)
	return c, storeErr(err, "Category")
}

func (s *CatalogService) CategoryPair(ctx context.Context, slug string) ([]domain.Category, error) {
	docs, err := s.Cats.CategoryPair(ctx, slug)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if len(docs) == 0 {
		return nil, errs.NotFound("Category not found")
	}
	return docs, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryInput) ([]domain.Category, error) {
	slug, err := requireSlug(in.Slug)
	if err != nil {
		return nil, err
	}
	nameEn, err := requireText(in.NameEn, "name_en_required", "nameEn", "English name is required")
	if err != nil {
		return nil, err
	}
	nameAr, err := requireText(in.NameAr, "name_ar_required", "nameAr", "Arabic name is required")
	if err != nil {
		return nil, err
	}

	taken, err := s.Cats.CategorySlugExists(ctx, slug)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if taken {
		return nil, errs.Conflict("A category with this slug already exists")
	}

	now := s.Now()
	base := domain.Category{Slug: slug, Icon: strings.TrimSpace(in.Icon), Order: in.Order, CreatedAt: now, UpdatedAt: now}
	en, ar := base, base
	en.ID, en.Locale, en.Name = uuid.NewString(), domain.LocaleEN, nameEn
	ar.ID, ar.Locale, ar.Name = uuid.NewString(), domain.LocaleAR, nameAr

	if err := s.Cats.InsertCategoryPair(ctx, []domain.Category{en, ar}); err != nil {
		return nil, storeErr(err, "Category")
	}
	return s.CategoryPair(ctx, slug)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, slug string, in CategoryUpdate) ([]domain.Category, error) {
	var patch domain.CategoryPatch
	newSlug := slug
	if in.Slug != nil {
		v, err := requireSlug(*in.Slug)
		if err != nil {
			return nil, err
		}
		if v != slug {
			found, err := s.Cats.CategorySlugExists(ctx, slug)
			if err != nil {
				return nil, errs.Internal(err)
			}
			if !found {
				return nil, errs.NotFound("Category not found")
			}
			taken, err := s.Cats.CategorySlugExists(ctx, v)
			if err != nil {
				return nil, errs.Internal(err)
			}
			if taken {
				return nil, errs.Conflict("A category with this slug already exists")
			}
		}
		patch.Slug, newSlug = &v, v
	}
	nameEn, err := optionalText(in.NameEn, "name_en_required", "nameEn", "English name is required")
	if err != nil {
		return nil, err
	}
	nameAr, err := optionalText(in.NameAr, "name_ar_required", "nameAr", "Arabic name is required")
	if err != nil {
		return nil, err
	}
	patch.Icon = trimmed(in.Icon)
	patch.Order = in.Order
	patch.PerLocale = map[domain.Locale]*string{domain.LocaleEN: nameEn, domain.LocaleAR: nameAr}

	if _, err := s.Cats.UpdateCategoryPair(ctx, slug, patch, s.Now()); err != nil {
		return nil, storeErr(err, "Category")
	}
	return s.CategoryPair(ctx, newSlug)
}

// DeleteCategory removes the category pair only; products keep their
// reference.
func (s *CatalogService) DeleteCategory(ctx context.Context, slug string) (int, error) {
	n, err := s.Cats.DeleteCategoryPair(ctx, slug)
	if err != nil {
		return 0, errs.Internal(err)
	}
	if n == 0 {
		return 0, errs.NotFound("Category not found")
	}
	return n, nil
}
