package services

import (
	"context"
	"time"

	"arcticfresh/internal/domain"
)

// ProductStore is implemented by repos.ProductRepo and mongostore.ProductStore.
// Stores return errs.ErrNotFound and errs.ErrDuplicate for missing documents
// and taken (slug, locale) keys.
type ProductStore interface {
	ListProducts(ctx context.Context, q domain.ProductQuery) ([]domain.Product, int, error)
	GetProduct(ctx context.Context, slug string, locale domain.Locale) (domain.Product, error)
	ProductPair(ctx context.Context, slug string) ([]domain.Product, error)
	ProductSlugExists(ctx context.Context, slug string) (bool, error)
	InsertProductPair(ctx context.Context, docs []domain.Product) error
	UpdateProductPair(ctx context.Context, slug string, patch domain.ProductPatch, now time.Time) (int, error)
	DeleteProductPair(ctx context.Context, slug string) (int, error)
}

type CategoryStore interface {
	ListCategories(ctx context.Context, q domain.CategoryQuery) ([]domain.Category, error)
	GetCategory(ctx context.Context, slug string, locale domain.Locale) (domain.Category, error)
	CategoryPair(ctx context.Context, slug string) ([]domain.Category, error)
	CategorySlugExists(ctx context.Context, slug string) (bool, error)
	InsertCategoryPair(ctx context.Context, docs []domain.Category) error
	UpdateCategoryPair(ctx context.Context, slug string, patch domain.CategoryPatch, now time.Time) (int, error)
	DeleteCategoryPair(ctx context.Context, slug string) (int, error)
}

type InquiryStore interface {
	SaveInquiry(ctx context.Context, in domain.Inquiry) error
	MarkMailed(ctx context.Context, id string) error
	ListInquiries(ctx context.Context, limit int) ([]domain.Inquiry, error)
}
