package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"arcticfresh/internal/domain"
	"arcticfresh/internal/repos"
	"arcticfresh/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// tickingClock advances one second per call so creation order is visible
// in newest-first listings.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func newCatalog(t *testing.T) (*services.CatalogService, *sqlx.DB) {
	t.Helper()
	db := memdb(t)
	svc := services.NewCatalogService(repos.NewProductRepo(db), repos.NewCategoryRepo(db))
	svc.Now = tickingClock()
	return svc, db
}

func mustCreate(t *testing.T, svc *services.CatalogService, in services.ProductInput) []domain.Product {
	t.Helper()
	docs, err := svc.CreateProduct(context.Background(), in)
	if err != nil {
		t.Fatalf("create %s: %v", in.Slug, err)
	}
	return docs
}

func product(slug, category string, featured bool) services.ProductInput {
	return services.ProductInput{
		Slug: slug, NameEn: slug + " en", NameAr: slug + " ar", Category: category, Featured: featured,
	}
}
