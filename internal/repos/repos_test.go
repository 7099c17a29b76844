package repos

import (
	"context"
	"errors"
	"testing"
	"time"

	"arcticfresh/internal/domain"
	"arcticfresh/internal/errs"
	"arcticfresh/internal/wishlist"
)

func openMem(t *testing.T) *ProductRepo {
	t.Helper()
	db, err := OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewProductRepo(db)
}

func doc(id, slug string, loc domain.Locale, name string) domain.Product {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return domain.Product{
		ID: id, Slug: slug, Locale: loc, Name: name, Category: "vegetables",
		Gallery: []string{"/media/a.jpg"}, Active: true, CreatedAt: now, UpdatedAt: now,
	}
}

func TestInsertProductPairIsAtomic(t *testing.T) {
	r := openMem(t)
	ctx := context.Background()

	if err := r.InsertProductPair(ctx, []domain.Product{
		doc("1", "okra", domain.LocaleEN, "Okra"), doc("2", "okra", domain.LocaleAR, "بامية"),
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// second document collides on (slug, locale); the first must not survive
	err := r.InsertProductPair(ctx, []domain.Product{
		doc("3", "peas", domain.LocaleEN, "Peas"), doc("4", "peas", domain.LocaleEN, "Peas again"),
	})
	if !errors.Is(err, errs.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	pair, err := r.ProductPair(ctx, "peas")
	if err != nil {
		t.Fatal(err)
	}
	if len(pair) != 0 {
		t.Fatalf("partial pair left behind: %+v", pair)
	}

	got, err := r.GetProduct(ctx, "okra", domain.LocaleAR)
	if err != nil || got.Name != "بامية" || len(got.Gallery) != 1 {
		t.Fatalf("get ar: %+v %v", got, err)
	}
	if _, err := r.GetProduct(ctx, "nope", domain.LocaleEN); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchEscapesWildcards(t *testing.T) {
	r := openMem(t)
	ctx := context.Background()
	_ = r.InsertProductPair(ctx, []domain.Product{doc("1", "okra", domain.LocaleEN, "Okra 100% natural")})
	_ = r.InsertProductPair(ctx, []domain.Product{doc("2", "peas", domain.LocaleEN, "Peas")})

	items, total, err := r.ListProducts(ctx, domain.ProductQuery{Locale: domain.LocaleEN, Search: "%"})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(items) != 1 || items[0].Slug != "okra" {
		t.Fatalf("%% should match literally, got %d %+v", total, items)
	}
}

func TestWishlistStoragePerSession(t *testing.T) {
	db, err := OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	repo := NewWishlistRepo(db)
	a, b := repo.Storage("a"), repo.Storage("b")

	if _, err := a.Get(wishlist.StorageKey); !errors.Is(err, wishlist.ErrNoValue) {
		t.Fatalf("empty get: %v", err)
	}
	if err := a.Set(wishlist.StorageKey, []byte(`["okra"]`)); err != nil {
		t.Fatal(err)
	}
	if err := a.Set(wishlist.StorageKey, []byte(`["okra","peas"]`)); err != nil {
		t.Fatal(err)
	}
	v, err := a.Get(wishlist.StorageKey)
	if err != nil || string(v) != `["okra","peas"]` {
		t.Fatalf("get after upsert: %s %v", v, err)
	}
	if _, err := b.Get(wishlist.StorageKey); !errors.Is(err, wishlist.ErrNoValue) {
		t.Fatal("sessions must not share values")
	}
	if err := a.Delete(wishlist.StorageKey); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Get(wishlist.StorageKey); !errors.Is(err, wishlist.ErrNoValue) {
		t.Fatal("value should be gone after delete")
	}
}
