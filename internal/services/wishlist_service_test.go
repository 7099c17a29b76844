package services_test

import (
	"context"
	"testing"

	"arcticfresh/internal/domain"
	"arcticfresh/internal/repos"
	"arcticfresh/internal/services"
)

func TestWishlistService_SessionsAreIsolated(t *testing.T) {
	db := memdb(t)
	svc := services.NewWishlistService(repos.NewWishlistRepo(db).Storage, repos.NewProductRepo(db))

	a := svc.For("sid-a")
	a.Add("okra")
	if svc.For("sid-a") != a {
		t.Fatal("same session should reuse its store")
	}
	if svc.For("sid-b").Contains("okra") {
		t.Fatal("wishlist leaked across sessions")
	}
}

func TestWishlistService_PersistsAcrossRegistries(t *testing.T) {
	db := memdb(t)
	wl := repos.NewWishlistRepo(db)
	first := services.NewWishlistService(wl.Storage, nil)
	first.For("sid").Add("okra")
	first.For("sid").Add("mango")

	second := services.NewWishlistService(wl.Storage, nil)
	got := second.For("sid").Items()
	if len(got) != 2 || got[0] != "okra" || got[1] != "mango" {
		t.Fatalf("reloaded = %v", got)
	}
	if !second.For("sid").Persistent() {
		t.Fatal("sql storage should be persistent")
	}
}

func TestWishlistService_SweepKeepsObservedStores(t *testing.T) {
	svc := services.NewWishlistService(nil, nil)
	idle := svc.For("idle")
	watched := svc.For("watched")
	unsub := watched.Subscribe(func([]string) {})
	defer unsub()
	idle.Add("x")

	if n := svc.Sweep(); n != 0 {
		t.Fatalf("swept %d fresh stores", n)
	}
	if svc.Cached() != 2 {
		t.Fatalf("cached = %d", svc.Cached())
	}
}

func TestWishlistService_ResolveSlugThenLegacyID(t *testing.T) {
	cat, db := newCatalog(t)
	ctx := context.Background()
	okra := mustCreate(t, cat, product("okra", "vegetables", false))
	mustCreate(t, cat, product("mango", "fruits", false))

	svc := services.NewWishlistService(nil, repos.NewProductRepo(db))
	refs := []string{"mango", okra[1].ID, "ghost", "okra"}
	got, err := svc.Resolve(ctx, refs, domain.LocaleAR)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Slug != "mango" || got[1].Slug != "okra" {
		t.Fatalf("resolved = %+v", got)
	}
	for _, p := range got {
		if p.Locale != domain.LocaleAR {
			t.Fatalf("wrong locale %s", p.Locale)
		}
	}
}

func TestWishlistService_ResolveSkipsInactive(t *testing.T) {
	cat, db := newCatalog(t)
	ctx := context.Background()
	mustCreate(t, cat, product("okra", "vegetables", false))
	hidden := product("hidden", "vegetables", false)
	off := false
	hidden.Active = &off
	docs := mustCreate(t, cat, hidden)

	svc := services.NewWishlistService(nil, repos.NewProductRepo(db))
	got, err := svc.Resolve(ctx, []string{"hidden", docs[0].ID, "okra"}, domain.LocaleEN)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Slug != "okra" {
		t.Fatalf("inactive product resolved: %+v", got)
	}
}
