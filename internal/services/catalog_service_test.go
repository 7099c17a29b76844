package services_test

import (
	"context"
	"errors"
	"testing"

	"arcticfresh/internal/domain"
	"arcticfresh/internal/errs"
	"arcticfresh/internal/repos"
	"arcticfresh/internal/services"
)

func wantCode(t *testing.T, err error, code errs.Code) *errs.Error {
	t.Helper()
	e, ok := errs.As(err)
	if !ok {
		t.Fatalf("want %s error, got %v", code, err)
	}
	if e.Code != code {
		t.Fatalf("want %s, got %s (%v)", code, e.Code, err)
	}
	return e
}

func TestCreateProduct_GetBothReturnsPair(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()
	mustCreate(t, svc, services.ProductInput{Slug: "okra", NameEn: "Okra", NameAr: "بامية", Category: "vegetables"})

	docs, err := svc.ProductPair(ctx, "okra")
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("want 2 docs, got %d", len(docs))
	}
	en, ar := docs[0], docs[1]
	if en.Locale != domain.LocaleEN || ar.Locale != domain.LocaleAR {
		t.Fatalf("order = %s,%s", en.Locale, ar.Locale)
	}
	for _, d := range docs {
		if d.Slug != "okra" || d.Category != "vegetables" || !d.Active {
			t.Fatalf("shared fields not copied: %+v", d)
		}
	}
	if en.Name != "Okra" || ar.Name != "بامية" {
		t.Fatalf("names = %q / %q", en.Name, ar.Name)
	}
	if en.ID == ar.ID {
		t.Fatal("documents share an id")
	}
}

func TestCreateProduct_ValidationOrder(t *testing.T) {
	svc, _ := newCatalog(t)
	cases := []struct {
		in     services.ProductInput
		field  string
		reason string
	}{
		{services.ProductInput{}, "slug", "slug_required"},
		{services.ProductInput{Slug: "Bad Slug"}, "slug", "slug_invalid"},
		{services.ProductInput{Slug: "okra"}, "nameEn", "name_en_required"},
		{services.ProductInput{Slug: "okra", NameEn: "Okra", NameAr: "  "}, "nameAr", "name_ar_required"},
		{services.ProductInput{Slug: "okra", NameEn: "Okra", NameAr: "بامية"}, "category", "category_required"},
	}
	for _, tc := range cases {
		_, err := svc.CreateProduct(context.Background(), tc.in)
		e := wantCode(t, err, errs.CodeValidation)
		if e.Field != tc.field || e.Reason != tc.reason {
			t.Errorf("%+v: got %s/%s, want %s/%s", tc.in, e.Field, e.Reason, tc.field, tc.reason)
		}
	}
}

func TestCreateProduct_ConflictLeavesExistingUntouched(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()
	before := mustCreate(t, svc, services.ProductInput{Slug: "okra", NameEn: "Okra", NameAr: "بامية", Category: "vegetables", Image: "a.jpg"})

	_, err := svc.CreateProduct(ctx, services.ProductInput{Slug: "okra", NameEn: "Other", NameAr: "آخر", Category: "fruits", Image: "b.jpg"})
	wantCode(t, err, errs.CodeConflict)

	after, err := svc.ProductPair(ctx, "okra")
	if err != nil {
		t.Fatal(err)
	}
	for i := range before {
		if after[i].Name != before[i].Name || after[i].Category != "vegetables" || after[i].Image != "a.jpg" ||
			!after[i].UpdatedAt.Equal(before[i].UpdatedAt) {
			t.Fatalf("existing doc modified: %+v", after[i])
		}
	}
}

func TestCreateProduct_ActiveDefaultsTrue(t *testing.T) {
	svc, _ := newCatalog(t)
	off := false
	in := product("peas", "vegetables", false)
	in.Active = &off
	docs := mustCreate(t, svc, in)
	if docs[0].Active || docs[1].Active {
		t.Fatal("explicit active=false ignored")
	}
	docs = mustCreate(t, svc, product("okra", "vegetables", false))
	if !docs[0].Active {
		t.Fatal("active should default to true")
	}
}

func TestUpdateProduct_SharedFieldHitsBothLocales(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()
	mustCreate(t, svc, product("okra", "vegetables", false))

	img := "https://cdn.example.com/okra-new.jpg"
	nameAr := "بامية زيرو"
	docs, err := svc.UpdateProduct(ctx, "okra", services.ProductUpdate{Image: &img, NameAr: &nameAr})
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range docs {
		if d.Image != img {
			t.Fatalf("%s image = %q", d.Locale, d.Image)
		}
	}
	if docs[0].Name != "okra en" || docs[1].Name != nameAr {
		t.Fatalf("localized update leaked: %q / %q", docs[0].Name, docs[1].Name)
	}
}

func TestUpdateProduct_SlugRename(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()
	mustCreate(t, svc, product("okra", "vegetables", false))
	mustCreate(t, svc, product("peas", "vegetables", false))

	taken := "peas"
	_, err := svc.UpdateProduct(ctx, "okra", services.ProductUpdate{Slug: &taken})
	wantCode(t, err, errs.CodeConflict)

	same := "okra"
	if _, err := svc.UpdateProduct(ctx, "okra", services.ProductUpdate{Slug: &same}); err != nil {
		t.Fatalf("renaming to own slug: %v", err)
	}

	fresh := "zero-okra"
	docs, err := svc.UpdateProduct(ctx, "okra", services.ProductUpdate{Slug: &fresh})
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 || docs[0].Slug != fresh || docs[1].Slug != fresh {
		t.Fatalf("rename = %+v", docs)
	}
	if _, err := svc.ProductPair(ctx, "okra"); err == nil {
		t.Fatal("old slug still resolves")
	}
}

func TestUpdateProduct_NotFoundAndEmptyName(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()
	img := "x.jpg"
	_, err := svc.UpdateProduct(ctx, "ghost", services.ProductUpdate{Image: &img})
	wantCode(t, err, errs.CodeNotFound)

	mustCreate(t, svc, product("okra", "vegetables", false))
	blank := " "
	_, err = svc.UpdateProduct(ctx, "okra", services.ProductUpdate{NameEn: &blank})
	if e := wantCode(t, err, errs.CodeValidation); e.Field != "nameEn" {
		t.Fatalf("field = %s", e.Field)
	}
}

func TestUpdate_RenameOfMissingSlugIsNotFound(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()
	mustCreate(t, svc, product("peas", "vegetables", false))
	if _, err := svc.CreateCategory(ctx, services.CategoryInput{Slug: "fruits", NameEn: "Fruits", NameAr: "فواكه"}); err != nil {
		t.Fatal(err)
	}

	taken := "peas"
	_, err := svc.UpdateProduct(ctx, "ghost", services.ProductUpdate{Slug: &taken})
	wantCode(t, err, errs.CodeNotFound)

	takenCat := "fruits"
	_, err = svc.UpdateCategory(ctx, "ghost", services.CategoryUpdate{Slug: &takenCat})
	wantCode(t, err, errs.CodeNotFound)
}

func TestDeleteProduct_ReportsCount(t *testing.T) {
	svc, db := newCatalog(t)
	ctx := context.Background()
	mustCreate(t, svc, product("okra", "vegetables", false))

	n, err := svc.DeleteProduct(ctx, "okra")
	if err != nil || n != 2 {
		t.Fatalf("delete = %d, %v", n, err)
	}
	_, err = svc.DeleteProduct(ctx, "okra")
	wantCode(t, err, errs.CodeNotFound)

	mustCreate(t, svc, product("peas", "vegetables", false))
	if _, err := db.Exec(`DELETE FROM products WHERE slug = 'peas' AND locale = 'ar'`); err != nil {
		t.Fatal(err)
	}
	n, err = svc.DeleteProduct(ctx, "peas")
	if err != nil || n != 1 {
		t.Fatalf("half pair delete = %d, %v", n, err)
	}
}

func TestListProducts_ArabicFeaturedFruits(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()
	off := false

	mustCreate(t, svc, product("mango", "fruits", true))
	mustCreate(t, svc, product("okra", "vegetables", true))
	mustCreate(t, svc, product("guava", "fruits", false))
	hidden := product("old-berries", "fruits", true)
	hidden.Active = &off
	mustCreate(t, svc, hidden)
	mustCreate(t, svc, product("strawberries", "fruits", true))

	yes := true
	page, err := svc.ListProducts(ctx, domain.ProductQuery{
		Locale: domain.LocaleAR, Category: "fruits", Featured: &yes, ActiveOnly: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 2 || len(page.Items) != 2 {
		t.Fatalf("got %d items (total %d)", len(page.Items), page.Total)
	}
	if page.Items[0].Slug != "strawberries" || page.Items[1].Slug != "mango" {
		t.Fatalf("order = %s, %s", page.Items[0].Slug, page.Items[1].Slug)
	}
	for _, p := range page.Items {
		if p.Locale != domain.LocaleAR || p.Category != "fruits" || !p.Featured || !p.Active {
			t.Fatalf("unexpected doc %+v", p)
		}
	}
}

func TestListProducts_SearchPagingAndAllLocales(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()
	for _, s := range []string{"okra", "green-peas", "sweet-corn", "peas-carrots"} {
		mustCreate(t, svc, product(s, "vegetables", false))
	}

	page, err := svc.ListProducts(ctx, domain.ProductQuery{Locale: domain.LocaleEN, Search: "PEAS", ActiveOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 2 {
		t.Fatalf("search total = %d", page.Total)
	}

	page, err = svc.ListProducts(ctx, domain.ProductQuery{Locale: domain.LocaleEN, Page: 2, Limit: 3})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 4 || len(page.Items) != 1 || page.Items[0].Slug != "okra" {
		t.Fatalf("page 2 = %+v", page)
	}

	page, err = svc.ListProducts(ctx, domain.ProductQuery{AllLocales: true, Limit: 1000})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 8 || page.Limit != services.MaxPageSize {
		t.Fatalf("all locales total=%d limit=%d", page.Total, page.Limit)
	}

	page, err = svc.ListProducts(ctx, domain.ProductQuery{Locale: domain.LocaleEN, Sort: domain.SortName})
	if err != nil {
		t.Fatal(err)
	}
	if page.Items[0].Slug != "green-peas" || page.Limit != services.DefaultPageSize {
		t.Fatalf("name sort first = %s", page.Items[0].Slug)
	}
}

func TestListProducts_SearchEscapesWildcards(t *testing.T) {
	svc, _ := newCatalog(t)
	mustCreate(t, svc, product("okra", "vegetables", false))
	page, err := svc.ListProducts(context.Background(), domain.ProductQuery{Locale: domain.LocaleEN, Search: "%"})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 0 {
		t.Fatalf("%% matched %d docs", page.Total)
	}
}

func TestRelated(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()
	mustCreate(t, svc, product("okra", "vegetables", false))
	mustCreate(t, svc, product("peas", "vegetables", false))
	mustCreate(t, svc, product("mango", "fruits", false))

	p, err := svc.GetProduct(ctx, "okra", domain.LocaleAR)
	if err != nil {
		t.Fatal(err)
	}
	rel, err := svc.Related(ctx, p, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(rel) != 1 || rel[0].Slug != "peas" || rel[0].Locale != domain.LocaleAR {
		t.Fatalf("related = %+v", rel)
	}
}

func TestCategories_CRUD(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, services.CategoryInput{Slug: "fruits", NameEn: "Fruits", NameAr: "فواكه", Order: 2}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateCategory(ctx, services.CategoryInput{Slug: "vegetables", NameEn: "Vegetables", NameAr: "خضروات", Order: 1}); err != nil {
		t.Fatal(err)
	}
	_, err := svc.CreateCategory(ctx, services.CategoryInput{Slug: "fruits", NameEn: "x", NameAr: "y"})
	wantCode(t, err, errs.CodeConflict)

	_, err = svc.CreateCategory(ctx, services.CategoryInput{Slug: "nuts", NameEn: "Nuts"})
	if e := wantCode(t, err, errs.CodeValidation); e.Field != "nameAr" {
		t.Fatalf("field = %s", e.Field)
	}

	cats, err := svc.ListCategories(ctx, domain.CategoryQuery{Locale: domain.LocaleAR})
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 2 || cats[0].Slug != "vegetables" || cats[0].Name != "خضروات" {
		t.Fatalf("categories = %+v", cats)
	}

	icon := "🍓"
	order := 0
	docs, err := svc.UpdateCategory(ctx, "fruits", services.CategoryUpdate{Icon: &icon, Order: &order})
	if err != nil {
		t.Fatal(err)
	}
	if docs[0].Icon != icon || docs[1].Icon != icon || docs[1].Order != 0 {
		t.Fatalf("update = %+v", docs)
	}

	n, err := svc.DeleteCategory(ctx, "fruits")
	if err != nil || n != 2 {
		t.Fatalf("delete = %d, %v", n, err)
	}
	_, err = svc.GetCategory(ctx, "fruits", domain.LocaleEN)
	wantCode(t, err, errs.CodeNotFound)
}

func TestDeleteCategory_DoesNotCascade(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()
	if _, err := svc.CreateCategory(ctx, services.CategoryInput{Slug: "fruits", NameEn: "Fruits", NameAr: "فواكه"}); err != nil {
		t.Fatal(err)
	}
	mustCreate(t, svc, product("mango", "fruits", false))
	if _, err := svc.DeleteCategory(ctx, "fruits"); err != nil {
		t.Fatal(err)
	}
	p, err := svc.GetProduct(ctx, "mango", domain.LocaleEN)
	if err != nil || p.Category != "fruits" {
		t.Fatalf("product after category delete: %+v, %v", p, err)
	}
}

// partialStore fails the second locale write the way the document backend
// reports it.
type partialStore struct {
	*repos.ProductRepo
}

func (partialStore) ProductSlugExists(context.Context, string) (bool, error) { return false, nil }
func (partialStore) InsertProductPair(_ context.Context, docs []domain.Product) error {
	return &errs.PartialWriteError{Op: "insert product", Slug: docs[0].Slug, Written: 1, Err: errors.New("connection reset")}
}

func TestCreateProduct_PartialWriteIsInternal(t *testing.T) {
	db := memdb(t)
	svc := services.NewCatalogService(partialStore{repos.NewProductRepo(db)}, repos.NewCategoryRepo(db))
	_, err := svc.CreateProduct(context.Background(), product("okra", "vegetables", false))
	e := wantCode(t, err, errs.CodeInternal)
	var pw *errs.PartialWriteError
	if !errors.As(e, &pw) || pw.Written != 1 {
		t.Fatalf("cause lost: %v", err)
	}
}

func TestSeedDemo(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()
	seeded, err := services.SeedDemo(ctx, svc)
	if err != nil || !seeded {
		t.Fatalf("seed = %v, %v", seeded, err)
	}
	again, err := services.SeedDemo(ctx, svc)
	if err != nil || again {
		t.Fatalf("second seed = %v, %v", again, err)
	}
	page, err := svc.ListProducts(ctx, domain.ProductQuery{Locale: domain.LocaleAR, ActiveOnly: true})
	if err != nil || page.Total != 3 {
		t.Fatalf("seeded products = %d, %v", page.Total, err)
	}
}
