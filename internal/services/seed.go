package services

import (
	"context"

	"arcticfresh/internal/domain"
)

var demoCategories = []CategoryInput{
	{Slug: "vegetables", NameEn: "Frozen Vegetables", NameAr: "خضروات مجمدة", Icon: "🥦", Order: 1},
	{Slug: "fruits", NameEn: "Frozen Fruits", NameAr: "فواكه مجمدة", Icon: "🍓", Order: 2},
}

func ptr[T any](v T) *T { return &v }

var demoProducts = []ProductInput{
	{
		Slug: "okra", NameEn: "Frozen Okra", NameAr: "بامية مجمدة",
		DescriptionEn: "Tender zero-grade okra, IQF frozen within hours of harvest.",
		DescriptionAr: "بامية زيرو طازجة مجمدة بتقنية التجميد السريع خلال ساعات من الحصاد.",
		Category: "vegetables", Image: "/static/img/okra.jpg", Weight: "400g / 1kg / 2.5kg",
		MinOrder: "1 x 40ft reefer", Grade: "A", Featured: true, Active: ptr(true),
	},
	{
		Slug: "green-peas", NameEn: "Green Peas", NameAr: "بسلة خضراء",
		DescriptionEn: "Sweet garden peas, sorted and blanched before freezing.",
		DescriptionAr: "بسلة حلوة منتقاة ومسلوقة قبل التجميد.",
		Category: "vegetables", Image: "/static/img/peas.jpg", Weight: "400g / 1kg / 10kg",
		MinOrder: "1 x 20ft reefer", Grade: "A", New: true, Active: ptr(true),
	},
	{
		Slug: "strawberries", NameEn: "Whole Strawberries", NameAr: "فراولة كاملة",
		DescriptionEn: "Festival variety strawberries, hulled and IQF frozen.",
		DescriptionAr: "فراولة صنف فستيفال منزوعة الأقماع ومجمدة بتقنية التجميد السريع.",
		Category: "fruits", Image: "/static/img/strawberries.jpg", Weight: "1kg / 10kg",
		MinOrder: "1 x 40ft reefer", Grade: "Premium", Featured: true, New: true, Active: ptr(true),
	},
}

// SeedDemo fills an empty catalog with demo content. It reports whether
// anything was written.
func SeedDemo(ctx context.Context, cat *CatalogService) (bool, error) {
	existing, err := cat.ListCategories(ctx, domain.CategoryQuery{AllLocales: true})
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	for _, c := range demoCategories {
		if _, err := cat.CreateCategory(ctx, c); err != nil {
			return false, err
		}
	}
	for _, p := range demoProducts {
		if _, err := cat.CreateProduct(ctx, p); err != nil {
			return false, err
		}
	}
	return true, nil
}
