package domain

import (
	"slices"
	"time"
)

// Apply copies the patch into p: shared fields always, localized fields only
// for p's own locale.
func (patch ProductPatch) Apply(p *Product, now time.Time) {
	s := patch.Shared
	if s.Slug != nil {
		p.Slug = *s.Slug
	}
	if s.Category != nil {
		p.Category = *s.Category
	}
	if s.Image != nil {
		p.Image = *s.Image
	}
	if s.Gallery != nil {
		p.Gallery = append([]string(nil), s.Gallery...)
	}
	if s.Weight != nil {
		p.Weight = *s.Weight
	}
	if s.MinOrder != nil {
		p.MinOrder = *s.MinOrder
	}
	if s.Grade != nil {
		p.Grade = *s.Grade
	}
	if s.Featured != nil {
		p.Featured = *s.Featured
	}
	if s.New != nil {
		p.New = *s.New
	}
	if s.Active != nil {
		p.Active = *s.Active
	}
	if loc, ok := patch.PerLocale[p.Locale]; ok {
		if loc.Name != nil {
			p.Name = *loc.Name
		}
		if loc.Description != nil {
			p.Description = *loc.Description
		}
	}
	p.UpdatedAt = now
}

// Apply copies the patch into c.
func (patch CategoryPatch) Apply(c *Category, now time.Time) {
	if patch.Slug != nil {
		c.Slug = *patch.Slug
	}
	if patch.Icon != nil {
		c.Icon = *patch.Icon
	}
	if patch.Order != nil {
		c.Order = *patch.Order
	}
	if name, ok := patch.PerLocale[c.Locale]; ok && name != nil {
		c.Name = *name
	}
	c.UpdatedAt = now
}

// SortProductPair orders locale documents canonically (en, then ar).
func SortProductPair(docs []Product) {
	slices.SortStableFunc(docs, func(a, b Product) int { return localeRank(a.Locale) - localeRank(b.Locale) })
}

// SortCategoryPair orders locale documents canonically (en, then ar).
func SortCategoryPair(docs []Category) {
	slices.SortStableFunc(docs, func(a, b Category) int { return localeRank(a.Locale) - localeRank(b.Locale) })
}

func localeRank(l Locale) int {
	if i := slices.Index(Locales, l); i >= 0 {
		return i
	}
	return len(Locales)
}
