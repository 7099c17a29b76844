package domain

import "time"

// Locale identifies one language version of a document.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleAR Locale = "ar"
)

// Locales lists the supported locales in canonical order. Every logical
// product or category is stored as one document per entry.
var Locales = []Locale{LocaleEN, LocaleAR}

// ParseLocale returns the locale for s, or false if unsupported.
func ParseLocale(s string) (Locale, bool) {
	switch Locale(s) {
	case LocaleEN, LocaleAR:
		return Locale(s), true
	}
	return "", false
}

// Dir is the text direction for the locale.
func (l Locale) Dir() string {
	if l == LocaleAR {
		return "rtl"
	}
	return "ltr"
}

// Product is one locale document of a logical product. Only Name and
// Description differ between the documents of a locale pair.
type Product struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Locale      Locale    `json:"locale"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Gallery     []string  `json:"gallery"`
	Weight      string    `json:"weight"`
	MinOrder    string    `json:"minOrder"`
	Grade       string    `json:"grade"`
	Featured    bool      `json:"featured"`
	New         bool      `json:"new"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Category is one locale document of a logical category.
type Category struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Locale    Locale    `json:"locale"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Sort orders for product listings.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortName   = "name"
)

// ProductQuery filters a product listing. Nil flag pointers mean "any".
type ProductQuery struct {
	Locale     Locale
	AllLocales bool
	Category   string
	Featured   *bool
	New        *bool
	ActiveOnly bool
	Search     string
	Exclude    string // slug to leave out (related views)
	Sort       string
	Page       int
	Limit      int // 0 means unbounded
}

// Offset returns the row offset for the query's page.
func (q ProductQuery) Offset() int {
	if q.Page < 1 || q.Limit <= 0 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// CategoryQuery filters a category listing.
type CategoryQuery struct {
	Locale     Locale
	AllLocales bool
}

// ProductShared holds the fields copied into both documents of a pair.
// Nil pointers are left untouched by an update.
type ProductShared struct {
	Slug     *string
	Category *string
	Image    *string
	Gallery  []string // nil means untouched, empty slice clears
	Weight   *string
	MinOrder *string
	Grade    *string
	Featured *bool
	New      *bool
	Active   *bool
}

// Localized holds the per-locale text fields of an update.
type Localized struct {
	Name        *string
	Description *string
}

// ProductPatch is an update applied to a product's locale pair.
type ProductPatch struct {
	Shared    ProductShared
	PerLocale map[Locale]Localized
}

// CategoryPatch is an update applied to a category's locale pair.
type CategoryPatch struct {
	Slug      *string
	Icon      *string
	Order     *int
	PerLocale map[Locale]*string // name per locale
}

// Inquiry kinds.
const (
	InquiryContact = "contact"
	InquiryQuote   = "quote"
)

// Inquiry is an accepted contact or quote-request submission.
type Inquiry struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Locale    Locale    `json:"locale"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Country   string    `json:"country,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message,omitempty"`
	Products  []string  `json:"products,omitempty"`
	Mailed    bool      `json:"mailed"`
	CreatedAt time.Time `json:"createdAt"`
}
