// Package i18n negotiates the request language and holds the en/ar copy.
package i18n

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"arcticfresh/internal/domain"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "lang"
	// CookieMaxAge is how long the preference cookie lives.
	CookieMaxAge = 365 * 24 * time.Hour
)

var (
	supported = []language.Tag{language.English, language.Arabic}
	matcher   = language.NewMatcher(supported)
)

// Supported returns the tags with a catalog, default first.
func Supported() []language.Tag { return append([]language.Tag(nil), supported...) }

// LocaleFor maps any tag onto the closest supported locale.
func LocaleFor(tag language.Tag) domain.Locale {
	_, idx, conf := matcher.Match(tag)
	if conf == language.No || idx >= len(supported) {
		return domain.LocaleEN
	}
	if supported[idx] == language.Arabic {
		return domain.LocaleAR
	}
	return domain.LocaleEN
}

// ParseLocale accepts "en", "ar" and regional variants such as "ar-EG".
func ParseLocale(v string) (domain.Locale, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	tag, err := language.Parse(v)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	switch base.String() {
	case "en":
		return domain.LocaleEN, true
	case "ar":
		return domain.LocaleAR, true
	}
	return "", false
}

// Resolve picks the locale from the query value, then the cookie, then the
// Accept-Language header. persist reports that the query value should be
// written back as the preference cookie.
func Resolve(query, cookie, acceptLanguage string) (loc domain.Locale, persist bool) {
	if l, ok := ParseLocale(query); ok {
		return l, true
	}
	if l, ok := ParseLocale(cookie); ok {
		return l, false
	}
	if accept := strings.TrimSpace(acceptLanguage); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, idx, conf := matcher.Match(tags...)
			if conf != language.No && supported[idx] == language.Arabic {
				return domain.LocaleAR, false
			}
		}
	}
	return domain.LocaleEN, false
}

func tagOf(loc domain.Locale) language.Tag {
	if loc == domain.LocaleAR {
		return language.Arabic
	}
	return language.English
}

// Printer returns a message printer for loc.
func Printer(loc domain.Locale) *message.Printer {
	return message.NewPrinter(tagOf(loc))
}

// T formats the catalog entry key for loc. Missing keys fall back to the
// English entry, then to the key itself.
func T(loc domain.Locale, key string, args ...any) string {
	s := Printer(loc).Sprintf(key, args...)
	if s != key || loc == domain.LocaleEN {
		return s
	}
	return Printer(domain.LocaleEN).Sprintf(key, args...)
}

// ErrorMessage returns the localized text of a validation reason, or
// fallback when the catalog has none.
func ErrorMessage(loc domain.Locale, reason, fallback string) string {
	key := "err." + reason
	if s := Printer(loc).Sprintf(key); s != key {
		return s
	}
	return fallback
}

// Translator is the template helper bound to one locale.
type Translator struct{ Locale domain.Locale }

func (t Translator) T(key string, args ...any) string { return T(t.Locale, key, args...) }

// Dir is the text direction for templates.
func (t Translator) Dir() string { return t.Locale.Dir() }

// Other is the locale the language switcher links to.
func (t Translator) Other() domain.Locale {
	if t.Locale == domain.LocaleAR {
		return domain.LocaleEN
	}
	return domain.LocaleAR
}
