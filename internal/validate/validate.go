package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,}$`)
	reSlug  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	rePhone = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,19}$`)
	reRef   = regexp.MustCompile(`^[A-Za-z0-9_-]{1,100}$`)
)

// Email validates address syntax. The domain must contain a dot.
func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Slug validates a URL-safe identifier: lowercase words joined by dashes.
func Slug(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, reSlug.MatchString(s)
}

// Phone validates an international-looking phone number.
func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && rePhone.MatchString(s)
}

// Ref validates a wishlist reference (slug or legacy id).
func Ref(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reRef.MatchString(s)
}

// MaxQueryLen is the longest search term kept, in runes.
const MaxQueryLen = 80

// Q validates a free-text search term: trims, cuts to MaxQueryLen runes and
// rejects invalid UTF-8 or control characters.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || !utf8.ValidString(s) {
		return "", false
	}
	if utf8.RuneCountInString(s) > MaxQueryLen {
		s = strings.TrimSpace(string([]rune(s)[:MaxQueryLen]))
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return "", false
		}
	}
	return s, true
}

// Text trims s and checks it is non-empty and at most max runes.
func Text(s string, max int) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > max {
		return s, false
	}
	return s, true
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	return Text(s, 120)
}

// Page parses a 1-based page number, defaulting to 1.
func Page(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Limit parses a page size, defaulting to def and clamping to max.
func Limit(s string, def, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

// Bool parses an optional boolean flag. ok is false when s is empty or
// not a boolean.
func Bool(s string) (v bool, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, false
	}
	return b, true
}
