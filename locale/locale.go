// Package locale models Twine locale tags: a base language code with an
// optional region refinement (e.g. "en", "en-gb", "fr").
//
// A tag with no region is the default variant of its language. Region
// variants refine the default; they never replace it. Lookup order at
// runtime is exact (language, region) match first, then the bare
// (language) default.
package locale

import (
	"fmt"
	"strings"
)

// Locale identifies one translation language, optionally narrowed to a
// region. Immutable once parsed; compare with ==.
type Locale struct {
	// Language is the lowercase base language code (e.g. "en").
	Language string
	// Region is the lowercase region code (e.g. "gb"), or "" for the
	// default variant of the language.
	Region string
}

// Parse parses a locale tag of the form "language" or "language-region"
// (single hyphen separator). Tags are case-insensitive and normalized
// to lowercase.
func Parse(tag string) (Locale, error) {
	lang, region, hasRegion := strings.Cut(tag, "-")

	if !isLanguageCode(lang) {
		return Locale{}, fmt.Errorf("invalid locale tag %q: language must be 2-3 letters", tag)
	}
	if hasRegion && !isRegionCode(region) {
		return Locale{}, fmt.Errorf("invalid locale tag %q: region must be 2-3 letters or digits", tag)
	}

	return Locale{
		Language: strings.ToLower(lang),
		Region:   strings.ToLower(region),
	}, nil
}

// MustParse is Parse for known-good tags; it panics on error.
// Intended for tests and fixed tables.
func MustParse(tag string) Locale {
	loc, err := Parse(tag)
	if err != nil {
		panic(err)
	}
	return loc
}

// String returns the canonical tag form: "en" or "en-gb".
func (l Locale) String() string {
	if l.Region == "" {
		return l.Language
	}
	return l.Language + "-" + l.Region
}

// IsDefault reports whether this is the default (region-less) variant
// of its language.
func (l Locale) IsDefault() bool {
	return l.Region == ""
}

// Compare defines the canonical total order over locales: by language,
// then the default variant before region variants, then by region.
// Returns -1, 0 or +1.
func Compare(a, b Locale) int {
	if c := strings.Compare(a.Language, b.Language); c != 0 {
		return c
	}
	// Default variant sorts first within a language.
	if a.Region == "" && b.Region != "" {
		return -1
	}
	if a.Region != "" && b.Region == "" {
		return 1
	}
	return strings.Compare(a.Region, b.Region)
}

// isLanguageCode reports whether s is a 2-3 letter ASCII language code.
func isLanguageCode(s string) bool {
	if len(s) < 2 || len(s) > 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			return false
		}
	}
	return true
}

// isRegionCode reports whether s is a 2-3 character ASCII alphanumeric
// region code (letters like "gb", or UN M.49 digits like "029").
func isRegionCode(s string) bool {
	if len(s) < 2 || len(s) > 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9') {
			return false
		}
	}
	return true
}
