// Package twinefile implements reading and writing of Twine INI
// translation catalogs.
//
// A catalog is a sequence of bracketed sections, one per translation
// key, each followed by "locale = text" lines:
//
//	[band_rage_against_the_machine]
//		en = Rage Against the Machine
//		en-gb = Wrath Against the Machine
//		fr = Colère contre la machine
//
// Lines starting with ';' or '#' are comments. Parsing is purely
// structural; cross-key consistency is the validate package's job.
package twinefile

import (
	"fmt"
	"sort"

	"github.com/IMI-eRnD-Be/twine-go/locale"
)

// Translation is one locale's string for a key.
type Translation struct {
	// Locale identifies the language and optional region.
	Locale locale.Locale
	// Text is the raw translation string, printf specifiers included.
	Text string
	// Line is the 1-based source line of the "locale = text" entry.
	Line int
}

// Key is one translatable message and its per-locale strings.
type Key struct {
	// Name is the section name, unique within a catalog.
	Name string
	// Line is the 1-based source line of the section header.
	Line int
	// Translations holds the locale entries in source order.
	Translations []Translation
}

// Lookup returns the translation text for an exact locale match.
func (k *Key) Lookup(loc locale.Locale) (string, bool) {
	for _, tr := range k.Translations {
		if tr.Locale == loc {
			return tr.Text, true
		}
	}
	return "", false
}

// Languages returns the sorted distinct base languages of this key.
func (k *Key) Languages() []string {
	seen := make(map[string]bool)
	var langs []string
	for _, tr := range k.Translations {
		if !seen[tr.Locale.Language] {
			seen[tr.Locale.Language] = true
			langs = append(langs, tr.Locale.Language)
		}
	}
	sort.Strings(langs)
	return langs
}

// HasDefault reports whether the key carries the region-less default
// entry for a language.
func (k *Key) HasDefault(language string) bool {
	_, ok := k.Lookup(locale.Locale{Language: language})
	return ok
}

// SortedTranslations returns the translations in canonical locale
// order (language, default variant first, then regions).
func (k *Key) SortedTranslations() []Translation {
	trs := make([]Translation, len(k.Translations))
	copy(trs, k.Translations)
	sort.SliceStable(trs, func(i, j int) bool {
		return locale.Compare(trs[i].Locale, trs[j].Locale) < 0
	})
	return trs
}

// Catalog is a parsed Twine catalog: keys in source order.
type Catalog struct {
	Keys []*Key
}

// Key returns the key with the given name, or nil.
func (c *Catalog) Key(name string) *Key {
	for _, k := range c.Keys {
		if k.Name == name {
			return k
		}
	}
	return nil
}

// SortedKeys returns the keys sorted by name. Generation iterates this
// order so output never depends on map or source ordering.
func (c *Catalog) SortedKeys() []*Key {
	keys := make([]*Key, len(c.Keys))
	copy(keys, c.Keys)
	sort.Slice(keys, func(i, j int) bool { return keys[i].Name < keys[j].Name })
	return keys
}

// Languages returns the sorted union of base languages across all keys.
// After validation every key carries exactly this set.
func (c *Catalog) Languages() []string {
	seen := make(map[string]bool)
	var langs []string
	for _, k := range c.Keys {
		for _, tr := range k.Translations {
			if !seen[tr.Locale.Language] {
				seen[tr.Locale.Language] = true
				langs = append(langs, tr.Locale.Language)
			}
		}
	}
	sort.Strings(langs)
	return langs
}

// Locales returns every distinct locale in the catalog in canonical
// order.
func (c *Catalog) Locales() []locale.Locale {
	seen := make(map[locale.Locale]bool)
	var locs []locale.Locale
	for _, k := range c.Keys {
		for _, tr := range k.Translations {
			if !seen[tr.Locale] {
				seen[tr.Locale] = true
				locs = append(locs, tr.Locale)
			}
		}
	}
	sort.Slice(locs, func(i, j int) bool { return locale.Compare(locs[i], locs[j]) < 0 })
	return locs
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

// ParseError describes a structural error in a catalog file.
type ParseError struct {
	// File is the source path, or "" for in-memory input.
	File string
	// Line is the 1-based offending line, or 0 for whole-file errors.
	Line int
	// Msg describes the problem.
	Msg string
}

func (e *ParseError) Error() string {
	switch {
	case e.File == "" && e.Line == 0:
		return e.Msg
	case e.File == "":
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	case e.Line == 0:
		return fmt.Sprintf("%s: %s", e.File, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// DuplicateLocaleError reports two entries for the same locale within
// one section — an ambiguous translation.
type DuplicateLocaleError struct {
	File string
	// Line is the line of the second, conflicting entry.
	Line int
	// Key is the section name.
	Key string
	// Tag is the duplicated locale tag.
	Tag string
}

func (e *DuplicateLocaleError) Error() string {
	loc := fmt.Sprintf("line %d", e.Line)
	if e.File != "" {
		loc = fmt.Sprintf("%s:%d", e.File, e.Line)
	}
	return fmt.Sprintf("%s: duplicate locale %q in section [%s]", loc, e.Tag, e.Key)
}
