// Package langmeta resolves display metadata for locale tags, used by
// the CLI's status output.
package langmeta

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/IMI-eRnD-Be/twine-go/locale"
)

// Name returns the native display name for a locale ("fr" gives
// "français", "en-gb" gives "British English"). Falls back to the tag
// itself when no name is known.
func Name(loc locale.Locale) string {
	tag, err := language.Parse(loc.String())
	if err != nil {
		return loc.String()
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return loc.String()
}

// EnglishName returns the English display name for a locale, or the
// tag itself when no name is known.
func EnglishName(loc locale.Locale) string {
	tag, err := language.Parse(loc.String())
	if err != nil {
		return loc.String()
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return loc.String()
}
