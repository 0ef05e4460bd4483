// Package validate enforces cross-key consistency over a parsed Twine
// catalog before any code is generated.
//
// Three invariants are checked:
//
//  1. every key declares a default (region-less) translation for every
//     base language the catalog uses anywhere;
//  2. a region variant never appears without its language's default;
//  3. all translations of one key share a single canonical
//     printf-specifier signature, so the generated function can take
//     one fixed parameter list.
//
// Check is exhaustive: it collects every violation in the catalog
// instead of stopping at the first, so one compiler run surfaces the
// complete error set for bulk-edited catalogs.
package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/IMI-eRnD-Be/twine-go/printf"
	"github.com/IMI-eRnD-Be/twine-go/twinefile"
)

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

// LanguageSetError reports a key whose base-language set falls short of
// the catalog's language set (the union across all keys).
type LanguageSetError struct {
	// Key is the offending key.
	Key string
	// Missing lists the catalog languages the key has no default for,
	// sorted.
	Missing []string
}

func (e *LanguageSetError) Error() string {
	return fmt.Sprintf("key %q: missing translations for language(s) %s",
		e.Key, strings.Join(e.Missing, ", "))
}

// MissingDefaultError reports region variants declared without the
// region-less default of their language. Regions refine the default;
// they never replace it.
type MissingDefaultError struct {
	Key      string
	Language string
	// Tags lists the orphaned region-qualified tags, sorted.
	Tags []string
}

func (e *MissingDefaultError) Error() string {
	return fmt.Sprintf("key %q: %s declared without the %q default",
		e.Key, strings.Join(e.Tags, ", "), e.Language)
}

// SignatureError reports two translations of one key whose canonical
// specifier-kind sequences differ.
type SignatureError struct {
	Key     string
	LocaleA string
	// SigA is LocaleA's canonical signature.
	SigA    []printf.Kind
	LocaleB string
	// SigB is LocaleB's canonical signature.
	SigB []printf.Kind
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("key %q: specifier signature mismatch: %s has %s but %s has %s",
		e.Key, e.LocaleA, printf.KindsString(e.SigA), e.LocaleB, printf.KindsString(e.SigB))
}

// SpecError wraps a printf parse failure with the key and locale of the
// offending translation string.
type SpecError struct {
	Key    string
	Locale string
	// Line is the source line of the translation, when known.
	Line int
	// Err is the underlying *printf.MalformedSpecifierError,
	// *printf.UnsupportedConversionError or *printf.ArgumentError.
	Err error
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("key %q, locale %s: %v", e.Key, e.Locale, e.Err)
}

func (e *SpecError) Unwrap() error {
	return e.Err
}

// ---------------------------------------------------------------------------
// Check
// ---------------------------------------------------------------------------

// Check validates the whole catalog and returns every violation found,
// in deterministic order: keys in source order, locales in canonical
// order within a key. An empty slice means the catalog is consistent
// and ready for generation.
func Check(cat *twinefile.Catalog) []error {
	var errs []error

	languages := cat.Languages()

	for _, key := range cat.Keys {
		errs = append(errs, checkKey(key, languages)...)
	}

	return errs
}

// checkKey runs every check against one key before moving on, so the
// report for a key is complete and self-contained.
func checkKey(key *twinefile.Key, languages []string) []error {
	var errs []error

	// Defaults present for the catalog's full language set.
	var missing []string
	for _, lang := range languages {
		if !key.HasDefault(lang) {
			missing = append(missing, lang)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		errs = append(errs, &LanguageSetError{Key: key.Name, Missing: missing})
	}

	// Region variants without their language's default. Only reported
	// for languages this key uses at all; a fully absent language is
	// already covered above.
	orphans := make(map[string][]string)
	for _, tr := range key.Translations {
		if !tr.Locale.IsDefault() && !key.HasDefault(tr.Locale.Language) {
			lang := tr.Locale.Language
			orphans[lang] = append(orphans[lang], tr.Locale.String())
		}
	}
	var orphanLangs []string
	for lang := range orphans {
		orphanLangs = append(orphanLangs, lang)
	}
	sort.Strings(orphanLangs)
	for _, lang := range orphanLangs {
		tags := orphans[lang]
		sort.Strings(tags)
		errs = append(errs, &MissingDefaultError{Key: key.Name, Language: lang, Tags: tags})
	}

	// Specifier parses and signature agreement, locales in canonical
	// order. The first parseable translation sets the reference
	// signature for the key.
	type parsed struct {
		tag string
		sig []printf.Kind
	}
	var ref *parsed

	for _, tr := range key.SortedTranslations() {
		format, err := printf.Parse(tr.Text)
		if err != nil {
			errs = append(errs, &SpecError{
				Key:    key.Name,
				Locale: tr.Locale.String(),
				Line:   tr.Line,
				Err:    err,
			})
			continue
		}

		cur := &parsed{tag: tr.Locale.String(), sig: format.Signature()}
		if ref == nil {
			ref = cur
			continue
		}
		if !printf.SignatureEqual(ref.sig, cur.sig) {
			errs = append(errs, &SignatureError{
				Key:     key.Name,
				LocaleA: ref.tag,
				SigA:    ref.sig,
				LocaleB: cur.tag,
				SigB:    cur.sig,
			})
		}
	}

	return errs
}

// Signature returns the canonical specifier signature of a validated
// key: the signature of its first translation in canonical locale
// order. Call only after Check reported no violations.
func Signature(key *twinefile.Key) []printf.Kind {
	trs := key.SortedTranslations()
	if len(trs) == 0 {
		return nil
	}
	format, err := printf.Parse(trs[0].Text)
	if err != nil {
		return nil
	}
	return format.Signature()
}
