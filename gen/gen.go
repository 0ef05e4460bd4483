// Package gen emits the Go source artifact for a validated Twine
// catalog: a Lang type enumerating the catalog's languages (regions are
// data, not type variants) and one typed formatting function per key.
//
// Everything a consumer can get wrong — an unknown key, a wrong
// argument count, a wrong argument type — is a compile error in the
// consumer's own build, never a runtime failure.
//
// Output is deterministic: keys, languages and regions are emitted in
// sorted order, and the result is passed through go/format before it is
// returned.
package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/IMI-eRnD-Be/twine-go/locale"
	"github.com/IMI-eRnD-Be/twine-go/printf"
	"github.com/IMI-eRnD-Be/twine-go/twinefile"
)

// Options controls the generated artifact.
type Options struct {
	// Package is the generated package name. Defaults to "i18n".
	Package string
	// Inputs lists the catalog source paths named in the header
	// comment. Informational only.
	Inputs []string
}

// IdentifierError reports a catalog key whose generated Go identifier
// collides with another generated name.
type IdentifierError struct {
	// Key is the offending catalog key.
	Key string
	// Name is the generated identifier.
	Name string
	// Taken describes the prior owner of the name.
	Taken string
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("key %q: generated name %s collides with %s", e.Key, e.Name, e.Taken)
}

// Generate renders the catalog into a gofmt'd Go source file. The
// catalog must already have passed validate.Check; Generate still
// fails (it never emits partial output) if a translation does not
// parse or generated identifiers collide.
func Generate(cat *twinefile.Catalog, opts Options) ([]byte, error) {
	if opts.Package == "" {
		opts.Package = "i18n"
	}

	g := &generator{
		cat:       cat,
		opts:      opts,
		languages: cat.Languages(),
	}
	if len(g.languages) == 0 {
		return nil, fmt.Errorf("catalog has no languages")
	}

	if err := g.assignNames(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := g.emit(&buf); err != nil {
		return nil, err
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		// A formatting failure means the generator produced invalid
		// Go; surface the raw output for debugging.
		return nil, fmt.Errorf("formatting generated code: %w\n%s", err, buf.Bytes())
	}
	return src, nil
}

type generator struct {
	cat       *twinefile.Catalog
	opts      Options
	languages []string // sorted base languages

	// names maps key name to its generated function identifier.
	names map[string]string
}

// titleCaser capitalizes identifier parts; NoLower keeps existing
// capitals so "GB" stays "GB".
var titleCaser = cases.Title(language.English, cases.NoLower)

// assignNames derives every generated identifier up front and rejects
// collisions, aggregated so the user sees all of them at once.
func (g *generator) assignNames() error {
	taken := map[string]string{
		"Lang":        "the locale type",
		"Langs":       "the locale list function",
		"DefaultLang": "the default locale function",
		"ParseLang":   "the locale parser",
	}
	for _, lang := range g.languages {
		taken[langIdent(lang)] = fmt.Sprintf("the %q language constructor", lang)
	}

	g.names = make(map[string]string, len(g.cat.Keys))
	var errs []error
	for _, key := range g.cat.SortedKeys() {
		name := exportName(key.Name)
		if owner, ok := taken[name]; ok {
			errs = append(errs, &IdentifierError{Key: key.Name, Name: name, Taken: owner})
			continue
		}
		taken[name] = fmt.Sprintf("key %q", key.Name)
		g.names[key.Name] = name
	}
	return errors.Join(errs...)
}

func (g *generator) emit(w *bytes.Buffer) error {
	g.emitHeader(w)
	g.emitLangType(w)

	for _, key := range g.cat.SortedKeys() {
		if err := g.emitKey(w, key); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) emitHeader(w *bytes.Buffer) {
	if len(g.opts.Inputs) > 0 {
		fmt.Fprintf(w, "// Code generated by twinec from %s. DO NOT EDIT.\n",
			strings.Join(g.opts.Inputs, ", "))
	} else {
		fmt.Fprintf(w, "// Code generated by twinec. DO NOT EDIT.\n")
	}
	fmt.Fprintf(w, "\npackage %s\n\n", g.opts.Package)
	fmt.Fprintf(w, "import (\n\t\"fmt\"\n\t\"strings\"\n)\n\n")
}

func (g *generator) emitLangType(w *bytes.Buffer) {
	// language enum.
	fmt.Fprintf(w, "// language enumerates the catalog's base languages.\n")
	fmt.Fprintf(w, "type language uint8\n\n")
	fmt.Fprintf(w, "const (\n")
	for i, lang := range g.languages {
		if i == 0 {
			fmt.Fprintf(w, "\tlang%s language = iota\n", langIdent(lang))
		} else {
			fmt.Fprintf(w, "\tlang%s\n", langIdent(lang))
		}
	}
	fmt.Fprintf(w, ")\n\n")

	fmt.Fprintf(w, "var langTags = [...]string{\n")
	for _, lang := range g.languages {
		fmt.Fprintf(w, "\tlang%s: %q,\n", langIdent(lang), lang)
	}
	fmt.Fprintf(w, "}\n\n")

	// Lang value type.
	fmt.Fprintf(w, "// Lang selects the translation for one language, optionally narrowed\n")
	fmt.Fprintf(w, "// to a regional variant. The zero region selects the default variant;\n")
	fmt.Fprintf(w, "// a region with no specific translation falls back to the default.\n")
	fmt.Fprintf(w, "type Lang struct {\n\tlanguage language\n\tregion   string\n}\n\n")

	// Per-language constructors.
	for _, lang := range g.languages {
		fmt.Fprintf(w, "// %s returns the %q Lang. Pass a region tag such as %q to prefer\n",
			langIdent(lang), lang, "gb")
		fmt.Fprintf(w, "// a regional variant, or \"\" for the default.\n")
		fmt.Fprintf(w, "func %s(region string) Lang {\n\treturn Lang{lang%s, strings.ToLower(region)}\n}\n\n",
			langIdent(lang), langIdent(lang))
	}

	// DefaultLang.
	first := g.languages[0]
	fmt.Fprintf(w, "// DefaultLang returns the first catalog language in sorted order.\n")
	fmt.Fprintf(w, "func DefaultLang() Lang {\n\treturn Lang{lang%s, \"\"}\n}\n\n", langIdent(first))

	// Langs.
	fmt.Fprintf(w, "// Langs returns every language and regional variant in the catalog.\n")
	fmt.Fprintf(w, "func Langs() []Lang {\n\treturn []Lang{\n")
	for _, loc := range g.cat.Locales() {
		fmt.Fprintf(w, "\t\t{lang%s, %q},\n", langIdent(loc.Language), loc.Region)
	}
	fmt.Fprintf(w, "\t}\n}\n\n")

	// String.
	fmt.Fprintf(w, "// String returns the locale tag, e.g. %q or %q.\n", "en", "en-gb")
	fmt.Fprintf(w, "func (l Lang) String() string {\n")
	fmt.Fprintf(w, "\tif l.region == \"\" {\n\t\treturn langTags[l.language]\n\t}\n")
	fmt.Fprintf(w, "\treturn langTags[l.language] + \"-\" + l.region\n}\n\n")

	// ParseLang: regions are restricted to those the catalog declares,
	// so a tag round-trips exactly through String.
	fmt.Fprintf(w, "// ParseLang parses a locale tag of the form \"language\" or\n")
	fmt.Fprintf(w, "// \"language-region\". The language must be one of the catalog's\n")
	fmt.Fprintf(w, "// languages and the region, if given, one the catalog declares.\n")
	fmt.Fprintf(w, "func ParseLang(tag string) (Lang, error) {\n")
	fmt.Fprintf(w, "\tlang, region, _ := strings.Cut(strings.ToLower(tag), \"-\")\n")
	fmt.Fprintf(w, "\tswitch region {\n")
	fmt.Fprintf(w, "\tcase \"\"%s:\n", regionCaseList(g.cat))
	fmt.Fprintf(w, "\tdefault:\n\t\treturn Lang{}, fmt.Errorf(\"unknown region %%q\", region)\n\t}\n")
	fmt.Fprintf(w, "\tswitch lang {\n")
	for _, lang := range g.languages {
		fmt.Fprintf(w, "\tcase %q:\n\t\treturn Lang{lang%s, region}, nil\n", lang, langIdent(lang))
	}
	fmt.Fprintf(w, "\t}\n\treturn Lang{}, fmt.Errorf(\"unknown language %%q\", lang)\n}\n\n")

	// Text marshalling, so Lang drops into JSON/YAML configs.
	fmt.Fprintf(w, "// MarshalText implements encoding.TextMarshaler.\n")
	fmt.Fprintf(w, "func (l Lang) MarshalText() ([]byte, error) {\n\treturn []byte(l.String()), nil\n}\n\n")
	fmt.Fprintf(w, "// UnmarshalText implements encoding.TextUnmarshaler.\n")
	fmt.Fprintf(w, "func (l *Lang) UnmarshalText(text []byte) error {\n")
	fmt.Fprintf(w, "\tparsed, err := ParseLang(string(text))\n")
	fmt.Fprintf(w, "\tif err != nil {\n\t\treturn err\n\t}\n")
	fmt.Fprintf(w, "\t*l = parsed\n\treturn nil\n}\n\n")
}

// emitKey renders one translation function.
func (g *generator) emitKey(w *bytes.Buffer, key *twinefile.Key) error {
	sig, formats, err := keyFormats(key)
	if err != nil {
		return fmt.Errorf("key %q: %w", key.Name, err)
	}

	name := g.names[key.Name]

	// Parameter list derived once from the canonical signature.
	params := "lang Lang"
	var args []string
	for i, kind := range sig {
		params += fmt.Sprintf(", arg%d %s", i, kind.GoType())
		args = append(args, fmt.Sprintf("arg%d", i))
	}

	fmt.Fprintf(w, "// %s returns the %q translation for lang.\n", name, key.Name)
	fmt.Fprintf(w, "func %s(%s) string {\n", name, params)
	fmt.Fprintf(w, "\tswitch lang.language {\n")

	// Group translations per language, in sorted language order. For
	// the key's languages the default entry always exists (validated);
	// region variants are checked before it.
	for _, lang := range g.languages {
		var def *entry
		var regions []entry
		for _, e := range formats {
			if e.loc.Language != lang {
				continue
			}
			e := e
			if e.loc.IsDefault() {
				def = &e
			} else {
				regions = append(regions, e)
			}
		}
		if def == nil {
			// Cannot happen on a validated catalog.
			return fmt.Errorf("key %q: no default translation for language %q", key.Name, lang)
		}

		fmt.Fprintf(w, "\tcase lang%s:\n", langIdent(lang))
		for _, e := range regions {
			fmt.Fprintf(w, "\t\tif lang.region == %q {\n", e.loc.Region)
			fmt.Fprintf(w, "\t\t\treturn %s\n\t\t}\n", renderReturn(e.format, args))
		}
		fmt.Fprintf(w, "\t\treturn %s\n", renderReturn(def.format, args))
	}
	fmt.Fprintf(w, "\t}\n")

	// Unreachable for catalog-constructed Lang values; mirrors the
	// default-language fallback for a zero Lang.
	defText, _ := key.Lookup(locale.Locale{Language: g.languages[0]})
	defFormat, err := printf.Parse(defText)
	if err != nil {
		return fmt.Errorf("key %q: %w", key.Name, err)
	}
	fmt.Fprintf(w, "\treturn %s\n}\n\n", renderReturn(defFormat, args))

	return nil
}

type entry struct {
	loc    locale.Locale
	format *printf.Format
}

// keyFormats parses every translation of a key and returns the shared
// canonical signature plus the per-locale formats in canonical order.
func keyFormats(key *twinefile.Key) ([]printf.Kind, []entry, error) {
	var sig []printf.Kind
	var formats []entry

	for i, tr := range key.SortedTranslations() {
		format, err := printf.Parse(tr.Text)
		if err != nil {
			return nil, nil, fmt.Errorf("locale %s: %w", tr.Locale, err)
		}
		if i == 0 {
			sig = format.Signature()
		} else if !printf.SignatureEqual(sig, format.Signature()) {
			return nil, nil, fmt.Errorf("locale %s: signature %s does not match %s",
				tr.Locale, printf.KindsString(format.Signature()), printf.KindsString(sig))
		}
		formats = append(formats, entry{loc: tr.Locale, format: format})
	}

	return sig, formats, nil
}

// renderReturn renders the expression returned for one translation:
// a plain string literal for specifier-free strings, fmt.Sprintf
// otherwise.
func renderReturn(f *printf.Format, args []string) string {
	if len(args) == 0 {
		return strconv.Quote(f.Text())
	}
	return fmt.Sprintf("fmt.Sprintf(%s, %s)",
		strconv.Quote(f.GoFormat()), strings.Join(args, ", "))
}

// regionCaseList renders the catalog's distinct region tags as extra
// switch cases: `, "gb", "us"`.
func regionCaseList(cat *twinefile.Catalog) string {
	var out strings.Builder
	seen := make(map[string]bool)
	for _, loc := range cat.Locales() {
		if loc.Region == "" || seen[loc.Region] {
			continue
		}
		seen[loc.Region] = true
		out.WriteString(", " + strconv.Quote(loc.Region))
	}
	return out.String()
}

// langIdent derives the exported constructor name for a language tag:
// "en" becomes "En".
func langIdent(lang string) string {
	return titleCaser.String(lang)
}

// exportName turns a catalog key into an exported Go identifier. Runs
// of non-alphanumeric characters (underscores, dots) separate words,
// each word is capitalized, and a leading digit gets a "Key" prefix.
// Distinct keys can collide ("a.b" and "a_b"); assignNames rejects
// that with an IdentifierError.
func exportName(key string) string {
	var out strings.Builder
	newWord := true
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			newWord = true
			continue
		}
		if newWord {
			out.WriteString(titleCaser.String(string(r)))
			newWord = false
		} else {
			out.WriteRune(r)
		}
	}

	name := out.String()
	if name == "" {
		return "Key"
	}
	if r := rune(name[0]); unicode.IsDigit(r) {
		return "Key" + name
	}
	return name
}
