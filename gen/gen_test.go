package gen

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/IMI-eRnD-Be/twine-go/twinefile"
)

const demoCatalog = `
[app_ruin_the_band]
	en = Ruin a band name by translating it in French
	fr = Ruiner le nom d'un groupe en le traduisant en français
[band_rage_against_the_machine]
	en = Rage Against the Machine
	en-gb = Wrath Against the Machine
	fr = Colère contre la machine
[format_string]
	en = %s, %@!
	fr = %s, %@ !
[format_percentage]
	en = %.0f%%
	fr = %.0f %%
[format_hexadecimal]
	en = %x
	fr = %#X
`

func parse(t *testing.T, src string) *twinefile.Catalog {
	t.Helper()
	cat, err := twinefile.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return cat
}

func generate(t *testing.T, src string, opts Options) string {
	t.Helper()
	out, err := Generate(parse(t, src), opts)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	return string(out)
}

func mustContain(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Fatalf("generated code missing %q:\n%s", want, out)
	}
}

// ---------------------------------------------------------------------------
// Structure of the generated file
// ---------------------------------------------------------------------------

func TestGenerate_Header(t *testing.T) {
	out := generate(t, demoCatalog, Options{Package: "i18n", Inputs: []string{"translations.ini"}})

	if !strings.HasPrefix(out, "// Code generated by twinec from translations.ini. DO NOT EDIT.") {
		t.Fatalf("missing generated-code header:\n%s", out[:120])
	}
	mustContain(t, out, "package i18n")
}

func TestGenerate_DefaultPackageName(t *testing.T) {
	out := generate(t, demoCatalog, Options{})
	mustContain(t, out, "package i18n")
}

func TestGenerate_LangType(t *testing.T) {
	out := generate(t, demoCatalog, Options{})

	mustContain(t, out, "type language uint8")
	mustContain(t, out, "langEn language = iota")
	mustContain(t, out, "langFr")
	mustContain(t, out, "type Lang struct {")
	mustContain(t, out, "func En(region string) Lang {")
	mustContain(t, out, "func Fr(region string) Lang {")
	mustContain(t, out, "func DefaultLang() Lang {")
	mustContain(t, out, "func ParseLang(tag string) (Lang, error) {")
	mustContain(t, out, "func (l Lang) MarshalText() ([]byte, error) {")
	mustContain(t, out, "func (l *Lang) UnmarshalText(text []byte) error {")

	// Every language/region combination appears in Langs().
	mustContain(t, out, `{langEn, ""}`)
	mustContain(t, out, `{langEn, "gb"}`)
	mustContain(t, out, `{langFr, ""}`)
}

// ---------------------------------------------------------------------------
// Per-key functions
// ---------------------------------------------------------------------------

func TestGenerate_ZeroArgKey(t *testing.T) {
	out := generate(t, demoCatalog, Options{})

	mustContain(t, out, "func AppRuinTheBand(lang Lang) string {")
	// Specifier-free strings come back as plain literals, no Sprintf.
	mustContain(t, out, `return "Ruin a band name by translating it in French"`)
	mustContain(t, out, `return "Ruiner le nom d'un groupe en le traduisant en français"`)
}

func TestGenerate_TypedParameters(t *testing.T) {
	out := generate(t, demoCatalog, Options{})

	mustContain(t, out, "func FormatString(lang Lang, arg0 string, arg1 any) string {")
	mustContain(t, out, `fmt.Sprintf("%s, %v!", arg0, arg1)`)
	mustContain(t, out, `fmt.Sprintf("%s, %v !", arg0, arg1)`)

	mustContain(t, out, "func FormatPercentage(lang Lang, arg0 float64) string {")
	mustContain(t, out, `fmt.Sprintf("%.0f%%", arg0)`)

	mustContain(t, out, "func FormatHexadecimal(lang Lang, arg0 uint64) string {")
	mustContain(t, out, `fmt.Sprintf("%x", arg0)`)
	mustContain(t, out, `fmt.Sprintf("%#X", arg0)`)
}

func TestGenerate_RegionFallback(t *testing.T) {
	out := generate(t, demoCatalog, Options{})

	mustContain(t, out, "func BandRageAgainstTheMachine(lang Lang) string {")
	// Region check comes before the default return.
	idx := strings.Index(out, `if lang.region == "gb"`)
	if idx < 0 {
		t.Fatalf("missing region check:\n%s", out)
	}
	gb := strings.Index(out, `return "Wrath Against the Machine"`)
	def := strings.Index(out, `return "Rage Against the Machine"`)
	if gb < 0 || def < 0 || gb > def {
		t.Fatalf("region variant must be checked before the default (gb=%d, default=%d)", gb, def)
	}
}

func TestGenerate_ReorderedArguments(t *testing.T) {
	out := generate(t, `
[greet2]
	en = %1$s, %2$s
	fr = %2$s, %1$s
`, Options{})

	mustContain(t, out, "func Greet2(lang Lang, arg0 string, arg1 string) string {")
	// The English order is sequential; the French one is indexed.
	mustContain(t, out, `fmt.Sprintf("%s, %s", arg0, arg1)`)
	mustContain(t, out, `fmt.Sprintf("%[2]s, %[1]s", arg0, arg1)`)
}

func TestGenerate_IntegerKinds(t *testing.T) {
	out := generate(t, `
[count]
	en = %i items
	fr = %d choses
`, Options{})

	mustContain(t, out, "func Count(lang Lang, arg0 int64) string {")
	mustContain(t, out, `fmt.Sprintf("%d items", arg0)`)
	mustContain(t, out, `fmt.Sprintf("%d choses", arg0)`)
}

func TestGenerate_DottedKey(t *testing.T) {
	out := generate(t, "[app.title]\n\ten = Twine\n", Options{})
	mustContain(t, out, "func AppTitle(lang Lang) string {")
}

// ---------------------------------------------------------------------------
// Failure modes
// ---------------------------------------------------------------------------

func TestGenerate_IdentifierCollision(t *testing.T) {
	_, err := Generate(parse(t, "[a.b]\n\ten = one\n[a_b]\n\ten = two\n"), Options{})
	var identErr *IdentifierError
	if !errors.As(err, &identErr) {
		t.Fatalf("expected IdentifierError, got %v", err)
	}
	if identErr.Name != "AB" {
		t.Fatalf("Name = %q, want AB", identErr.Name)
	}
}

func TestGenerate_KeyCollidesWithConstructor(t *testing.T) {
	_, err := Generate(parse(t, "[en]\n\ten = english\n"), Options{})
	var identErr *IdentifierError
	if !errors.As(err, &identErr) {
		t.Fatalf("expected IdentifierError, got %v", err)
	}
	if !strings.Contains(identErr.Error(), "language constructor") {
		t.Fatalf("error should name the constructor: %v", identErr)
	}
}

func TestGenerate_NoPartialOutputOnBadSpecifier(t *testing.T) {
	out, err := Generate(parse(t, "[ok]\n\ten = fine\n[bad]\n\ten = 50% off\n"), Options{})
	if err == nil {
		t.Fatal("expected error for malformed specifier")
	}
	if out != nil {
		t.Fatal("no partial output may be produced on error")
	}
}

// ---------------------------------------------------------------------------
// Determinism
// ---------------------------------------------------------------------------

func TestGenerate_Deterministic(t *testing.T) {
	// Locale variants and keys deliberately out of order; the dataset
	// is small so repeat the comparison to shake out map ordering.
	src := `
[band_tool]
	en-us = Tool (US)
	en-gb = Tool (GB)
	en = Tool
	fr = Outil
[band_the_doors]
	en = The Doors
	fr = Les portes
`
	first, err := Generate(parse(t, src), Options{})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	for i := 0; i < 100; i++ {
		again, err := Generate(parse(t, src), Options{})
		if err != nil {
			t.Fatalf("Generate error: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("iteration %d: generation is not deterministic", i)
		}
	}
}

func TestGenerate_SortedKeyOrder(t *testing.T) {
	out := generate(t, "[zebra]\n\ten = z\n[apple]\n\ten = a\n", Options{})
	if strings.Index(out, "func Apple(") > strings.Index(out, "func Zebra(") {
		t.Fatal("keys must be emitted in sorted order")
	}
}

// ---------------------------------------------------------------------------
// exportName
// ---------------------------------------------------------------------------

func TestExportName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"app_ruin_the_band", "AppRuinTheBand"},
		{"app.title", "AppTitle"},
		{"simple", "Simple"},
		{"with2numbers_x9", "With2numbersX9"},
		{"alreadyCamel", "AlreadyCamel"},
		{"__weird__", "Weird"},
	}

	for _, tc := range tests {
		if got := exportName(tc.key); got != tc.want {
			t.Fatalf("exportName(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}
