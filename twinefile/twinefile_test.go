package twinefile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/IMI-eRnD-Be/twine-go/locale"
)

const demoCatalog = `; demo translations
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
`

// ---------------------------------------------------------------------------
// Parse
// ---------------------------------------------------------------------------

func TestParse_Demo(t *testing.T) {
	cat, err := Parse(strings.NewReader(demoCatalog))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(cat.Keys) != 3 {
		t.Fatalf("expected 3 keys, got %d", len(cat.Keys))
	}

	k := cat.Key("band_rage_against_the_machine")
	if k == nil {
		t.Fatal("key band_rage_against_the_machine not found")
	}
	if len(k.Translations) != 3 {
		t.Fatalf("expected 3 translations, got %d", len(k.Translations))
	}

	text, ok := k.Lookup(locale.MustParse("en-gb"))
	if !ok || text != "Wrath Against the Machine" {
		t.Fatalf("Lookup(en-gb) = %q, %v", text, ok)
	}
	if !k.HasDefault("en") {
		t.Fatal("en default should exist")
	}
}

func TestParse_ValueMayContainEquals(t *testing.T) {
	cat, err := Parse(strings.NewReader("[eq]\n\ten = 1 + 1 = 2\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	text, _ := cat.Key("eq").Lookup(locale.MustParse("en"))
	if text != "1 + 1 = 2" {
		t.Fatalf("text = %q", text)
	}
}

func TestParse_CommentsAndBlankLines(t *testing.T) {
	src := "; leading comment\n\n[k]\n# another comment\n\ten = x\n\n"
	cat, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(cat.Keys) != 1 || len(cat.Keys[0].Translations) != 1 {
		t.Fatal("comments and blank lines should be ignored")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"empty catalog", "", "empty catalog"},
		{"comments only", "; nothing\n", "empty catalog"},
		{"empty section", "[a]\n[b]\n\ten = x\n", "section [a] has no translations"},
		{"trailing empty section", "[a]\n\ten = x\n[b]\n", "section [b] has no translations"},
		{"line outside section", "en = x\n", "outside of a section"},
		{"unterminated header", "[abc\n", "unterminated section header"},
		{"bad key name", "[9lives]\n\ten = x\n", "invalid key name"},
		{"bad key chars", "[a key]\n\ten = x\n", "invalid key name"},
		{"bad locale tag", "[a]\n\tenglish = x\n", "invalid locale tag"},
		{"not a kv line", "[a]\n\tgarbage\n", "expected \"locale = text\""},
	}

	for _, tc := range tests {
		_, err := Parse(strings.NewReader(tc.src))
		if err == nil {
			t.Fatalf("%s: expected error, got nil", tc.name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: error %q does not mention %q", tc.name, err, tc.want)
		}
	}
}

func TestParse_ErrorLineNumbers(t *testing.T) {
	_, err := Parse(strings.NewReader("[a]\n\ten = x\n\tbad tag = y\n"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Line != 3 {
		t.Fatalf("Line = %d, want 3", perr.Line)
	}
}

func TestParse_DuplicateLocale(t *testing.T) {
	_, err := Parse(strings.NewReader("[a]\n\ten = x\n\ten = y\n"))
	var dup *DuplicateLocaleError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateLocaleError, got %v", err)
	}
	if dup.Key != "a" || dup.Tag != "en" || dup.Line != 3 {
		t.Fatalf("DuplicateLocaleError = %+v", dup)
	}
}

func TestParse_DuplicateSection(t *testing.T) {
	_, err := Parse(strings.NewReader("[a]\n\ten = x\n[a]\n\tfr = y\n"))
	if err == nil || !strings.Contains(err.Error(), "duplicate section") {
		t.Fatalf("expected duplicate section error, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Catalog accessors
// ---------------------------------------------------------------------------

func TestCatalog_Languages(t *testing.T) {
	cat, err := Parse(strings.NewReader(demoCatalog))
	if err != nil {
		t.Fatal(err)
	}
	langs := cat.Languages()
	if len(langs) != 2 || langs[0] != "en" || langs[1] != "fr" {
		t.Fatalf("Languages() = %v, want [en fr]", langs)
	}
}

func TestCatalog_Locales(t *testing.T) {
	cat, err := Parse(strings.NewReader(demoCatalog))
	if err != nil {
		t.Fatal(err)
	}
	var tags []string
	for _, loc := range cat.Locales() {
		tags = append(tags, loc.String())
	}
	want := []string{"en", "en-gb", "fr"}
	if strings.Join(tags, " ") != strings.Join(want, " ") {
		t.Fatalf("Locales() = %v, want %v", tags, want)
	}
}

// ---------------------------------------------------------------------------
// Merge / Load
// ---------------------------------------------------------------------------

func TestMerge_OverrideWholeKey(t *testing.T) {
	base, err := Parse(strings.NewReader("[a]\n\ten = base a\n\tfr = base a fr\n[b]\n\ten = base b\n"))
	if err != nil {
		t.Fatal(err)
	}
	overlay, err := Parse(strings.NewReader("[a]\n\ten = overlay a\n[c]\n\ten = overlay c\n"))
	if err != nil {
		t.Fatal(err)
	}

	merged := Merge(base, overlay)
	if len(merged.Keys) != 3 {
		t.Fatalf("expected 3 keys, got %d", len(merged.Keys))
	}

	// Overridden keys are replaced wholesale: the base fr entry is gone.
	a := merged.Key("a")
	if len(a.Translations) != 1 {
		t.Fatalf("key a: expected 1 translation after override, got %d", len(a.Translations))
	}
	text, _ := a.Lookup(locale.MustParse("en"))
	if text != "overlay a" {
		t.Fatalf("key a en = %q, want %q", text, "overlay a")
	}

	if merged.Key("b") == nil || merged.Key("c") == nil {
		t.Fatal("both unique keys should survive the merge")
	}
}

func TestLoad_MultipleFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "base.ini")
	second := filepath.Join(dir, "extra.ini")
	if err := os.WriteFile(first, []byte("[a]\n\ten = one\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte("[a]\n\ten = two\n[b]\n\ten = three\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cat, err := Load(first, second)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	text, _ := cat.Key("a").Lookup(locale.MustParse("en"))
	if text != "two" {
		t.Fatalf("later file should override: got %q", text)
	}
	if cat.Key("b") == nil {
		t.Fatal("key b missing after merge")
	}
}

func TestLoad_NoFiles(t *testing.T) {
	if _, err := Load(); err == nil {
		t.Fatal("Load() with no paths should fail")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.ini")); err == nil {
		t.Fatal("Load() with a missing file should fail")
	}
}

// ---------------------------------------------------------------------------
// Write
// ---------------------------------------------------------------------------

func TestWrite_Canonical(t *testing.T) {
	// Unsorted input: keys and locales out of order.
	src := "[b_key]\n\tfr = deux\n\ten = two\n[a_key]\n\ten-gb = one (GB)\n\ten = one\n"
	cat, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}

	var buf strings.Builder
	if err := cat.Write(&buf); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	want := "[a_key]\n\ten = one\n\ten-gb = one (GB)\n\n[b_key]\n\ten = two\n\tfr = deux\n"
	if buf.String() != want {
		t.Fatalf("canonical form:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	cat, err := Parse(strings.NewReader(demoCatalog))
	if err != nil {
		t.Fatal(err)
	}

	var first strings.Builder
	if err := cat.Write(&first); err != nil {
		t.Fatal(err)
	}

	again, err := Parse(strings.NewReader(first.String()))
	if err != nil {
		t.Fatalf("reparsing canonical form: %v", err)
	}
	var second strings.Builder
	if err := again.Write(&second); err != nil {
		t.Fatal(err)
	}

	if first.String() != second.String() {
		t.Fatal("writing a reparsed canonical catalog should reproduce it exactly")
	}
}
