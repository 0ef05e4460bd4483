package twinefile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/IMI-eRnD-Be/twine-go/locale"
)

// Parse reads a Twine catalog from a reader. It fails with a
// *ParseError or *DuplicateLocaleError on the first structural problem.
func Parse(r io.Reader) (*Catalog, error) {
	return parse(r, "")
}

// ParseFile reads a Twine catalog from disk.
func ParseFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse(f, path)
}

// Load reads and merges several catalog files in order. Keys repeated
// in a later file replace the earlier definition wholesale.
func Load(paths ...string) (*Catalog, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files given")
	}

	var merged *Catalog
	for _, path := range paths {
		cat, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		if merged == nil {
			merged = cat
			continue
		}
		merged = Merge(merged, cat)
	}
	return merged, nil
}

func parse(r io.Reader, file string) (*Catalog, error) {
	cat := &Catalog{}
	byName := make(map[string]*Key)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	var current *Key
	lineNum := 0

	// A section must own at least one translation before the next
	// section starts or the file ends.
	closeSection := func() error {
		if current != nil && len(current.Translations) == 0 {
			return &ParseError{File: file, Line: current.Line,
				Msg: fmt.Sprintf("section [%s] has no translations", current.Name)}
		}
		return nil
	}

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}

		// Section header.
		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, &ParseError{File: file, Line: lineNum,
					Msg: fmt.Sprintf("unterminated section header %q", line)}
			}
			name := strings.TrimSpace(line[1 : len(line)-1])
			if !isKeyName(name) {
				return nil, &ParseError{File: file, Line: lineNum,
					Msg: fmt.Sprintf("invalid key name %q", name)}
			}
			if _, ok := byName[name]; ok {
				return nil, &ParseError{File: file, Line: lineNum,
					Msg: fmt.Sprintf("duplicate section [%s]", name)}
			}
			if err := closeSection(); err != nil {
				return nil, err
			}
			current = &Key{Name: name, Line: lineNum}
			byName[name] = current
			cat.Keys = append(cat.Keys, current)
			continue
		}

		// Locale line: "tag = text".
		tag, text, ok := strings.Cut(line, "=")
		if !ok {
			return nil, &ParseError{File: file, Line: lineNum,
				Msg: fmt.Sprintf("expected \"locale = text\" line, got %q", line)}
		}
		if current == nil {
			return nil, &ParseError{File: file, Line: lineNum,
				Msg: "translation line outside of a section"}
		}

		tag = strings.TrimSpace(tag)
		loc, err := locale.Parse(tag)
		if err != nil {
			return nil, &ParseError{File: file, Line: lineNum,
				Msg: fmt.Sprintf("section [%s]: %v", current.Name, err)}
		}
		if _, dup := current.Lookup(loc); dup {
			return nil, &DuplicateLocaleError{File: file, Line: lineNum,
				Key: current.Name, Tag: loc.String()}
		}

		current.Translations = append(current.Translations, Translation{
			Locale: loc,
			Text:   strings.TrimSpace(text),
			Line:   lineNum,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	if err := closeSection(); err != nil {
		return nil, err
	}
	if len(cat.Keys) == 0 {
		return nil, &ParseError{File: file, Msg: "empty catalog: no sections found"}
	}

	return cat, nil
}

// isKeyName reports whether name is a valid Twine key: a letter or
// underscore followed by letters, digits, underscores or dots.
func isKeyName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_':
		case '0' <= c && c <= '9' || c == '.':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
