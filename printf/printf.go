// Package printf parses printf-style conversion specifiers embedded in
// Twine translation strings and rewrites them into Go's fmt syntax.
//
// The supported grammar, scanned left to right:
//
//	%%                     literal percent
//	%[n$][flags][w][.p]c   conversion: optional positional index (n$),
//	                       flags (-+#), width digits, precision, and one
//	                       conversion character from s d i f x X @
//
// A lone '%' at the very end of the string is kept as a literal percent
// (historical Twine catalogs rely on it, e.g. "%.0f%"). Any other '%'
// that does not begin a valid specifier is an error.
//
// Conversion characters map to Go verbs as follows: s→s, d/i→d, f→f,
// x→x, X→X, @→v. Width, precision and flags carry over unchanged; like
// printf, %f without an explicit precision formats with 6 digits, which
// is also Go's default.
package printf

import (
	"fmt"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Specifier kinds
// ---------------------------------------------------------------------------

// Kind classifies a conversion specifier by the argument it consumes.
type Kind uint8

const (
	// KindString is %s: a text argument.
	KindString Kind = iota
	// KindInt is %d or %i: a signed integer argument.
	KindInt
	// KindFloat is %f: a floating point argument.
	KindFloat
	// KindHex is %x or %X: an unsigned integer rendered in hexadecimal.
	KindHex
	// KindObject is %@: an arbitrary displayable value.
	KindObject
)

// String returns the kind name used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindHex:
		return "hex"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// GoType returns the Go parameter type generated for arguments of this
// kind.
func (k Kind) GoType() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int64"
	case KindFloat:
		return "float64"
	case KindHex:
		return "uint64"
	case KindObject:
		return "any"
	}
	return "any"
}

// KindsString renders a specifier-kind sequence for diagnostics,
// e.g. "[string, float]".
func KindsString(kinds []Kind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = k.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ---------------------------------------------------------------------------
// Specifiers
// ---------------------------------------------------------------------------

// Spec is one parsed conversion specifier.
type Spec struct {
	// Kind is the conversion class.
	Kind Kind
	// Flags holds the printf flags (-, +, #) in source order.
	Flags string
	// Width is the minimum field width digits, or "".
	Width string
	// Precision is the precision including the leading dot (".0"), or "".
	Precision string
	// Upper is set for %X.
	Upper bool
	// Arg is the canonical 0-based argument index this specifier binds
	// to: its appearance position, or the explicit n$ index minus one.
	Arg int
	// Offset is the byte offset of the '%' in the raw string.
	Offset int
}

// verb returns the Go conversion verb for the specifier.
func (s Spec) verb() byte {
	switch s.Kind {
	case KindString:
		return 's'
	case KindInt:
		return 'd'
	case KindFloat:
		return 'f'
	case KindHex:
		if s.Upper {
			return 'X'
		}
		return 'x'
	case KindObject:
		return 'v'
	}
	return 'v'
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

// MalformedSpecifierError reports a '%' that does not begin a valid
// conversion specifier (truncated, or followed by garbage).
type MalformedSpecifierError struct {
	// Offset is the byte offset of the '%' in the raw string.
	Offset int
}

func (e *MalformedSpecifierError) Error() string {
	return fmt.Sprintf("malformed format specifier at byte %d", e.Offset)
}

// UnsupportedConversionError reports a specifier terminated by a
// conversion character outside the supported set (s d i f x X @).
type UnsupportedConversionError struct {
	// Offset is the byte offset of the '%' in the raw string.
	Offset int
	// Conv is the offending conversion character.
	Conv byte
}

func (e *UnsupportedConversionError) Error() string {
	return fmt.Sprintf("unsupported conversion %%%c at byte %d", e.Conv, e.Offset)
}

// ArgumentError reports an inconsistent positional-argument binding:
// mixed explicit/implicit indexes, an index bound to two different
// kinds, or an index never referenced.
type ArgumentError struct {
	// Arg is the 0-based argument index, or -1 when not applicable.
	Arg int
	// Msg describes the inconsistency.
	Msg string
}

func (e *ArgumentError) Error() string {
	return e.Msg
}

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// Format is one raw translation string scanned into literal text and
// conversion specifiers, with its Go rewrite precomputed.
type Format struct {
	raw        string
	specs      []Spec
	signature  []Kind
	goFormat   string
	text       string
	sequential bool
}

// Parse scans a raw Twine translation string. It returns an error for
// malformed or unsupported specifiers and for inconsistent argument
// bindings; errors carry the byte offset of the offending '%'.
func Parse(raw string) (*Format, error) {
	f := &Format{raw: raw, sequential: true}

	// part is either a literal string (percents pre-escaped as "%%")
	// or an index into f.specs.
	type part struct {
		literal string
		spec    int
	}
	var parts []part

	explicit := false
	implicit := false
	next := 0

	i := 0
	for i < len(raw) {
		if raw[i] != '%' {
			j := strings.IndexByte(raw[i:], '%')
			if j < 0 {
				j = len(raw) - i
			}
			run := raw[i : i+j]
			parts = append(parts, part{literal: run, spec: -1})
			f.text += run
			i += j
			continue
		}

		// Lone trailing percent: literal.
		if i+1 == len(raw) {
			parts = append(parts, part{literal: "%%", spec: -1})
			f.text += "%"
			i++
			continue
		}

		// Escaped percent.
		if raw[i+1] == '%' {
			parts = append(parts, part{literal: "%%", spec: -1})
			f.text += "%"
			i += 2
			continue
		}

		spec, end, err := scanSpec(raw, i)
		if err != nil {
			return nil, err
		}

		if spec.Arg >= 0 {
			explicit = true
		} else {
			implicit = true
			spec.Arg = next
			next++
		}
		if explicit && implicit {
			return nil, &ArgumentError{Arg: -1, Msg: fmt.Sprintf(
				"cannot mix explicit (%%n$) and implicit argument indexes (at byte %d)", i)}
		}
		if spec.Arg != len(f.specs) {
			f.sequential = false
		}

		parts = append(parts, part{spec: len(f.specs)})
		f.specs = append(f.specs, spec)
		i = end
	}

	// Derive the canonical signature: one kind per argument index.
	if err := f.deriveSignature(); err != nil {
		return nil, err
	}

	// Render the Go format string. Indexed verbs are only needed when
	// the appearance order diverges from the canonical argument order;
	// then every verb is indexed so fmt's implicit cursor never engages.
	var out strings.Builder
	for _, p := range parts {
		if p.spec < 0 {
			out.WriteString(p.literal)
			continue
		}
		s := f.specs[p.spec]
		out.WriteByte('%')
		if !f.sequential {
			out.WriteString("[" + strconv.Itoa(s.Arg+1) + "]")
		}
		out.WriteString(s.Flags)
		out.WriteString(s.Width)
		out.WriteString(s.Precision)
		out.WriteByte(s.verb())
	}
	f.goFormat = out.String()

	return f, nil
}

// scanSpec parses one specifier starting at the '%' at raw[start].
// Returns the spec (Arg is the explicit 0-based index or -1) and the
// offset just past the conversion character.
func scanSpec(raw string, start int) (Spec, int, error) {
	sp := Spec{Offset: start, Arg: -1}
	i := start + 1

	// Explicit positional index: digits followed by '$'.
	if d := scanDigits(raw, i); d > i && d < len(raw) && raw[d] == '$' {
		n, err := strconv.Atoi(raw[i:d])
		if err != nil || n < 1 {
			return Spec{}, 0, &MalformedSpecifierError{Offset: start}
		}
		sp.Arg = n - 1
		i = d + 1
	}

	// Flags.
	for i < len(raw) && (raw[i] == '-' || raw[i] == '+' || raw[i] == '#') {
		sp.Flags += string(raw[i])
		i++
	}

	// Width.
	if d := scanDigits(raw, i); d > i {
		sp.Width = raw[i:d]
		i = d
	}

	// Precision: a dot requires at least one digit.
	if i < len(raw) && raw[i] == '.' {
		d := scanDigits(raw, i+1)
		if d == i+1 {
			return Spec{}, 0, &MalformedSpecifierError{Offset: start}
		}
		sp.Precision = raw[i:d]
		i = d
	}

	if i >= len(raw) {
		return Spec{}, 0, &MalformedSpecifierError{Offset: start}
	}

	switch c := raw[i]; c {
	case 's':
		sp.Kind = KindString
	case 'd', 'i':
		sp.Kind = KindInt
	case 'f':
		sp.Kind = KindFloat
	case 'x':
		sp.Kind = KindHex
	case 'X':
		sp.Kind = KindHex
		sp.Upper = true
	case '@':
		sp.Kind = KindObject
	default:
		if isConvChar(c) {
			return Spec{}, 0, &UnsupportedConversionError{Offset: start, Conv: c}
		}
		return Spec{}, 0, &MalformedSpecifierError{Offset: start}
	}

	return sp, i + 1, nil
}

// deriveSignature computes the kind-per-argument-index sequence and
// rejects gaps and conflicting bindings.
func (f *Format) deriveSignature() error {
	max := -1
	for _, s := range f.specs {
		if s.Arg > max {
			max = s.Arg
		}
	}

	sig := make([]Kind, max+1)
	bound := make([]bool, max+1)
	for _, s := range f.specs {
		if bound[s.Arg] && sig[s.Arg] != s.Kind {
			return &ArgumentError{Arg: s.Arg, Msg: fmt.Sprintf(
				"argument %d bound to both %s and %s", s.Arg+1, sig[s.Arg], s.Kind)}
		}
		sig[s.Arg] = s.Kind
		bound[s.Arg] = true
	}
	for i, b := range bound {
		if !b {
			return &ArgumentError{Arg: i, Msg: fmt.Sprintf(
				"argument %d is never referenced", i+1)}
		}
	}

	f.signature = sig
	return nil
}

// scanDigits returns the offset past the run of ASCII digits at raw[i:].
func scanDigits(raw string, i int) int {
	for i < len(raw) && '0' <= raw[i] && raw[i] <= '9' {
		i++
	}
	return i
}

// isConvChar reports whether c could plausibly be a printf conversion
// character, so diagnostics can distinguish "unsupported conversion"
// from outright garbage.
func isConvChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '@'
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Specs returns the specifiers in appearance order.
func (f *Format) Specs() []Spec {
	return f.specs
}

// NumArgs returns the number of arguments the string consumes.
func (f *Format) NumArgs() int {
	return len(f.signature)
}

// Signature returns the canonical specifier-kind sequence: one kind per
// argument index, ordered by index. Two translations of the same key
// must have equal signatures regardless of the order their specifiers
// appear in.
func (f *Format) Signature() []Kind {
	return f.signature
}

// GoFormat returns the string rewritten into Go fmt syntax, with '%'
// literals kept escaped as "%%" and indexed verbs ("%[2]s") whenever
// this translation reorders its arguments.
func (f *Format) GoFormat() string {
	return f.goFormat
}

// Text returns the string with "%%" escapes collapsed to a single '%'.
// Only meaningful for strings with no specifiers, where the generated
// code returns the text directly instead of calling fmt.Sprintf.
func (f *Format) Text() string {
	return f.text
}

// SignatureEqual reports whether two canonical signatures are
// identical in length and kind at every position.
func SignatureEqual(a, b []Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
