package tables

import (
	"regexp"
	"strings"
	"unicode"
)

var multiSpace = regexp.MustCompile(`\s{2,}`)

// NormalizeColumn maps a raw header label to its canonical form. The rules
// run in fixed order:
//
//  1. runs of two or more whitespace characters collapse to one space
//  2. a space is inserted before every ASCII capital letter that is neither at
//     position 0 nor already preceded by whitespace
//  3. surrounding whitespace is trimmed
//  4. a trailing "Org" becomes "Organization"
//
// "TestCase" becomes "Test Case", "Duration Value" is unchanged and
// "ResponsibleOrg" becomes "Responsible Organization".
func NormalizeColumn(raw string) string {
	s := multiSpace.ReplaceAllString(raw, " ")
	var b strings.Builder
	b.Grow(len(s) + 8)
	var prev rune
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' && !unicode.IsSpace(prev) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	s = strings.TrimSpace(b.String())
	if strings.HasSuffix(s, "Org") {
		s = strings.TrimSuffix(s, "Org") + "Organization"
	}
	return s
}

// Canonical returns the lookup key for a normalized or hand-written column
// name: NormalizeColumn followed by collapsing inner whitespace runs.
func Canonical(name string) string {
	return strings.Join(strings.Fields(NormalizeColumn(name)), " ")
}

// NormalizeHeader applies NormalizeColumn to every label of a header row.
func NormalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = NormalizeColumn(h)
	}
	return out
}
