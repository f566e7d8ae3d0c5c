package filter

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/width"
)

// foldText prepares free text for case-insensitive containment: full-width Latin is narrowed and
// case is folded.
func foldText(s string) string {
	return cases.Fold().String(width.Fold.String(strings.TrimSpace(s)))
}

// normalizeJANQuery strips whitespace and hyphens from user input. Full-width digits and dashes are
// narrowed first so that "４９０１２３４－５６７８９０" behaves like "4901234-567890".
func normalizeJANQuery(s string) string {
	s = width.Fold.String(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return -1
		}
		return r
	}, s)
}

// normalizeJANField strips whitespace only. Hyphens stored in the data are kept.
func normalizeJANField(s string) string {
	s = width.Fold.String(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
