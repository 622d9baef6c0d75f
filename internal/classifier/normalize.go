package classifier

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// normalizeCategory collapses a raw category cell down to the characters the
// keyword rules are written against: lowercase ASCII letters, digits, and
// Hangul syllables. Raw cells mix separators freely ("NEW_MATGO_for_kakao",
// "뉴맞고(모바일)"), and agents paste full-width variants, so everything is
// width-folded first and the rest is stripped.
func normalizeCategory(raw string) string {
	folded := width.Fold.String(raw)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case r >= hangulSyllableLo && r <= hangulSyllableHi:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Hangul syllable block (가..힣).
const (
	hangulSyllableLo = 0xAC00
	hangulSyllableHi = 0xD7A3
)
