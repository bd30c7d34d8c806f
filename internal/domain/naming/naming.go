// Package naming derives comparison keys from free-text names.
//
// Two keys exist with distinct contracts:
//   - CanonicalKey is strict: case-folded, whitespace and punctuation removed.
//     Club logo lookups compare on it.
//   - LooseKey only lower-cases and trims. Price joins compare on it.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// CanonicalKey returns the strict comparison key for s.
//
// Letters and digits from any script survive (diacritics are kept, not
// folded to ASCII), as does '_'. Everything else, whitespace included, is
// dropped. The input is NFC-composed first so "é" typed as e+U+0301 and as
// U+00E9 give the same key, and the result is composed again since dropping
// a separator can leave composable neighbours (Hangul jamo). The empty
// string maps to itself.
func CanonicalKey(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(norm.NFC.String(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isWordRune(r) {
			b.WriteRune(r)
		}
	}
	return norm.NFC.String(b.String())
}

// LooseKey returns the loose comparison key for s: lower-cased and trimmed,
// with inner spacing and punctuation untouched.
func LooseKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Contains reports whether either key contains the other. Empty keys never
// match anything, since "" is a substring of every string.
func Contains(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}
