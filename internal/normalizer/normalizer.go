package normalizer

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize produces the canonical lookup key for jurisdiction names:
// leading/trailing whitespace trimmed, ASCII lowercased. Every comparison
// in the rules pipeline goes through this.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// StripDiacritics removes combining marks ("San José" -> "San Jose").
// Anything the NFD pass leaves behind goes through unidecode.
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return unidecode.Unidecode(s)
	}
	return unidecode.Unidecode(out)
}

// isMn reports whether r is a nonspacing combining mark
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// Fold is the looser key used by the fuzzy suggester: diacritics stripped,
// then normalized. Exact matching never uses Fold.
func Fold(s string) string {
	return Normalize(StripDiacritics(s))
}
