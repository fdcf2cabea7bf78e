package normalize

import (
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripDiacritics removes combining diacritical marks by decomposing to NFD,
// dropping Unicode Mn runes, and recomposing to NFC. Kept verbatim from the
// address-parser service's internal/normalizer/accents.go. No normalizer in
// this package calls it: CleanText folds diacritics with unidecode, and
// NormalizeLicense does not fold them.
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
