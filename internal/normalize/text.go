// Package normalize implements the text normalizers spec'd for the
// dedup/merge pipeline: clean_text, extract_digits, to_title, normalize_phone,
// normalize_zip, normalize_license, normalize_bool, plus the diacritic
// stripper carried over from the address-parser service. It follows the
// teacher's step-pipeline shape (internal/normalizer/text_normalizer.go):
// a small set of free functions, each doing one normalization, composed by
// callers rather than chained internally.
package normalize

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	nonWordSpaceRun = regexp.MustCompile(`[^\w\s]+`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	asciiDigits     = regexp.MustCompile(`[^0-9]`)
	dashRun         = regexp.MustCompile(`[\s-]+`)

	titleCaser = cases.Title(language.English)
)

// CleanText lowercases s, folds diacritics to ASCII, replaces every run of
// non-word/non-space characters with a single space, and collapses
// whitespace runs to one space. Empty input returns "".
func CleanText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = unidecode.Unidecode(s)
	s = strings.ToLower(s)
	s = nonWordSpaceRun.ReplaceAllString(s, " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ExtractDigits keeps ASCII digits only; empty input (or input with no
// digits) returns "".
func ExtractDigits(s string) string {
	return asciiDigits.ReplaceAllString(s, "")
}

// ToTitle trims s and Unicode title-cases it via golang.org/x/text/cases,
// the same library the teacher's text normalizer reaches for when it needs
// locale-aware casing rather than strings.Title's naive byte-wise version.
func ToTitle(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return titleCaser.String(s)
}

// NormalizePhone keeps digits only; returns ("", false) when no digits
// remain, matching "digits only, else absent".
func NormalizePhone(s string) (string, bool) {
	d := ExtractDigits(s)
	if d == "" {
		return "", false
	}
	return d, true
}

// NormalizeZip keeps digits only and reshapes by length: <5 left-pads with
// zeros, 5 is left as-is, 9 becomes DDDDD-DDDD, anything else is returned as
// the bare digit string. Empty input returns ("", false).
func NormalizeZip(s string) (string, bool) {
	d := ExtractDigits(s)
	if d == "" {
		return "", false
	}
	switch {
	case len(d) < 5:
		return strings.Repeat("0", 5-len(d)) + d, true
	case len(d) == 5:
		return d, true
	case len(d) == 9:
		return d[:5] + "-" + d[5:], true
	default:
		return d, true
	}
}

// NormalizeLicense uppercases s and strips whitespace and ASCII dashes.
// Empty input returns ("", false).
func NormalizeLicense(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	s = dashRun.ReplaceAllString(s, "")
	s = strings.ToUpper(s)
	if s == "" {
		return "", false
	}
	return s, true
}

var (
	trueTokens  = map[string]bool{"true": true, "yes": true, "y": true, "1": true, "t": true}
	falseTokens = map[string]bool{"false": true, "no": true, "n": true, "0": true, "f": true}
)

// NormalizeBool coerces the case-insensitive, trimmed token sets
// {true,yes,y,1,t} and {false,no,n,0,f} to true/false; anything else is
// absent (ok=false).
func NormalizeBool(s string) (value bool, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if trueTokens[s] {
		return true, true
	}
	if falseTokens[s] {
		return false, true
	}
	return false, false
}
