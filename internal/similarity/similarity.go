// Package similarity implements the set-based similarity primitives the
// pair scorer composes: character n-grams, Jaccard, token overlap, and
// phone-tail matching. Each is a small pure function, the same granularity
// as the teacher's sim() helper in address_matcher.go.
package similarity

import "strings"

// Phone tail-match bounds: numbers shorter than phoneTailMinDigits never
// match, and suffix comparison uses at most phoneTailMaxDigits digits.
const (
	phoneTailMinDigits = 7
	phoneTailMaxDigits = 10
)

// NGrams expects an already-cleaned string (callers apply CleanText
// first), replaces spaces with "_", and returns the set
// of length-n substrings. Strings shorter than n return a singleton set
// containing the whole string. Empty input returns an empty set.
func NGrams(cleaned string, n int) map[string]struct{} {
	set := make(map[string]struct{})
	if cleaned == "" {
		return set
	}
	s := strings.ReplaceAll(cleaned, " ", "_")
	if len(s) < n {
		set[s] = struct{}{}
		return set
	}
	for i := 0; i+n <= len(s); i++ {
		set[s[i:i+n]] = struct{}{}
	}
	return set
}

// Jaccard returns |A∩B| / |A∪B|. Both empty returns 1.0; exactly one empty
// returns 0.0.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	small, large := a, b
	if len(large) < len(small) {
		small, large = large, small
	}
	intersect := 0
	for k := range small {
		if _, ok := large[k]; ok {
			intersect++
		}
	}
	union := len(a) + len(b) - intersect
	if union == 0 {
		return 1.0
	}
	return float64(intersect) / float64(union)
}

// TokenOverlap is Jaccard over whitespace-split tokens of cleaned a and b.
func TokenOverlap(cleanedA, cleanedB string) float64 {
	return Jaccard(tokenSet(cleanedA), tokenSet(cleanedB))
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		set[tok] = struct{}{}
	}
	return set
}

// PhoneMatch returns 1.0 if the digit strings p1 and p2 are equal;
// otherwise 1.0 if both have length >= 7 and share an identical suffix of
// length min(10, max(7, min(len1, len2))); otherwise 0.0. Strings shorter
// than 7 digits (including empty/absent) are treated as absent and never
// match, per the phone_digits invariant.
func PhoneMatch(p1, p2 string) float64 {
	if len(p1) < phoneTailMinDigits || len(p2) < phoneTailMinDigits {
		return 0.0
	}
	if p1 == p2 {
		return 1.0
	}
	minLen := len(p1)
	if len(p2) < minLen {
		minLen = len(p2)
	}
	tail := minLen
	if tail < phoneTailMinDigits {
		tail = phoneTailMinDigits
	}
	if tail > phoneTailMaxDigits {
		tail = phoneTailMaxDigits
	}
	if p1[len(p1)-tail:] == p2[len(p2)-tail:] {
		return 1.0
	}
	return 0.0
}
