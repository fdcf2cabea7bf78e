// Package score computes the weighted pair score between two roster rows
// from five signals, the way the teacher's AddressMatcher.scorePath
// composes a weighted sum from SimWard/SimDistrict/SimProvince/Structural/
// RoadBonus/PoiBonus/LPCoverage with a fixed weight vector.
package score

import (
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/xrash/smetrics"
	"github.com/agnivade/levenshtein"

	"github.com/careroster/providerdedup/internal/features"
	"github.com/careroster/providerdedup/internal/similarity"
)

// Fixed weight vector (spec.md §4.4). NPI's weight is intentionally zero:
// NPI participates only as a blocking key and an early-exit signal;
// npi_match is still reported for downstream review. Reimplementers must
// preserve these exact values to keep Total compatible across runs.
const (
	weightName    = 0.27
	weightNPI     = 0.00
	weightAddr    = 0.08
	weightPhone   = 0.50
	weightLicense = 0.15

	earlyExitNameTokenThreshold = 0.2
)

// PairScore is the output of scoring one candidate pair.
type PairScore struct {
	Total        float64
	NameScore    float64
	NPIMatch     bool
	AddrScore    float64
	PhoneMatch   bool
	LicenseScore float64

	// Diagnostic-only fields, never folded into Total: an auxiliary
	// Jaro-Winkler/Levenshtein blend over the clean names and the address
	// text, mirroring the teacher's sim() helper. Carried for analyst
	// review the same way MatchResult carries Residual/Quality.Flags
	// beyond what drives its own accept/reject decision.
	NameEditSimilarity float64
	AddrEditSimilarity float64
}

// Scorer computes PairScore for candidate pairs, memoizing by
// (min(i,j), max(i,j)) for the duration of one detection run.
type Scorer struct {
	feats []features.DerivedFeatures
	cache *lru.Cache[cacheKey, PairScore]
}

type cacheKey struct{ i, j int }

// NewScorer constructs a Scorer over feats, sizing the per-run memoization
// cache to cacheSize entries (typically the candidate-pair count).
func NewScorer(feats []features.DerivedFeatures, cacheSize int) *Scorer {
	if cacheSize < 1 {
		cacheSize = 1
	}
	c, _ := lru.New[cacheKey, PairScore](cacheSize)
	return &Scorer{feats: feats, cache: c}
}

// Score computes the PairScore for row indices i and j, consulting and
// populating the memoization cache keyed by the order-independent pair.
func (s *Scorer) Score(i, j int) PairScore {
	key := cacheKey{i: min(i, j), j: max(i, j)}
	if v, ok := s.cache.Get(key); ok {
		return v
	}
	ps := s.compute(s.feats[key.i], s.feats[key.j])
	s.cache.Add(key, ps)
	return ps
}

func (s *Scorer) compute(ri, rj features.DerivedFeatures) PairScore {
	nameTok := similarity.TokenOverlap(ri.CleanName, rj.CleanName)

	bothNPI := ri.NPIKey != "" && rj.NPIKey != ""
	phoneScore := similarity.PhoneMatch(ri.PhoneDigits, rj.PhoneDigits)

	if nameTok < earlyExitNameTokenThreshold && !bothNPI && phoneScore == 0 {
		return PairScore{
			Total:     0.0,
			NameScore: round4(nameTok),
		}
	}

	nameBigram := similarity.Jaccard(ri.NameGrams, rj.NameGrams)
	nameScore := math.Max(nameTok, nameBigram)

	npiMatch := ri.NPIKey != "" && rj.NPIKey != "" && ri.NPIKey == rj.NPIKey

	addrScore := similarity.Jaccard(ri.AddrGrams, rj.AddrGrams)

	licenseScore := licenseScore(ri.LicenseKey, rj.LicenseKey)

	total := weightName*nameScore + weightNPI*boolToFloat(npiMatch) +
		weightAddr*addrScore + weightPhone*phoneScore + weightLicense*licenseScore

	return PairScore{
		Total:              round4(total),
		NameScore:          round4(nameScore),
		NPIMatch:           npiMatch,
		AddrScore:          round4(addrScore),
		PhoneMatch:         phoneScore == 1.0,
		LicenseScore:       round4(licenseScore),
		NameEditSimilarity: editSimilarity(ri.CleanName, rj.CleanName),
		AddrEditSimilarity: editSimilarity(ri.AddrText, rj.AddrText),
	}
}

// licenseScore is 1.0 when both license_key are non-empty, equal, and not
// the "|" sentinel; 0.5 when the pre-"|" state prefixes are both non-empty
// and equal; otherwise 0.0.
func licenseScore(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}
	if a == b && a != "|" {
		return 1.0
	}
	stateA, stateB := statePrefix(a), statePrefix(b)
	if stateA != "" && stateB != "" && stateA == stateB {
		return 0.5
	}
	return 0.0
}

func statePrefix(licenseKey string) string {
	for i := 0; i < len(licenseKey); i++ {
		if licenseKey[i] == '|' {
			return licenseKey[:i]
		}
	}
	return ""
}

// editSimilarity blends Jaro-Winkler and normalized Levenshtein similarity,
// the same weighting the teacher's sim() helper uses for admin-unit names.
// This is a diagnostic signal only; it never enters Total.
func editSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}
	jw := smetrics.JaroWinkler(a, b, 0.7, 4)
	ld := levenshtein.ComputeDistance(a, b)
	denom := len(a)
	if len(b) > denom {
		denom = len(b)
	}
	lev := 1.0 - float64(ld)/float64(denom)
	return round4(0.7*jw + 0.3*lev)
}

func round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}

func boolToFloat(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}
