// Package features derives per-row fuzzy-matching features from a roster,
// computed once and consumed by both the blocker and the pair scorer. The
// Extractor follows the teacher's constructor-plus-method shape
// (NewAddressMatcher/MatchAddress in internal/parser/address_matcher.go):
// a small struct holding tunables, with a single Extract entry point.
package features

import (
	"strings"

	"go.uber.org/zap"

	"github.com/careroster/providerdedup/internal/normalize"
	"github.com/careroster/providerdedup/internal/roster"
	"github.com/careroster/providerdedup/internal/similarity"
)

// DerivedFeatures holds every signal the blocker and scorer need for one
// row. Kept in a parallel slice indexed by row index rather than embedded
// in roster.Row — public pipeline outputs expose row indices only, and
// these intermediate values must never leak into persisted output.
type DerivedFeatures struct {
	CleanName  string
	FirstClean string
	LastClean  string

	NameGrams map[string]struct{}

	AddrText  string
	AddrGrams map[string]struct{}

	PhoneDigits string

	NPIKey string

	LicenseKey string // UPPER(license_state) + "|" + NormalizeLicense(license_number)

	CityStateKey string // clean(city) + "|" + clean(state)

	NameKey string // last_clean[:5] + "_" + first_clean[:2]

	Zip3 string
}

const ngramN = 2

// Extractor computes DerivedFeatures for a roster. NgramN is exposed as a
// field (not a hard constant) the same way the teacher exposes
// thresholdHigh/thresholdMedium/maxCandidates on AddressMatcher, even though
// spec.md fixes n=2 throughout.
type Extractor struct {
	NgramN int
	logger *zap.Logger
}

// NewExtractor constructs an Extractor. A nil logger is replaced with a
// no-op logger, matching the teacher's defensive nil-check on injected
// *zap.Logger dependencies.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{NgramN: ngramN, logger: logger}
}

// Extract computes DerivedFeatures for every row, in row order.
func (e *Extractor) Extract(rows []roster.Row) []DerivedFeatures {
	out := make([]DerivedFeatures, len(rows))
	for i, row := range rows {
		out[i] = e.extractOne(row)
	}
	e.logger.Debug("features extracted", zap.Int("rows", len(rows)))
	return out
}

func (e *Extractor) extractOne(row roster.Row) DerivedFeatures {
	firstClean := normalize.CleanText(row.FirstName)
	lastClean := normalize.CleanText(row.LastName)

	cleanName := normalize.CleanText(row.FullName)
	if cleanName == "" {
		cleanName = strings.TrimSpace(firstClean + " " + lastClean)
	}

	addrText := normalize.CleanText(strings.Join([]string{
		row.PracticeAddressLine1, row.PracticeCity, row.PracticeState,
	}, " "))

	phoneDigits, _ := normalize.NormalizePhone(row.PracticePhone)
	if len(phoneDigits) < 7 {
		phoneDigits = ""
	}

	npiKey := strings.TrimSpace(row.NPI)

	licenseNumber, _ := normalize.NormalizeLicense(row.LicenseNumber)
	state := strings.ToUpper(strings.TrimSpace(row.LicenseState))
	licenseKey := state + "|" + licenseNumber

	cityClean := normalize.CleanText(row.PracticeCity)
	stateClean := normalize.CleanText(row.PracticeState)
	cityStateKey := cityClean + "|" + stateClean

	nameKey := ""
	if lastClean != "" || firstClean != "" {
		nameKey = truncate(lastClean, 5) + "_" + truncate(firstClean, 2)
	}

	zip3 := ""
	zipDigits := normalize.ExtractDigits(row.PracticeZip)
	if len(zipDigits) >= 3 {
		zip3 = zipDigits[:3]
	}

	n := e.NgramN
	if n <= 0 {
		n = ngramN
	}

	return DerivedFeatures{
		CleanName:    cleanName,
		FirstClean:   firstClean,
		LastClean:    lastClean,
		NameGrams:    similarity.NGrams(cleanName, n),
		AddrText:     addrText,
		AddrGrams:    similarity.NGrams(addrText, n),
		PhoneDigits:  phoneDigits,
		NPIKey:       npiKey,
		LicenseKey:   licenseKey,
		CityStateKey: cityStateKey,
		NameKey:      nameKey,
		Zip3:         zip3,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
