package pipeline

import (
	"strings"

	"github.com/careroster/providerdedup/internal/outlier"
	"github.com/careroster/providerdedup/internal/roster"
	"github.com/careroster/providerdedup/internal/standardize"
)

// expiredStatuses are the merger-assigned status values that count toward
// expired_licenses (spec.md §4.10, pipeline.py's expired_licenses count).
var expiredStatuses = map[string]struct{}{
	"Expired": {}, "Suspended": {}, "Revoked": {}, "Inactive": {},
}

func validate(rows []roster.Row) error {
	if len(rows) == 0 {
		return nil
	}
	for _, r := range rows {
		if strings.TrimSpace(r.FirstName) != "" || strings.TrimSpace(r.LastName) != "" {
			return nil
		}
	}
	return &MalformedInputError{Reason: "no row carries first_name or last_name"}
}

func standardizeRows(rows []roster.Row) []roster.Row {
	return standardize.NewStandardizer().Apply(rows)
}

func outlierFilter() *outlier.Filter {
	return outlier.NewFilter()
}

func countExpired(rows []roster.Row) int {
	n := 0
	for _, r := range rows {
		if _, bad := expiredStatuses[r.Status]; bad {
			n++
		}
	}
	return n
}

func countMissingNPI(rows []roster.Row) int {
	n := 0
	for _, r := range rows {
		if !r.NPIPresent {
			n++
		}
	}
	return n
}

func countAccepting(rows []roster.Row) int {
	n := 0
	for _, r := range rows {
		if r.AcceptingNewPatients == "Yes" {
			n++
		}
	}
	return n
}

func countState(rows []roster.Row, state string) int {
	n := 0
	for _, r := range rows {
		if r.PracticeState == state {
			n++
		}
	}
	return n
}

// complianceRate is max(0, 100 - (expired_licenses + missing_npi) /
// final_records * 100), per spec.md §4.10 and pipeline.py's compliance
// formula — computed from the already-tallied summary fields, not
// re-derived per row.
func complianceRate(expiredLicenses, missingNPI, finalRecords int) float64 {
	if finalRecords == 0 {
		return 100.0
	}
	rate := 100 - (float64(expiredLicenses+missingNPI)/float64(finalRecords))*100
	if rate < 0 {
		rate = 0
	}
	return round2(rate)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
