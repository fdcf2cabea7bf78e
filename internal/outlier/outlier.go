// Package outlier bounds years_in_practice to a configured range, dropping
// rows outside it (and rows where the field is absent). Grounded on
// pipeline.py's remove_outliers; this is a single-pass filter with no
// third-party surface to exercise.
package outlier

import (
	"strconv"

	"github.com/careroster/providerdedup/internal/roster"
)

const (
	DefaultMin = 0
	DefaultMax = 60
)

// Filter drops rows whose years_in_practice falls outside [Min, Max], or
// is absent/unparsable.
type Filter struct {
	Min, Max int
}

// NewFilter constructs a Filter with the spec's default bounds.
func NewFilter() *Filter {
	return &Filter{Min: DefaultMin, Max: DefaultMax}
}

// Apply returns the retained rows and the count removed.
func (f *Filter) Apply(rows []roster.Row) (kept []roster.Row, removed int) {
	kept = make([]roster.Row, 0, len(rows))
	for _, r := range rows {
		years, err := strconv.Atoi(r.YearsInPractice)
		if err != nil || years < f.Min || years > f.Max {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	return kept, removed
}
