package normalize

import (
	"strings"
	"time"
)

// layouts is tried in order; the first that parses wins. No date-parsing
// library appears anywhere in the retrieved pack, so this stays a short
// fixed-layout table rather than reaching for one.
var layouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006/01/02",
}

// NormalizeDateTime permissively parses s against a fixed layout table.
// Unparsable or empty input returns the zero time and ok=false; never an
// error — unparsable scalars are coerced to absent, not fatal.
func NormalizeDateTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
