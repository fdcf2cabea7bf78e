// Package merge left-joins the deduplicated roster against the external
// CA/NY license tables and the NPI registry table, producing a unified
// status and an npi_present flag. The teacher has no external-join code of
// its own to ground the shape on (its services wrap a single search index,
// not a reference table), so the service-struct-wrapping-a-data-source
// pattern follows app/services' *zap.Logger-carrying constructors while
// the join semantics themselves come straight from pipeline.py's
// merge_roster.
package merge

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/careroster/providerdedup/internal/normalize"
	"github.com/careroster/providerdedup/internal/roster"
)

// CardinalityError reports that an external reference table has rows that
// share a join key but disagree on status — a corrupted reference table,
// fatal per spec §7. Repeated rows that agree on status are deduplicated
// without an error.
type CardinalityError struct {
	Table string
	Key   string
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("merge: %s.csv has more than one row for join key %q (expected many-to-one)", e.Table, e.Key)
}

// Merger left-joins a roster against ca.csv, ny.csv, and npi.csv under
// BasePath. Each external file is independently optional.
type Merger struct {
	BasePath string
	logger   *zap.Logger
}

// NewMerger constructs a Merger rooted at basePath.
func NewMerger(basePath string, logger *zap.Logger) *Merger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Merger{BasePath: basePath, logger: logger}
}

type licenseStatusRow struct {
	licenseNumber  string
	expirationDate string // ny.csv only; empty for ca.csv
	status         string
}

// Merge applies the CA/NY/NPI join rules and returns the enriched rows.
func (m *Merger) Merge(rows []roster.Row) ([]roster.Row, error) {
	caRows, caPresent, err := m.loadLicenseTable("ca.csv")
	if err != nil {
		return nil, err
	}
	nyRows, nyPresent, err := m.loadLicenseTable("ny.csv")
	if err != nil {
		return nil, err
	}
	npiSet, npiPresent, err := m.loadNPITable()
	if err != nil {
		return nil, err
	}

	caIndex, err := buildCAIndex(caRows)
	if err != nil {
		return nil, err
	}
	nyIndex, nyHasExpiration, err := buildNYIndex(nyRows)
	if err != nil {
		return nil, err
	}

	out := make([]roster.Row, len(rows))
	for i, row := range rows {
		r := row
		licenseNumberNorm, _ := normalize.NormalizeLicense(r.LicenseNumber)

		var status string
		var hasStatus bool

		switch r.LicenseState {
		case "CA":
			if caPresent {
				if v, ok := caIndex[licenseNumberNorm]; ok {
					status, hasStatus = v, true
				}
			}
		case "NY":
			if nyPresent {
				if nyHasExpiration && r.LicenseExpiration != "" {
					joinKey := licenseNumberNorm
					if expNorm, ok := normalize.NormalizeDateTime(r.LicenseExpiration); ok {
						joinKey = licenseNumberNorm + "|" + expNorm.Format("2006-01-02")
					}
					if v, ok := nyIndex[joinKey]; ok {
						status, hasStatus = v, true
					}
				} else if v, ok := nyIndex[licenseNumberNorm]; ok {
					status, hasStatus = v, true
				}
			}
		}

		if hasStatus {
			r.Status = status
		}

		if npiPresent {
			if n, ok := normalizeNPI(r.NPI); ok {
				_, r.NPIPresent = npiSet[n]
			}
		} else {
			r.NPIPresent = false
		}

		out[i] = r
	}

	return out, nil
}

// loadLicenseTable reads ca.csv/ny.csv, whose columns are at least
// license_number, status (ca.csv) or license_number, expiration_date,
// status (ny.csv). Absence of the file is not an error: the caller treats
// present=false as "skip this enrichment".
func (m *Merger) loadLicenseTable(name string) ([]licenseStatusRow, bool, error) {
	path := filepath.Join(m.BasePath, name)
	f, err := os.Open(path)
	if err != nil {
		m.logger.Debug("external table absent, skipping enrichment", zap.String("table", name))
		return nil, false, nil
	}
	defer f.Close()

	rows, err := readLicenseCSV(f)
	if err != nil {
		return nil, false, fmt.Errorf("merge: loading %s: %w", name, err)
	}
	return rows, true, nil
}

func readLicenseCSV(r io.Reader) ([]licenseStatusRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var rows []licenseStatusRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, licenseStatusRow{
			licenseNumber:  field(rec, colIdx, "license_number"),
			expirationDate: field(rec, colIdx, "expiration_date"),
			status:         field(rec, colIdx, "status"),
		})
	}
	return rows, nil
}

func field(rec []string, colIdx map[string]int, name string) string {
	pos, ok := colIdx[name]
	if !ok || pos >= len(rec) {
		return ""
	}
	return rec[pos]
}

// loadNPITable reads npi.csv (column npi) into a set of normalized NPIs.
// Absence yields an empty set and npiPresent=false, which drives
// npi_present=false for every row.
func (m *Merger) loadNPITable() (map[string]struct{}, bool, error) {
	path := filepath.Join(m.BasePath, "npi.csv")
	f, err := os.Open(path)
	if err != nil {
		m.logger.Debug("npi.csv absent, npi_present will be false for all rows")
		return nil, false, nil
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return map[string]struct{}{}, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("merge: loading npi.csv: %w", err)
	}
	npiCol := -1
	for i, h := range header {
		if strings.ToLower(strings.TrimSpace(h)) == "npi" {
			npiCol = i
		}
	}
	if npiCol == -1 {
		return map[string]struct{}{}, false, nil
	}

	set := make(map[string]struct{})
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, false, fmt.Errorf("merge: loading npi.csv: %w", err)
		}
		if npiCol >= len(rec) {
			continue
		}
		if n, ok := normalizeNPI(rec[npiCol]); ok {
			set[n] = struct{}{}
		}
	}
	return set, true, nil
}

// buildCAIndex deduplicates ca.csv on license_number_norm (first row wins,
// the same keep="first" drop_duplicates semantics the Python original
// applies before joining). A repeated key whose status disagrees with the
// first occurrence is not a harmless duplicate — it is a corrupted
// reference table, so that case is a fatal CardinalityError rather than
// being silently dropped.
func buildCAIndex(rows []licenseStatusRow) (map[string]string, error) {
	index := make(map[string]string)
	for _, r := range rows {
		key, ok := normalize.NormalizeLicense(r.licenseNumber)
		if !ok {
			continue
		}
		if existing, dup := index[key]; dup {
			if existing != r.status {
				return nil, &CardinalityError{Table: "ca", Key: key}
			}
			continue
		}
		index[key] = r.status
	}
	return index, nil
}

// buildNYIndex deduplicates ny.csv on (license_number_norm,
// expiration_date_norm) when every row carries a parseable expiration date;
// otherwise it falls back to license_number_norm alone, mirroring the
// roster-side fallback when license_expiration is absent. As with CA, a
// repeated key with a disagreeing status is a fatal CardinalityError.
func buildNYIndex(rows []licenseStatusRow) (map[string]string, bool, error) {
	index := make(map[string]string)
	hasExpiration := len(rows) > 0
	for _, r := range rows {
		if _, ok := normalize.NormalizeDateTime(r.expirationDate); !ok {
			hasExpiration = false
			break
		}
	}
	for _, r := range rows {
		key, ok := normalize.NormalizeLicense(r.licenseNumber)
		if !ok {
			continue
		}
		joinKey := key
		if hasExpiration {
			expNorm, _ := normalize.NormalizeDateTime(r.expirationDate)
			joinKey = key + "|" + expNorm.Format("2006-01-02")
		}
		if existing, dup := index[joinKey]; dup {
			if existing != r.status {
				return nil, hasExpiration, &CardinalityError{Table: "ny", Key: joinKey}
			}
			continue
		}
		index[joinKey] = r.status
	}
	return index, hasExpiration, nil
}

// normalizeNPI trims s, mirroring pipeline.py's normalise_npi/_npi: no
// digit-count validation, so an NPI the roster carries in a slightly
// different shape than the registry extract still matches.
func normalizeNPI(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}
