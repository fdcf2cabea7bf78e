// Package quality scores the original (pre-dedup) roster across six
// dimensions — completeness, validity, consistency, uniqueness, accuracy,
// unknown-values — and their mean, grounded on pipeline.py's
// DataQualityAssessment (one method per dimension, composed by
// calculate_overall_quality_score).
package quality

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/careroster/providerdedup/internal/normalize"
	"github.com/careroster/providerdedup/internal/roster"
)

var (
	npiFormat = regexp.MustCompile(`^\d{10}$`)
	zipFormat = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// titleCaseColumns mirrors the standardizer's rewrite set (spec.md §4.6):
// first/last name, both cities, the four address lines, medical school and
// residency program.
var titleCaseColumns = []string{
	"first_name", "last_name", "practice_city", "mailing_city",
	"practice_address_line1", "practice_address_line2",
	"mailing_address_line1", "mailing_address_line2",
	"medical_school", "residency_program",
}

var validUnknownValueTokens = map[string]struct{}{
	"Yes": {}, "No": {}, "yes": {}, "no": {}, "YES": {}, "NO": {}, "Y": {}, "N": {}, "y": {}, "n": {},
	"True": {}, "False": {}, "true": {}, "false": {}, "TRUE": {}, "FALSE": {},
}

// Dimension carries a dimension's score plus the supporting counts the
// Python original returns in its detailed_issues dict.
type Dimension struct {
	Score   float64
	Checked int
	Passed  int
}

// Report is the full data-quality assessment: six dimensions plus overall.
type Report struct {
	Completeness Dimension
	Validity     Dimension
	Consistency  Dimension
	Uniqueness   Dimension
	Accuracy     Dimension
	UnknownVals  Dimension
	Overall      float64

	TotalFormatErrors int
}

// Assessor computes a Report over the original roster.
type Assessor struct{}

// NewAssessor constructs an Assessor. Stateless; the constructor exists to
// match the teacher's New* idiom.
func NewAssessor() *Assessor {
	return &Assessor{}
}

// UniquenessInput supplies the counts the uniqueness dimension subtracts,
// computed by the pipeline driver from the clustering stage's results:
// rows flagged as duplicates (summary.unique_involved).
type UniquenessInput struct {
	UniqueInvolved int
}

// Assess scores rows (the original, pre-dedup roster) across all six
// dimensions.
func (a *Assessor) Assess(rows []roster.Row, u UniquenessInput) Report {
	r := Report{
		Completeness: a.assessCompleteness(rows),
		Validity:     a.assessValidity(rows),
		Consistency:  a.assessConsistency(rows),
		Uniqueness:   a.assessUniqueness(rows, u),
		Accuracy:     a.assessAccuracy(rows),
		UnknownVals:  a.assessUnknownValues(rows),
	}
	r.TotalFormatErrors = r.Validity.Checked - r.Validity.Passed
	sum := r.Completeness.Score + r.Validity.Score + r.Consistency.Score +
		r.Uniqueness.Score + r.Accuracy.Score + r.UnknownVals.Score
	r.Overall = round2(sum / 6.0)
	return r
}

func (a *Assessor) assessCompleteness(rows []roster.Row) Dimension {
	if len(rows) == 0 {
		return Dimension{Score: 100}
	}
	const criticalFieldCount = 10
	total := len(rows) * criticalFieldCount
	filled := 0
	for _, r := range rows {
		for _, v := range []string{
			r.FirstName, r.LastName, r.NPI, r.LicenseNumber, r.LicenseState,
			r.Credential, r.PracticePhone, r.YearsInPractice, r.PracticeCity,
			r.PracticeAddressLine1,
		} {
			if strings.TrimSpace(v) != "" {
				filled++
			}
		}
	}
	if total == 0 {
		return Dimension{Score: 100}
	}
	return Dimension{Score: round2(100 * float64(filled) / float64(total)), Checked: total, Passed: filled}
}

func (a *Assessor) assessValidity(rows []roster.Row) Dimension {
	checked, valid := 0, 0

	for _, r := range rows {
		if r.NPI != "" {
			checked++
			if npiFormat.MatchString(strings.TrimSpace(r.NPI)) {
				valid++
			}
		}
	}
	for _, r := range rows {
		if r.PracticePhone != "" {
			checked++
			if d, ok := normalize.NormalizePhone(r.PracticePhone); ok && len(d) == 10 {
				valid++
			}
		}
	}
	for _, r := range rows {
		for _, z := range []string{r.PracticeZip, r.MailingZip} {
			if z == "" {
				continue
			}
			checked++
			if normalized, ok := normalize.NormalizeZip(z); ok && zipFormat.MatchString(normalized) {
				valid++
			}
		}
	}

	if checked == 0 {
		return Dimension{Score: 100}
	}
	return Dimension{Score: round2(100 * float64(valid) / float64(checked)), Checked: checked, Passed: valid}
}

func (a *Assessor) assessConsistency(rows []roster.Row) Dimension {
	checked, consistent := 0, 0

	for _, col := range titleCaseColumns {
		for _, r := range rows {
			v := columnValue(r, col)
			if v == "" {
				continue
			}
			checked++
			if strings.TrimSpace(v) == normalize.ToTitle(v) {
				consistent++
			}
		}
	}
	for _, r := range rows {
		if r.PracticePhone == "" {
			continue
		}
		checked++
		if allDigits(r.PracticePhone) {
			consistent++
		}
	}

	if checked == 0 {
		return Dimension{Score: 100}
	}
	return Dimension{Score: round2(100 * float64(consistent) / float64(checked)), Checked: checked, Passed: consistent}
}

func (a *Assessor) assessUniqueness(rows []roster.Row, u UniquenessInput) Dimension {
	total := len(rows)
	if total == 0 {
		return Dimension{Score: 100}
	}

	unique := total - u.UniqueInvolved

	seenNPI := make(map[string]int)
	for _, r := range rows {
		if r.NPI == "" {
			continue
		}
		seenNPI[r.NPI]++
	}
	npiDuplicates := 0
	for _, n := range seenNPI {
		if n > 1 {
			npiDuplicates += n - 1
		}
	}
	unique -= npiDuplicates

	seenLicense := make(map[string]int)
	for _, r := range rows {
		if r.LicenseState == "" || r.LicenseNumber == "" {
			continue
		}
		seenLicense[r.LicenseState+"|"+r.LicenseNumber]++
	}
	licenseDuplicates := 0
	for _, n := range seenLicense {
		if n > 1 {
			licenseDuplicates += n - 1
		}
	}
	unique -= licenseDuplicates

	if unique < 0 {
		unique = 0
	}

	return Dimension{Score: round2(100 * float64(unique) / float64(total)), Checked: total, Passed: unique}
}

func (a *Assessor) assessAccuracy(rows []roster.Row) Dimension {
	checked, accurate := 0, 0
	for _, r := range rows {
		if r.YearsInPractice == "" {
			continue
		}
		checked++
		if y, err := strconv.Atoi(strings.TrimSpace(r.YearsInPractice)); err == nil && y >= 0 && y <= 60 {
			accurate++
		}
	}
	if checked == 0 {
		return Dimension{Score: 100}
	}
	return Dimension{Score: round2(100 * float64(accurate) / float64(checked)), Checked: checked, Passed: accurate}
}

func (a *Assessor) assessUnknownValues(rows []roster.Row) Dimension {
	checked, known := 0, 0
	for _, r := range rows {
		if r.AcceptingNewPatients == "" {
			continue
		}
		checked++
		if _, ok := validUnknownValueTokens[r.AcceptingNewPatients]; ok {
			known++
		}
	}
	if checked == 0 {
		return Dimension{Score: 100}
	}
	return Dimension{Score: round2(100 * float64(known) / float64(checked)), Checked: checked, Passed: known}
}

func columnValue(r roster.Row, col string) string {
	switch col {
	case "first_name":
		return r.FirstName
	case "last_name":
		return r.LastName
	case "practice_city":
		return r.PracticeCity
	case "mailing_city":
		return r.MailingCity
	case "practice_address_line1":
		return r.PracticeAddressLine1
	case "practice_address_line2":
		return r.PracticeAddressLine2
	case "mailing_address_line1":
		return r.MailingAddressLine1
	case "mailing_address_line2":
		return r.MailingAddressLine2
	case "medical_school":
		return r.MedicalSchool
	case "residency_program":
		return r.ResidencyProgram
	}
	return ""
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
