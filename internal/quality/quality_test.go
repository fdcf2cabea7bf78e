package quality

import (
	"testing"

	"github.com/careroster/providerdedup/internal/roster"
)

func sampleRows() []roster.Row {
	return []roster.Row{
		{
			FirstName: "John", LastName: "Smith", NPI: "1234567890",
			LicenseNumber: "A1", LicenseState: "CA", Credential: "MD",
			PracticePhone: "4155550100", YearsInPractice: "10",
			PracticeCity: "San Jose", PracticeAddressLine1: "100 Main St",
			AcceptingNewPatients: "Yes",
		},
		{
			FirstName: "Jane", LastName: "", NPI: "12345",
			LicenseNumber: "", LicenseState: "",
			PracticeCity: "san jose", YearsInPractice: "200",
			AcceptingNewPatients: "maybe",
		},
	}
}

func TestAssessBounds(t *testing.T) {
	a := NewAssessor()
	report := a.Assess(sampleRows(), UniquenessInput{})

	for name, d := range map[string]Dimension{
		"completeness": report.Completeness, "validity": report.Validity,
		"consistency": report.Consistency, "uniqueness": report.Uniqueness,
		"accuracy": report.Accuracy, "unknown_values": report.UnknownVals,
	} {
		if d.Score < 0 || d.Score > 100 {
			t.Errorf("%s score = %v, out of [0,100]", name, d.Score)
		}
	}
	if report.Overall < 0 || report.Overall > 100 {
		t.Errorf("overall = %v, out of [0,100]", report.Overall)
	}
}

func TestAssessEmptyRosterScoresHundred(t *testing.T) {
	a := NewAssessor()
	report := a.Assess(nil, UniquenessInput{})
	if report.Overall != 100 {
		t.Errorf("Overall = %v, want 100 for empty roster", report.Overall)
	}
}

func TestAssessValidityCatchesBadNPI(t *testing.T) {
	a := NewAssessor()
	report := a.Assess(sampleRows(), UniquenessInput{})
	if report.Validity.Score >= 100 {
		t.Errorf("Validity.Score = %v, want < 100 (row 2 has a malformed NPI)", report.Validity.Score)
	}
}

func TestAssessConsistencyCatchesNonTitleCity(t *testing.T) {
	a := NewAssessor()
	report := a.Assess(sampleRows(), UniquenessInput{})
	if report.Consistency.Score >= 100 {
		t.Errorf("Consistency.Score = %v, want < 100 (row 2 city is lowercase)", report.Consistency.Score)
	}
}

func TestAssessValidityNormalizesZipBeforeChecking(t *testing.T) {
	a := NewAssessor()
	rows := []roster.Row{
		{PracticeZip: "9410"},       // normalizes to 09410, valid
		{PracticeZip: "941051234"},  // normalizes to 94105-1234, valid
	}
	report := a.Assess(rows, UniquenessInput{})
	if report.Validity.Score != 100 {
		t.Errorf("Validity.Score = %v, want 100 (both zips valid once normalized)", report.Validity.Score)
	}
}

func TestAssessUniquenessSubtractsDuplicateNPI(t *testing.T) {
	a := NewAssessor()
	rows := []roster.Row{
		{NPI: "1234567890"},
		{NPI: "1234567890"},
		{NPI: "9999999999"},
	}
	report := a.Assess(rows, UniquenessInput{})
	if report.Uniqueness.Passed != 2 {
		t.Errorf("Uniqueness.Passed = %d, want 2 (one NPI duplicate subtracted)", report.Uniqueness.Passed)
	}
}
