// Package roster defines the provider Row type and the CSV boundary I/O
// that loads/writes it. No CSV or dataframe library exists anywhere in the
// retrieved example pack, so this package is the one place in the module
// that reaches for stdlib encoding/csv directly rather than a third-party
// wrapper, the way the teacher reaches for encoding/json at its own I/O
// boundary (app/models) without a wrapper library either.
package roster

// Row is a single provider record. All fields are optional strings unless
// noted; empty string means "absent" throughout this package and its
// downstream consumers (internal/features, internal/standardize,
// internal/merge).
type Row struct {
	Index int // stable 0-based row index assigned at ingestion

	ProviderID       string `csv:"provider_id"`
	NPI              string `csv:"npi"` // integer-valued string
	FirstName        string `csv:"first_name"`
	LastName         string `csv:"last_name"`
	Credential       string `csv:"credential"`
	FullName         string `csv:"full_name"`
	PrimarySpecialty string `csv:"primary_specialty"`

	PracticeAddressLine1 string `csv:"practice_address_line1"`
	PracticeAddressLine2 string `csv:"practice_address_line2"`
	PracticeCity         string `csv:"practice_city"`
	PracticeState        string `csv:"practice_state"`
	PracticeZip          string `csv:"practice_zip"`
	PracticePhone        string `csv:"practice_phone"`

	MailingAddressLine1 string `csv:"mailing_address_line1"`
	MailingAddressLine2 string `csv:"mailing_address_line2"`
	MailingCity         string `csv:"mailing_city"`
	MailingState        string `csv:"mailing_state"`
	MailingZip          string `csv:"mailing_zip"`
	MailingPhone        string `csv:"mailing_phone"`

	LicenseNumber       string `csv:"license_number"`
	LicenseState        string `csv:"license_state"`
	LicenseExpiration   string `csv:"license_expiration"` // raw date
	AcceptingNewPatients string `csv:"accepting_new_patients"` // ternary yes/no/unknown
	BoardCertified      string `csv:"board_certified"`         // raw bool token
	YearsInPractice     string `csv:"years_in_practice"`       // raw integer
	MedicalSchool       string `csv:"medical_school"`
	ResidencyProgram    string `csv:"residency_program"`
	LastUpdated         string `csv:"last_updated"` // raw date
	TaxonomyCode        string `csv:"taxonomy_code"`

	Status      string `csv:"status"`       // derived by the roster merger
	NPIPresent  bool   // derived by the roster merger
}

// Columns lists the column names ReadCSV recognizes (matched by header
// name) and gives the column order used for writing output CSVs.
var Columns = []string{
	"provider_id", "npi", "first_name", "last_name", "credential", "full_name",
	"primary_specialty",
	"practice_address_line1", "practice_address_line2", "practice_city",
	"practice_state", "practice_zip", "practice_phone",
	"mailing_address_line1", "mailing_address_line2", "mailing_city",
	"mailing_state", "mailing_zip", "mailing_phone",
	"license_number", "license_state", "license_expiration",
	"accepting_new_patients", "board_certified", "years_in_practice",
	"medical_school", "residency_program", "last_updated", "taxonomy_code",
	"status", "npi_present",
}
