// Package standardize rewrites the deduplicated roster with canonical
// formatting: normalized phone/zip, title-cased names and addresses, and a
// rebuilt full_name, the same rewrite-in-place step style as the teacher's
// normalizer pipeline (clean, then reassign back onto the working struct).
package standardize

import (
	"strings"

	"github.com/careroster/providerdedup/internal/normalize"
	"github.com/careroster/providerdedup/internal/roster"
)

// Standardizer applies canonical formatting to deduplicated rows.
type Standardizer struct{}

// NewStandardizer constructs a Standardizer. It carries no state; the
// constructor exists to match the teacher's New* idiom used throughout the
// pipeline stages.
func NewStandardizer() *Standardizer {
	return &Standardizer{}
}

// Apply rewrites rows in place and returns them for chaining.
func (s *Standardizer) Apply(rows []roster.Row) []roster.Row {
	for i := range rows {
		s.applyOne(&rows[i])
	}
	return rows
}

func (s *Standardizer) applyOne(r *roster.Row) {
	if phone, ok := normalize.NormalizePhone(r.PracticePhone); ok {
		r.PracticePhone = phone
	}
	if zip, ok := normalize.NormalizeZip(r.MailingZip); ok {
		r.MailingZip = zip
	}

	r.FirstName = normalize.ToTitle(r.FirstName)
	r.LastName = normalize.ToTitle(r.LastName)
	r.PracticeCity = normalize.ToTitle(r.PracticeCity)
	r.MailingCity = normalize.ToTitle(r.MailingCity)
	r.PracticeAddressLine1 = normalize.ToTitle(r.PracticeAddressLine1)
	r.PracticeAddressLine2 = normalize.ToTitle(r.PracticeAddressLine2)
	r.MailingAddressLine1 = normalize.ToTitle(r.MailingAddressLine1)
	r.MailingAddressLine2 = normalize.ToTitle(r.MailingAddressLine2)
	r.MedicalSchool = normalize.ToTitle(r.MedicalSchool)
	r.ResidencyProgram = normalize.ToTitle(r.ResidencyProgram)

	r.FullName = rebuildFullName(r.FirstName, r.LastName, r.Credential)
}

// rebuildFullName composes "<first> <last>", appending ", <credential>" when
// credential is present. Absent when either first or last name is absent.
func rebuildFullName(first, last, credential string) string {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	if first == "" || last == "" {
		return ""
	}
	full := first + " " + last
	credential = strings.TrimSpace(strings.Trim(credential, ", "))
	if credential != "" {
		full += ", " + credential
	}
	return full
}
