package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadCSV reads a roster CSV from path. The header row determines column
// order; columns not present in the file are left as their zero value on
// every Row. Column names are matched case-insensitively against Columns
// plus "npi_present". Unrecognized columns are ignored.
func LoadCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses a roster from r, assigning contiguous 0-based Index values
// in read order.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("roster: reading header: %w", err)
	}
	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var rows []Row
	idx := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("roster: reading row %d: %w", idx, err)
		}
		row := Row{Index: idx}
		for _, col := range Columns {
			pos, ok := colIdx[col]
			if !ok || pos >= len(rec) {
				continue
			}
			setField(&row, col, rec[pos])
		}
		rows = append(rows, row)
		idx++
	}
	return rows, nil
}

// WriteCSV writes rows to path in Columns order.
func WriteCSV(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Write(f, rows)
}

// Write serializes rows to w in Columns order, one header row followed by
// one record per row.
func Write(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, row := range rows {
		rec := make([]string, len(Columns))
		for i, col := range Columns {
			rec[i] = getField(row, col)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	return cw.Error()
}

func setField(r *Row, col, val string) {
	switch col {
	case "provider_id":
		r.ProviderID = val
	case "npi":
		r.NPI = val
	case "first_name":
		r.FirstName = val
	case "last_name":
		r.LastName = val
	case "credential":
		r.Credential = val
	case "full_name":
		r.FullName = val
	case "primary_specialty":
		r.PrimarySpecialty = val
	case "practice_address_line1":
		r.PracticeAddressLine1 = val
	case "practice_address_line2":
		r.PracticeAddressLine2 = val
	case "practice_city":
		r.PracticeCity = val
	case "practice_state":
		r.PracticeState = val
	case "practice_zip":
		r.PracticeZip = val
	case "practice_phone":
		r.PracticePhone = val
	case "mailing_address_line1":
		r.MailingAddressLine1 = val
	case "mailing_address_line2":
		r.MailingAddressLine2 = val
	case "mailing_city":
		r.MailingCity = val
	case "mailing_state":
		r.MailingState = val
	case "mailing_zip":
		r.MailingZip = val
	case "mailing_phone":
		r.MailingPhone = val
	case "license_number":
		r.LicenseNumber = val
	case "license_state":
		r.LicenseState = val
	case "license_expiration":
		r.LicenseExpiration = val
	case "accepting_new_patients":
		r.AcceptingNewPatients = val
	case "board_certified":
		r.BoardCertified = val
	case "years_in_practice":
		r.YearsInPractice = val
	case "medical_school":
		r.MedicalSchool = val
	case "residency_program":
		r.ResidencyProgram = val
	case "last_updated":
		r.LastUpdated = val
	case "taxonomy_code":
		r.TaxonomyCode = val
	case "status":
		r.Status = val
	case "npi_present":
		r.NPIPresent, _ = strconv.ParseBool(val)
	}
}

func getField(r Row, col string) string {
	switch col {
	case "provider_id":
		return r.ProviderID
	case "npi":
		return r.NPI
	case "first_name":
		return r.FirstName
	case "last_name":
		return r.LastName
	case "credential":
		return r.Credential
	case "full_name":
		return r.FullName
	case "primary_specialty":
		return r.PrimarySpecialty
	case "practice_address_line1":
		return r.PracticeAddressLine1
	case "practice_address_line2":
		return r.PracticeAddressLine2
	case "practice_city":
		return r.PracticeCity
	case "practice_state":
		return r.PracticeState
	case "practice_zip":
		return r.PracticeZip
	case "practice_phone":
		return r.PracticePhone
	case "mailing_address_line1":
		return r.MailingAddressLine1
	case "mailing_address_line2":
		return r.MailingAddressLine2
	case "mailing_city":
		return r.MailingCity
	case "mailing_state":
		return r.MailingState
	case "mailing_zip":
		return r.MailingZip
	case "mailing_phone":
		return r.MailingPhone
	case "license_number":
		return r.LicenseNumber
	case "license_state":
		return r.LicenseState
	case "license_expiration":
		return r.LicenseExpiration
	case "accepting_new_patients":
		return r.AcceptingNewPatients
	case "board_certified":
		return r.BoardCertified
	case "years_in_practice":
		return r.YearsInPractice
	case "medical_school":
		return r.MedicalSchool
	case "residency_program":
		return r.ResidencyProgram
	case "last_updated":
		return r.LastUpdated
	case "taxonomy_code":
		return r.TaxonomyCode
	case "status":
		return r.Status
	case "npi_present":
		return strconv.FormatBool(r.NPIPresent)
	}
	return ""
}
