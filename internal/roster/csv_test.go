package roster

import (
	"strings"
	"testing"
)

func TestReadCSVRoundTrip(t *testing.T) {
	input := "provider_id,first_name,last_name,npi\n" +
		"p1,Ada,Lovelace,1234567890\n" +
		"p2,Jon,Smithe,\n"

	rows, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Index != 0 || rows[1].Index != 1 {
		t.Errorf("expected contiguous 0-based indices, got %d, %d", rows[0].Index, rows[1].Index)
	}
	if rows[0].FirstName != "Ada" || rows[0].NPI != "1234567890" {
		t.Errorf("row 0 parsed incorrectly: %+v", rows[0])
	}
	if rows[1].NPI != "" {
		t.Errorf("row 1 NPI should be absent, got %q", rows[1].NPI)
	}

	var buf strings.Builder
	if err := Write(&buf, rows); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.String() == "" {
		t.Errorf("expected non-empty serialized output")
	}
}

func TestReadCSVEmpty(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadCSV on empty input should not error, got %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}
