package features

import (
	"testing"

	"github.com/careroster/providerdedup/internal/roster"
)

func TestExtractOne(t *testing.T) {
	e := NewExtractor(nil)
	row := roster.Row{
		Index:                0,
		FirstName:            "Ada",
		LastName:             "Lovelace",
		NPI:                  "1234567890",
		PracticePhone:        "(415) 555-0100",
		PracticeCity:         "San Jose",
		PracticeState:        "CA",
		PracticeZip:          "95110",
		LicenseNumber:        "A-1",
		LicenseState:         "ca",
	}

	df := e.extractOne(row)

	if df.CleanName != "ada lovelace" {
		t.Errorf("CleanName = %q, want %q", df.CleanName, "ada lovelace")
	}
	if df.NPIKey != "1234567890" {
		t.Errorf("NPIKey = %q, want 1234567890", df.NPIKey)
	}
	if df.PhoneDigits != "4155550100" {
		t.Errorf("PhoneDigits = %q, want 4155550100", df.PhoneDigits)
	}
	if df.LicenseKey != "CA|A1" {
		t.Errorf("LicenseKey = %q, want CA|A1", df.LicenseKey)
	}
	if df.CityStateKey != "san jose|ca" {
		t.Errorf("CityStateKey = %q, want san jose|ca", df.CityStateKey)
	}
	if df.NameKey != "lovel_ad" {
		t.Errorf("NameKey = %q, want lovel_ad", df.NameKey)
	}
	if df.Zip3 != "951" {
		t.Errorf("Zip3 = %q, want 951", df.Zip3)
	}
}

func TestExtractOneAbsentFields(t *testing.T) {
	e := NewExtractor(nil)
	row := roster.Row{Index: 1}
	df := e.extractOne(row)

	if df.LicenseKey != "|" {
		t.Errorf("LicenseKey for absent row = %q, want |", df.LicenseKey)
	}
	if df.NameKey != "" {
		t.Errorf("NameKey for absent row = %q, want empty", df.NameKey)
	}
	if df.PhoneDigits != "" {
		t.Errorf("PhoneDigits for absent row = %q, want empty", df.PhoneDigits)
	}
}

func TestExtractOneCleanNameUsesFullName(t *testing.T) {
	e := NewExtractor(nil)
	row := roster.Row{FirstName: "John", LastName: "Smith", FullName: "John Smith, MD"}
	df := e.extractOne(row)
	if df.CleanName != "john smith md" {
		t.Errorf("CleanName = %q, want %q (credential token from full_name)", df.CleanName, "john smith md")
	}
}

func TestExtractPreservesRowOrder(t *testing.T) {
	e := NewExtractor(nil)
	rows := []roster.Row{
		{Index: 0, FirstName: "A"},
		{Index: 1, FirstName: "B"},
	}
	out := e.Extract(rows)
	if len(out) != 2 {
		t.Fatalf("got %d features, want 2", len(out))
	}
	if out[0].FirstClean != "a" || out[1].FirstClean != "b" {
		t.Errorf("FirstClean order = [%q %q], want [a b]", out[0].FirstClean, out[1].FirstClean)
	}
}
