package normalize

import "testing"

func TestCleanText(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "John Smith", "john smith"},
		{"punctuation", "Smith, M.D.!!", "smith m d"},
		{"extra whitespace", "  John   Smith  ", "john smith"},
		{"diacritics", "José García", "jose garcia"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CleanText(tc.input)
			if got != tc.want {
				t.Errorf("CleanText(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestExtractDigits(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"phone", "(415) 555-0100", "4155550100"},
		{"no digits", "abc", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractDigits(tc.input)
			if got != tc.want {
				t.Errorf("ExtractDigits(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestToTitle(t *testing.T) {
	cases := []struct{ input, want string }{
		{"john smith", "John Smith"},
		{"SAN JOSE", "San Jose"},
		{"", ""},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got := ToTitle(tc.input)
			if got != tc.want {
				t.Errorf("ToTitle(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	got, ok := NormalizePhone("(415) 555-0100")
	if !ok || got != "4155550100" {
		t.Errorf("NormalizePhone = (%q, %v), want (4155550100, true)", got, ok)
	}
	if _, ok := NormalizePhone(""); ok {
		t.Errorf("NormalizePhone(\"\") should be absent")
	}
}

func TestNormalizeZip(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"short", "123", "00123", true},
		{"five", "94107", "94107", true},
		{"plus4", "941070000", "94107-0000", true},
		{"empty", "", "", false},
		{"odd length", "123456", "123456", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizeZip(tc.input)
			if ok != tc.ok || got != tc.want {
				t.Errorf("NormalizeZip(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestNormalizeLicense(t *testing.T) {
	got, ok := NormalizeLicense("a - 1234")
	if !ok || got != "A1234" {
		t.Errorf("NormalizeLicense = (%q, %v), want (A1234, true)", got, ok)
	}
	if _, ok := NormalizeLicense("   "); ok {
		t.Errorf("NormalizeLicense(blank) should be absent")
	}
}

func TestNormalizeBool(t *testing.T) {
	trueCases := []string{"true", "Yes", " Y ", "1", "T"}
	for _, s := range trueCases {
		t.Run("true_"+s, func(t *testing.T) {
			v, ok := NormalizeBool(s)
			if !ok || !v {
				t.Errorf("NormalizeBool(%q) = (%v, %v), want (true, true)", s, v, ok)
			}
		})
	}
	falseCases := []string{"false", "No", "n", "0", "F"}
	for _, s := range falseCases {
		t.Run("false_"+s, func(t *testing.T) {
			v, ok := NormalizeBool(s)
			if !ok || v {
				t.Errorf("NormalizeBool(%q) = (%v, %v), want (false, true)", s, v, ok)
			}
		})
	}
	if _, ok := NormalizeBool("maybe"); ok {
		t.Errorf("NormalizeBool(\"maybe\") should be absent")
	}
}
