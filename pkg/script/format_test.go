package script

import (
	"errors"
	"testing"
)

func TestFormatStat(t *testing.T) {
	cases := []struct {
		raw, direction, want string
	}{
		{"5", "increase", "-5.0"},
		{"-5", "increase", "-5.0"},
		{"-5", "decrease", "5.0"},
		{"5", "decrease", "5.0"},
		{"0.25", "none", "0.25"},
		{"-3", "", "-3.0"},
		{" 12 ", "Increase", "-12.0"},
		{"0", "increase", "-0.0"},
		{"abc", "increase", "0"},
		{"", "decrease", "0"},
		{"1e20", "none", "1e+20"},
		{"0.00001", "none", "1e-05"},
		{"nan", "none", "0"},
	}

	for _, tc := range cases {
		if got := FormatStat(tc.raw, tc.direction); got != tc.want {
			t.Fatalf("FormatStat(%q, %q) = %q, want %q", tc.raw, tc.direction, got, tc.want)
		}
	}
}

func TestParseFloatText(t *testing.T) {
	got, err := ParseFloatText("2")
	if err != nil || got != "2.0" {
		t.Fatalf("expected 2.0, got %q (%v)", got, err)
	}
	if _, err := ParseFloatText("two"); !errors.Is(err, ErrInvalidNumber) {
		t.Fatalf("expected ErrInvalidNumber, got %v", err)
	}
	if _, err := ParseFloatText(""); !errors.Is(err, ErrInvalidNumber) {
		t.Fatalf("expected ErrInvalidNumber for empty input, got %v", err)
	}
}

func TestSanitizeDisplayName(t *testing.T) {
	cases := map[string]string{
		"Apple":                       "Apple",
		`<script>x</script>Tasty Pie`: "Tasty Pie",
		`Mom's "Special"   Stew`:      "Mom's Special Stew",
		"  ":                          "",
	}
	for in, want := range cases {
		if got := SanitizeDisplayName(in); got != want {
			t.Fatalf("SanitizeDisplayName(%q) = %q, want %q", in, got, want)
		}
	}
}
