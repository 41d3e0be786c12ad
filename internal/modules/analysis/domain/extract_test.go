package domain_test

import (
	"errors"
	"testing"

	"pagepulse/internal/modules/analysis/domain"
)

func TestExtractNumeric(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want float64
	}{
		{"1.2 s", 1.2},
		{"320 ms", 320},
		{"0.05", 0.05},
		{"2,130 ms", 2130},
		{"7.3 s", 7.3},
	}
	for _, tc := range cases {
		got, err := domain.ExtractNumeric(tc.in)
		if err != nil {
			t.Fatalf("ExtractNumeric(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ExtractNumeric(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestExtractNumericRejectsDigitlessInput(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"", "n/a", "— s"} {
		if _, err := domain.ExtractNumeric(in); !errors.Is(err, domain.ErrMalformedMetric) {
			t.Fatalf("ExtractNumeric(%q) error = %v, want ErrMalformedMetric", in, err)
		}
	}
}

func TestParseShift(t *testing.T) {
	t.Parallel()
	got, err := domain.ParseShift("0.02")
	if err != nil {
		t.Fatalf("ParseShift: %v", err)
	}
	if got != 0.02 {
		t.Fatalf("ParseShift = %v, want 0.02", got)
	}
	if _, err := domain.ParseShift("unavailable"); !errors.Is(err, domain.ErrMalformedMetric) {
		t.Fatalf("non-numeric shift should be malformed, got %v", err)
	}
}
