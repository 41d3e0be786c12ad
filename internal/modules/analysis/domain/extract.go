package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ExtractNumeric converts a human-readable audit display value such as
// "1.2 s" or "320 ms" into its numeric magnitude by stripping everything
// that is not a digit or a decimal point. A value with no digits at all is
// a malformed metric, never a silent zero.
func ExtractNumeric(displayValue string) (float64, error) {
	var b strings.Builder
	for _, r := range displayValue {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedMetric, displayValue)
	}
	return v, nil
}

// ParseShift parses a cumulative layout shift display value. CLS carries no
// unit suffix, so it bypasses the strip-and-parse path and is read directly
// as a float. It shares ExtractNumeric's failure mode.
func ParseShift(displayValue string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(displayValue), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedMetric, displayValue)
	}
	return v, nil
}
