package engine

import (
	"math"
	"strconv"
	"strings"
)

// parseOperand parses a display string into a finite number.
func parseOperand(s string) (float64, bool) {
	if s == "" || s == ErrorSentinel {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// formatNumber renders v in its shortest round-trip decimal form. Exponent
// notation is used only for very large magnitudes.
func formatNumber(v float64) string {
	if v == 0 {
		// fold -0 produced by arithmetic into 0
		v = 0
	}
	if math.Abs(v) >= 1e21 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// TrimWholeFraction strips a trailing ".0" so whole results render without a
// fractional part.
func TrimWholeFraction(s string) string {
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return s
	}
	if s[i:] == ".0" {
		return s[:i]
	}
	return s
}
