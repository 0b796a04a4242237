package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatFloat renders the shortest decimal form that round-trips, keeping a
// trailing ".0" on integral values: 5 → "5.0", 5.9 → "5.9".
// Very large or very small magnitudes use exponent form.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	abs := math.Abs(v)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatFixed2 renders a value with two decimals, "nan" for NaN.
func FormatFixed2(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%.2f", v)
}
