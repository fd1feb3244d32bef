package calculator

import (
	"math"
	"strconv"
	"strings"
)

// IsValidNumber reports whether value is an admissible operand: non-empty,
// at most one decimal point, and parsing to a finite float64.
// "Infinity", "NaN" and out-of-range values such as "1e400" are rejected.
func IsValidNumber(value string) bool {
	if value == "" {
		return false
	}
	if strings.Count(value, ".") > 1 {
		return false
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return false
	}
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ParseOperand validates value and returns it as a float64.
func ParseOperand(value string) (float64, error) {
	if strings.TrimSpace(value) == "" {
		return 0, ErrMissingOperand
	}
	if !IsValidNumber(value) {
		return 0, ErrInvalidNumber
	}
	return strconv.ParseFloat(strings.TrimSpace(value), 64)
}
