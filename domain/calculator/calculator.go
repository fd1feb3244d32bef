// Package calculator holds the arithmetic core: a closed set of operations,
// the calculation itself, and validation of raw textual operands.
//
// Everything in this package is a pure function and safe for concurrent use.
package calculator

import (
	"encoding/json"
	"fmt"
	"math"
)

// Calculate applies op to a and b.
// Division by zero is rejected before dividing; results follow IEEE-754 float64
// semantics with no rounding.
func Calculate(a, b float64, op Operation) (float64, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSubtract:
		return a - b, nil
	case OpMultiply:
		return a * b, nil
	case OpDivide:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidOperation, op)
	}
}

// PerformCalculation is the untyped entry point used by callers that hold
// decoded but unchecked values. Both operands must be numbers; the check runs
// before the operation tag is looked at.
func PerformCalculation(a, b any, tag string) (float64, error) {
	x, ok := toFloat(a)
	if !ok {
		return 0, ErrInvalidArgumentType
	}
	y, ok := toFloat(b)
	if !ok {
		return 0, ErrInvalidArgumentType
	}

	op, err := ParseOperation(tag)
	if err != nil {
		return 0, err
	}
	return Calculate(x, y, op)
}

// CheckResult rejects results that cannot be represented as a finite number,
// such as the overflow in 1e308 * 10.
func CheckResult(result float64) error {
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return ErrResultOutOfRange
	}
	return nil
}

// toFloat accepts Go numeric kinds and json.Number. Strings, nil and
// everything else are not numbers.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
