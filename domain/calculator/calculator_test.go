package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name      string
		op        Operation
		a         float64
		b         float64
		want      float64
		wantError error
	}{
		{name: "add two positive numbers", op: OpAdd, a: 5, b: 3, want: 8},
		{name: "add negative and positive", op: OpAdd, a: -5, b: 3, want: -2},
		{name: "add zeros", op: OpAdd, a: 0, b: 0, want: 0},
		{name: "add decimals", op: OpAdd, a: 2.5, b: 1.5, want: 4},
		{name: "subtract", op: OpSubtract, a: 10, b: 3, want: 7},
		{name: "subtract resulting in negative", op: OpSubtract, a: 3, b: 10, want: -7},
		{name: "subtract equal numbers", op: OpSubtract, a: 5, b: 5, want: 0},
		{name: "subtract decimals", op: OpSubtract, a: 5.5, b: 2.5, want: 3},
		{name: "multiply", op: OpMultiply, a: 4, b: 5, want: 20},
		{name: "multiply negative", op: OpMultiply, a: -3, b: 4, want: -12},
		{name: "multiply by zero", op: OpMultiply, a: 0, b: 100, want: 0},
		{name: "divide", op: OpDivide, a: 10, b: 2, want: 5},
		{name: "divide with fractional result", op: OpDivide, a: 7, b: 2, want: 3.5},
		{name: "divide negative", op: OpDivide, a: -10, b: 2, want: -5},
		{name: "divide by zero", op: OpDivide, a: 10, b: 0, wantError: ErrDivisionByZero},
		{name: "divide by negative zero", op: OpDivide, a: 10, b: math.Copysign(0, -1), wantError: ErrDivisionByZero},
		{name: "unknown operation", op: "modulo", a: 1, b: 2, wantError: ErrInvalidOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.a, tt.b, tt.op)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				assert.Zero(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculate_Properties(t *testing.T) {
	values := []float64{0, 1, -1, 2.5, -3.75, 1e10, -1e-10, 123456.789, math.MaxFloat64 / 4}

	for _, a := range values {
		for _, b := range values {
			sum, err := Calculate(a, b, OpAdd)
			require.NoError(t, err)
			assert.Equal(t, a+b, sum)

			swapped, err := Calculate(b, a, OpAdd)
			require.NoError(t, err)
			assert.Equal(t, sum, swapped, "add(%v, %v) is not commutative", a, b)

			diff, err := Calculate(a, b, OpSubtract)
			require.NoError(t, err)
			reverse, err := Calculate(b, a, OpSubtract)
			require.NoError(t, err)
			assert.Equal(t, diff, -reverse, "subtract(%v, %v) is not antisymmetric", a, b)

			quotient, err := Calculate(a, b, OpDivide)
			if b == 0 {
				assert.ErrorIs(t, err, ErrDivisionByZero)
			} else {
				require.NoError(t, err)
				assert.Equal(t, a/b, quotient)
			}
		}

		product, err := Calculate(a, 0, OpMultiply)
		require.NoError(t, err)
		assert.Zero(t, product)
	}
}

func TestPerformCalculation(t *testing.T) {
	t.Run("numbers of any kind", func(t *testing.T) {
		got, err := PerformCalculation(10, 2.0, "divide")
		require.NoError(t, err)
		assert.Equal(t, 5.0, got)

		got, err = PerformCalculation(int64(4), uint8(5), "multiply")
		require.NoError(t, err)
		assert.Equal(t, 20.0, got)

		got, err = PerformCalculation(json.Number("2.5"), float32(1.5), "add")
		require.NoError(t, err)
		assert.Equal(t, 4.0, got)
	})

	t.Run("string operand", func(t *testing.T) {
		_, err := PerformCalculation("5", 3, "add")
		require.ErrorIs(t, err, ErrInvalidArgumentType)
		assert.Equal(t, "arguments must be numbers", err.Error())
	})

	t.Run("nil operand", func(t *testing.T) {
		_, err := PerformCalculation(5, nil, "add")
		require.ErrorIs(t, err, ErrInvalidArgumentType)
	})

	t.Run("argument type is checked before the operation", func(t *testing.T) {
		_, err := PerformCalculation(true, 3, "bogus")
		require.ErrorIs(t, err, ErrInvalidArgumentType)
	})

	t.Run("invalid operation names the tag", func(t *testing.T) {
		_, err := PerformCalculation(5, 3, "invalid")
		require.ErrorIs(t, err, ErrInvalidOperation)
		assert.Contains(t, err.Error(), "invalid")
		assert.Equal(t, "invalid operation: invalid", err.Error())
	})

	t.Run("division by zero", func(t *testing.T) {
		_, err := PerformCalculation(10, 0, "divide")
		require.ErrorIs(t, err, ErrDivisionByZero)
	})
}

func TestParseOperation(t *testing.T) {
	for _, op := range Operations() {
		got, err := ParseOperation(string(op))
		require.NoError(t, err)
		assert.Equal(t, op, got)
	}

	for _, tag := range []string{"", "Add", "ADD", "power", " add"} {
		_, err := ParseOperation(tag)
		assert.ErrorIs(t, err, ErrInvalidOperation, "tag %q", tag)
	}
}

func TestOperations_ReturnsCopy(t *testing.T) {
	ops := Operations()
	require.Len(t, ops, 4)
	ops[0] = "mutated"

	assert.Equal(t, OpAdd, Operations()[0])
}

func TestOperation_SymbolAndLabel(t *testing.T) {
	assert.Equal(t, "+", OpAdd.Symbol())
	assert.Equal(t, "÷", OpDivide.Symbol())
	assert.Equal(t, "?", Operation("x").Symbol())
	assert.Equal(t, "Subtract (-)", OpSubtract.Label())
	assert.Equal(t, "x", Operation("x").Label())
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrInvalidArgumentType, CodeInvalidArgumentType},
		{ErrDivisionByZero, CodeDivisionByZero},
		{fmt.Errorf("%w: modulo", ErrInvalidOperation), CodeInvalidOperation},
		{ErrResultOutOfRange, CodeResultOutOfRange},
		{ErrMissingOperand, CodeMissingOperand},
		{ErrInvalidNumber, CodeInvalidNumber},
		{errors.New("boom"), CodeUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorCode(tt.err))
	}
}

func TestCheckResult(t *testing.T) {
	overflow, err := PerformCalculation(json.Number("1e308"), json.Number("10"), "multiply")
	require.NoError(t, err)
	assert.ErrorIs(t, CheckResult(overflow), ErrResultOutOfRange)

	quotient, err := PerformCalculation(1e308, 1e-308, "divide")
	require.NoError(t, err)
	assert.ErrorIs(t, CheckResult(quotient), ErrResultOutOfRange)

	assert.ErrorIs(t, CheckResult(math.NaN()), ErrResultOutOfRange)
	assert.NoError(t, CheckResult(0))
	assert.NoError(t, CheckResult(-math.MaxFloat64))
}
