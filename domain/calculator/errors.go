package calculator

import "errors"

// Calculation errors.
var (
	ErrInvalidArgumentType = errors.New("arguments must be numbers")
	ErrDivisionByZero      = errors.New("division by zero is not allowed")
	ErrInvalidOperation    = errors.New("invalid operation")
	ErrResultOutOfRange    = errors.New("result is out of range")
)

// Input errors returned by ParseOperand.
var (
	ErrMissingOperand = errors.New("operand is required")
	ErrInvalidNumber  = errors.New("invalid number")
)

// Error codes used on the wire.
const (
	CodeInvalidArgumentType = "invalid_argument_type"
	CodeDivisionByZero      = "division_by_zero"
	CodeInvalidOperation    = "invalid_operation"
	CodeResultOutOfRange    = "result_out_of_range"
	CodeMissingOperand      = "missing_operand"
	CodeInvalidNumber       = "invalid_number"
	CodeUnknown             = "unknown_error"
)

// ErrorCode maps an error to its wire code. It returns an empty string for nil.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidArgumentType):
		return CodeInvalidArgumentType
	case errors.Is(err, ErrDivisionByZero):
		return CodeDivisionByZero
	case errors.Is(err, ErrInvalidOperation):
		return CodeInvalidOperation
	case errors.Is(err, ErrResultOutOfRange):
		return CodeResultOutOfRange
	case errors.Is(err, ErrMissingOperand):
		return CodeMissingOperand
	case errors.Is(err, ErrInvalidNumber):
		return CodeInvalidNumber
	default:
		return CodeUnknown
	}
}
