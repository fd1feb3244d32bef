package calculator

import "fmt"

// Operation represents an arithmetic operation tag.
type Operation string

// Supported operations. The set is closed: ParseOperation rejects anything else.
const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpMultiply Operation = "multiply"
	OpDivide   Operation = "divide"
)

// operations lists the supported operations in display order.
var operations = []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide}

// Operations returns the supported operations in display order.
func Operations() []Operation {
	result := make([]Operation, len(operations))
	copy(result, operations)
	return result
}

// ParseOperation converts a textual tag into an Operation.
func ParseOperation(tag string) (Operation, error) {
	op := Operation(tag)
	if !op.Valid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidOperation, tag)
	}
	return op, nil
}

// Valid reports whether op is one of the supported operations.
func (op Operation) Valid() bool {
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	}
	return false
}

// Symbol returns the arithmetic symbol for op, or "?" for unknown values.
func (op Operation) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	}
	return "?"
}

// Label returns the human readable name shown in the form selector.
func (op Operation) Label() string {
	switch op {
	case OpAdd:
		return "Add (+)"
	case OpSubtract:
		return "Subtract (-)"
	case OpMultiply:
		return "Multiply (×)"
	case OpDivide:
		return "Divide (÷)"
	}
	return string(op)
}

func (op Operation) String() string {
	return string(op)
}
