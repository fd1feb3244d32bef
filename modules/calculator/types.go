package calculator

import (
	"context"
	"encoding/json"
)

// Service names registered by the calculator module.
// The framework prefixes them with "services.calculator.".
const (
	ServiceCalculate  = "calculate"
	ServiceValidate   = "validate"
	ServiceOperations = "operations"
)

// CalculateRequest is the request for a calculation.
// Operands are kept raw so that non-numeric JSON values can be reported
// as an argument type error instead of failing to decode.
type CalculateRequest struct {
	A         json.RawMessage `json:"a"`
	B         json.RawMessage `json:"b"`
	Operation string          `json:"operation"`
}

// CalculateResponse is the response for a calculation.
// Domain failures are reported through Error and Code.
type CalculateResponse struct {
	ID        string  `json:"id"`
	Operation string  `json:"operation"`
	Result    float64 `json:"result"`
	Error     string  `json:"error,omitempty"`
	Code      string  `json:"code,omitempty"`
}

// ValidateRequest is the request for validating a raw operand.
type ValidateRequest struct {
	Value string `json:"value"`
}

// ValidateResponse is the response for validating a raw operand.
type ValidateResponse struct {
	Value string `json:"value"`
	Valid bool   `json:"valid"`
}

// OperationsRequest is the request for listing operations.
type OperationsRequest struct{}

// OperationInfo describes a supported operation.
type OperationInfo struct {
	Tag    string `json:"tag"`
	Symbol string `json:"symbol"`
	Label  string `json:"label"`
}

// OperationsResponse is the response for listing operations.
type OperationsResponse struct {
	Operations []OperationInfo `json:"operations"`
}

// CalculatorPort defines the calculator operations available to other modules.
type CalculatorPort interface {
	Calculate(ctx context.Context, req *CalculateRequest) (*CalculateResponse, error)
	Validate(ctx context.Context, value string) (*ValidateResponse, error)
	Operations(ctx context.Context) (*OperationsResponse, error)
}
