package api

import (
	"encoding/json"
	"time"
)

// CalculateRequest is the HTTP request for a calculation.
// Operands stay raw so the calculator can reject non-numeric values itself.
type CalculateRequest struct {
	A         json.RawMessage `json:"a"`
	B         json.RawMessage `json:"b"`
	Operation string          `json:"operation"`
}

// CalculateResponse is the HTTP response for a calculation.
type CalculateResponse struct {
	ID        string   `json:"id"`
	Operation string   `json:"operation"`
	Result    *float64 `json:"result,omitempty"`
	Error     string   `json:"error,omitempty"`
	Code      string   `json:"code,omitempty"`
}

// ValidateRequest is the HTTP request for validating a raw operand.
type ValidateRequest struct {
	Value string `json:"value"`
}

// ValidateResponse is the HTTP response for validating a raw operand.
type ValidateResponse struct {
	Value string `json:"value"`
	Valid bool   `json:"valid"`
}

// OperationResponse describes one supported operation.
type OperationResponse struct {
	Tag    string `json:"tag"`
	Symbol string `json:"symbol"`
	Label  string `json:"label"`
}

// ListOperationsResponse is the HTTP response for listing operations.
type ListOperationsResponse struct {
	Operations []OperationResponse `json:"operations"`
}

// StatsResponse is the HTTP response for calculation statistics.
type StatsResponse struct {
	Performed    int64            `json:"performed"`
	Failed       int64            `json:"failed"`
	ByOperation  map[string]int64 `json:"by_operation"`
	FailedByCode map[string]int64 `json:"failed_by_code"`
	LastActivity *time.Time       `json:"last_activity,omitempty"`
}

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
