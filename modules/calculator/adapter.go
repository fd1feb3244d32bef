package calculator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// calculatorAdapter wraps ServiceContainer for type-safe cross-module communication.
type calculatorAdapter struct {
	container mono.ServiceContainer
}

// NewCalculatorAdapter creates a CalculatorPort backed by the calculator
// module's service container.
func NewCalculatorAdapter(container mono.ServiceContainer) CalculatorPort {
	if container == nil {
		panic("calculator adapter requires non-nil ServiceContainer")
	}
	return &calculatorAdapter{container: container}
}

// Calculate runs a calculation via the calculate service.
func (a *calculatorAdapter) Calculate(ctx context.Context, req *CalculateRequest) (*CalculateResponse, error) {
	var resp CalculateResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceCalculate,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("calculate service call failed: %w", err)
	}
	return &resp, nil
}

// Validate checks a raw operand via the validate service.
func (a *calculatorAdapter) Validate(ctx context.Context, value string) (*ValidateResponse, error) {
	req := ValidateRequest{Value: value}
	var resp ValidateResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceValidate,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("validate service call failed: %w", err)
	}
	return &resp, nil
}

// Operations lists the supported operations via the operations service.
func (a *calculatorAdapter) Operations(ctx context.Context) (*OperationsResponse, error) {
	var resp OperationsResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceOperations,
		json.Marshal,
		json.Unmarshal,
		&OperationsRequest{},
		&resp,
	); err != nil {
		return nil, fmt.Errorf("operations service call failed: %w", err)
	}
	return &resp, nil
}
