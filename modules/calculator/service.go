package calculator

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	domain "github.com/example/calculator-demo/domain/calculator"
	"github.com/example/calculator-demo/events"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// calculate handles the calculator.calculate service request.
func (m *CalculatorModule) calculate(_ context.Context, req CalculateRequest, _ *mono.Msg) (CalculateResponse, error) {
	id := uuid.New().String()

	a, b := decodeOperand(req.A), decodeOperand(req.B)
	result, err := domain.PerformCalculation(a, b, req.Operation)
	if err == nil {
		// Non-finite results cannot be encoded in the reply or the event.
		err = domain.CheckResult(result)
	}
	if err != nil {
		m.publishFailed(id, req.Operation, err)
		return CalculateResponse{
			ID:        id,
			Operation: req.Operation,
			Error:     err.Error(),
			Code:      domain.ErrorCode(err),
		}, nil // Return error in response, not as Go error
	}

	// PerformCalculation already accepted both operands as numbers.
	x, _ := a.(json.Number).Float64()
	y, _ := b.(json.Number).Float64()
	m.publishPerformed(id, req.Operation, x, y, result)

	return CalculateResponse{
		ID:        id,
		Operation: req.Operation,
		Result:    result,
	}, nil
}

// validate handles the calculator.validate service request.
func (m *CalculatorModule) validate(_ context.Context, req ValidateRequest, _ *mono.Msg) (ValidateResponse, error) {
	return ValidateResponse{
		Value: req.Value,
		Valid: domain.IsValidNumber(req.Value),
	}, nil
}

// operations handles the calculator.operations service request.
func (m *CalculatorModule) operations(_ context.Context, _ OperationsRequest, _ *mono.Msg) (OperationsResponse, error) {
	ops := domain.Operations()
	resp := OperationsResponse{
		Operations: make([]OperationInfo, 0, len(ops)),
	}
	for _, op := range ops {
		resp.Operations = append(resp.Operations, OperationInfo{
			Tag:    op.String(),
			Symbol: op.Symbol(),
			Label:  op.Label(),
		})
	}
	return resp, nil
}

// decodeOperand turns a raw JSON operand into a json.Number for numbers,
// or into whatever other Go value the JSON holds. Missing and malformed
// operands decode to nil.
func decodeOperand(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

func (m *CalculatorModule) publishPerformed(id, operation string, a, b, result float64) {
	if m.eventBus == nil {
		return
	}
	event := events.CalculationPerformedEvent{
		ID:          id,
		Operation:   operation,
		A:           a,
		B:           b,
		Result:      result,
		PerformedAt: time.Now(),
	}
	if err := events.CalculationPerformedV1.Publish(m.eventBus, event, nil); err != nil {
		// Event publishing is best-effort
		m.logger.Warn("Failed to publish CalculationPerformed event", "id", id, "error", err)
	}
}

func (m *CalculatorModule) publishFailed(id, operation string, cause error) {
	if m.eventBus == nil {
		return
	}
	event := events.CalculationFailedEvent{
		ID:        id,
		Operation: operation,
		Code:      domain.ErrorCode(cause),
		Message:   cause.Error(),
		FailedAt:  time.Now(),
	}
	if err := events.CalculationFailedV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish CalculationFailed event", "id", id, "error", err)
	}
}
