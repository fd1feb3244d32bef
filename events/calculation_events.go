package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// CalculationPerformedEvent is emitted when a calculation produced a result.
type CalculationPerformedEvent struct {
	ID          string    `json:"id"`
	Operation   string    `json:"operation"`
	A           float64   `json:"a"`
	B           float64   `json:"b"`
	Result      float64   `json:"result"`
	PerformedAt time.Time `json:"performed_at"`
}

// CalculationPerformedV1 is the typed event definition for successful calculations.
// Subject: events.calculator.v1.calculation-performed
var CalculationPerformedV1 = helper.EventDefinition[CalculationPerformedEvent](
	"calculator", "CalculationPerformed", "v1",
)

// CalculationFailedEvent is emitted when a calculation was rejected.
type CalculationFailedEvent struct {
	ID        string    `json:"id"`
	Operation string    `json:"operation"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	FailedAt  time.Time `json:"failed_at"`
}

// CalculationFailedV1 is the typed event definition for failed calculations.
// Subject: events.calculator.v1.calculation-failed
var CalculationFailedV1 = helper.EventDefinition[CalculationFailedEvent](
	"calculator", "CalculationFailed", "v1",
)
