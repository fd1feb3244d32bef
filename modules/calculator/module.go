package calculator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/calculator-demo/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// CalculatorModule exposes the arithmetic core as request-reply services
// and publishes an event for every calculation.
type CalculatorModule struct {
	eventBus mono.EventBus
	logger   types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*CalculatorModule)(nil)
	_ mono.ServiceProviderModule = (*CalculatorModule)(nil)
	_ mono.EventEmitterModule    = (*CalculatorModule)(nil)
)

// NewModule creates a new CalculatorModule.
func NewModule(logger types.Logger) *CalculatorModule {
	return &CalculatorModule{
		logger: logger,
	}
}

// Name returns the module name.
func (m *CalculatorModule) Name() string {
	return "calculator"
}

// SetEventBus receives the event bus from the framework.
func (m *CalculatorModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *CalculatorModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.CalculationPerformedV1.ToBase(),
		events.CalculationFailedV1.ToBase(),
	}
}

// RegisterServices registers the calculator request-reply services.
func (m *CalculatorModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceCalculate, json.Unmarshal, json.Marshal, m.calculate,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceCalculate, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceValidate, json.Unmarshal, json.Marshal, m.validate,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceValidate, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceOperations, json.Unmarshal, json.Marshal, m.operations,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceOperations, err)
	}

	m.logger.Info("Registered services",
		"services", "services.calculator.calculate, services.calculator.validate, services.calculator.operations")
	return nil
}

// Start starts the module.
func (m *CalculatorModule) Start(_ context.Context) error {
	if m.eventBus == nil {
		m.logger.Warn("Event bus not set, calculation events will not be published")
	}
	m.logger.Info("Calculator module started")
	return nil
}

// Stop stops the module.
func (m *CalculatorModule) Stop(_ context.Context) error {
	m.logger.Info("Calculator module stopped")
	return nil
}
