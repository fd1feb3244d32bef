package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/calculator-demo/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// AuditModule is a driven adapter that listens to calculation events,
// logs them and keeps aggregate counters.
type AuditModule struct {
	counters *Counters
	logger   types.Logger
}

var (
	_ mono.Module                = (*AuditModule)(nil)
	_ mono.EventConsumerModule   = (*AuditModule)(nil)
	_ mono.ServiceProviderModule = (*AuditModule)(nil)
)

// NewModule creates a new AuditModule with empty counters.
func NewModule(logger types.Logger) *AuditModule {
	return &AuditModule{
		counters: NewCounters(),
		logger:   logger,
	}
}

// Name returns the module name.
func (m *AuditModule) Name() string {
	return "audit"
}

// RegisterEventConsumers subscribes to the calculation events.
func (m *AuditModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.CalculationPerformedV1, m.handlePerformed, m); err != nil {
		return fmt.Errorf("failed to register CalculationPerformed consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.CalculationFailedV1, m.handleFailed, m); err != nil {
		return fmt.Errorf("failed to register CalculationFailed consumer: %w", err)
	}

	m.logger.Info("Registered event consumers", "events", "CalculationPerformed, CalculationFailed")
	return nil
}

// RegisterServices registers the summary request-reply service.
func (m *AuditModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceSummary, json.Unmarshal, json.Marshal, m.summary,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceSummary, err)
	}
	return nil
}

func (m *AuditModule) handlePerformed(_ context.Context, event events.CalculationPerformedEvent, _ *mono.Msg) error {
	m.logger.Info("Calculation performed",
		"id", event.ID,
		"operation", event.Operation,
		"a", event.A,
		"b", event.B,
		"result", event.Result)
	m.counters.RecordPerformed(event.Operation, event.PerformedAt)
	return nil
}

func (m *AuditModule) handleFailed(_ context.Context, event events.CalculationFailedEvent, _ *mono.Msg) error {
	m.logger.Warn("Calculation failed",
		"id", event.ID,
		"operation", event.Operation,
		"code", event.Code,
		"message", event.Message)
	m.counters.RecordFailed(event.Code, event.FailedAt)
	return nil
}

func (m *AuditModule) summary(_ context.Context, _ SummaryRequest, _ *mono.Msg) (SummaryResponse, error) {
	return m.counters.Snapshot(), nil
}

// Start starts the module.
func (m *AuditModule) Start(_ context.Context) error {
	m.logger.Info("Audit module started - listening for calculation events")
	return nil
}

// Stop stops the module and logs the final totals.
func (m *AuditModule) Stop(_ context.Context) error {
	snapshot := m.counters.Snapshot()
	m.logger.Info("Audit module stopped",
		"performed", snapshot.Performed,
		"failed", snapshot.Failed)
	return nil
}
