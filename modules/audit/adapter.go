package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

type auditAdapter struct {
	container mono.ServiceContainer
}

// NewAuditAdapter creates an AuditPort backed by the audit module's service container.
func NewAuditAdapter(container mono.ServiceContainer) AuditPort {
	if container == nil {
		panic("audit adapter requires non-nil ServiceContainer")
	}
	return &auditAdapter{container: container}
}

// Summary fetches the counters via the summary service.
func (a *auditAdapter) Summary(ctx context.Context) (*SummaryResponse, error) {
	var resp SummaryResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceSummary,
		json.Marshal,
		json.Unmarshal,
		&SummaryRequest{},
		&resp,
	); err != nil {
		return nil, fmt.Errorf("summary service call failed: %w", err)
	}
	return &resp, nil
}
