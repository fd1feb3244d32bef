package audit

import (
	"context"
	"time"
)

// ServiceSummary is the name of the summary service ("services.audit.summary").
const ServiceSummary = "summary"

// SummaryRequest is the request for the audit summary.
type SummaryRequest struct{}

// SummaryResponse reports calculation counters observed since startup.
type SummaryResponse struct {
	Performed    int64            `json:"performed"`
	Failed       int64            `json:"failed"`
	ByOperation  map[string]int64 `json:"by_operation"`
	FailedByCode map[string]int64 `json:"failed_by_code"`
	LastActivity *time.Time       `json:"last_activity,omitempty"`
}

// AuditPort defines the audit operations available to other modules.
type AuditPort interface {
	Summary(ctx context.Context) (*SummaryResponse, error)
}
