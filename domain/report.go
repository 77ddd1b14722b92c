package domain

import "time"

// Report statuses follow the inspection workflow.
const (
	ReportStatusDraft     = "draft"
	ReportStatusSubmitted = "submitted"
	ReportStatusApproved  = "approved"
	ReportStatusRejected  = "rejected"
)

// Report is an equipment inspection report filed by an inspector.
type Report struct {
	ID          string            `json:"id"`
	InspectorID string            `json:"inspector_id"`
	Title       string            `json:"title"`
	Notes       string            `json:"notes,omitempty"`
	Status      string            `json:"status"`
	Severity    int               `json:"severity"`
	InspectedAt *time.Time        `json:"inspected_at,omitempty"`
	Findings    map[string]string `json:"findings,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (r *Report) IsSubmitted() bool {
	return r != nil && r.Status != ReportStatusDraft
}
