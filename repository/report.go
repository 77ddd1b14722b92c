package repository

import (
	"context"

	"github.com/Jgilbert-dev/inspectrixV4/domain"
)

type ReportFilter struct {
	InspectorID string
	Status      string
	Limit       int
	Offset      int
}

// ReportRepository stores inspection reports. Update and Delete are scoped
// to the owning inspector so one inspector cannot touch another's reports.
type ReportRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	List(ctx context.Context, filter ReportFilter) ([]domain.Report, error)
	Create(ctx context.Context, report *domain.Report) (*domain.Report, error)
	Update(ctx context.Context, report *domain.Report) error
	Delete(ctx context.Context, id, inspectorID string) error
}
