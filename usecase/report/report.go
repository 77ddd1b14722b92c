package report

import (
	"context"

	"go.uber.org/zap"

	"github.com/Jgilbert-dev/inspectrixV4/domain"
	"github.com/Jgilbert-dev/inspectrixV4/repository"
	"github.com/Jgilbert-dev/inspectrixV4/usecase"
)

type UseCase struct {
	reports repository.ReportRepository
	buffer  usecase.OperationBuffer
	logger  *zap.Logger
}

func New(reports repository.ReportRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		reports: reports,
		buffer:  buffer,
		logger:  logger,
	}
}

func (uc *UseCase) ListReports(ctx context.Context, filter repository.ReportFilter) ([]domain.Report, error) {
	return uc.reports.List(ctx, filter)
}

func (uc *UseCase) GetReport(ctx context.Context, id string) (*domain.Report, error) {
	return uc.reports.GetByID(ctx, id)
}

func (uc *UseCase) CreateReport(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	created, err := uc.reports.Create(ctx, report)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, report) {
			return report, nil
		}
		return nil, err
	}
	return created, nil
}

func (uc *UseCase) UpdateReport(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	if err := uc.reports.Update(ctx, report); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, err
		}
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, report) {
			return report, nil
		}
		return nil, err
	}
	return report, nil
}

func (uc *UseCase) DeleteReport(ctx context.Context, id, inspectorID string) error {
	if err := uc.reports.Delete(ctx, id, inspectorID); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return err
		}
		report := &domain.Report{ID: id, InspectorID: inspectorID}
		if uc.shouldBuffer(ctx, usecase.OperationDelete, report) {
			return nil
		}
		return err
	}
	return nil
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, report *domain.Report) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferReport(ctx, operation, report); err != nil {
		uc.logger.Error("failed to buffer report operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("report operation buffered", zap.String("operation", operation))
	return true
}
