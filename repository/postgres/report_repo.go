package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jgilbert-dev/inspectrixV4/domain"
	"github.com/Jgilbert-dev/inspectrixV4/repository"
)

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository returns a Postgres-backed implementation of ReportRepository.
func NewReportRepository(pool *pgxpool.Pool) repository.ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	const query = `
	SELECT id, inspector_id, title, notes, status, severity, inspected_at, findings, created_at, updated_at
	FROM reports
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanReport(row)
}

func (r *reportRepository) List(ctx context.Context, filter repository.ReportFilter) ([]domain.Report, error) {
	const query = `
	SELECT id, inspector_id, title, notes, status, severity, inspected_at, findings, created_at, updated_at
	FROM reports
	WHERE (NULLIF($1, '')::uuid IS NULL OR inspector_id = NULLIF($1, '')::uuid)
	  AND ($2 = '' OR status = $2)
	ORDER BY created_at DESC
	LIMIT $3 OFFSET $4
	`
	rows, err := r.pool.Query(ctx, query, filter.InspectorID, filter.Status, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	return reports, rows.Err()
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	if report == nil {
		return nil, domain.ErrInvalidPayload
	}
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if report.Status == "" {
		report.Status = domain.ReportStatusDraft
	}

	const query = `
	INSERT INTO reports (id, inspector_id, title, notes, status, severity, inspected_at, findings)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at, updated_at
	`

	var inspected interface{}
	if report.InspectedAt != nil {
		inspected = *report.InspectedAt
	}

	findings := marshalMap(report.Findings)

	if err := r.pool.QueryRow(ctx, query,
		report.ID,
		report.InspectorID,
		report.Title,
		report.Notes,
		report.Status,
		report.Severity,
		inspected,
		findings,
	).Scan(&report.CreatedAt, &report.UpdatedAt); err != nil {
		return nil, err
	}

	return report, nil
}

func (r *reportRepository) Update(ctx context.Context, report *domain.Report) error {
	if report == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE reports
	SET title = $2,
		notes = $3,
		status = $4,
		severity = $5,
		inspected_at = $6,
		findings = $7,
		updated_at = NOW()
	WHERE id = $1 AND inspector_id = $8
	RETURNING updated_at
	`

	var inspected interface{}
	if report.InspectedAt != nil {
		inspected = *report.InspectedAt
	}

	findings := marshalMap(report.Findings)

	if err := r.pool.QueryRow(ctx, query,
		report.ID,
		report.Title,
		report.Notes,
		report.Status,
		report.Severity,
		inspected,
		findings,
		report.InspectorID,
	).Scan(&report.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrReportNotFound
		}
		return err
	}

	return nil
}

func (r *reportRepository) Delete(ctx context.Context, id, inspectorID string) error {
	const query = `DELETE FROM reports WHERE id = $1 AND inspector_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, inspectorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

func scanReport(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Report, error) {
	var report domain.Report
	var (
		inspected *time.Time
		findings  []byte
	)

	if err := row.Scan(
		&report.ID,
		&report.InspectorID,
		&report.Title,
		&report.Notes,
		&report.Status,
		&report.Severity,
		&inspected,
		&findings,
		&report.CreatedAt,
		&report.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}

	report.InspectedAt = inspected
	if len(findings) > 0 {
		_ = json.Unmarshal(findings, &report.Findings)
	}

	return &report, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 100
	}
	return limit
}
