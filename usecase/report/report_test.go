package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jgilbert-dev/inspectrixV4/domain"
	"github.com/Jgilbert-dev/inspectrixV4/repository"
	"github.com/Jgilbert-dev/inspectrixV4/usecase"
)

type fakeReportRepo struct {
	createErr error
	updateErr error
	deleteErr error

	deletedID        string
	deletedInspector string
}

func (f *fakeReportRepo) GetByID(_ context.Context, id string) (*domain.Report, error) {
	return &domain.Report{ID: id}, nil
}

func (f *fakeReportRepo) List(_ context.Context, _ repository.ReportFilter) ([]domain.Report, error) {
	return nil, nil
}

func (f *fakeReportRepo) Create(_ context.Context, report *domain.Report) (*domain.Report, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return report, nil
}

func (f *fakeReportRepo) Update(_ context.Context, _ *domain.Report) error {
	return f.updateErr
}

func (f *fakeReportRepo) Delete(_ context.Context, id, inspectorID string) error {
	f.deletedID = id
	f.deletedInspector = inspectorID
	return f.deleteErr
}

type fakeBuffer struct {
	reports    []*domain.Report
	operations []string
}

func (f *fakeBuffer) BufferProfile(_ context.Context, _ string, _ *domain.User) error {
	return nil
}

func (f *fakeBuffer) BufferReport(_ context.Context, operation string, report *domain.Report) error {
	f.operations = append(f.operations, operation)
	f.reports = append(f.reports, report)
	return nil
}

func TestDeleteReportScopedToInspector(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := New(repo, nil, nil)

	require.NoError(t, uc.DeleteReport(context.Background(), "rep-1", "insp-1"))

	assert.Equal(t, "rep-1", repo.deletedID)
	assert.Equal(t, "insp-1", repo.deletedInspector)
}

func TestDeleteReportNotFoundIsNotBuffered(t *testing.T) {
	repo := &fakeReportRepo{deleteErr: domain.ErrReportNotFound}
	buf := &fakeBuffer{}
	uc := New(repo, buf, nil)

	err := uc.DeleteReport(context.Background(), "rep-1", "insp-1")

	assert.ErrorIs(t, err, domain.ErrReportNotFound)
	assert.Empty(t, buf.operations)
}

func TestDeleteReportBufferedWithOwner(t *testing.T) {
	repo := &fakeReportRepo{deleteErr: errors.New("connection refused")}
	buf := &fakeBuffer{}
	uc := New(repo, buf, nil)

	require.NoError(t, uc.DeleteReport(context.Background(), "rep-1", "insp-1"))

	require.Len(t, buf.reports, 1)
	assert.Equal(t, usecase.OperationDelete, buf.operations[0])
	// The buffered replay must stay scoped to the owning inspector.
	assert.Equal(t, "insp-1", buf.reports[0].InspectorID)
}

func TestCreateReportBufferedOnStorageError(t *testing.T) {
	repo := &fakeReportRepo{createErr: errors.New("connection refused")}
	buf := &fakeBuffer{}
	uc := New(repo, buf, nil)

	report := &domain.Report{ID: "rep-1", InspectorID: "insp-1", Title: "pump check"}
	got, err := uc.CreateReport(context.Background(), report)

	require.NoError(t, err)
	assert.Equal(t, report, got)
	require.Len(t, buf.operations, 1)
	assert.Equal(t, usecase.OperationCreate, buf.operations[0])
}
