package usecase

import (
	"context"

	"github.com/Jgilbert-dev/inspectrixV4/domain"
)

const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// OperationBuffer abstracts the offline write buffer so use cases stay
// storage-agnostic.
type OperationBuffer interface {
	BufferProfile(ctx context.Context, operation string, user *domain.User) error
	BufferReport(ctx context.Context, operation string, report *domain.Report) error
}
