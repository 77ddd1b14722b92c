package repository

import (
	"context"

	"github.com/Jgilbert-dev/inspectrixV4/domain"
)

// IdentityRepository stores credential records. Deletion exists so a
// half-finished registration can be rolled back when the profile insert fails.
type IdentityRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)
	Create(ctx context.Context, identity *domain.Identity) error
	UpdatePassword(ctx context.Context, id, passwordHash string, mustChange bool) error
	Delete(ctx context.Context, id string) error
}
