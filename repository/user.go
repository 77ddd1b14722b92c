package repository

import (
	"context"

	"github.com/Jgilbert-dev/inspectrixV4/domain"
)

// UserRepository stores profile records. Profiles share their primary key
// with the identity they belong to.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Upsert(ctx context.Context, user *domain.User) error
	TouchLastLogin(ctx context.Context, id string) error
}
