package repository

import (
	"context"

	"github.com/Jgilbert-dev/inspectrixV4/domain"
)

type OrganizationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Organization, error)
	List(ctx context.Context, limit, offset int) ([]domain.Organization, error)
	Save(ctx context.Context, org *domain.Organization) error
}
