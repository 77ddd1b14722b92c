package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jgilbert-dev/inspectrixV4/domain"
	"github.com/Jgilbert-dev/inspectrixV4/repository"
)

type organizationRepository struct {
	pool *pgxpool.Pool
}

// NewOrganizationRepository creates a Postgres-backed OrganizationRepository.
func NewOrganizationRepository(pool *pgxpool.Pool) repository.OrganizationRepository {
	return &organizationRepository{pool: pool}
}

func (r *organizationRepository) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	const query = `
	SELECT id, name, created_at, updated_at
	FROM organizations
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var org domain.Organization
	if err := row.Scan(&org.ID, &org.Name, &org.CreatedAt, &org.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrgNotFound
		}
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) List(ctx context.Context, limit, offset int) ([]domain.Organization, error) {
	const query = `
	SELECT id, name, created_at, updated_at
	FROM organizations
	ORDER BY name
	LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, clampLimit(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		var org domain.Organization
		if err := rows.Scan(&org.ID, &org.Name, &org.CreatedAt, &org.UpdatedAt); err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}

func (r *organizationRepository) Save(ctx context.Context, org *domain.Organization) error {
	if org == nil {
		return domain.ErrInvalidPayload
	}
	if org.ID == "" {
		org.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO organizations (id, name)
	VALUES ($1, $2)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		updated_at = NOW()
	RETURNING created_at, updated_at
	`

	return r.pool.QueryRow(ctx, query, org.ID, org.Name).Scan(&org.CreatedAt, &org.UpdatedAt)
}
