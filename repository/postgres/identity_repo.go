package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jgilbert-dev/inspectrixV4/domain"
	"github.com/Jgilbert-dev/inspectrixV4/repository"
)

type identityRepository struct {
	pool *pgxpool.Pool
}

// NewIdentityRepository instantiates a Postgres-backed credential repository.
func NewIdentityRepository(pool *pgxpool.Pool) repository.IdentityRepository {
	return &identityRepository{pool: pool}
}

func (r *identityRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	const query = `
	SELECT id, email, password_hash, must_change_password, created_at, updated_at
	FROM identities
	WHERE email = $1
	`
	row := r.pool.QueryRow(ctx, query, domain.NormalizeEmail(email))

	var identity domain.Identity
	if err := row.Scan(
		&identity.ID,
		&identity.Email,
		&identity.PasswordHash,
		&identity.MustChangePassword,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, err
	}
	return &identity, nil
}

func (r *identityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	if identity == nil || identity.ID == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO identities (id, email, password_hash, must_change_password)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (email) DO NOTHING
	RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		identity.ID,
		domain.NormalizeEmail(identity.Email),
		identity.PasswordHash,
		identity.MustChangePassword,
	).Scan(&identity.CreatedAt, &identity.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *identityRepository) UpdatePassword(ctx context.Context, id, passwordHash string, mustChange bool) error {
	const query = `
	UPDATE identities
	SET password_hash = $2, must_change_password = $3, updated_at = NOW()
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, passwordHash, mustChange)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

func (r *identityRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM identities WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
