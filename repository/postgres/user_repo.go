package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jgilbert-dev/inspectrixV4/domain"
	"github.com/Jgilbert-dev/inspectrixV4/repository"
)

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates a Postgres-backed profile repository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `
	p.id, p.email, p.first_name, p.last_name, p.role,
	COALESCE(p.organization_id::text, ''), COALESCE(o.name, ''),
	p.active, p.must_change_password, p.last_login_at, p.created_at, p.updated_at
`

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
	SELECT ` + userColumns + `
	FROM profiles p
	LEFT JOIN organizations o ON o.id = p.organization_id
	WHERE p.id = $1
	`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
	SELECT ` + userColumns + `
	FROM profiles p
	LEFT JOIN organizations o ON o.id = p.organization_id
	WHERE p.email = $1
	`
	return scanUser(r.pool.QueryRow(ctx, query, domain.NormalizeEmail(email)))
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO profiles (id, email, first_name, last_name, role, organization_id, active, must_change_password)
	VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid, $7, $8)
	RETURNING created_at, updated_at
	`

	return r.pool.QueryRow(ctx, query,
		user.ID,
		domain.NormalizeEmail(user.Email),
		user.FirstName,
		user.LastName,
		string(user.Role),
		user.OrganizationID,
		user.Active,
		user.MustChangePassword,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Upsert(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO profiles (id, email, first_name, last_name, role, organization_id, active, must_change_password)
	VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid, $7, $8)
	ON CONFLICT (id) DO UPDATE
	SET first_name = EXCLUDED.first_name,
		last_name = EXCLUDED.last_name,
		role = EXCLUDED.role,
		organization_id = EXCLUDED.organization_id,
		active = EXCLUDED.active,
		must_change_password = EXCLUDED.must_change_password,
		updated_at = NOW()
	RETURNING created_at, updated_at
	`

	return r.pool.QueryRow(ctx, query,
		user.ID,
		domain.NormalizeEmail(user.Email),
		user.FirstName,
		user.LastName,
		string(user.Role),
		user.OrganizationID,
		user.Active,
		user.MustChangePassword,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id string) error {
	const query = `UPDATE profiles SET last_login_at = NOW(), updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(row interface {
	Scan(dest ...interface{}) error
}) (*domain.User, error) {
	var user domain.User
	var role string

	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&role,
		&user.OrganizationID,
		&user.OrganizationName,
		&user.Active,
		&user.MustChangePassword,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	user.Role = domain.Role(role)
	return &user, nil
}
