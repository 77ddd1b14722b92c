package repository

import (
	"context"
	"time"

	"github.com/Jgilbert-dev/inspectrixV4/domain"
)

// SessionRepository stores refresh sessions keyed by refresh token.
type SessionRepository interface {
	Get(ctx context.Context, token string) (*domain.RefreshSession, error)
	Save(ctx context.Context, session *domain.RefreshSession) error
	Delete(ctx context.Context, token string) error
}

// ResetTokenRepository stores single-use password reset tokens.
type ResetTokenRepository interface {
	Save(ctx context.Context, token, identityID string, ttl time.Duration) error
	Consume(ctx context.Context, token string) (string, error)
}
