package redis

import (
	"context"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/Jgilbert-dev/inspectrixV4/domain"
	"github.com/Jgilbert-dev/inspectrixV4/repository"
)

type resetTokenRepository struct {
	client *redislib.Client
	prefix string
}

// NewResetTokenRepository creates a Redis-backed store for single-use
// password reset tokens.
func NewResetTokenRepository(client *redislib.Client) repository.ResetTokenRepository {
	return &resetTokenRepository{
		client: client,
		prefix: "pwreset:",
	}
}

func (r *resetTokenRepository) Save(ctx context.Context, token, identityID string, ttl time.Duration) error {
	if token == "" || identityID == "" {
		return domain.ErrInvalidPayload
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return r.client.Set(ctx, r.key(token), identityID, ttl).Err()
}

// Consume returns the identity the token was issued for and deletes it, so a
// token can never be replayed.
func (r *resetTokenRepository) Consume(ctx context.Context, token string) (string, error) {
	identityID, err := r.client.GetDel(ctx, r.key(token)).Result()
	if err != nil {
		if err == redislib.Nil {
			return "", domain.NewError(domain.ErrCodeInvalidToken, "reset token is invalid or expired")
		}
		return "", err
	}
	return identityID, nil
}

func (r *resetTokenRepository) key(token string) string {
	return fmt.Sprintf("%s%s", r.prefix, token)
}
