package profile

import (
	"context"

	"go.uber.org/zap"

	"github.com/Jgilbert-dev/inspectrixV4/domain"
	"github.com/Jgilbert-dev/inspectrixV4/repository"
	"github.com/Jgilbert-dev/inspectrixV4/usecase"
)

type UseCase struct {
	users  repository.UserRepository
	buffer usecase.OperationBuffer
	logger *zap.Logger
}

func New(users repository.UserRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		buffer: buffer,
		logger: logger,
	}
}

func (uc *UseCase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

// UpdateProfile applies a partial update to the caller's profile. When the
// primary store is unavailable the write is buffered and the optimistic
// result returned.
func (uc *UseCase) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	if update.Empty() {
		return nil, domain.ErrInvalidPayload
	}

	current, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := update.Apply(*current)

	if err := uc.users.Upsert(ctx, &updated); err != nil {
		if uc.buffer != nil {
			if bufErr := uc.buffer.BufferProfile(ctx, usecase.OperationUpdate, &updated); bufErr != nil {
				uc.logger.Error("failed to buffer profile update", zap.Error(bufErr))
				return nil, err
			}
			uc.logger.Warn("profile update buffered due to repository error", zap.Error(err))
			return &updated, nil
		}
		return nil, err
	}
	return &updated, nil
}
