package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jgilbert-dev/inspectrixV4/domain"
	"github.com/Jgilbert-dev/inspectrixV4/repository"
)

// UseCase implements password-based identity operations: login, the two-step
// registration flow, refresh rotation, logout and password maintenance.
type UseCase struct {
	identities  repository.IdentityRepository
	users       repository.UserRepository
	orgs        repository.OrganizationRepository
	sessions    repository.SessionRepository
	resetTokens repository.ResetTokenRepository
	tokens      TokenConfig
	logger      *zap.Logger
}

func New(
	identities repository.IdentityRepository,
	users repository.UserRepository,
	orgs repository.OrganizationRepository,
	sessions repository.SessionRepository,
	resetTokens repository.ResetTokenRepository,
	tokens TokenConfig,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		identities:  identities,
		users:       users,
		orgs:        orgs,
		sessions:    sessions,
		resetTokens: resetTokens,
		tokens:      tokens.withDefaults(),
		logger:      logger,
	}
}

// Login verifies credentials and issues a fresh session.
func (uc *UseCase) Login(ctx context.Context, creds domain.LoginCredentials) (*domain.Session, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	identity, err := uc.identities.GetByEmail(ctx, creds.Email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrBadCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, domain.ErrBadCredentials
	}

	user, err := uc.users.GetByID(ctx, identity.ID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, domain.ErrAccountDisabled
	}
	user.MustChangePassword = identity.MustChangePassword

	session, err := uc.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := uc.users.TouchLastLogin(ctx, user.ID); err != nil {
		uc.logger.Warn("failed to record last login", zap.String("user_id", user.ID), zap.Error(err))
	}

	return session, nil
}

// Register creates an account in two steps: the identity record first, then
// the profile record. A profile failure rolls the identity back and is
// reported with its own error code so the caller can explain the partial
// completion.
func (uc *UseCase) Register(ctx context.Context, data domain.RegisterData) (*domain.Session, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	role := data.Role
	if role == "" {
		role = domain.RoleInspector
	}

	var orgName string
	if data.OrganizationID != "" {
		org, err := uc.orgs.GetByID(ctx, data.OrganizationID)
		if err != nil {
			return nil, err
		}
		orgName = org.Name
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "password hashing failed", err)
	}

	identity := &domain.Identity{
		ID:           uuid.NewString(),
		Email:        domain.NormalizeEmail(data.Email),
		PasswordHash: string(hash),
	}
	if err := uc.identities.Create(ctx, identity); err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:               identity.ID,
		Email:            identity.Email,
		FirstName:        data.FirstName,
		LastName:         data.LastName,
		Role:             role,
		OrganizationID:   data.OrganizationID,
		OrganizationName: orgName,
		Active:           true,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		if delErr := uc.identities.Delete(ctx, identity.ID); delErr != nil {
			uc.logger.Error("identity rollback failed after profile error",
				zap.String("identity_id", identity.ID), zap.Error(delErr))
		}
		return nil, domain.WrapError(domain.ErrCodeProfileCreate, "profile creation failed", err)
	}

	return uc.issueSession(ctx, user)
}

// Logout revokes the refresh grant behind the presented token. Local state
// is the caller's to clear regardless of the outcome here.
func (uc *UseCase) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return uc.sessions.Delete(ctx, refreshToken)
}

// RefreshSession rotates the refresh grant and issues a new access token.
func (uc *UseCase) RefreshSession(ctx context.Context, refreshToken string) (*domain.Session, error) {
	if refreshToken == "" {
		return nil, domain.NewError(domain.ErrCodeInvalidToken, "refresh token is required")
	}

	grant, err := uc.sessions.Get(ctx, refreshToken)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.NewError(domain.ErrCodeInvalidToken, "refresh token is invalid or expired")
		}
		return nil, err
	}
	if grant.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, refreshToken)
		return nil, domain.NewError(domain.ErrCodeInvalidToken, "refresh token is invalid or expired")
	}

	user, err := uc.users.GetByID(ctx, grant.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		_ = uc.sessions.Delete(ctx, refreshToken)
		return nil, domain.ErrAccountDisabled
	}

	// Rotation: the old grant is gone before the new one is handed out.
	if err := uc.sessions.Delete(ctx, refreshToken); err != nil {
		return nil, err
	}
	return uc.issueSession(ctx, user)
}

// ChangePassword verifies the current password before rotating to the new
// one and clears the must-change flag.
func (uc *UseCase) ChangePassword(ctx context.Context, userID string, data domain.PasswordChangeData) error {
	if err := data.Validate(); err != nil {
		return err
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	identity, err := uc.identities.GetByEmail(ctx, user.Email)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(data.CurrentPassword)); err != nil {
		return domain.NewError(domain.ErrCodeUnauthorized, "current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "password hashing failed", err)
	}

	return uc.identities.UpdatePassword(ctx, identity.ID, string(hash), false)
}

// ResetPassword starts a password reset. The outcome is identical whether or
// not the email belongs to an account, so callers cannot probe for accounts.
func (uc *UseCase) ResetPassword(ctx context.Context, email string) error {
	if domain.NormalizeEmail(email) == "" {
		return domain.NewError(domain.ErrCodeInvalid, "email is required")
	}

	identity, err := uc.identities.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil
		}
		return nil
	}

	token := uuid.NewString()
	if err := uc.resetTokens.Save(ctx, token, identity.ID, time.Hour); err != nil {
		uc.logger.Error("failed to store reset token", zap.Error(err))
		return nil
	}

	// Delivery is the notifier's job; until one is wired the token only
	// reaches operators through the log.
	uc.logger.Info("password reset token issued", zap.String("identity_id", identity.ID))
	return nil
}

// ConfirmReset consumes a reset token and sets the new password.
func (uc *UseCase) ConfirmReset(ctx context.Context, token, newPassword string) error {
	if err := domain.ValidatePassword(newPassword); err != nil {
		return err
	}

	identityID, err := uc.resetTokens.Consume(ctx, token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "password hashing failed", err)
	}

	return uc.identities.UpdatePassword(ctx, identityID, string(hash), false)
}

// GetUser loads the profile for an authenticated identity.
func (uc *UseCase) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

func (uc *UseCase) issueSession(ctx context.Context, user *domain.User) (*domain.Session, error) {
	now := time.Now()

	accessToken, expiresAt, err := uc.issueAccessToken(user, now)
	if err != nil {
		return nil, err
	}

	grant := &domain.RefreshSession{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.tokens.RefreshTTL),
	}
	if err := uc.sessions.Save(ctx, grant); err != nil {
		return nil, err
	}

	return &domain.Session{
		User:         *user,
		AccessToken:  accessToken,
		RefreshToken: grant.ID,
		ExpiresAt:    &expiresAt,
	}, nil
}
