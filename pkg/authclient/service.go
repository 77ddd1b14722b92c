package authclient

import (
	"context"

	"github.com/Jgilbert-dev/inspectrixV4/domain"
)

// Service is the identity capability the rest of the application programs
// against. Implementations adapt a concrete backend; operations never panic
// and never return Go errors — faults are folded into the Result.
type Service interface {
	// Login exchanges credentials for a session.
	Login(ctx context.Context, creds domain.LoginCredentials) Result[domain.Session]

	// Register creates an account. A successful result whose session has no
	// tokens means the backend is holding the account for verification.
	Register(ctx context.Context, data domain.RegisterData) Result[domain.Session]

	// Logout revokes the current session remotely and always drops local
	// token state.
	Logout(ctx context.Context) Result[Void]

	// CurrentSession returns the live session, refreshing once if the access
	// token has expired and a refresh token is available.
	CurrentSession(ctx context.Context) Result[domain.Session]

	// RefreshSession forces a token refresh.
	RefreshSession(ctx context.Context) Result[domain.Session]

	ChangePassword(ctx context.Context, data domain.PasswordChangeData) Result[Void]

	// ResetPassword starts a reset flow. The result shape is identical
	// whether or not the email belongs to an account.
	ResetPassword(ctx context.Context, email string) Result[Void]

	CurrentUser(ctx context.Context) Result[domain.User]

	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) Result[domain.User]

	// OnAuthStateChange registers a callback fired with the new session (or
	// nil) on every session transition. The returned function unsubscribes.
	OnAuthStateChange(fn func(session *domain.Session)) (unsubscribe func())

	// IsAuthenticated is derived from CurrentSession.
	IsAuthenticated(ctx context.Context) bool

	// AuthHeaders returns the headers to attach to authenticated requests,
	// empty when no session is held.
	AuthHeaders() map[string]string
}
