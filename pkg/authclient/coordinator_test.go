package authclient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jgilbert-dev/inspectrixV4/domain"
)

// fakeService scripts Service outcomes and lets tests push state changes the
// way the real adapter does.
type fakeService struct {
	loginResult    Result[domain.Session]
	registerResult Result[domain.Session]
	logoutResult   Result[Void]
	currentResult  Result[domain.Session]
	refreshResult  Result[domain.Session]
	updateResult   Result[domain.User]

	listeners []func(*domain.Session)
}

func (f *fakeService) Login(context.Context, domain.LoginCredentials) Result[domain.Session] {
	return f.loginResult
}

func (f *fakeService) Register(context.Context, domain.RegisterData) Result[domain.Session] {
	return f.registerResult
}

func (f *fakeService) Logout(context.Context) Result[Void] {
	return f.logoutResult
}

func (f *fakeService) CurrentSession(context.Context) Result[domain.Session] {
	return f.currentResult
}

func (f *fakeService) RefreshSession(context.Context) Result[domain.Session] {
	return f.refreshResult
}

func (f *fakeService) ChangePassword(context.Context, domain.PasswordChangeData) Result[Void] {
	return Ok(Void{})
}

func (f *fakeService) ResetPassword(context.Context, string) Result[Void] {
	return Ok(Void{})
}

func (f *fakeService) CurrentUser(context.Context) Result[domain.User] {
	return Fail[domain.User](string(domain.ErrCodeUnauthorized), "not authenticated")
}

func (f *fakeService) UpdateProfile(context.Context, domain.ProfileUpdate) Result[domain.User] {
	return f.updateResult
}

func (f *fakeService) OnAuthStateChange(fn func(*domain.Session)) func() {
	f.listeners = append(f.listeners, fn)
	return func() {}
}

func (f *fakeService) IsAuthenticated(ctx context.Context) bool {
	return f.CurrentSession(ctx).Success
}

func (f *fakeService) AuthHeaders() map[string]string {
	return map[string]string{}
}

// push simulates the backend adapter announcing a session transition.
func (f *fakeService) push(session *domain.Session) {
	for _, fn := range f.listeners {
		fn(session)
	}
}

func testSession(id string) domain.Session {
	expires := time.Now().Add(time.Hour)
	return domain.Session{
		User:         domain.User{ID: id, Email: id + "@acme.test", Role: domain.RoleInspector, Active: true},
		AccessToken:  "access-" + id,
		RefreshToken: "refresh-" + id,
		ExpiresAt:    &expires,
	}
}

func noSession() Result[domain.Session] {
	return Fail[domain.Session](string(domain.ErrCodeNotFound), "no active session")
}

func TestStartWithoutStoredSession(t *testing.T) {
	svc := &fakeService{currentResult: noSession()}
	coord := NewCoordinator(svc, nil)
	defer coord.Close()

	assert.Equal(t, StateUninitialized, coord.State())

	coord.Start(context.Background())

	assert.Equal(t, StateUnauthenticated, coord.State())
	assert.False(t, coord.Loading())
	assert.Nil(t, coord.Session())
	assert.Nil(t, coord.User())
}

func TestStartWithStoredSession(t *testing.T) {
	svc := &fakeService{currentResult: Ok(testSession("dana"))}
	coord := NewCoordinator(svc, nil)
	defer coord.Close()

	coord.Start(context.Background())

	assert.Equal(t, StateAuthenticated, coord.State())
	require.NotNil(t, coord.User())
	assert.Equal(t, "dana", coord.User().ID)
}

func TestStartIsIdempotent(t *testing.T) {
	svc := &fakeService{currentResult: noSession()}
	coord := NewCoordinator(svc, nil)
	defer coord.Close()

	coord.Start(context.Background())
	coord.Start(context.Background())

	// Only the first Start subscribes.
	assert.Len(t, svc.listeners, 1)
}

func TestSignInSuccess(t *testing.T) {
	svc := &fakeService{
		currentResult: noSession(),
		loginResult:   Ok(testSession("dana")),
	}
	coord := NewCoordinator(svc, nil)
	defer coord.Close()
	coord.Start(context.Background())

	var renders int
	unsubscribe := coord.Subscribe(func() { renders++ })
	defer unsubscribe()

	result := coord.SignIn(context.Background(), domain.LoginCredentials{Email: "dana@acme.test", Password: "pw"})

	assert.True(t, result.Success)
	assert.Equal(t, StateAuthenticated, coord.State())
	assert.False(t, coord.Loading())
	assert.Greater(t, renders, 0)
}

func TestSignInFailureStaysSignedOut(t *testing.T) {
	svc := &fakeService{
		currentResult: noSession(),
		loginResult:   Fail[domain.Session](string(domain.ErrCodeUnauthorized), "invalid email or password"),
	}
	coord := NewCoordinator(svc, nil)
	defer coord.Close()
	coord.Start(context.Background())

	result := coord.SignIn(context.Background(), domain.LoginCredentials{Email: "dana@acme.test", Password: "bad"})

	assert.False(t, result.Success)
	assert.Equal(t, "invalid email or password", result.Error)
	assert.Equal(t, StateUnauthenticated, coord.State())
	assert.False(t, coord.Loading())
}

func TestSignOutClearsStateEvenWhenRemoteFails(t *testing.T) {
	svc := &fakeService{
		currentResult: Ok(testSession("dana")),
		logoutResult:  Fail[Void](string(domain.ErrCodeInternal), "unable to reach authentication service"),
	}
	coord := NewCoordinator(svc, nil)
	defer coord.Close()
	coord.Start(context.Background())
	require.Equal(t, StateAuthenticated, coord.State())

	result := coord.SignOut(context.Background())

	assert.False(t, result.Success)
	assert.Nil(t, coord.Session())
	assert.Equal(t, StateUnauthenticated, coord.State())
}

func TestRefreshFailureKeepsCurrentSession(t *testing.T) {
	svc := &fakeService{
		currentResult: Ok(testSession("dana")),
		refreshResult: Fail[domain.Session](string(domain.ErrCodeInternal), "unable to reach authentication service"),
	}
	coord := NewCoordinator(svc, nil)
	defer coord.Close()
	coord.Start(context.Background())

	result := coord.RefreshSession(context.Background())

	// A transient failure never forces a sign-out.
	assert.True(t, result.Success)
	assert.Equal(t, StateAuthenticated, coord.State())
	require.NotNil(t, coord.Session())
	assert.Equal(t, "access-dana", coord.Session().AccessToken)
}

func TestRefreshRevokedTokenSignsOut(t *testing.T) {
	svc := &fakeService{
		currentResult: Ok(testSession("dana")),
		refreshResult: Fail[domain.Session](string(domain.ErrCodeInvalidToken), "refresh token is invalid or expired"),
	}
	coord := NewCoordinator(svc, nil)
	defer coord.Close()
	coord.Start(context.Background())

	coord.RefreshSession(context.Background())

	assert.Nil(t, coord.Session())
	assert.Equal(t, StateUnauthenticated, coord.State())
}

func TestRefreshSuccessSwapsSession(t *testing.T) {
	svc := &fakeService{
		currentResult: Ok(testSession("dana")),
		refreshResult: Ok(testSession("dana-rotated")),
	}
	coord := NewCoordinator(svc, nil)
	defer coord.Close()
	coord.Start(context.Background())

	coord.RefreshSession(context.Background())

	require.NotNil(t, coord.Session())
	assert.Equal(t, "access-dana-rotated", coord.Session().AccessToken)
}

func TestRegisterWithoutTokensStaysPending(t *testing.T) {
	pending := testSession("noa")
	pending.AccessToken = ""
	pending.RefreshToken = ""

	svc := &fakeService{
		currentResult:  noSession(),
		registerResult: Ok(pending),
	}
	coord := NewCoordinator(svc, nil)
	defer coord.Close()
	coord.Start(context.Background())

	result := coord.Register(context.Background(), domain.RegisterData{
		Email: "noa@acme.test", Password: "sturdy-pass1", FirstName: "Noa", LastName: "Lindqvist",
	})

	// Success, but no session is adopted until the account is verified.
	assert.True(t, result.Success)
	assert.Nil(t, coord.Session())
	assert.Equal(t, StateUnauthenticated, coord.State())
}

func TestDuplicateStateChangeDoesNotRenotify(t *testing.T) {
	svc := &fakeService{currentResult: noSession()}
	coord := NewCoordinator(svc, nil)
	defer coord.Close()
	coord.Start(context.Background())

	var renders int
	unsubscribe := coord.Subscribe(func() { renders++ })
	defer unsubscribe()

	// Another unauthenticated report while already signed out changes nothing.
	svc.push(nil)
	svc.push(nil)
	assert.Equal(t, 0, renders)

	session := testSession("dana")
	svc.push(&session)
	after := renders
	assert.Greater(t, after, 0)

	// Re-applying the same session is a no-op.
	svc.push(&session)
	assert.Equal(t, after, renders)
}

func TestConcurrentSignOutReportsSettle(t *testing.T) {
	svc := &fakeService{currentResult: Ok(testSession("dana"))}
	coord := NewCoordinator(svc, nil)
	defer coord.Close()
	coord.Start(context.Background())

	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			svc.push(nil)
			done <- struct{}{}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}

	assert.Equal(t, StateUnauthenticated, coord.State())
	assert.Nil(t, coord.Session())
}

func TestUpdateProfileSyncsSessionUser(t *testing.T) {
	updated := domain.User{ID: "dana", Email: "dana@acme.test", FirstName: "Dana", LastName: "Nguyen"}
	svc := &fakeService{
		currentResult: Ok(testSession("dana")),
		updateResult:  Ok(updated),
	}
	coord := NewCoordinator(svc, nil)
	defer coord.Close()
	coord.Start(context.Background())

	last := "Nguyen"
	result := coord.UpdateProfile(context.Background(), domain.ProfileUpdate{LastName: &last})

	assert.True(t, result.Success)
	require.NotNil(t, coord.User())
	assert.Equal(t, "Nguyen", coord.User().LastName)
	// Tokens survive a profile update.
	assert.Equal(t, "access-dana", coord.Session().AccessToken)
}

func TestSubscribeUnsubscribe(t *testing.T) {
	svc := &fakeService{currentResult: noSession(), loginResult: Ok(testSession("dana"))}
	coord := NewCoordinator(svc, nil)
	defer coord.Close()
	coord.Start(context.Background())

	var renders int
	unsubscribe := coord.Subscribe(func() { renders++ })
	unsubscribe()

	coord.SignIn(context.Background(), domain.LoginCredentials{Email: "dana@acme.test", Password: "pw"})
	assert.Equal(t, 0, renders)
}
