package authclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jgilbert-dev/inspectrixV4/api/transport"
	"github.com/Jgilbert-dev/inspectrixV4/domain"
)

// stubBackend serves canned envelopes per path and counts hits.
type stubBackend struct {
	mux    *http.ServeMux
	server *httptest.Server
	hits   atomic.Int64
}

func newStubBackend(t *testing.T) *stubBackend {
	t.Helper()
	b := &stubBackend{mux: http.NewServeMux()}
	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.hits.Add(1)
		b.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.server.Close)
	return b
}

func (b *stubBackend) respond(path string, status int, env transport.Envelope) {
	b.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(env)
	})
}

func newTestClient(t *testing.T, backend *stubBackend) *Client {
	t.Helper()
	return NewClient(Config{
		BaseURL: backend.server.URL,
		Timeout: 2 * time.Second,
	})
}

func sessionEnvelope(id string, ttl time.Duration) transport.Envelope {
	expires := time.Now().Add(ttl)
	return transport.NewSuccess(domain.Session{
		User:         domain.User{ID: id, Email: id + "@acme.test", Role: domain.RoleInspector, Active: true},
		AccessToken:  "access-" + id,
		RefreshToken: "refresh-" + id,
		ExpiresAt:    &expires,
	})
}

func TestClientLoginSuccess(t *testing.T) {
	backend := newStubBackend(t)
	backend.respond("/api/v1/auth/login", http.StatusOK, sessionEnvelope("dana", time.Hour))
	client := newTestClient(t, backend)

	var announced []*domain.Session
	unsubscribe := client.OnAuthStateChange(func(s *domain.Session) { announced = append(announced, s) })
	defer unsubscribe()

	res := client.Login(context.Background(), domain.LoginCredentials{Email: "dana@acme.test", Password: "pw"})

	require.True(t, res.Success)
	assert.Equal(t, "access-dana", res.Data.AccessToken)

	headers := client.AuthHeaders()
	assert.Equal(t, "Bearer access-dana", headers["Authorization"])

	require.Len(t, announced, 1)
	require.NotNil(t, announced[0])
	assert.Equal(t, "dana", announced[0].User.ID)
}

func TestClientLoginBadCredentials(t *testing.T) {
	backend := newStubBackend(t)
	backend.respond("/api/v1/auth/login", http.StatusUnauthorized,
		transport.NewError(string(domain.ErrCodeUnauthorized), "invalid email or password"))
	client := newTestClient(t, backend)

	res := client.Login(context.Background(), domain.LoginCredentials{Email: "dana@acme.test", Password: "bad"})

	assert.False(t, res.Success)
	assert.Equal(t, "invalid email or password", res.Err)
	assert.True(t, res.IsCode(domain.ErrCodeUnauthorized))
	assert.Empty(t, client.AuthHeaders())
}

func TestClientLoginValidationShortCircuits(t *testing.T) {
	backend := newStubBackend(t)
	client := newTestClient(t, backend)

	res := client.Login(context.Background(), domain.LoginCredentials{Email: "", Password: "pw"})

	assert.False(t, res.Success)
	assert.True(t, res.IsCode(domain.ErrCodeInvalid))
	// Invalid input never leaves the process.
	assert.Equal(t, int64(0), backend.hits.Load())
}

func TestClientUnreachableBackend(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond})

	res := client.Login(context.Background(), domain.LoginCredentials{Email: "dana@acme.test", Password: "pw"})

	assert.False(t, res.Success)
	assert.Equal(t, "unable to reach authentication service", res.Err)
}

func TestClientLogoutClearsSessionDespiteServerError(t *testing.T) {
	backend := newStubBackend(t)
	backend.respond("/api/v1/auth/login", http.StatusOK, sessionEnvelope("dana", time.Hour))
	backend.respond("/api/v1/auth/logout", http.StatusInternalServerError,
		transport.NewError(string(domain.ErrCodeInternal), "session store unavailable"))
	client := newTestClient(t, backend)

	require.True(t, client.Login(context.Background(), domain.LoginCredentials{Email: "dana@acme.test", Password: "pw"}).Success)

	var last *domain.Session
	unsubscribe := client.OnAuthStateChange(func(s *domain.Session) { last = s })
	defer unsubscribe()

	res := client.Logout(context.Background())

	assert.False(t, res.Success)
	assert.Empty(t, client.AuthHeaders())
	assert.Nil(t, last)
}

func TestClientCurrentSessionWithoutLogin(t *testing.T) {
	backend := newStubBackend(t)
	client := newTestClient(t, backend)

	res := client.CurrentSession(context.Background())

	assert.False(t, res.Success)
	assert.Equal(t, "no active session", res.Err)
	assert.False(t, client.IsAuthenticated(context.Background()))
}

func TestClientCurrentSessionRefreshesExpiredToken(t *testing.T) {
	backend := newStubBackend(t)
	// The login hands out an already-expired access token.
	backend.respond("/api/v1/auth/login", http.StatusOK, sessionEnvelope("dana", -time.Minute))
	backend.respond("/api/v1/auth/refresh", http.StatusOK, sessionEnvelope("dana-rotated", time.Hour))
	client := newTestClient(t, backend)

	require.True(t, client.Login(context.Background(), domain.LoginCredentials{Email: "dana@acme.test", Password: "pw"}).Success)

	res := client.CurrentSession(context.Background())

	require.True(t, res.Success)
	assert.Equal(t, "access-dana-rotated", res.Data.AccessToken)
	assert.True(t, client.IsAuthenticated(context.Background()))
}

func TestClientRefreshRevokedTokenClearsSession(t *testing.T) {
	backend := newStubBackend(t)
	backend.respond("/api/v1/auth/login", http.StatusOK, sessionEnvelope("dana", time.Hour))
	backend.respond("/api/v1/auth/refresh", http.StatusUnauthorized,
		transport.NewError(string(domain.ErrCodeInvalidToken), "refresh token is invalid or expired"))
	client := newTestClient(t, backend)

	require.True(t, client.Login(context.Background(), domain.LoginCredentials{Email: "dana@acme.test", Password: "pw"}).Success)

	notified := false
	var last *domain.Session
	unsubscribe := client.OnAuthStateChange(func(s *domain.Session) {
		notified = true
		last = s
	})
	defer unsubscribe()

	res := client.RefreshSession(context.Background())

	assert.False(t, res.Success)
	assert.True(t, res.IsCode(domain.ErrCodeInvalidToken))
	assert.Empty(t, client.AuthHeaders())
	assert.True(t, notified)
	assert.Nil(t, last)
}

func TestClientRegisterPendingVerification(t *testing.T) {
	backend := newStubBackend(t)
	backend.respond("/api/v1/auth/register", http.StatusOK, transport.NewSuccess(domain.Session{
		User: domain.User{ID: "noa", Email: "noa@acme.test", Role: domain.RoleInspector},
	}))
	client := newTestClient(t, backend)

	res := client.Register(context.Background(), domain.RegisterData{
		Email: "noa@acme.test", Password: "sturdy-pass1", FirstName: "Noa", LastName: "Lindqvist",
	})

	require.True(t, res.Success)
	assert.False(t, res.Data.HasTokens())
	// Nothing adopted: the caller still has to verify and sign in.
	assert.Empty(t, client.AuthHeaders())
}

func TestClientUpdateProfileRequiresSession(t *testing.T) {
	backend := newStubBackend(t)
	client := newTestClient(t, backend)

	name := "Dana"
	res := client.UpdateProfile(context.Background(), domain.ProfileUpdate{FirstName: &name})

	assert.False(t, res.Success)
	assert.True(t, res.IsCode(domain.ErrCodeUnauthorized))
	assert.Equal(t, int64(0), backend.hits.Load())
}

func TestClientUpdateProfileSyncsCachedUser(t *testing.T) {
	backend := newStubBackend(t)
	backend.respond("/api/v1/auth/login", http.StatusOK, sessionEnvelope("dana", time.Hour))
	backend.respond("/api/v1/profile", http.StatusOK, transport.NewSuccess(domain.User{
		ID: "dana", Email: "dana@acme.test", FirstName: "Dana", LastName: "Nguyen", Active: true,
	}))
	client := newTestClient(t, backend)

	require.True(t, client.Login(context.Background(), domain.LoginCredentials{Email: "dana@acme.test", Password: "pw"}).Success)

	last := "Nguyen"
	res := client.UpdateProfile(context.Background(), domain.ProfileUpdate{LastName: &last})

	require.True(t, res.Success)
	session := client.CurrentSession(context.Background())
	require.True(t, session.Success)
	assert.Equal(t, "Nguyen", session.Data.User.LastName)
}
