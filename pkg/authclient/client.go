package authclient

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/Jgilbert-dev/inspectrixV4/api/transport"
	"github.com/Jgilbert-dev/inspectrixV4/domain"
)

// Config controls the HTTP adapter.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client is the fasthttp-backed Service implementation speaking the
// inspectrix REST API. It owns the token state for the app run and emits
// auth-state-change notifications on every session transition.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *fasthttp.Client
	logger  *zap.Logger

	mu      sync.RWMutex
	session *domain.Session

	subMu   sync.Mutex
	subs    map[int]func(*domain.Session)
	nextSub int
}

// NewClient builds a Client against the given base URL.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		http:    &fasthttp.Client{Name: "inspectrix-authclient"},
		logger:  cfg.Logger,
		subs:    make(map[int]func(*domain.Session)),
	}
}

var _ Service = (*Client)(nil)

func (c *Client) Login(ctx context.Context, creds domain.LoginCredentials) Result[domain.Session] {
	if err := creds.Validate(); err != nil {
		return FailFrom[domain.Session](err)
	}

	creds.Email = domain.NormalizeEmail(creds.Email)

	env, err := c.call(ctx, fasthttp.MethodPost, "/api/v1/auth/login", creds, false)
	if err != nil {
		return failUnreachable[domain.Session](c, err)
	}
	if !env.OK() {
		return Fail[domain.Session](env.Code, env.Error)
	}

	var session domain.Session
	if err := json.Unmarshal(env.Data, &session); err != nil {
		return Fail[domain.Session](string(domain.ErrCodeInternal), "malformed session payload")
	}

	c.setSession(&session)
	return Ok(session)
}

func (c *Client) Register(ctx context.Context, data domain.RegisterData) Result[domain.Session] {
	if err := data.Validate(); err != nil {
		return FailFrom[domain.Session](err)
	}

	data.Email = domain.NormalizeEmail(data.Email)

	env, err := c.call(ctx, fasthttp.MethodPost, "/api/v1/auth/register", data, false)
	if err != nil {
		return failUnreachable[domain.Session](c, err)
	}
	if !env.OK() {
		return Fail[domain.Session](env.Code, env.Error)
	}

	var session domain.Session
	if err := json.Unmarshal(env.Data, &session); err != nil {
		return Fail[domain.Session](string(domain.ErrCodeInternal), "malformed session payload")
	}

	// No tokens means the account is pending verification; nothing to adopt.
	if session.HasTokens() {
		c.setSession(&session)
	}
	return Ok(session)
}

func (c *Client) Logout(ctx context.Context) Result[Void] {
	c.mu.RLock()
	refreshToken := ""
	if c.session != nil {
		refreshToken = c.session.RefreshToken
	}
	c.mu.RUnlock()

	// Local state goes away regardless of what the backend says.
	defer c.setSession(nil)

	env, err := c.call(ctx, fasthttp.MethodPost, "/api/v1/auth/logout",
		transport.LogoutRequest{RefreshToken: refreshToken}, false)
	if err != nil {
		return failUnreachable[Void](c, err)
	}
	if !env.OK() {
		return Fail[Void](env.Code, env.Error)
	}
	return Ok(Void{})
}

func (c *Client) CurrentSession(ctx context.Context) Result[domain.Session] {
	c.mu.RLock()
	session := c.session
	c.mu.RUnlock()

	if session == nil {
		return Fail[domain.Session](string(domain.ErrCodeNotFound), "no active session")
	}
	if session.IsExpired(time.Now()) {
		if session.RefreshToken == "" {
			return Fail[domain.Session](string(domain.ErrCodeNotFound), "no active session")
		}
		return c.RefreshSession(ctx)
	}
	return Ok(*session)
}

func (c *Client) RefreshSession(ctx context.Context) Result[domain.Session] {
	c.mu.RLock()
	refreshToken := ""
	if c.session != nil {
		refreshToken = c.session.RefreshToken
	}
	c.mu.RUnlock()

	if refreshToken == "" {
		return Fail[domain.Session](string(domain.ErrCodeNotFound), "no active session")
	}

	env, err := c.call(ctx, fasthttp.MethodPost, "/api/v1/auth/refresh",
		transport.RefreshRequest{RefreshToken: refreshToken}, false)
	if err != nil {
		return failUnreachable[domain.Session](c, err)
	}
	if !env.OK() {
		// A rejected refresh token means the grant is gone server-side;
		// holding on to the local copy would leave the app wedged.
		if env.Code == string(domain.ErrCodeInvalidToken) {
			c.setSession(nil)
		}
		return Fail[domain.Session](env.Code, env.Error)
	}

	var session domain.Session
	if err := json.Unmarshal(env.Data, &session); err != nil {
		return Fail[domain.Session](string(domain.ErrCodeInternal), "malformed session payload")
	}

	c.setSession(&session)
	return Ok(session)
}

func (c *Client) ChangePassword(ctx context.Context, data domain.PasswordChangeData) Result[Void] {
	if err := data.Validate(); err != nil {
		return FailFrom[Void](err)
	}

	env, err := c.call(ctx, fasthttp.MethodPost, "/api/v1/auth/password/change", data, true)
	if err != nil {
		return failUnreachable[Void](c, err)
	}
	if !env.OK() {
		return Fail[Void](env.Code, env.Error)
	}
	return Ok(Void{})
}

func (c *Client) ResetPassword(ctx context.Context, email string) Result[Void] {
	if domain.NormalizeEmail(email) == "" {
		return Fail[Void](string(domain.ErrCodeInvalid), "email is required")
	}

	env, err := c.call(ctx, fasthttp.MethodPost, "/api/v1/auth/password/reset",
		transport.PasswordResetRequest{Email: domain.NormalizeEmail(email)}, false)
	if err != nil {
		return failUnreachable[Void](c, err)
	}
	if !env.OK() {
		return Fail[Void](env.Code, env.Error)
	}
	return Ok(Void{})
}

func (c *Client) CurrentUser(ctx context.Context) Result[domain.User] {
	if len(c.AuthHeaders()) == 0 {
		return Fail[domain.User](string(domain.ErrCodeUnauthorized), "not authenticated")
	}

	env, err := c.call(ctx, fasthttp.MethodGet, "/api/v1/auth/me", nil, true)
	if err != nil {
		return failUnreachable[domain.User](c, err)
	}
	if !env.OK() {
		return Fail[domain.User](env.Code, env.Error)
	}

	var user domain.User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return Fail[domain.User](string(domain.ErrCodeInternal), "malformed user payload")
	}
	return Ok(user)
}

func (c *Client) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) Result[domain.User] {
	if update.Empty() {
		return Fail[domain.User](string(domain.ErrCodeInvalid), "nothing to update")
	}
	if len(c.AuthHeaders()) == 0 {
		return Fail[domain.User](string(domain.ErrCodeUnauthorized), "not authenticated")
	}

	env, err := c.call(ctx, fasthttp.MethodPut, "/api/v1/profile", update, true)
	if err != nil {
		return failUnreachable[domain.User](c, err)
	}
	if !env.OK() {
		return Fail[domain.User](env.Code, env.Error)
	}

	var user domain.User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return Fail[domain.User](string(domain.ErrCodeInternal), "malformed user payload")
	}

	// Keep the cached session's user view in sync.
	c.mu.Lock()
	var updated *domain.Session
	if c.session != nil {
		copied := *c.session
		copied.User = user
		c.session = &copied
		updated = c.session
	}
	c.mu.Unlock()
	if updated != nil {
		c.notify(updated)
	}

	return Ok(user)
}

func (c *Client) OnAuthStateChange(fn func(session *domain.Session)) func() {
	if fn == nil {
		return func() {}
	}

	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *Client) IsAuthenticated(ctx context.Context) bool {
	return c.CurrentSession(ctx).Success
}

func (c *Client) AuthHeaders() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil || c.session.AccessToken == "" {
		return map[string]string{}
	}
	return map[string]string{"Authorization": "Bearer " + c.session.AccessToken}
}

func (c *Client) setSession(session *domain.Session) {
	c.mu.Lock()
	c.session = session
	c.mu.Unlock()
	c.notify(session)
}

func (c *Client) notify(session *domain.Session) {
	c.subMu.Lock()
	callbacks := make([]func(*domain.Session), 0, len(c.subs))
	for _, fn := range c.subs {
		callbacks = append(callbacks, fn)
	}
	c.subMu.Unlock()

	for _, fn := range callbacks {
		fn(session)
	}
}

func failUnreachable[T any](c *Client, err error) Result[T] {
	c.logger.Warn("auth backend unreachable", zap.Error(err))
	return Fail[T](string(domain.ErrCodeInternal), "unable to reach authentication service")
}

func (c *Client) call(ctx context.Context, method, path string, body interface{}, authed bool) (transport.Envelope, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")
	if authed {
		for k, v := range c.AuthHeaders() {
			req.Header.Set(k, v)
		}
	}

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return transport.Envelope{}, err
		}
		req.SetBody(payload)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	if err := c.http.DoTimeout(req, resp, timeout); err != nil {
		return transport.Envelope{}, err
	}

	var env transport.Envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return transport.Envelope{}, err
	}
	return env, nil
}
