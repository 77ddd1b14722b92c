package authclient

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Jgilbert-dev/inspectrixV4/domain"
)

// State describes where the Coordinator is in its lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "uninitialized"
	}
}

// ActionResult is the simplified outcome Coordinator actions hand to UI
// consumers for direct display.
type ActionResult struct {
	Success bool
	Error   string
}

func okAction() ActionResult {
	return ActionResult{Success: true}
}

func failAction(message string) ActionResult {
	return ActionResult{Error: message}
}

// Coordinator is the process-wide owner of session state. It mediates between
// UI consumers and the Service: actions flow down, state-change notifications
// flow up. All mutation happens through its own methods; state application is
// idempotent so a racing subscription callback and explicit fetch settle on
// the same outcome without flicker.
type Coordinator struct {
	svc    Service
	logger *zap.Logger

	mu      sync.RWMutex
	state   State
	session *domain.Session
	loading bool

	unsubscribe func()

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// NewCoordinator wires a Coordinator to a Service. Call Start before use.
func NewCoordinator(svc Service, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		svc:    svc,
		logger: logger,
		subs:   make(map[int]func()),
	}
}

// Start subscribes to the Service's auth-state changes and requests the
// current session once. Whichever answer lands first decides the initial
// authenticated/unauthenticated state; the loser is a no-op.
func (c *Coordinator) Start(ctx context.Context) {
	c.mu.Lock()
	if c.state != StateUninitialized {
		c.mu.Unlock()
		return
	}
	c.state = StateLoading
	c.loading = true
	c.mu.Unlock()
	c.notify()

	c.unsubscribe = c.svc.OnAuthStateChange(func(session *domain.Session) {
		c.applySession(session)
	})

	res := c.svc.CurrentSession(ctx)
	if res.Success {
		session := res.Data
		c.applySession(&session)
	} else {
		c.applySession(nil)
	}
	c.setLoading(false)
}

// Close detaches from the Service. State stays readable but no longer tracks
// backend transitions.
func (c *Coordinator) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// Session returns the current session, nil when unauthenticated.
func (c *Coordinator) Session() *domain.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// User is always derived from the session, never set independently.
func (c *Coordinator) User() *domain.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil
	}
	user := c.session.User
	return &user
}

func (c *Coordinator) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *Coordinator) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Subscribe registers a re-render trigger invoked after every state
// mutation. The returned function unsubscribes.
func (c *Coordinator) Subscribe(fn func()) func() {
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

// SignIn exchanges credentials for a session. The session may also arrive
// through the subscription first; applying it twice is a no-op.
func (c *Coordinator) SignIn(ctx context.Context, creds domain.LoginCredentials) ActionResult {
	c.setLoading(true)
	defer c.setLoading(false)

	res := c.svc.Login(ctx, creds)
	if !res.Success {
		return failAction(res.Err)
	}

	session := res.Data
	c.applySession(&session)
	return okAction()
}

// Register creates an account. On a success without tokens the account is
// pending verification and no session is adopted.
func (c *Coordinator) Register(ctx context.Context, data domain.RegisterData) ActionResult {
	c.setLoading(true)
	defer c.setLoading(false)

	res := c.svc.Register(ctx, data)
	if !res.Success {
		return failAction(res.Err)
	}

	if session := res.Data; session.HasTokens() {
		c.applySession(&session)
	} else {
		c.logger.Info("registration accepted, verification pending",
			zap.String("email", res.Data.User.Email))
	}
	return okAction()
}

// SignOut revokes the session remotely and clears local state even when the
// remote call fails, so the UI can never get stuck authenticated.
func (c *Coordinator) SignOut(ctx context.Context) ActionResult {
	c.setLoading(true)
	defer c.setLoading(false)

	res := c.svc.Logout(ctx)
	c.applySession(nil)

	if !res.Success {
		c.logger.Warn("remote sign-out failed, local session cleared anyway",
			zap.String("error", res.Err))
		return failAction(res.Err)
	}
	return okAction()
}

// RefreshSession is best-effort: transient failures are logged and the
// existing session kept, since a stale session beats a forced logout. An
// explicitly revoked refresh token surfaces through the subscription as a
// nil session and signs the user out.
func (c *Coordinator) RefreshSession(ctx context.Context) ActionResult {
	res := c.svc.RefreshSession(ctx)
	if !res.Success {
		c.logger.Warn("session refresh failed", zap.String("error", res.Err))
		if res.IsCode(domain.ErrCodeInvalidToken) {
			c.applySession(nil)
		}
		return okAction()
	}

	session := res.Data
	c.applySession(&session)
	return okAction()
}

// UpdateProfile forwards a partial profile update and folds the new user
// into the held session.
func (c *Coordinator) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) ActionResult {
	c.setLoading(true)
	defer c.setLoading(false)

	res := c.svc.UpdateProfile(ctx, update)
	if !res.Success {
		return failAction(res.Err)
	}

	c.mu.Lock()
	if c.session != nil {
		copied := *c.session
		copied.User = res.Data
		c.session = &copied
	}
	c.mu.Unlock()
	c.notify()
	return okAction()
}

// applySession is the single write path for session state. Last write wins;
// re-applying the current outcome changes nothing and notifies nobody.
func (c *Coordinator) applySession(session *domain.Session) {
	c.mu.Lock()
	if sameSession(c.session, session) {
		target := StateUnauthenticated
		if session != nil {
			target = StateAuthenticated
		}
		if c.state == target {
			c.mu.Unlock()
			return
		}
		c.state = target
		c.mu.Unlock()
		c.notify()
		return
	}

	c.session = session
	if session != nil {
		c.state = StateAuthenticated
	} else {
		c.state = StateUnauthenticated
	}
	c.mu.Unlock()
	c.notify()
}

func (c *Coordinator) setLoading(v bool) {
	c.mu.Lock()
	if c.loading == v {
		c.mu.Unlock()
		return
	}
	c.loading = v
	c.mu.Unlock()
	c.notify()
}

func (c *Coordinator) notify() {
	c.subMu.Lock()
	callbacks := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		callbacks = append(callbacks, fn)
	}
	c.subMu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

func sameSession(a, b *domain.Session) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.AccessToken == b.AccessToken && a.User.ID == b.User.ID
}
