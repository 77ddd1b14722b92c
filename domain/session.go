package domain

import "time"

// Session is the live authenticated context for one app run: the user plus
// the tokens issued for it. It is created on login, registration or refresh
// and destroyed on logout.
type Session struct {
	User         User       `json:"user"`
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// HasTokens reports whether the session carries a usable access token.
// A register response without tokens means verification is still pending.
func (s *Session) HasTokens() bool {
	return s != nil && s.AccessToken != ""
}

// IsExpired reports whether the access token expiry has passed.
func (s *Session) IsExpired(reference time.Time) bool {
	if s == nil || s.AccessToken == "" {
		return true
	}
	if s.ExpiresAt == nil {
		return false
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return !s.ExpiresAt.After(reference)
}

// RefreshSession is the server-side record behind a refresh token, cached in
// Redis for the lifetime of the grant.
type RefreshSession struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *RefreshSession) IsExpired(reference time.Time) bool {
	if s == nil {
		return true
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return !s.ExpiresAt.After(reference)
}
