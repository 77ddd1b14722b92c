package domain

import (
	"strings"
	"time"
)

// Role classifies what a user is allowed to do across the platform.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleManager    Role = "manager"
	RoleInspector  Role = "inspector"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleManager, RoleInspector:
		return true
	}
	return false
}

// User is the profile record kept alongside an identity.
type User struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name"`
	Role               Role       `json:"role"`
	OrganizationID     string     `json:"organization_id,omitempty"`
	OrganizationName   string     `json:"organization_name,omitempty"`
	Active             bool       `json:"active"`
	MustChangePassword bool       `json:"must_change_password"`
	LastLoginAt        *time.Time `json:"last_login_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) IsActive() bool {
	return u != nil && u.Active
}

// Identity is the credential record backing a user. It never crosses the API
// boundary; only the derived User does.
type Identity struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	MustChangePassword bool      `json:"must_change_password"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NormalizeEmail lowercases and trims an email so storage and lookups agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
