package domain

import (
	"strings"
	"time"
	"unicode"
)

// LoginCredentials is the one-shot input for a login attempt.
type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c LoginCredentials) Validate() error {
	if NormalizeEmail(c.Email) == "" {
		return NewError(ErrCodeInvalid, "email is required")
	}
	if c.Password == "" {
		return NewError(ErrCodeInvalid, "password is required")
	}
	return nil
}

// RegisterData is the one-shot input for account creation.
type RegisterData struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	OrganizationID string `json:"organization_id,omitempty"`
	Role           Role   `json:"role,omitempty"`
}

func (d RegisterData) Validate() error {
	if NormalizeEmail(d.Email) == "" {
		return NewError(ErrCodeInvalid, "email is required")
	}
	if err := ValidatePassword(d.Password); err != nil {
		return err
	}
	if strings.TrimSpace(d.FirstName) == "" || strings.TrimSpace(d.LastName) == "" {
		return NewError(ErrCodeInvalid, "first and last name are required")
	}
	if d.Role != "" && !d.Role.Valid() {
		return NewError(ErrCodeInvalid, "unknown role")
	}
	return nil
}

// PasswordChangeData carries a password rotation request.
type PasswordChangeData struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (d PasswordChangeData) Validate() error {
	if d.CurrentPassword == "" {
		return NewError(ErrCodeInvalid, "current password is required")
	}
	return ValidatePassword(d.NewPassword)
}

// ProfileUpdate is a partial update of the caller's own profile record.
// Zero-valued fields are left untouched.
type ProfileUpdate struct {
	FirstName      *string `json:"first_name,omitempty"`
	LastName       *string `json:"last_name,omitempty"`
	OrganizationID *string `json:"organization_id,omitempty"`
}

func (p ProfileUpdate) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.OrganizationID == nil
}

// Apply overlays the update onto a copy of the user.
func (p ProfileUpdate) Apply(u User) User {
	if p.FirstName != nil {
		u.FirstName = strings.TrimSpace(*p.FirstName)
	}
	if p.LastName != nil {
		u.LastName = strings.TrimSpace(*p.LastName)
	}
	if p.OrganizationID != nil {
		u.OrganizationID = *p.OrganizationID
	}
	u.UpdatedAt = time.Now()
	return u
}

// ValidatePassword enforces the platform password policy: at least eight
// characters containing at least one letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return NewError(ErrCodeWeakPassword, "password must be at least 8 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return NewError(ErrCodeWeakPassword, "password must contain at least one letter and one digit")
	}
	return nil
}
