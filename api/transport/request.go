package transport

import "github.com/Jgilbert-dev/inspectrixV4/domain"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email          string      `json:"email"`
	Password       string      `json:"password"`
	FirstName      string      `json:"first_name"`
	LastName       string      `json:"last_name"`
	OrganizationID string      `json:"organization_id,omitempty"`
	Role           domain.Role `json:"role,omitempty"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type ProfileUpdateRequest struct {
	FirstName      *string `json:"first_name,omitempty"`
	LastName       *string `json:"last_name,omitempty"`
	OrganizationID *string `json:"organization_id,omitempty"`
}

type ReportRequest struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Notes       string            `json:"notes"`
	Status      string            `json:"status"`
	Severity    int               `json:"severity"`
	InspectedAt string            `json:"inspected_at,omitempty"`
	Findings    map[string]string `json:"findings,omitempty"`
}
