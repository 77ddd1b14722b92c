package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeInvalid       ErrorCode = "INVALID"
	ErrCodeConflict      ErrorCode = "CONFLICT"
	ErrCodeForbidden     ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal      ErrorCode = "INTERNAL"
	ErrCodeWeakPassword  ErrorCode = "WEAK_PASSWORD"
	ErrCodeInvalidToken  ErrorCode = "INVALID_REFRESH_TOKEN"
	ErrCodeProfileCreate ErrorCode = "PROFILE_CREATE_FAILED"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrUserNotFound     = NewError(ErrCodeNotFound, "user not found")
	ErrIdentityNotFound = NewError(ErrCodeNotFound, "identity not found")
	ErrReportNotFound   = NewError(ErrCodeNotFound, "report not found")
	ErrOrgNotFound      = NewError(ErrCodeNotFound, "organization not found")
	ErrSessionNotFound  = NewError(ErrCodeNotFound, "no active session")
	ErrEmailTaken       = NewError(ErrCodeConflict, "an account with this email already exists")
	ErrBadCredentials   = NewError(ErrCodeUnauthorized, "invalid email or password")
	ErrAccountDisabled  = NewError(ErrCodeForbidden, "account is deactivated")
	ErrUnauthorized     = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrInvalidPayload   = NewError(ErrCodeInvalid, "invalid payload")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// CodeOf extracts the classification of an error, defaulting to INTERNAL.
func CodeOf(err error) ErrorCode {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return ErrCodeInternal
}
