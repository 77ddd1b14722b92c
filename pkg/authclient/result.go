package authclient

import "github.com/Jgilbert-dev/inspectrixV4/domain"

// Void marks operations that succeed or fail without a payload.
type Void = struct{}

// Result is the tagged outcome of every Service operation. Success implies a
// meaningful Data value; failure implies the zero value plus a displayable
// error message and, when the backend supplied one, a machine code.
type Result[T any] struct {
	Success bool
	Data    T
	Err     string
	ErrCode string
}

// Ok wraps a successful payload.
func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Fail builds a failed result with a machine code and a message.
func Fail[T any](code, message string) Result[T] {
	if message == "" {
		message = "request failed"
	}
	return Result[T]{Err: message, ErrCode: code}
}

// FailFrom converts a domain error into a failed result.
func FailFrom[T any](err error) Result[T] {
	if err == nil {
		return Fail[T](string(domain.ErrCodeInternal), "unknown error")
	}
	return Fail[T](string(domain.CodeOf(err)), err.Error())
}

// IsCode reports whether the failure carries the given machine code.
func (r Result[T]) IsCode(code domain.ErrorCode) bool {
	return !r.Success && r.ErrCode == string(code)
}
