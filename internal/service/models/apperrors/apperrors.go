package apperrors

import (
	"errors"
	"fmt"
)

// The four caller-visible error kinds of the order core. Service methods
// wrap them with context; transports map them to status codes with
// errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrUnprocessable = errors.New("unprocessable")
	ErrBadRequest    = errors.New("bad request")
)

// NotFound wraps ErrNotFound with a formatted message.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

// Unauthorized wraps ErrUnauthorized with a formatted message.
func Unauthorized(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrUnauthorized}, args...)...)
}

// Unprocessable wraps ErrUnprocessable with a formatted message.
func Unprocessable(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrUnprocessable}, args...)...)
}

// BadRequest wraps ErrBadRequest with a formatted message.
func BadRequest(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrBadRequest}, args...)...)
}
