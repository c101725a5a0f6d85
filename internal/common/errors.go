// Package common defines shared sentinel errors used across the server
// layers of orgvault. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal  = errors.New("internal error")
	ErrorForbidden = errors.New("forbidden")

	// Auth errors. ErrorInvalidPassword covers both an unknown username and a
	// password mismatch so that responses do not reveal which usernames exist.
	ErrorInvalidPassword        = errors.New("invalid username or password")
	ErrorInactiveUser           = errors.New("user is not active")
	ErrorInvalidOrg             = errors.New("invalid org")
	ErrorUserNotFound           = errors.New("user not found")
	ErrorInvalidAuthToken       = errors.New("invalid auth token")
	ErrorInsufficientAuthScope  = errors.New("insufficient auth scope")
	ErrorInsufficientVaultScope = errors.New("insufficient vault scope")
)

// ValidationError reports user-correctable bad input. The message is safe to
// return to the caller verbatim.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
