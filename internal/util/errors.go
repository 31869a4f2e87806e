// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrUserNotFound  = errors.New("user not found")
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidInput  = errors.New("invalid input provided")
)

// IsError reports whether err matches target in its chain.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
