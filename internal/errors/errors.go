package errors

import (
	"errors"
	"fmt"
)

// Common error types for the auth edge service
var (
	// Client input errors
	ErrMissingCode        = errors.New("missing authorization code")
	ErrMissingBearerToken = errors.New("missing authorization token")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Provider errors
	ErrProviderResponse = errors.New("unexpected provider response")
	ErrMissingUserID    = errors.New("user profile has no id")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
