package errors

import (
	"errors"
	"fmt"
)

// Common error classes for the authentication service. Handlers map these to
// HTTP status codes; anything not in this taxonomy propagates as ErrInternal
// and only a generic message crosses the API boundary.
var (
	// Credential errors
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("user is not verified")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Resource errors
	ErrConflict   = errors.New("account already exists")
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")

	// General errors
	ErrInternal = errors.New("internal error")
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
