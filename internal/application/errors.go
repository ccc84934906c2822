package application

import "errors"

// User-facing errors. Handlers translate these into 400s with the
// message as-is; anything else coming out of the application layer is
// an infrastructure failure and surfaces as an opaque 500.
var (
	ErrWeakPassword       = errors.New("password must be at least 8 characters long")
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// ValidationError reports a schema constraint violation on a named
// field, detected before any store access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}
