package errs

import (
	"errors"
	"fmt"
)

// Common sentinel errors for cross-layer signaling. Handlers map these to
// HTTP status codes; services and stores wrap them with detail.
var (
	ErrInvalid      = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Invalid wraps ErrInvalid with a human-readable detail message.
func Invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalid, msg)
}
