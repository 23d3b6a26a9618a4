package service

import (
	"errors"
	"fmt"
)

// Service errors are classified so handlers can pick a status code with
// errors.Is / errors.As instead of matching message text.
var (
	// ErrDuplicateBatch marks the loser of two racing submissions of the
	// same batch identifier. The committed data is intact, so callers treat
	// it as the already-processed success outcome.
	ErrDuplicateBatch = errors.New("batch already processed")

	// ErrNotFound marks a lookup that matched no row
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized marks failed credential or token checks
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden marks a valid account signing in under the wrong role
	ErrForbidden = errors.New("role not authorized")
)

// InvalidInputError rejects a request before any store access
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

func invalidInput(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

// ConflictError reports a uniqueness clash on a caller-supplied value
// (license, email, plate) that the caller can fix and retry
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already registered", e.Field)
}
