package domain

import (
	"errors"
	"fmt"
)

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Lookup errors
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("duplicate unique key")

	// Transaction writer errors
	ErrInsufficientStock = errors.New("insufficient frame stock")

	// Settlement errors
	ErrAlreadySettled = errors.New("transaction already settled")
	ErrUnderpayment   = errors.New("cash received is below balance due")

	// Store errors
	ErrPersistence = errors.New("persistent store unavailable")
)

// ValidationError reports a malformed or missing input field. It is
// returned before any mutation; a call that fails validation has
// written nothing.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validation builds a *ValidationError for the given field.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
