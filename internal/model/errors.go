package model

import (
	"errors"
	"fmt"
)

var ErrNoRecord = errors.New("no record")
var ErrAlreadyExists = errors.New("entity already exists")

// ErrInvariantViolation marks states the store must never reach (cyclic
// relations, half-linked instances). Operations detecting it abort.
var ErrInvariantViolation = errors.New("invariant violation")

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnsupportedRule  = errors.New("unsupported recurrence rule")
	ErrRecurrenceOnNote = errors.New("notes cannot be recurring")
	ErrDueBeforeStart   = errors.New("due is before start")
	ErrStatusDomain     = errors.New("status does not belong to component")
)

// ValidationError is a recoverable, user facing error. No store mutation
// happens when it is returned.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Invalid builds a ValidationError for field wrapping kind with a detail message.
func Invalid(field string, kind error, format string, args ...interface{}) *ValidationError {
	if format == "" {
		return &ValidationError{Field: field, Err: kind}
	}
	return &ValidationError{Field: field, Err: fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))}
}
