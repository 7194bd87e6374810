package domain

import (
	"errors"
	"strings"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end time before start time).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when the database rejects a reservation that
// overlaps an existing one. It is distinct from ErrValidation because it can
// occur even after client-side validation passed, due to a concurrent booking.
// Handlers should map this to HTTP 409 Conflict.
var ErrConflict = errors.New("already reserved")

// FieldError is a single field-tagged validation failure. The validation
// engine returns these as data, never as panics or wrapped errors, so the
// caller can render every problem at once next to the offending field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors carries the ordered list of field errors produced by the
// validation engine across the service boundary. It satisfies errors.Is
// against ErrValidation so handlers keep using the sentinel-based mapping.
type ValidationErrors struct {
	Fields []FieldError
}

// NewValidationErrors wraps a field error list into an error value.
func NewValidationErrors(fields []FieldError) *ValidationErrors {
	return &ValidationErrors{Fields: fields}
}

func (e *ValidationErrors) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return "validation error: " + strings.Join(msgs, "; ")
}

// Is makes errors.Is(err, ErrValidation) true for any ValidationErrors value.
func (e *ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}
