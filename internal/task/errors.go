package task

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by this package wraps exactly one of them.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("task not found")
)

// Reasons reported in [FieldError].
const (
	ReasonRequired        = "required"
	ReasonInvalidID       = "invalid_id"
	ReasonInvalidDate     = "invalid_date"
	ReasonInvalidStatus   = "invalid_status"
	ReasonInvalidPriority = "invalid_priority"
	ReasonInvalidSortKey  = "invalid_sort_key"
	ReasonDuplicate       = "duplicate"
	ReasonIDExhausted     = "id_exhausted"
	ReasonImmutable       = "immutable"
	ReasonMalformed       = "malformed"
)

// FieldError names one offending field.
type FieldError struct {
	Field  string // JSON field name, e.g. "dueDate"
	Value  string // offending value as given
	Reason string // one of the Reason* constants
}

// ValidationError reports input that violates a data-model constraint.
// It unwraps to [ErrValidation].
type ValidationError struct {
	ID     string // task ID when the input carried one
	Fields []FieldError
}

// Error formats as: validation failed (id 3): title=required dueDate=invalid_date.
func (e *ValidationError) Error() string {
	var builder strings.Builder
	builder.WriteString(ErrValidation.Error())

	if e.ID != "" {
		fmt.Fprintf(&builder, " (id %s)", e.ID)
	}

	for i, f := range e.Fields {
		if i == 0 {
			builder.WriteString(":")
		}

		builder.WriteString(" ")
		builder.WriteString(f.Field)
		builder.WriteString("=")
		builder.WriteString(f.Reason)
	}

	return builder.String()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Field returns the first error for the named field.
func (e *ValidationError) Field(name string) (FieldError, bool) {
	for _, f := range e.Fields {
		if f.Field == name {
			return f, true
		}
	}

	return FieldError{}, false
}

// NotFoundError reports an operation on an ID the Store does not hold.
// It unwraps to [ErrNotFound].
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNotFound, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func fieldErr(id, field, value, reason string) *ValidationError {
	return &ValidationError{
		ID:     id,
		Fields: []FieldError{{Field: field, Value: value, Reason: reason}},
	}
}
