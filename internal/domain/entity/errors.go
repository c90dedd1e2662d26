package entity

import (
	"errors"
	"fmt"
)

// ErrValidationFailed matches every ValidationError.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError represents a validation error with detailed field information.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is reports ValidationError as ErrValidationFailed so callers can match either.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
