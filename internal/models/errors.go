package models

import (
	"errors"
	"fmt"
)

// Domain error taxonomy. Repositories and services wrap these with context via
// fmt.Errorf("...: %w", ...) so callers can branch with errors.Is.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrForbidden  = errors.New("operation not permitted")
	ErrSelfRating = errors.New("users cannot rate themselves")
	ErrDependency = errors.New("dependency unavailable")
)

// ValidationError reports a single malformed or out-of-range input field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
