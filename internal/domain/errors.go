package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput signals a request that fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingQueryInput signals a query without content or question.
	ErrMissingQueryInput = &ValidationError{Message: "Missing content or question"}
	// ErrMissingContent signals a summarize or analyze request without content.
	ErrMissingContent = &ValidationError{Message: "Missing document content"}
)

// ValidationError carries a client-facing message and matches ErrInvalidInput.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError creates a validation error with a formatted message.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
