package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Rule-specific errors below wrap it so callers can match the whole
	// family with errors.Is(err, ErrValidation).
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// Product rule violations

	// ErrProductNameRequired is returned when a product name is blank
	// after trimming whitespace.
	ErrProductNameRequired = fmt.Errorf("%w: product name is required", ErrValidation)

	// ErrNonPositivePrice is returned when a product price is zero or negative.
	ErrNonPositivePrice = fmt.Errorf("%w: price must be greater than zero", ErrValidation)

	// ErrNegativeStock is returned when a product stock quantity is negative.
	ErrNegativeStock = fmt.Errorf("%w: stock quantity cannot be negative", ErrValidation)

	// User rule violations

	// ErrUserNameRequired is returned when a user name is blank after trimming.
	ErrUserNameRequired = fmt.Errorf("%w: user name is required", ErrValidation)

	// ErrEmailRequired is returned when a user email is blank after trimming.
	ErrEmailRequired = fmt.Errorf("%w: email is required", ErrValidation)
)

// ValidationError provides field-level context for a validation failure.
type ValidationError struct {
	Field   string // The field that failed validation
	Message string // Human-readable description of the failure
	Err     error  // Underlying sentinel error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError wrapping the given sentinel.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
