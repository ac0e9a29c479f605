package api

import (
	"errors"
	"net/http"

	"github.com/openshelf/catalog-api/internal/api/shared"
	"github.com/openshelf/catalog-api/internal/domain"
	"github.com/openshelf/catalog-api/internal/service"
	"github.com/openshelf/catalog-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Business-rule violations are invalid arguments, including the
	// duplicate email detected at the storage boundary.
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		store.IsDuplicateError(err):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Not found errors
	case errors.Is(err, store.ErrProductNotFound):
		return "Product not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	// Uniqueness violations keep their rule-specific wording.
	case errors.Is(err, service.ErrEmailInUseByAnother):
		return "email already in use by another user"

	case errors.Is(err, service.ErrEmailInUse),
		errors.Is(err, store.ErrEmailExists):
		return "email already in use"

	// The stock error carries the current quantity in its message, which
	// callers rely on, so the full chain is surfaced.
	case errors.Is(err, service.ErrStockBelowZero):
		return err.Error()

	// Rule-specific validation messages are safe to echo.
	case errors.Is(err, domain.ErrProductNameRequired):
		return "product name is required"

	case errors.Is(err, domain.ErrNonPositivePrice):
		return "price must be greater than zero"

	case errors.Is(err, domain.ErrNegativeStock):
		return "stock quantity cannot be negative"

	case errors.Is(err, domain.ErrUserNameRequired):
		return "user name is required"

	case errors.Is(err, domain.ErrEmailRequired):
		return "email is required"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID format"

	default:
		// Field-level validation failures carry safe, user-authored text.
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return validationErr.Error()
		}
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps the error to a status code and sanitized message and
// writes the response. When userMessage is non-empty it overrides the
// mapped message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	message := userMessage
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
