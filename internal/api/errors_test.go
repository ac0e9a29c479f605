package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openshelf/catalog-api/internal/domain"
	"github.com/openshelf/catalog-api/internal/service"
	"github.com/openshelf/catalog-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "product not found maps to 404",
			err:      store.ErrProductNotFound,
			expected: http.StatusNotFound,
		},
		{
			name:     "wrapped user not found maps to 404",
			err:      fmt.Errorf("failed to get user: %w", store.ErrUserNotFound),
			expected: http.StatusNotFound,
		},
		{
			name:     "validation rule maps to 400",
			err:      domain.ErrNonPositivePrice,
			expected: http.StatusBadRequest,
		},
		{
			name:     "service business rule maps to 400",
			err:      service.ErrStockBelowZero,
			expected: http.StatusBadRequest,
		},
		{
			name:     "duplicate email maps to 400",
			err:      store.ErrEmailExists,
			expected: http.StatusBadRequest,
		},
		{
			name:     "invalid id maps to 400",
			err:      domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID),
			expected: http.StatusBadRequest,
		},
		{
			name:     "unknown errors map to 500",
			err:      errors.New("connection reset"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "An unexpected error occurred",
		},
		{
			name:     "product not found",
			err:      fmt.Errorf("failed to get product: %w", store.ErrProductNotFound),
			expected: "Product not found",
		},
		{
			name:     "email in use by another user wins over the generic message",
			err:      service.ErrEmailInUseByAnother,
			expected: "email already in use by another user",
		},
		{
			name:     "duplicate email from storage",
			err:      fmt.Errorf("failed to save user: %w", store.ErrEmailExists),
			expected: "email already in use",
		},
		{
			name:     "stock error keeps the current quantity",
			err:      fmt.Errorf("%w (current stock: 4)", service.ErrStockBelowZero),
			expected: "validation failed: operation would result in negative stock (current stock: 4)",
		},
		{
			name:     "field-level validation error",
			err:      domain.NewValidationError("min", "must be a number", domain.ErrValidation),
			expected: "min must be a number",
		},
		{
			name:     "internal details never leak",
			err:      errors.New("pq: connection refused"),
			expected: "An unexpected error occurred",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, GetSafeErrorMessage(tc.err))
		})
	}
}
