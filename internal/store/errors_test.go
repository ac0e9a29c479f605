package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"generic not found", ErrNotFound, true},
		{"product not found", ErrProductNotFound, true},
		{"user not found", ErrUserNotFound, true},
		{"wrapped product not found", fmt.Errorf("lookup: %w", ErrProductNotFound), true},
		{"duplicate error", ErrEmailExists, false},
		{"unrelated error", errors.New("boom"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"generic duplicate", ErrDuplicate, true},
		{"email exists", ErrEmailExists, true},
		{"wrapped email exists", fmt.Errorf("save: %w", ErrEmailExists), true},
		{"not found error", ErrUserNotFound, false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicateError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	underlying := errors.New("connection refused")
	err := NewStoreError("product", "save", "could not reach database", underlying)

	assert.Contains(t, err.Error(), "save operation on product failed")
	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, underlying)

	// Without a wrapped error the message stands alone.
	bare := NewStoreError("user", "delete", "no rows affected", nil)
	assert.Equal(t, "delete operation on user failed: no rows affected", bare.Error())
	assert.Nil(t, errors.Unwrap(bare))
}
