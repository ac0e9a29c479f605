package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/openshelf/catalog-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// FindByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// FindAll retrieves every user in the store.
	// Returns an empty slice when the store is empty.
	FindAll(ctx context.Context) ([]*domain.User, error)

	// FindByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if no user holds the email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByNameContaining retrieves users whose name contains the given
	// substring. Matching is case-sensitive containment.
	FindByNameContaining(ctx context.Context, substring string) ([]*domain.User, error)

	// Save persists the user and returns the persisted value.
	// A user with an unset ID is created and assigned a new ID;
	// a user with a set ID is replaced in full.
	// Returns ErrEmailExists when the save would violate email uniqueness.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)

	// DeleteByID removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new UserStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
