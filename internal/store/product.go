package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/openshelf/catalog-api/internal/domain"
)

// ProductStore defines the interface for product data persistence.
type ProductStore interface {
	// FindByID retrieves a product by its unique ID.
	// Returns ErrProductNotFound if the product does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// FindAll retrieves every product in the store.
	// Returns an empty slice when the store is empty.
	FindAll(ctx context.Context) ([]*domain.Product, error)

	// FindByPriceBetween retrieves products whose price lies in [min, max].
	// When min > max the result is empty; ordering of the bounds is the
	// caller's responsibility.
	FindByPriceBetween(ctx context.Context, min, max float64) ([]*domain.Product, error)

	// FindByStockLessThan retrieves products with stock strictly below threshold.
	FindByStockLessThan(ctx context.Context, threshold int) ([]*domain.Product, error)

	// Save persists the product and returns the persisted value.
	// A product with an unset ID is created and assigned a new ID;
	// a product with a set ID is replaced in full.
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)

	// DeleteByID removes a product from the store by its ID.
	// Returns ErrProductNotFound if the product does not exist.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ProductStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) ProductStore
}
