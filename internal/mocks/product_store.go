package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/openshelf/catalog-api/internal/domain"
	"github.com/openshelf/catalog-api/internal/store"
)

// MockProductStore implements store.ProductStore for testing.
// The zero behavior is a mutex-guarded in-memory map; individual methods
// can be overridden through the corresponding function fields.
type MockProductStore struct {
	// Function fields for customizable behavior
	FindByIDFn           func(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindAllFn            func(ctx context.Context) ([]*domain.Product, error)
	FindByPriceBetweenFn func(ctx context.Context, min, max float64) ([]*domain.Product, error)
	FindByStockLessThanFn func(ctx context.Context, threshold int) ([]*domain.Product, error)
	SaveFn               func(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteByIDFn         func(ctx context.Context, id uuid.UUID) error

	// SaveError forces every default Save call to fail with this error.
	SaveError error

	mu       sync.Mutex
	products map[uuid.UUID]*domain.Product
}

// NewMockProductStore creates a new mock store with initialized defaults.
func NewMockProductStore() *MockProductStore {
	return &MockProductStore{
		products: make(map[uuid.UUID]*domain.Product),
	}
}

// Ensure MockProductStore implements store.ProductStore interface
var _ store.ProductStore = (*MockProductStore)(nil)

// Seed inserts products directly into the backing map, assigning IDs
// to any entry that lacks one. It returns the stored copies.
func (m *MockProductStore) Seed(products ...*domain.Product) []*domain.Product {
	m.mu.Lock()
	defer m.mu.Unlock()

	seeded := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		stored := *p
		if stored.IsNew() {
			stored.ID = uuid.New()
		}
		m.products[stored.ID] = &stored
		seeded = append(seeded, &stored)
	}
	return seeded
}

// FindByID implements the ProductStore interface.
func (m *MockProductStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	product, exists := m.products[id]
	if !exists {
		return nil, store.ErrProductNotFound
	}

	copied := *product
	return &copied, nil
}

// FindAll implements the ProductStore interface.
func (m *MockProductStore) FindAll(ctx context.Context) ([]*domain.Product, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	products := []*domain.Product{}
	for _, p := range m.products {
		copied := *p
		products = append(products, &copied)
	}
	return products, nil
}

// FindByPriceBetween implements the ProductStore interface.
// An inverted range matches nothing, like a SQL BETWEEN.
func (m *MockProductStore) FindByPriceBetween(
	ctx context.Context,
	min, max float64,
) ([]*domain.Product, error) {
	if m.FindByPriceBetweenFn != nil {
		return m.FindByPriceBetweenFn(ctx, min, max)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	products := []*domain.Product{}
	for _, p := range m.products {
		if p.Price >= min && p.Price <= max {
			copied := *p
			products = append(products, &copied)
		}
	}
	return products, nil
}

// FindByStockLessThan implements the ProductStore interface.
func (m *MockProductStore) FindByStockLessThan(
	ctx context.Context,
	threshold int,
) ([]*domain.Product, error) {
	if m.FindByStockLessThanFn != nil {
		return m.FindByStockLessThanFn(ctx, threshold)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	products := []*domain.Product{}
	for _, p := range m.products {
		if p.Stock < threshold {
			copied := *p
			products = append(products, &copied)
		}
	}
	return products, nil
}

// Save implements the ProductStore interface.
// A product without an ID is assigned one, mirroring the postgres store.
func (m *MockProductStore) Save(
	ctx context.Context,
	product *domain.Product,
) (*domain.Product, error) {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, product)
	}

	if m.SaveError != nil {
		return nil, m.SaveError
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	saved := *product
	saved.UpdatedAt = time.Now().UTC()
	if saved.IsNew() {
		saved.ID = uuid.New()
		saved.CreatedAt = saved.UpdatedAt
	}

	stored := saved
	m.products[stored.ID] = &stored
	return &saved, nil
}

// DeleteByID implements the ProductStore interface.
func (m *MockProductStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if m.DeleteByIDFn != nil {
		return m.DeleteByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.products[id]; !exists {
		return store.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

// WithTx implements the ProductStore interface.
// The mock has no transaction semantics and returns itself.
func (m *MockProductStore) WithTx(tx *sql.Tx) store.ProductStore {
	return m
}
