package mocks

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/openshelf/catalog-api/internal/domain"
	"github.com/openshelf/catalog-api/internal/store"
)

// MockUserStore implements store.UserStore for testing.
// The zero behavior is a mutex-guarded in-memory map; individual methods
// can be overridden through the corresponding function fields.
type MockUserStore struct {
	// Function fields for customizable behavior
	FindByIDFn             func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindAllFn              func(ctx context.Context) ([]*domain.User, error)
	FindByEmailFn          func(ctx context.Context, email string) (*domain.User, error)
	FindByNameContainingFn func(ctx context.Context, substring string) ([]*domain.User, error)
	SaveFn                 func(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteByIDFn           func(ctx context.Context, id uuid.UUID) error

	// SaveError forces every default Save call to fail with this error.
	SaveError error

	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

// NewMockUserStore creates a new mock store with initialized defaults.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		users: make(map[uuid.UUID]*domain.User),
	}
}

// Ensure MockUserStore implements store.UserStore interface
var _ store.UserStore = (*MockUserStore)(nil)

// Seed inserts users directly into the backing map, assigning IDs to any
// entry that lacks one. It returns the stored copies.
func (m *MockUserStore) Seed(users ...*domain.User) []*domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	seeded := make([]*domain.User, 0, len(users))
	for _, u := range users {
		stored := *u
		if stored.IsNew() {
			stored.ID = uuid.New()
		}
		m.users[stored.ID] = &stored
		seeded = append(seeded, &stored)
	}
	return seeded
}

// FindByID implements the UserStore interface.
func (m *MockUserStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, exists := m.users[id]
	if !exists {
		return nil, store.ErrUserNotFound
	}

	copied := *user
	return &copied, nil
}

// FindAll implements the UserStore interface.
func (m *MockUserStore) FindAll(ctx context.Context) ([]*domain.User, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	users := []*domain.User{}
	for _, u := range m.users {
		copied := *u
		users = append(users, &copied)
	}
	return users, nil
}

// FindByEmail implements the UserStore interface.
func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFn != nil {
		return m.FindByEmailFn(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// FindByNameContaining implements the UserStore interface.
// Matching is case-sensitive substring containment, like the SQL LIKE
// used by the postgres store.
func (m *MockUserStore) FindByNameContaining(
	ctx context.Context,
	substring string,
) ([]*domain.User, error) {
	if m.FindByNameContainingFn != nil {
		return m.FindByNameContainingFn(ctx, substring)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	users := []*domain.User{}
	for _, u := range m.users {
		if strings.Contains(u.Name, substring) {
			copied := *u
			users = append(users, &copied)
		}
	}
	return users, nil
}

// Save implements the UserStore interface.
// A user without an ID is assigned one. Email uniqueness is enforced
// across the whole map, mirroring the postgres unique index.
func (m *MockUserStore) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, user)
	}

	if m.SaveError != nil {
		return nil, m.SaveError
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	saved := *user
	saved.UpdatedAt = time.Now().UTC()
	if saved.IsNew() {
		saved.ID = uuid.New()
		saved.CreatedAt = saved.UpdatedAt
	}

	for _, existing := range m.users {
		if existing.Email == saved.Email && existing.ID != saved.ID {
			return nil, store.ErrEmailExists
		}
	}

	stored := saved
	m.users[stored.ID] = &stored
	return &saved, nil
}

// DeleteByID implements the UserStore interface.
func (m *MockUserStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if m.DeleteByIDFn != nil {
		return m.DeleteByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[id]; !exists {
		return store.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

// WithTx implements the UserStore interface.
// The mock has no transaction semantics and returns itself.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
