package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/openshelf/catalog-api/internal/domain"
	"github.com/openshelf/catalog-api/internal/platform/logger"
	"github.com/openshelf/catalog-api/internal/store"
)

// UserUpdate describes a partial update. A nil field is left untouched;
// a non-nil field overwrites the stored value.
type UserUpdate struct {
	Name  *string
	Email *string
}

// UserService provides user-related operations.
type UserService interface {
	// GetByID retrieves a user by their ID.
	// Returns store.ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetAll retrieves every user.
	GetAll(ctx context.Context) ([]*domain.User, error)

	// SearchByName retrieves users whose name contains the given substring.
	// Matching semantics are defined by the store (case-sensitive containment).
	SearchByName(ctx context.Context, substring string) ([]*domain.User, error)

	// Save validates and persists the user. A user with a set ID must
	// already exist (the existence check result is discarded). A user
	// with an unset ID must not reuse an email some user already holds;
	// that uniqueness check runs only on this creation path.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)

	// Delete removes the user after confirming they exist.
	// Returns store.ErrUserNotFound if the id does not resolve.
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdatePartial overwrites only the fields supplied in the update.
	// An email change fails with ErrEmailInUseByAnother when a different
	// user already holds the email; updating to the user's own current
	// email is not a conflict.
	UpdatePartial(ctx context.Context, id uuid.UUID, update UserUpdate) (*domain.User, error)
}

// userServiceImpl implements the UserService interface.
type userServiceImpl struct {
	userStore store.UserStore
	logger    *slog.Logger
}

// NewUserService creates a new UserService.
// It returns an error if the store dependency is nil.
func NewUserService(userStore store.UserStore, logger *slog.Logger) (UserService, error) {
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore: userStore,
		logger:    logger.With(slog.String("component", "user_service")),
	}, nil
}

// GetByID implements UserService.GetByID
func (s *userServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("user not found", slog.String("user_id", id.String()))
		} else {
			log.Error("failed to retrieve user",
				slog.String("error", err.Error()),
				slog.String("user_id", id.String()))
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	return user, nil
}

// GetAll implements UserService.GetAll
func (s *userServiceImpl) GetAll(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// SearchByName implements UserService.SearchByName
func (s *userServiceImpl) SearchByName(
	ctx context.Context,
	substring string,
) ([]*domain.User, error) {
	users, err := s.userStore.FindByNameContaining(ctx, substring)
	if err != nil {
		s.logger.Error("failed to search users by name",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to search users by name: %w", err)
	}
	return users, nil
}

// Save implements UserService.Save
//
// The email-uniqueness check runs only when creating a new user. Saving an
// existing user with a changed email through this method is deliberately
// not re-checked here; that path belongs to UpdatePartial. The unique
// index in storage still backstops a racing duplicate.
func (s *userServiceImpl) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed", slog.String("error", err.Error()))
		return nil, err
	}

	if !user.IsNew() {
		// Existence guard only; the fetched value is discarded.
		if _, err := s.GetByID(ctx, user.ID); err != nil {
			return nil, err
		}
	} else {
		_, err := s.userStore.FindByEmail(ctx, user.Email)
		if err == nil {
			log.Warn("attempted to create user with existing email")
			return nil, ErrEmailInUse
		}
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Error("failed to check email availability",
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to check email availability: %w", err)
		}
	}

	saved, err := s.userStore.Save(ctx, user)
	if err != nil {
		log.Error("failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	log.Debug("user saved", slog.String("user_id", saved.ID.String()))
	return saved, nil
}

// Delete implements UserService.Delete
func (s *userServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.userStore.DeleteByID(ctx, id); err != nil {
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return fmt.Errorf("failed to delete user: %w", err)
	}

	log.Info("user deleted", slog.String("user_id", id.String()))
	return nil
}

// UpdatePartial implements UserService.UpdatePartial
func (s *userServiceImpl) UpdatePartial(
	ctx context.Context,
	id uuid.UUID,
	update UserUpdate,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}

	if update.Email != nil {
		existing, err := s.userStore.FindByEmail(ctx, *update.Email)
		if err == nil && existing.ID != id {
			log.Warn("attempted to take email held by another user",
				slog.String("user_id", id.String()))
			return nil, ErrEmailInUseByAnother
		}
		if err != nil && !errors.Is(err, store.ErrUserNotFound) {
			log.Error("failed to check email availability",
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to check email availability: %w", err)
		}
		user.Email = *update.Email
	}

	saved, err := s.userStore.Save(ctx, user)
	if err != nil {
		log.Error("failed to persist partial update",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, fmt.Errorf("failed to persist partial update: %w", err)
	}

	log.Info("user updated", slog.String("user_id", id.String()))
	return saved, nil
}
