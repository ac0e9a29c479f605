package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account holder identified by a unique email.
// The zero UUID marks a user that has not been persisted yet; the store
// assigns an ID on first save.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given name and email.
// The ID is left unset; the store assigns one when the user is first saved.
// Returns an error if validation fails.
func NewUser(name, email string) (*User, error) {
	user := &User{
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data. The email is checked before
// the name so that a request missing both fields reports the missing email.
// Email uniqueness is a collection-level rule enforced by the service and
// the store, not here.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return ErrEmailRequired
	}

	if strings.TrimSpace(u.Name) == "" {
		return ErrUserNameRequired
	}

	return nil
}

// IsNew reports whether the user has not been persisted yet.
func (u *User) IsNew() bool {
	return u.ID == uuid.Nil
}
