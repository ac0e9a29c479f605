package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("Joana", "j@example.com")

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID != uuid.Nil {
		t.Error("Expected unset ID before first save")
	}

	if user.Name != "Joana" {
		t.Errorf("Expected name Joana, got %s", user.Name)
	}

	if user.Email != "j@example.com" {
		t.Errorf("Expected email j@example.com, got %s", user.Email)
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Blank email
	_, err = NewUser("Joana", "")
	if !errors.Is(err, ErrEmailRequired) {
		t.Errorf("Expected error %v, got %v", ErrEmailRequired, err)
	}

	// Blank name
	_, err = NewUser("  ", "j@example.com")
	if !errors.Is(err, ErrUserNameRequired) {
		t.Errorf("Expected error %v, got %v", ErrUserNameRequired, err)
	}
}

func TestUserValidate(t *testing.T) {
	validUser := User{
		ID:    uuid.New(),
		Name:  "Joana",
		Email: "j@example.com",
	}

	if err := validUser.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// The email check runs before the name check: a user missing both
	// reports the missing email first.
	emptyUser := User{}
	if err := emptyUser.Validate(); !errors.Is(err, ErrEmailRequired) {
		t.Errorf("Expected error %v, got %v", ErrEmailRequired, err)
	}

	blankName := User{Name: " ", Email: "j@example.com"}
	if err := blankName.Validate(); !errors.Is(err, ErrUserNameRequired) {
		t.Errorf("Expected error %v, got %v", ErrUserNameRequired, err)
	}
}
