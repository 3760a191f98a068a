// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"contacts/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByVerificationToken retrieves the unverified user holding the given code.
	FindByVerificationToken(ctx context.Context, code string) (*entity.User, error)

	// Create persists a new user. A duplicate email yields domainerrors.ErrEmailInUse.
	Create(ctx context.Context, user *entity.User) error

	// Update overwrites the mutable fields of an existing user.
	Update(ctx context.Context, user *entity.User) error
}
