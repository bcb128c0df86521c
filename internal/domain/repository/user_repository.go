// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"notes/internal/domain/entity"
	"notes/internal/errors"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by exact email match.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user. The repository assigns ID and timestamps.
	// A duplicate email fails with domainerrors.ErrEmailTaken.
	Create(ctx context.Context, user *entity.User) error

	// Delete removes a user. Callers must make sure the user owns no notes.
	Delete(ctx context.Context, id uuid.UUID) error
}
