package repository

import (
	"context"

	"notes/internal/domain/entity"
	"notes/internal/errors"

	"github.com/google/uuid"
)

// ErrNoteNotFound is returned when no note matches the lookup.
var ErrNoteNotFound = errors.New("note not found")

// NoteRepository defines the standard operations for note persistence.
type NoteRepository interface {
	// FindByID retrieves a single note by ID regardless of owner.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Note, error)

	// ListByOwner returns the owner's notes ordered by creation time.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Note, error)

	// CountByOwner returns how many notes the owner has.
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)

	// Create persists a new note. The repository assigns ID and timestamps.
	Create(ctx context.Context, note *entity.Note) error

	// Update rewrites title and content and refreshes UpdatedAt.
	Update(ctx context.Context, note *entity.Note) error

	// Delete removes a note by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
