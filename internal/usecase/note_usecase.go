package usecase

import (
	"context"

	"notes/internal/domain/entity"

	"github.com/google/uuid"
)

// NoteInput carries the editable fields of a note.
type NoteInput struct {
	Title   string
	Content string
}

// NoteUsecase defines note operations on behalf of an authenticated caller. A note that
// does not exist and a note owned by someone else both fail with domainerrors.ErrNoteNotFound.
type NoteUsecase interface {
	CreateNote(ctx context.Context, caller *entity.User, input NoteInput) (*entity.Note, error)
	ListNotes(ctx context.Context, caller *entity.User) ([]*entity.Note, error)
	GetNote(ctx context.Context, caller *entity.User, noteID uuid.UUID) (*entity.Note, error)
	UpdateNote(ctx context.Context, caller *entity.User, noteID uuid.UUID, input NoteInput) (*entity.Note, error)
	DeleteNote(ctx context.Context, caller *entity.User, noteID uuid.UUID) error
}
