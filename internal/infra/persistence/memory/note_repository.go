package memory

import (
	"cmp"
	"context"
	"slices"

	"notes/internal/domain/entity"
	domainerrors "notes/internal/domain/errors"
	"notes/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type noteRepository struct {
	store *Store
}

func (r *noteRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Note, error) {
	note, ok := r.store.state.notes[id]
	if !ok {
		return nil, repository.ErrNoteNotFound
	}

	return &note, nil
}

// ListByOwner orders by creation time, then by ID. UUIDv7 IDs keep ties in insertion order.
func (r *noteRepository) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Note, error) {
	notes := make([]*entity.Note, 0)
	for _, note := range r.store.state.notes {
		if note.OwnerID == ownerID {
			n := note
			notes = append(notes, &n)
		}
	}

	slices.SortFunc(notes, func(a, b *entity.Note) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}

		return cmp.Compare(a.ID.String(), b.ID.String())
	})

	return notes, nil
}

func (r *noteRepository) CountByOwner(_ context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	for _, note := range r.store.state.notes {
		if note.OwnerID == ownerID {
			count++
		}
	}

	return count, nil
}

func (r *noteRepository) Create(_ context.Context, note *entity.Note) error {
	if _, ok := r.store.state.users[note.OwnerID]; !ok {
		return domainerrors.ErrUserNotFound.WrapMessage("invalid owner reference")
	}

	if note.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "generate note id")
		}
		note.ID = id
	}

	now := r.store.clock.Now()
	note.CreatedAt = now
	note.UpdatedAt = now

	r.store.state.notes[note.ID] = *note

	return nil
}

// Update replaces title and content. The stored owner is kept whatever the argument says.
func (r *noteRepository) Update(_ context.Context, note *entity.Note) error {
	stored, ok := r.store.state.notes[note.ID]
	if !ok {
		return repository.ErrNoteNotFound
	}

	stored.Title = note.Title
	stored.Content = note.Content
	stored.UpdatedAt = r.store.clock.Now()
	r.store.state.notes[note.ID] = stored

	note.OwnerID = stored.OwnerID
	note.CreatedAt = stored.CreatedAt
	note.UpdatedAt = stored.UpdatedAt

	return nil
}

func (r *noteRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.state.notes[id]; !ok {
		return repository.ErrNoteNotFound
	}

	delete(r.store.state.notes, id)

	return nil
}
