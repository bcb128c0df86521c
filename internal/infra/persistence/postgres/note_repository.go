package postgres

import (
	"context"

	"notes/internal/domain/entity"
	domainerrors "notes/internal/domain/errors"
	"notes/internal/domain/repository"
	"notes/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// noteRepository implements the repository.NoteRepository interface.
type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository is the constructor for noteRepository.
func NewNoteRepository(db *gorm.DB) repository.NoteRepository {
	return &noteRepository{
		db: db,
	}
}

// FindByID retrieves a note by its unique ID. Ownership is checked by the caller.
func (repo *noteRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	var noteM model.NoteModel

	if err := repo.db.WithContext(ctx).
		Where("note_id = ?", id).
		First(&noteM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNoteNotFound
		}

		return nil, errors.Wrap(err, "failed to find note by id")
	}

	return toNoteDomain(&noteM), nil
}

// ListByOwner returns all notes of one owner, oldest first.
func (repo *noteRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Note, error) {
	var noteModels []*model.NoteModel

	if err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_on ASC").
		Order("note_id ASC").
		Find(&noteModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list notes by owner")
	}

	notes := make([]*entity.Note, 0, len(noteModels))
	for _, noteM := range noteModels {
		notes = append(notes, toNoteDomain(noteM))
	}

	return notes, nil
}

func (repo *noteRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.NoteModel{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count notes by owner")
	}

	return count, nil
}

// Create persists a new note.
func (repo *noteRepository) Create(ctx context.Context, note *entity.Note) error {
	noteM := fromNoteDomain(note)

	if err := repo.db.WithContext(ctx).Create(noteM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid owner reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required note information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create note")
	}

	note.ID = noteM.ID
	note.CreatedAt = noteM.CreatedAt
	note.UpdatedAt = noteM.UpdatedAt

	return nil
}

// Update rewrites title and content. owner_id is never part of the update set.
func (repo *noteRepository) Update(ctx context.Context, note *entity.Note) error {
	noteM := fromNoteDomain(note)

	result := repo.db.WithContext(ctx).
		Model(noteM).
		Select("note_title", "note_content", "last_update").
		Updates(noteM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update note")
	}

	if result.RowsAffected == 0 {
		return repository.ErrNoteNotFound
	}

	note.UpdatedAt = noteM.UpdatedAt

	return nil
}

// Delete removes a note by ID.
func (repo *noteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("note_id = ?", id).
		Delete(&model.NoteModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete note")
	}

	if result.RowsAffected == 0 {
		return repository.ErrNoteNotFound
	}

	return nil
}

func toNoteDomain(m *model.NoteModel) *entity.Note {
	if m == nil {
		return nil
	}

	return &entity.Note{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Title:     m.Title,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromNoteDomain(n *entity.Note) *model.NoteModel {
	if n == nil {
		return nil
	}

	return &model.NoteModel{
		ID:        n.ID,
		OwnerID:   n.OwnerID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
