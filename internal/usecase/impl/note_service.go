package impl

import (
	"context"
	"log/slog"

	deliverycontext "notes/internal/delivery/context"
	"notes/internal/domain/entity"
	domainerrors "notes/internal/domain/errors"
	"notes/internal/domain/repository"
	"notes/internal/infra/metrics"
	"notes/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	noteOpCreate = "create"
	noteOpUpdate = "update"
	noteOpDelete = "delete"
)

type noteService struct {
	txManager repository.TransactionManager
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NoteServiceParams holds dependencies for NoteService, injected by Fx.
type NoteServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Metrics   *metrics.Metrics `optional:"true"`
	Logger    *slog.Logger
}

func NewNoteService(params NoteServiceParams) usecase.NoteUsecase {
	return &noteService{
		txManager: params.TxManager,
		metrics:   params.Metrics,
		logger:    params.Logger,
	}
}

func (srv *noteService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateNote stores a note owned by the caller. The owner is never taken from input.
func (srv *noteService) CreateNote(ctx context.Context, caller *entity.User, input usecase.NoteInput) (*entity.Note, error) {
	if caller == nil {
		return nil, domainerrors.ErrNotAuthenticated
	}

	note := &entity.Note{
		OwnerID: caller.ID,
		Title:   input.Title,
		Content: input.Content,
	}

	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NoteRepo().Create(ctx, note)
	}); err != nil {
		return nil, errors.Wrap(err, "failed to create note")
	}

	srv.metrics.TrackNoteOperation(noteOpCreate)
	srv.log(ctx).Debug("Note created", slog.Any("noteID", note.ID), slog.Any("ownerID", caller.ID))

	return note, nil
}

// ListNotes returns the caller's notes only. No ownership check is needed: the query is scoped.
func (srv *noteService) ListNotes(ctx context.Context, caller *entity.User) ([]*entity.Note, error) {
	if caller == nil {
		return nil, domainerrors.ErrNotAuthenticated
	}

	var notes []*entity.Note
	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var listErr error
		notes, listErr = repoFactory.NoteRepo().ListByOwner(ctx, caller.ID)

		return listErr
	}); err != nil {
		return nil, errors.Wrap(err, "failed to list notes")
	}

	return notes, nil
}

func (srv *noteService) GetNote(ctx context.Context, caller *entity.User, noteID uuid.UUID) (*entity.Note, error) {
	var note *entity.Note
	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var findErr error
		note, findErr = findOwnedNote(ctx, repoFactory.NoteRepo(), caller, noteID)

		return findErr
	}); err != nil {
		return nil, err
	}

	return note, nil
}

func (srv *noteService) UpdateNote(ctx context.Context, caller *entity.User, noteID uuid.UUID, input usecase.NoteInput) (*entity.Note, error) {
	var note *entity.Note
	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		noteRepo := repoFactory.NoteRepo()

		var findErr error
		note, findErr = findOwnedNote(ctx, noteRepo, caller, noteID)
		if findErr != nil {
			return findErr
		}

		note.Title = input.Title
		note.Content = input.Content

		return mapNoteNotFound(noteRepo.Update(ctx, note))
	}); err != nil {
		return nil, err
	}

	srv.metrics.TrackNoteOperation(noteOpUpdate)
	srv.log(ctx).Debug("Note updated", slog.Any("noteID", note.ID))

	return note, nil
}

func (srv *noteService) DeleteNote(ctx context.Context, caller *entity.User, noteID uuid.UUID) error {
	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		noteRepo := repoFactory.NoteRepo()

		if _, err := findOwnedNote(ctx, noteRepo, caller, noteID); err != nil {
			return err
		}

		return mapNoteNotFound(noteRepo.Delete(ctx, noteID))
	}); err != nil {
		return err
	}

	srv.metrics.TrackNoteOperation(noteOpDelete)
	srv.log(ctx).Debug("Note deleted", slog.Any("noteID", noteID))

	return nil
}

// findOwnedNote applies the ownership policy: a note that belongs to another user is reported
// exactly like one that does not exist.
func findOwnedNote(ctx context.Context, noteRepo repository.NoteRepository, caller *entity.User, noteID uuid.UUID) (*entity.Note, error) {
	if caller == nil {
		return nil, domainerrors.ErrNotAuthenticated
	}

	note, err := noteRepo.FindByID(ctx, noteID)
	if err != nil {
		return nil, mapNoteNotFound(err)
	}

	if !note.OwnedBy(caller) {
		return nil, errors.Wrap(domainerrors.ErrNoteNotFound, "note belongs to another user")
	}

	return note, nil
}

func mapNoteNotFound(err error) error {
	if errors.Is(err, repository.ErrNoteNotFound) {
		return errors.Wrap(domainerrors.ErrNoteNotFound, err.Error())
	}

	return errors.Wrap(err, "note repository")
}
