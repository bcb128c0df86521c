package memory

import (
	"context"
	"testing"
	"time"

	"notes/internal/domain/entity"
	domainerrors "notes/internal/domain/errors"
	"notes/internal/domain/repository"
	"notes/internal/domain/service"
	"notes/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// steppingClock advances one second per reading so creation order is observable.
func steppingClock() service.Clock {
	now := baseTime
	return service.ClockFunc(func() time.Time {
		now = now.Add(time.Second)
		return now
	})
}

func newTestManager() repository.TransactionManager {
	return NewTransactionManager(NewStore(steppingClock()))
}

func createUser(t *testing.T, tm repository.TransactionManager, email string) *entity.User {
	t.Helper()

	user := &entity.User{Name: "name", Email: email, PasswordHash: "hash"}
	require.NoError(t, tm.Execute(context.Background(), func(f repository.RepositoryFactory) error {
		return f.UserRepo().Create(context.Background(), user)
	}))

	return user
}

func createNote(t *testing.T, tm repository.TransactionManager, owner uuid.UUID, title string) *entity.Note {
	t.Helper()

	note := &entity.Note{OwnerID: owner, Title: title, Content: "content"}
	require.NoError(t, tm.Execute(context.Background(), func(f repository.RepositoryFactory) error {
		return f.NoteRepo().Create(context.Background(), note)
	}))

	return note
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	tm := newTestManager()

	user := createUser(t, tm, "a@x.com")
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, uuid.Version(7), user.ID.Version())
	assert.False(t, user.CreatedAt.IsZero())

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		byEmail, err := f.UserRepo().FindByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)

		byID, err := f.UserRepo().FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", byID.Email)

		_, err = f.UserRepo().FindByEmail(ctx, "A@x.com")
		assert.ErrorIs(t, err, repository.ErrUserNotFound)

		_, err = f.UserRepo().FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, repository.ErrUserNotFound)

		return nil
	})
	require.NoError(t, err)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	tm := newTestManager()
	first := createUser(t, tm, "a@x.com")

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.UserRepo().Create(ctx, &entity.User{Name: "other", Email: "a@x.com", PasswordHash: "h"})
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))

	err = tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		found, err := f.UserRepo().FindByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, first.ID, found.ID)
		assert.Equal(t, "name", found.Name)

		return nil
	})
	require.NoError(t, err)
}

func TestUserRepository_ReturnedValuesAreCopies(t *testing.T) {
	ctx := context.Background()
	tm := newTestManager()
	user := createUser(t, tm, "a@x.com")

	user.Name = "mutated outside"

	require.NoError(t, tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		found, err := f.UserRepo().FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "name", found.Name)

		return nil
	}))
}

func TestUserRepository_DeleteBlockedByNotes(t *testing.T) {
	ctx := context.Background()
	tm := newTestManager()
	user := createUser(t, tm, "a@x.com")
	note := createNote(t, tm, user.ID, "t")

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.UserRepo().Delete(ctx, user.ID)
	})
	assert.True(t, errors.Is(err, domainerrors.ErrUserHasNotes))

	require.NoError(t, tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.NoteRepo().Delete(ctx, note.ID); err != nil {
			return err
		}

		return f.UserRepo().Delete(ctx, user.ID)
	}))

	// The email is free again.
	createUser(t, tm, "a@x.com")
}

func TestNoteRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	tm := newTestManager()
	alice := createUser(t, tm, "alice@x.com")
	bob := createUser(t, tm, "bob@x.com")

	first := createNote(t, tm, alice.ID, "first")
	second := createNote(t, tm, alice.ID, "second")
	createNote(t, tm, bob.ID, "bob's")

	require.NoError(t, tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		notes, err := f.NoteRepo().ListByOwner(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, first.ID, notes[0].ID)
		assert.Equal(t, second.ID, notes[1].ID)

		count, err := f.NoteRepo().CountByOwner(ctx, bob.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)

		empty, err := f.NoteRepo().ListByOwner(ctx, uuid.New())
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		return nil
	}))

	update := &entity.Note{ID: first.ID, OwnerID: bob.ID, Title: "renamed", Content: "new"}
	require.NoError(t, tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.NoteRepo().Update(ctx, update)
	}))
	assert.Equal(t, alice.ID, update.OwnerID, "owner is immutable")
	assert.True(t, update.UpdatedAt.After(first.CreatedAt))

	require.NoError(t, tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		found, err := f.NoteRepo().FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "renamed", found.Title)
		assert.Equal(t, alice.ID, found.OwnerID)

		require.NoError(t, f.NoteRepo().Delete(ctx, first.ID))
		_, err = f.NoteRepo().FindByID(ctx, first.ID)
		assert.ErrorIs(t, err, repository.ErrNoteNotFound)

		assert.ErrorIs(t, f.NoteRepo().Delete(ctx, first.ID), repository.ErrNoteNotFound)
		assert.ErrorIs(t, f.NoteRepo().Update(ctx, &entity.Note{ID: first.ID}), repository.ErrNoteNotFound)

		return nil
	}))
}

func TestNoteRepository_OwnerMustExist(t *testing.T) {
	ctx := context.Background()
	tm := newTestManager()

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.NoteRepo().Create(ctx, &entity.Note{OwnerID: uuid.New(), Title: "t"})
	})
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestTransactionManager_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	tm := newTestManager()
	sentinel := errors.New("abort")

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		user := &entity.User{Name: "n", Email: "a@x.com", PasswordHash: "h"}
		if err := f.UserRepo().Create(ctx, user); err != nil {
			return err
		}
		if err := f.NoteRepo().Create(ctx, &entity.Note{OwnerID: user.ID, Title: "t"}); err != nil {
			return err
		}

		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	require.NoError(t, tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		_, err := f.UserRepo().FindByEmail(ctx, "a@x.com")
		assert.ErrorIs(t, err, repository.ErrUserNotFound)

		return nil
	}))
}

func TestTransactionManager_RollbackOnPanic(t *testing.T) {
	ctx := context.Background()
	tm := newTestManager()

	assert.Panics(t, func() {
		_ = tm.Execute(ctx, func(f repository.RepositoryFactory) error {
			_ = f.UserRepo().Create(ctx, &entity.User{Name: "n", Email: "a@x.com", PasswordHash: "h"})
			panic("boom")
		})
	})

	// The lock was released and the write discarded.
	require.NoError(t, tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		_, err := f.UserRepo().FindByEmail(ctx, "a@x.com")
		assert.ErrorIs(t, err, repository.ErrUserNotFound)

		return nil
	}))
}

func TestTransactionManager_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := newTestManager().Execute(ctx, func(repository.RepositoryFactory) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
