package memory

import (
	"context"

	"notes/internal/domain/entity"
	domainerrors "notes/internal/domain/errors"
	"notes/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// userRepository operates on the store while the enclosing Execute holds its lock.
type userRepository struct {
	store *Store
}

func (r *userRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.store.state.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return &user, nil
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	id, ok := r.store.state.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	user := r.store.state.users[id]

	return &user, nil
}

func (r *userRepository) Create(_ context.Context, user *entity.User) error {
	if _, taken := r.store.state.byEmail[user.Email]; taken {
		return domainerrors.ErrEmailTaken.WrapMessage("email already exists")
	}

	if user.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "generate user id")
		}
		user.ID = id
	}

	now := r.store.clock.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.store.state.users[user.ID] = *user
	r.store.state.byEmail[user.Email] = user.ID

	return nil
}

func (r *userRepository) Delete(_ context.Context, id uuid.UUID) error {
	user, ok := r.store.state.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}

	for _, note := range r.store.state.notes {
		if note.OwnerID == id {
			return domainerrors.ErrUserHasNotes.WrapMessage("user still owns notes")
		}
	}

	delete(r.store.state.byEmail, user.Email)
	delete(r.store.state.users, id)

	return nil
}
