package usecase

import (
	"context"

	"notes/internal/domain/entity"
)

// AccountUsecase manages the caller's own user record.
type AccountUsecase interface {
	// GetProfile reloads the caller from the store.
	GetProfile(ctx context.Context, caller *entity.User) (*entity.User, error)

	// DeleteAccount removes the caller. It fails with domainerrors.ErrUserHasNotes while the
	// caller still owns notes.
	DeleteAccount(ctx context.Context, caller *entity.User) error
}
