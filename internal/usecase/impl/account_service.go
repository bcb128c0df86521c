package impl

import (
	"context"
	"log/slog"

	deliverycontext "notes/internal/delivery/context"
	"notes/internal/domain/entity"
	domainerrors "notes/internal/domain/errors"
	"notes/internal/domain/repository"
	"notes/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type accountService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *accountService) GetProfile(ctx context.Context, caller *entity.User) (*entity.User, error) {
	if caller == nil {
		return nil, domainerrors.ErrNotAuthenticated
	}

	var user *entity.User
	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var findErr error
		user, findErr = repoFactory.UserRepo().FindByID(ctx, caller.ID)

		return findErr
	}); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, err.Error())
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	return user, nil
}

// DeleteAccount counts and deletes in one transaction. The schema's ON DELETE RESTRICT backs
// the same rule.
func (srv *accountService) DeleteAccount(ctx context.Context, caller *entity.User) error {
	if caller == nil {
		return domainerrors.ErrNotAuthenticated
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		count, err := repoFactory.NoteRepo().CountByOwner(ctx, caller.ID)
		if err != nil {
			return errors.Wrap(err, "failed to count notes")
		}
		if count > 0 {
			return domainerrors.ErrUserHasNotes.WithDetails("delete your notes before deleting the account")
		}

		return repoFactory.UserRepo().Delete(ctx, caller.ID)
	})
	if err != nil {
		srv.log(ctx).Warn("Account deletion failed", slog.Any("userID", caller.ID), slog.Any("error", err))

		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, err.Error())
		}

		return err
	}

	srv.log(ctx).Info("Account deleted", slog.Any("userID", caller.ID))

	return nil
}
