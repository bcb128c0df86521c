// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"sync"

	deliverycontext "notes/internal/delivery/context"
	"notes/internal/domain/entity"
	domainerrors "notes/internal/domain/errors"
	"notes/internal/domain/repository"
	"notes/internal/domain/service"
	"notes/internal/infra/metrics"
	"notes/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

const (
	attemptRegister = "register"
	attemptLogin    = "login"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	hasher       service.PasswordHasher
	tokenService service.TokenService
	metrics      *metrics.Metrics
	logger       *slog.Logger

	dummyHashOnce sync.Once
	dummyHash     string
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Metrics      *metrics.Metrics `optional:"true"`
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		metrics:      params.Metrics,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register hashes the password outside the transaction (bcrypt is CPU-bound) and then checks
// and inserts the user in one unit of work.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, error) {
	if len(input.Password) > maxPasswordBytes {
		return nil, domainerrors.ErrValidationFailed.WithDetails("password must be at most 72 bytes")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	newUser := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, findErr := userRepo.FindByEmail(ctx, input.Email)
		if findErr == nil {
			return domainerrors.ErrEmailTaken.WrapMessage("email already registered")
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to check existing user")
		}

		return errors.Wrap(userRepo.Create(ctx, newUser), "failed to create user")
	})
	if err != nil {
		srv.metrics.TrackAuthAttempt(attemptRegister, metrics.ResultFailure)
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	srv.metrics.TrackAuthAttempt(attemptRegister, metrics.ResultSuccess)
	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return newUser, nil
}

// Authenticate verifies credentials. When the email is unknown the password is still compared
// against a throwaway digest so both failure paths cost one bcrypt comparison.
func (srv *authService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var findErr error
		user, findErr = repoFactory.UserRepo().FindByEmail(ctx, email)

		return findErr
	})
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to load user for authentication")
	}

	if user == nil {
		srv.hasher.Check(password, srv.getDummyHash())

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "authentication failed")
	}

	if !srv.hasher.Check(password, user.PasswordHash) {
		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "authentication failed")
	}

	return user, nil
}

func (srv *authService) getDummyHash() string {
	srv.dummyHashOnce.Do(func() {
		hash, err := srv.hasher.Hash("dummy-password-for-timing")
		if err != nil {
			srv.logger.Warn("Failed to prepare dummy password hash", slog.Any("error", err))

			return
		}
		srv.dummyHash = hash
	})

	return srv.dummyHash
}

// Login orchestrates the user login process.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting user login", slog.String("email", input.Email))

	user, err := srv.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		srv.metrics.TrackAuthAttempt(attemptLogin, metrics.ResultFailure)
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	accessToken, err := srv.tokenService.Issue(user.Email, 0)
	if err != nil {
		srv.metrics.TrackAuthAttempt(attemptLogin, metrics.ResultFailure)
		srv.log(ctx).Error("Failed to issue access token", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue access token")
	}

	srv.metrics.TrackAuthAttempt(attemptLogin, metrics.ResultSuccess)
	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		AccessToken: accessToken,
		TokenType:   usecase.TokenTypeBearer,
		ExpiresIn:   srv.tokenService.TTL(),
		User:        user,
	}, nil
}

// ResolveToken is recomputed on every request from the current store state and clock.
func (srv *authService) ResolveToken(ctx context.Context, token string) (*entity.User, error) {
	subject, err := srv.tokenService.Verify(token)
	if err != nil {
		return nil, err
	}

	var user *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var findErr error
		user, findErr = repoFactory.UserRepo().FindByEmail(ctx, subject)

		return findErr
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("token subject has no account")
		}

		return nil, errors.Wrap(err, "failed to resolve token subject")
	}

	return user, nil
}
