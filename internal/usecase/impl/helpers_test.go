package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"notes/config"
	"notes/internal/domain/entity"
	"notes/internal/domain/repository"
	"notes/internal/domain/service"
	"notes/internal/infra/auth"
	"notes/internal/infra/persistence/memory"
	"notes/internal/usecase"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "usecase-test-secret"

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

// fixture wires the use cases over the memory store with real bcrypt and JWT adapters.
type fixture struct {
	clock     *testClock
	txManager repository.TransactionManager
	tokens    service.TokenService
	auth      usecase.AuthUsecase
	notes     usecase.NoteUsecase
	account   usecase.AccountUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := &testClock{now: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)}
	txManager := memory.NewTransactionManager(memory.NewStore(clock))

	cfg := &config.Config{Auth: &config.AuthConfig{Algorithm: "HS256", AccessTokenExpireMinutes: 30}}
	cfg.SecretKey.Access = testSecret

	tokens, err := auth.NewJWTService(cfg, clock)
	require.NoError(t, err)

	logger := newDiscardLogger()

	return &fixture{
		clock:     clock,
		txManager: txManager,
		tokens:    tokens,
		auth: NewAuthService(AuthServiceParams{
			TxManager:    txManager,
			Hasher:       auth.NewBcryptHasherWithCost(bcrypt.MinCost),
			TokenService: tokens,
			Logger:       logger,
		}),
		notes: NewNoteService(NoteServiceParams{
			TxManager: txManager,
			Logger:    logger,
		}),
		account: NewAccountService(AccountServiceParams{
			TxManager: txManager,
			Logger:    logger,
		}),
	}
}

func (f *fixture) register(t *testing.T, name, email, password string) *entity.User {
	t.Helper()

	user, err := f.auth.Register(context.Background(), usecase.RegisterInput{
		Name:     name,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)

	return user
}
