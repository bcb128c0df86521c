// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"notes/internal/domain/entity"
)

// TokenTypeBearer is the token_type reported with every issued access token.
const TokenTypeBearer = "bearer"

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// LoginOutput carries the access token issued after a successful login.
type LoginOutput struct {
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
	User        *entity.User
}

// AuthUsecase covers registration, credential checks and resolving bearer tokens to users.
type AuthUsecase interface {
	// Register creates a user with a hashed password. A taken email fails with
	// domainerrors.ErrEmailTaken and creates nothing.
	Register(ctx context.Context, input RegisterInput) (*entity.User, error)

	// Authenticate checks an email and password pair. An unknown email and a wrong password
	// fail with the same domainerrors.ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*entity.User, error)

	// Login authenticates and issues an access token whose subject is the user's email.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// ResolveToken verifies a bearer token and loads the user it names. Failures are
	// domainerrors.ErrTokenExpired, ErrTokenInvalid or ErrUserNotFound.
	ResolveToken(ctx context.Context, token string) (*entity.User, error)
}
