// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"notes/config"
	domainerrors "notes/internal/domain/errors"
	"notes/internal/domain/service"
	"notes/internal/errors"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte            // Secret key for signing access tokens.
	method jwt.SigningMethod // The only algorithm accepted on verification.
	ttl    time.Duration     // Default time-to-live for access tokens.
	clock  service.Clock
}

// NewJWTService is the constructor for jwtService.
// A missing secret is fatal: the service refuses to start rather than sign with an empty key.
func NewJWTService(cfg *config.Config, clock service.Clock) (service.TokenService, error) {
	if cfg == nil || cfg.SecretKey.Access == "" {
		return nil, domainerrors.ErrConfigurationMissing.WrapMessage("secretKey.access must be provided")
	}

	algorithm := config.DefaultAlgorithm
	if cfg.Auth != nil && cfg.Auth.Algorithm != "" {
		algorithm = cfg.Auth.Algorithm
	}

	method, err := hmacMethod(algorithm)
	if err != nil {
		return nil, err
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Access),
		method: method,
		ttl:    cfg.Auth.AccessTokenTTL(),
		clock:  clock,
	}, nil
}

func hmacMethod(algorithm string) (jwt.SigningMethod, error) {
	switch algorithm {
	case jwt.SigningMethodHS256.Alg():
		return jwt.SigningMethodHS256, nil
	case jwt.SigningMethodHS384.Alg():
		return jwt.SigningMethodHS384, nil
	case jwt.SigningMethodHS512.Alg():
		return jwt.SigningMethodHS512, nil
	default:
		return nil, errors.Errorf("unsupported token signing algorithm %q", algorithm)
	}
}

// Issue creates a signed token whose subject is the user's email.
func (s *jwtService) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.ttl
	}

	// NumericDate has second precision; truncating keeps exp exactly iat+ttl.
	issuedAt := s.clock.Now().Truncate(time.Second)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign access token")
	}

	return signed, nil
}

// Verify checks the signature first and only then reads the claims.
func (s *jwtService) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", errors.Wrap(domainerrors.ErrTokenExpired, err.Error())
		}

		return "", errors.Wrap(domainerrors.ErrTokenInvalid, err.Error())
	}

	if claims.Subject == "" {
		return "", domainerrors.ErrTokenInvalid.WrapMessage("token has no subject")
	}

	return claims.Subject, nil
}

// TTL returns the configured duration for access tokens.
func (s *jwtService) TTL() time.Duration {
	return s.ttl
}
