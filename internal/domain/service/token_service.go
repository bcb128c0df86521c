package service

import "time"

// TokenService issues and verifies signed, self-contained access tokens.
type TokenService interface {
	// Issue signs a token for subject that expires ttl after issuance.
	// A non-positive ttl selects the configured default.
	Issue(subject string, ttl time.Duration) (string, error)

	// Verify checks signature and expiry and returns the subject claim.
	// It fails with domainerrors.ErrTokenExpired once the expiry is reached and
	// domainerrors.ErrTokenInvalid for anything else.
	Verify(token string) (string, error)

	// TTL returns the default token lifetime.
	TTL() time.Duration
}
