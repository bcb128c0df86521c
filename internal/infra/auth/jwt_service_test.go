package auth

import (
	"strings"
	"testing"
	"time"

	"notes/config"
	domainerrors "notes/internal/domain/errors"
	"notes/internal/domain/service"
	"notes/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_access_secret_key_very_long_for_testing"

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestConfig(secret string) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			Algorithm:                "HS256",
			AccessTokenExpireMinutes: 60,
		},
	}
	cfg.SecretKey.Access = secret

	return cfg
}

func newTestJWTService(t *testing.T, secret string, clock service.Clock) service.TokenService {
	t.Helper()

	svc, err := NewJWTService(newTestConfig(secret), clock)
	require.NoError(t, err)

	return svc
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestJWTService(t, testSecret, clock)

	token, err := svc.Issue("a@x.com", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
}

func TestJWTService_ExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: issuedAt}
	svc := newTestJWTService(t, testSecret, clock)
	ttl := 10 * time.Minute

	token, err := svc.Issue("a@x.com", ttl)
	require.NoError(t, err)

	validTimes := []time.Time{
		issuedAt,
		issuedAt.Add(time.Minute),
		issuedAt.Add(ttl - time.Second),
	}
	for _, now := range validTimes {
		clock.now = now
		_, err := svc.Verify(token)
		assert.NoError(t, err, "token should be valid at %s", now)
	}

	expiredTimes := []time.Time{
		issuedAt.Add(ttl),
		issuedAt.Add(ttl + time.Second),
		issuedAt.Add(24 * time.Hour),
	}
	for _, now := range expiredTimes {
		clock.now = now
		_, err := svc.Verify(token)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired), "token should be expired at %s", now)
		assert.False(t, errors.Is(err, domainerrors.ErrTokenInvalid))
	}
}

func TestJWTService_SubSecondIssueTimeKeepsFullTTL(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 900_000_000, time.UTC)
	clock := &fakeClock{now: issuedAt}
	svc := newTestJWTService(t, testSecret, clock)

	token, err := svc.Issue("a@x.com", time.Minute)
	require.NoError(t, err)

	clock.now = issuedAt.Truncate(time.Second).Add(time.Minute - time.Millisecond)
	_, err = svc.Verify(token)
	assert.NoError(t, err)
}

func TestJWTService_DefaultTTL(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: issuedAt}
	svc := newTestJWTService(t, testSecret, clock)
	assert.Equal(t, time.Hour, svc.TTL())

	token, err := svc.Issue("a@x.com", 0)
	require.NoError(t, err)

	clock.now = issuedAt.Add(59 * time.Minute)
	_, err = svc.Verify(token)
	assert.NoError(t, err)

	clock.now = issuedAt.Add(time.Hour)
	_, err = svc.Verify(token)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired))
}

func TestJWTService_DefaultTTLIsSevenDays(t *testing.T) {
	cfg := &config.Config{}
	cfg.SecretKey.Access = testSecret

	svc, err := NewJWTService(cfg, &fakeClock{})
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, svc.TTL())
}

func TestJWTService_DifferentSecretRejected(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	signer := newTestJWTService(t, "secret-A", clock)
	verifier := newTestJWTService(t, "secret-B", clock)

	token, err := signer.Issue("a@x.com", time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestJWTService_ExpiredTokenWithBadSignatureIsInvalid(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	signer := newTestJWTService(t, "secret-A", clock)
	verifier := newTestJWTService(t, "secret-B", clock)

	token, err := signer.Issue("a@x.com", time.Minute)
	require.NoError(t, err)

	clock.now = clock.now.Add(time.Hour)
	_, err = verifier.Verify(token)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
	assert.False(t, errors.Is(err, domainerrors.ErrTokenExpired))
}

func TestJWTService_TamperedPayloadRejected(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestJWTService(t, testSecret, clock)

	token, err := svc.Issue("a@x.com", time.Hour)
	require.NoError(t, err)

	other, err := svc.Issue("b@x.com", time.Hour)
	require.NoError(t, err)

	// Splice the payload of one token onto the signature of another.
	parts := strings.Split(token, ".")
	otherParts := strings.Split(other, ".")
	spliced := parts[0] + "." + otherParts[1] + "." + parts[2]

	_, err = svc.Verify(spliced)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestJWTService_UnexpectedAlgorithmRejected(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(t, testSecret, &fakeClock{now: now})

	claims := jwt.RegisteredClaims{
		Subject:   "a@x.com",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Verify(hs512)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Verify(none)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestJWTService_MissingClaimsRejected(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(t, testSecret, &fakeClock{now: now})

	tests := []struct {
		name   string
		claims jwt.RegisteredClaims
	}{
		{
			name:   "missing subject",
			claims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
		},
		{
			name:   "missing expiry",
			claims: jwt.RegisteredClaims{Subject: "a@x.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tt.claims).SignedString([]byte(testSecret))
			require.NoError(t, err)

			_, err = svc.Verify(token)
			assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
		})
	}
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc := newTestJWTService(t, testSecret, &fakeClock{now: time.Now()})

	for _, token := range []string{"", "clearly-not-a-jwt-token-format", "a.b.c", "a.b"} {
		subject, err := svc.Verify(token)
		assert.Empty(t, subject)
		assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid), "token %q", token)
	}
}

func TestJWTService_EmptySecret(t *testing.T) {
	svc, err := NewJWTService(newTestConfig(""), &fakeClock{})
	require.Error(t, err)
	assert.Nil(t, svc)
	assert.True(t, errors.Is(err, domainerrors.ErrConfigurationMissing))
}

func TestJWTService_UnsupportedAlgorithm(t *testing.T) {
	cfg := newTestConfig(testSecret)
	cfg.Auth.Algorithm = "RS256"

	svc, err := NewJWTService(cfg, &fakeClock{})
	require.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "unsupported token signing algorithm")
}

func TestJWTService_ConfiguredAlgorithmIsUsed(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cfg := newTestConfig(testSecret)
	cfg.Auth.Algorithm = "HS512"

	svc, err := NewJWTService(cfg, &fakeClock{now: now})
	require.NoError(t, err)

	token, err := svc.Issue("a@x.com", time.Hour)
	require.NoError(t, err)

	parsed, _, err := jwt.NewParser().ParseUnverified(token, &jwt.RegisteredClaims{})
	require.NoError(t, err)
	assert.Equal(t, "HS512", parsed.Method.Alg())
}
