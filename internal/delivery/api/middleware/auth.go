package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "notes/internal/delivery/context"
	"notes/internal/domain/entity"
	domainerrors "notes/internal/domain/errors"
	"notes/internal/errors"
	"notes/internal/infra/metrics"
	"notes/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const bearerScheme = "Bearer"

// Rejection reasons, used as metric labels.
const (
	reasonMissing      = "missing_credentials"
	reasonExpired      = "token_expired"
	reasonInvalid      = "token_invalid"
	reasonUserNotFound = "user_not_found"
	reasonError        = "error"
)

// AuthMiddleware is the access guard: it turns a bearer token into the authenticated user.
type AuthMiddleware struct {
	authUC  usecase.AuthUsecase
	metrics *metrics.Metrics
}

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	AuthUsecase usecase.AuthUsecase
	Metrics     *metrics.Metrics `optional:"true"`
}

func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		authUC:  params.AuthUsecase,
		metrics: params.Metrics,
	}
}

// Authenticate rejects the request with 401 unless the Authorization header carries a valid
// bearer token naming an existing user. Handlers behind it always find a user via GetUser.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return m.reject(c, reasonMissing, domainerrors.ErrNotAuthenticated)
		}

		user, err := m.authUC.ResolveToken(c.Request().Context(), token)
		if err != nil {
			return m.reject(c, rejectionReason(err), err)
		}

		c.Set(string(deliverycontext.KeyUser), user)

		ctx := c.Request().Context()
		if logger := deliverycontext.GetLogger(ctx); logger != nil {
			ctx = deliverycontext.WithLogger(ctx, logger.With(slog.String("user_id", user.ID.String())))
			c.SetRequest(c.Request().WithContext(ctx))
		}

		return next(c)
	}
}

func (m *AuthMiddleware) reject(c echo.Context, reason string, err error) error {
	m.metrics.TrackGuardRejection(reason)

	if reason != reasonError {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, bearerScheme)
	}

	return err
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header. The scheme is
// matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}

	return token, true
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domainerrors.ErrTokenExpired):
		return reasonExpired
	case errors.Is(err, domainerrors.ErrTokenInvalid):
		return reasonInvalid
	case errors.Is(err, domainerrors.ErrUserNotFound):
		return reasonUserNotFound
	default:
		return reasonError
	}
}

// GetUser returns the user resolved by Authenticate.
func GetUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(string(deliverycontext.KeyUser)).(*entity.User)

	return user, ok && user != nil
}
