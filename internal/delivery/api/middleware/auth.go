package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "contacts/internal/delivery/context"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const bearerScheme = "Bearer"

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthMiddleware resolves bearer tokens to users.
type AuthMiddleware struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// Authenticate rejects the request unless it carries the user's live session
// token. On success the user is available through deliverycontext.GetUserFromEcho
// and deliverycontext.GetUser, and the request logger gains a user_id attribute.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := parseBearer(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return errors.Wrap(domainerrors.ErrUnauthorized, "missing or malformed authorization header")
		}

		ctx := c.Request().Context()

		user, err := m.authUC.Authenticate(ctx, token)
		if err != nil {
			return errors.WithStack(err)
		}

		logger := deliverycontext.GetLoggerOrDefault(ctx, m.logger).With(slog.String("user_id", user.ID.String()))
		ctx = deliverycontext.WithUser(ctx, user)
		ctx = deliverycontext.WithLogger(ctx, logger)
		c.SetRequest(c.Request().WithContext(ctx))
		deliverycontext.SetUser(c, user)

		return next(c)
	}
}

// parseBearer splits "Bearer <token>". The scheme must match exactly.
func parseBearer(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != bearerScheme || token == "" {
		return "", false
	}

	return token, true
}
