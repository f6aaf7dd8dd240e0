package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const bearerPrefix = "bearer "

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
	Logger       *slog.Logger
}

// AuthMiddleware is the authorization gate in front of protected routes.
type AuthMiddleware struct {
	tokenService service.TokenService
	logger       *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// Authenticate verifies the Authorization header before the wrapped handler runs.
// The handler is never invoked unless verification succeeded, and it sees exactly
// the principal named by the token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)

		token := extractToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if token == "" {
			logger.Warn("Request denied",
				slog.String("reason", domainerrors.MissingToken.String()),
				slog.String("path", c.Request().URL.Path))

			return domainerrors.NewAuthorizationError(domainerrors.MissingToken, nil)
		}

		principalID, err := m.tokenService.Verify(token)
		if err != nil {
			logger.Warn("Request denied",
				slog.String("reason", domainerrors.InvalidToken.String()),
				slog.String("verification", verificationReason(err)),
				slog.String("path", c.Request().URL.Path))

			return domainerrors.NewAuthorizationError(domainerrors.InvalidToken, err)
		}

		deliverycontext.SetPrincipalID(c, principalID)
		c.SetRequest(c.Request().WithContext(deliverycontext.WithLogger(
			c.Request().Context(),
			logger.With(slog.String("principal_id", principalID.String())),
		)))

		return next(c)
	}
}

// GetPrincipalID returns the principal attached by Authenticate.
func GetPrincipalID(c echo.Context) (uuid.UUID, bool) {
	return deliverycontext.GetPrincipalID(c)
}

// extractToken accepts both a bare token and the "Bearer <token>" form.
// A scheme with nothing after it carries no token.
func extractToken(header string) string {
	header = strings.TrimSpace(header)
	if strings.EqualFold(header, strings.TrimSpace(bearerPrefix)) {
		return ""
	}
	if len(header) >= len(bearerPrefix) && strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		header = strings.TrimSpace(header[len(bearerPrefix):])
	}

	return header
}

func verificationReason(err error) string {
	var verifyErr *domainerrors.VerificationError
	if errors.As(err, &verifyErr) {
		return verifyErr.Reason.String()
	}

	return "unknown"
}
