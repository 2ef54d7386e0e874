package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"catalog-service/app/domain"
	"catalog-service/app/port"
)

// AuthMiddleware guards routes behind bearer token authentication
type AuthMiddleware struct {
	access port.AccessUsecase
	logger *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(access port.AccessUsecase, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		access: access,
		logger: logger,
	}
}

// RequireAuth authenticates the bearer token and, when roles are given,
// authorizes the caller against them. The caller identity is stored in the
// request context for downstream handlers.
func (m *AuthMiddleware) RequireAuth(allowed ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ac, err := m.access.Authenticate(c.Request().Context(), bearerToken(c))
			if err != nil {
				m.logger.Warn("authentication failed",
					"path", c.Request().URL.Path,
					"ip", c.RealIP(),
					"error", err)
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"message": "authentication required",
				})
			}

			if len(allowed) > 0 {
				if err := m.access.Authorize(ac, allowed...); err != nil {
					return c.JSON(http.StatusForbidden, map[string]interface{}{
						"success": false,
						"message": "access denied",
					})
				}
			}

			ctx := domain.WithAuthContext(c.Request().Context(), ac)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}
