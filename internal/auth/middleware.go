package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ContextKey is the echo context key the authenticated admin is stored under.
const ContextKey = "admin"

// Middleware rejects requests without a valid Authorization Bearer token and
// injects the authenticated admin into the request context.
func Middleware(service *Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
			}

			admin, err := service.VerifyToken(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set(ContextKey, admin)
			return next(c)
		}
	}
}

func bearerToken(headers http.Header) string {
	authz := headers.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authz, prefix))
}
