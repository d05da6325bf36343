package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/mediashare/backend/internal/apperr"
)

const userIDKey = "userID"

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (uint, error)
}

// Authenticate resolves an optional bearer token to the caller's user id.
// Requests without an Authorization header pass through anonymously; a
// header that no verifier accepts is rejected.
func Authenticate(verifiers ...TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return apperr.Unauthorized("Authorization header must be in Bearer format")
			}
			token := strings.TrimSpace(parts[1])

			for _, v := range verifiers {
				if id, err := v.Verify(c.Request().Context(), token); err == nil && id != 0 {
					c.Set(userIDKey, id)
					return next(c)
				}
			}
			return apperr.Unauthorized("invalid or expired token")
		}
	}
}

// RequireUser rejects anonymous requests.
func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if UserID(c) == 0 {
			return apperr.Unauthorized("authentication required")
		}
		return next(c)
	}
}

// UserID returns the authenticated caller, or 0.
func UserID(c echo.Context) uint {
	id, _ := c.Get(userIDKey).(uint)
	return id
}
