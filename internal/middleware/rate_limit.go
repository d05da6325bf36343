package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Limiter counts a hit against key and reports whether it is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit throttles scope per caller, falling back to the client IP for
// anonymous requests. Limiter errors let the request through.
func RateLimit(l Limiter, scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if l == nil {
			return next
		}
		return func(c echo.Context) error {
			key := fmt.Sprintf("%s:ip:%s", scope, c.RealIP())
			if id := UserID(c); id != 0 {
				key = fmt.Sprintf("%s:user:%d", scope, id)
			}
			ok, err := l.Allow(c.Request().Context(), key)
			if err != nil {
				log.Printf("rate limit %s: %v", scope, err)
				return next(c)
			}
			if !ok {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
