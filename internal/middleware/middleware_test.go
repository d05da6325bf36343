package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/mediashare/backend/internal/apperr"
)

func run(t *testing.T, mw echo.MiddlewareFunc, header string) (uint, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var seen uint
	err := mw(func(c echo.Context) error {
		seen = UserID(c)
		return nil
	})(c)
	return seen, err
}

func TestJWTRoundTrip(t *testing.T) {
	v := NewJWTVerifier("secret", time.Hour)
	token, err := v.Issue(42, "a@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	id, err := run(t, Authenticate(v), "Bearer "+token)
	if err != nil || id != 42 {
		t.Fatalf("authenticate = %d, %v", id, err)
	}

	other := NewJWTVerifier("different", time.Hour)
	if _, err := other.Verify(context.Background(), token); err == nil {
		t.Fatal("token accepted under the wrong secret")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	v := NewJWTVerifier("secret", time.Hour)
	v.ttl = -time.Minute
	token, err := v.Issue(1, "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := run(t, Authenticate(v), "Bearer "+token); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expired token: %v, want unauthorized", err)
	}
}

func TestAuthenticateAnonymousAndMalformed(t *testing.T) {
	v := NewJWTVerifier("secret", time.Hour)

	id, err := run(t, Authenticate(v), "")
	if err != nil || id != 0 {
		t.Fatalf("anonymous = %d, %v", id, err)
	}
	for _, h := range []string{"Token abc", "Bearer", "Bearer    "} {
		if _, err := run(t, Authenticate(v), h); !apperr.Is(err, apperr.KindUnauthorized) {
			t.Errorf("header %q: %v, want unauthorized", h, err)
		}
	}
}

type fixedVerifier uint

func (f fixedVerifier) Verify(context.Context, string) (uint, error) {
	if f == 0 {
		return 0, errors.New("nope")
	}
	return uint(f), nil
}

func TestAuthenticateFallsThroughVerifiers(t *testing.T) {
	id, err := run(t, Authenticate(fixedVerifier(0), fixedVerifier(9)), "Bearer x")
	if err != nil || id != 9 {
		t.Fatalf("second verifier = %d, %v", id, err)
	}
}

func TestRequireUser(t *testing.T) {
	if _, err := run(t, RequireUser, ""); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("anonymous: %v, want unauthorized", err)
	}
}

type countingLimiter struct {
	limit int
	hits  map[string]int
	err   error
}

func (l *countingLimiter) Allow(_ context.Context, key string) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	l.hits[key]++
	return l.hits[key] <= l.limit, nil
}

func TestRateLimit(t *testing.T) {
	l := &countingLimiter{limit: 2, hits: map[string]int{}}
	mw := RateLimit(l, "like")
	for i := 0; i < 2; i++ {
		if _, err := run(t, mw, ""); err != nil {
			t.Fatalf("hit %d: %v", i, err)
		}
	}
	_, err := run(t, mw, "")
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusTooManyRequests {
		t.Fatalf("third hit: %v, want 429", err)
	}

	l.err = errors.New("redis down")
	if _, err := run(t, mw, ""); err != nil {
		t.Fatalf("limiter failure should let requests through: %v", err)
	}
	if _, err := run(t, RateLimit(nil, "like"), ""); err != nil {
		t.Fatalf("nil limiter: %v", err)
	}
}
