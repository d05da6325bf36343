package validators

import (
	"strings"
	"testing"

	"github.com/anonto42/mediashare/backend/internal/apperr"
	"github.com/anonto42/mediashare/backend/internal/models"
)

func TestValidate(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(models.SigninRequest{Email: "a@example.com", Password: "x"}); err != nil {
		t.Fatalf("valid request: %v", err)
	}

	err := v.Validate(models.SignupRequest{Username: "ab", Email: "nope"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("invalid request: %v, want validation", err)
	}
	msg := apperr.Message(err)
	for _, want := range []string{"username must be at least 3", "email must be a valid", "password is required"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}
