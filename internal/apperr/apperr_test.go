package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("toggle like: %w", NotFound("content not found"))
	if KindOf(err) != KindNotFound || !Is(err, KindNotFound) {
		t.Fatalf("KindOf(%v) = %s", err, KindOf(err))
	}
	if KindOf(errors.New("boom")) != KindUpstream {
		t.Fatal("plain errors should be upstream")
	}
}

func TestMessageHidesUpstreamCause(t *testing.T) {
	err := Upstream("query feed", errors.New("pq: connection refused"))
	if got := Message(err); got != "internal server error" {
		t.Fatalf("Message = %q", got)
	}
	if !errors.Is(err, errors.Unwrap(err)) || errors.Unwrap(err) == nil {
		t.Fatal("upstream errors should unwrap to their cause")
	}
	if got := Message(Validation("title is required")); got != "title is required" {
		t.Fatalf("Message = %q", got)
	}
}

func TestStatusRoundTrip(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:   http.StatusBadRequest,
		KindNotFound:     http.StatusNotFound,
		KindUnauthorized: http.StatusUnauthorized,
		KindForbidden:    http.StatusForbidden,
		KindConflict:     http.StatusConflict,
		KindUpstream:     http.StatusInternalServerError,
	}
	for kind, status := range cases {
		if got := Status(kind); got != status {
			t.Errorf("Status(%s) = %d, want %d", kind, got, status)
		}
		if got := KindForStatus(status); got != kind {
			t.Errorf("KindForStatus(%d) = %s, want %s", status, got, kind)
		}
	}
	if KindForStatus(http.StatusTooManyRequests) != KindValidation {
		t.Error("other 4xx codes should map to validation")
	}
}
