package services

import (
	"context"
	"strings"
	"testing"

	"github.com/anonto42/mediashare/backend/internal/apperr"
	"github.com/anonto42/mediashare/backend/internal/models"
	"github.com/anonto42/mediashare/backend/internal/testutil"
)

func TestSearchUsersThenContent(t *testing.T) {
	f := newFixture(t)
	sam := testutil.CreateUser(t, f.db, "sunnysam")
	other := testutil.CreateUser(t, f.db, "other")
	testutil.CreateContent(t, f.db, other.ID, "Sunny afternoon")
	testutil.CreateContent(t, f.db, other.ID, "rainy day")

	results, err := f.search.Search(context.Background(), "SUNNY")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	// sunnysam's posts would also match by author name; there are none.
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2: %+v", len(results), results)
	}
	if results[0].Type != models.SearchResultUser || results[0].User.ID != sam.ID {
		t.Fatalf("first result = %+v, want user sunnysam", results[0])
	}
	if results[1].Type != models.SearchResultContent || results[1].Content.Title != "Sunny afternoon" {
		t.Fatalf("second result = %+v, want the sunny post", results[1])
	}
}

func TestSearchBlankAndTooLong(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.db, "a")

	results, err := f.search.Search(context.Background(), "   ")
	if err != nil || results == nil || len(results) != 0 {
		t.Fatalf("blank search = %+v, %v", results, err)
	}
	if _, err := f.search.Search(context.Background(), strings.Repeat("q", MaxSearchQueryLen+1)); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("long query: %v, want validation", err)
	}
}
