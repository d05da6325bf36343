package services

import (
	"context"
	"testing"

	"github.com/anonto42/mediashare/backend/internal/apperr"
	"github.com/anonto42/mediashare/backend/internal/models"
	"github.com/anonto42/mediashare/backend/internal/testutil"
)

func TestToggleFollowIsItsOwnInverse(t *testing.T) {
	f := newFixture(t)
	a := testutil.CreateUser(t, f.db, "a")
	b := testutil.CreateUser(t, f.db, "b")
	ctx := context.Background()

	following, err := f.social.ToggleFollow(ctx, a.ID, b.ID)
	if err != nil || !following {
		t.Fatalf("first toggle = %v, %v", following, err)
	}
	following, err = f.social.ToggleFollow(ctx, a.ID, b.ID)
	if err != nil || following {
		t.Fatalf("second toggle = %v, %v", following, err)
	}
	ok, err := f.social.IsFollowing(ctx, a.ID, b.ID)
	if err != nil || ok {
		t.Fatalf("after two toggles is following = %v, %v", ok, err)
	}
}

func TestFollowNotifiesOnlyOnFollow(t *testing.T) {
	f := newFixture(t)
	a := testutil.CreateUser(t, f.db, "a")
	b := testutil.CreateUser(t, f.db, "b")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := f.social.ToggleFollow(ctx, a.ID, b.ID); err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
	}
	inbox := f.inbox(t, b.ID)
	if len(inbox) != 1 || inbox[0].Type != models.NotificationFollow || inbox[0].ReferenceID != nil {
		t.Fatalf("inbox = %+v, want one follow notification without reference", inbox)
	}
}

func TestToggleFollowRejectsSelfAndUnknown(t *testing.T) {
	f := newFixture(t)
	a := testutil.CreateUser(t, f.db, "a")
	ctx := context.Background()

	if _, err := f.social.ToggleFollow(ctx, a.ID, a.ID); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("self follow: %v, want validation", err)
	}
	if _, err := f.social.ToggleFollow(ctx, a.ID, 999); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("unknown followed: %v, want not found", err)
	}
	if n := len(f.inbox(t, a.ID)); n != 0 {
		t.Errorf("rejected follows created %d notifications", n)
	}
}

func TestStatsAndLists(t *testing.T) {
	f := newFixture(t)
	a := testutil.CreateUser(t, f.db, "a")
	b := testutil.CreateUser(t, f.db, "b")
	c := testutil.CreateUser(t, f.db, "c")
	ctx := context.Background()
	for _, pair := range [][2]uint{{a.ID, c.ID}, {b.ID, c.ID}, {c.ID, a.ID}} {
		if _, err := f.social.ToggleFollow(ctx, pair[0], pair[1]); err != nil {
			t.Fatalf("follow %v: %v", pair, err)
		}
	}

	stats, err := f.social.Stats(ctx, c.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.FollowersCount != 2 || stats.FollowingCount != 1 {
		t.Fatalf("stats = %+v, want 2 followers 1 following", stats)
	}

	followers, err := f.social.Followers(ctx, c.ID)
	if err != nil || len(followers) != 2 {
		t.Fatalf("followers = %+v, %v", followers, err)
	}
	following, err := f.social.Following(ctx, c.ID)
	if err != nil || len(following) != 1 || following[0].ID != a.ID {
		t.Fatalf("following = %+v, %v", following, err)
	}
	if _, err := f.social.Stats(ctx, 999); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("stats of unknown user: %v, want not found", err)
	}
}
