package services

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/anonto42/mediashare/backend/internal/apperr"
	"github.com/anonto42/mediashare/backend/internal/models"
	"github.com/anonto42/mediashare/backend/internal/repositories"
	"github.com/anonto42/mediashare/backend/internal/testutil"
)

func pageIDs(p *models.FeedPage) []uint {
	out := []uint{}
	for _, it := range p.Posts {
		out = append(out, it.ID)
	}
	return out
}

func sameIDs(a, b []uint) bool {
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func TestFeedPaginationNewest(t *testing.T) {
	f := newFixture(t)
	alice := testutil.CreateUser(t, f.db, "alice")
	var ids []uint
	for i := 1; i <= 5; i++ {
		ids = append(ids, testutil.CreateContent(t, f.db, alice.ID, fmt.Sprintf("p%d", i)).ID)
	}
	ctx := context.Background()

	want := [][]uint{{ids[4], ids[3]}, {ids[2], ids[1]}, {ids[0]}}
	wantMore := []bool{true, true, false}
	cursor := ""
	for i := range want {
		page, err := f.feed.Page(ctx, FeedRequest{Cursor: cursor, Limit: 2})
		if err != nil {
			t.Fatalf("page %d: %v", i, err)
		}
		if !sameIDs(pageIDs(page), want[i]) {
			t.Fatalf("page %d = %v, want %v", i, pageIDs(page), want[i])
		}
		if page.HasMore != wantMore[i] {
			t.Fatalf("page %d hasMore = %v, want %v", i, page.HasMore, wantMore[i])
		}
		if page.HasMore != (page.NextCursor != nil) {
			t.Fatalf("page %d: nextCursor %v disagrees with hasMore", i, page.NextCursor)
		}
		if page.NextCursor != nil {
			cursor = *page.NextCursor
		}
	}
}

func TestFeedFollowingOnly(t *testing.T) {
	f := newFixture(t)
	u := testutil.CreateUser(t, f.db, "u")
	a := testutil.CreateUser(t, f.db, "a")
	b := testutil.CreateUser(t, f.db, "b")
	testutil.Follow(t, f.db, u.ID, a.ID)
	fromA := testutil.CreateContent(t, f.db, a.ID, "by a")
	testutil.CreateContent(t, f.db, b.ID, "by b")

	page, err := f.feed.Page(context.Background(), FeedRequest{FollowingOf: u.ID})
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if !sameIDs(pageIDs(page), []uint{fromA.ID}) {
		t.Fatalf("following feed = %v, want [%d]", pageIDs(page), fromA.ID)
	}
	if page.HasMore {
		t.Fatal("short page reported hasMore")
	}
}

// Walking every page must yield each row exactly once, in sort order.
func TestFeedPagesCoverEveryRowOnce(t *testing.T) {
	f := newFixture(t)
	alice := testutil.CreateUser(t, f.db, "alice")
	counters := repositories.NewPostgresCounterStore(f.db)
	ctx := context.Background()

	likes := []int{2, 0, 5, 2, 1, 0, 5, 3, 2}
	views := []int{1, 4, 4, 0, 2, 9, 1, 1, 4}
	type row struct {
		id          uint
		like, views int
	}
	var rows []row
	for i := range likes {
		c := testutil.CreateContent(t, f.db, alice.ID, fmt.Sprintf("p%d", i))
		for j := 0; j < likes[i]; j++ {
			if _, err := counters.Increment(ctx, c.ID, repositories.LikeCount); err != nil {
				t.Fatal(err)
			}
		}
		for j := 0; j < views[i]; j++ {
			if _, err := counters.Increment(ctx, c.ID, repositories.ViewCount); err != nil {
				t.Fatal(err)
			}
		}
		rows = append(rows, row{c.ID, likes[i], views[i]})
	}

	expected := func(key func(row) int) []uint {
		sorted := append([]row(nil), rows...)
		sort.Slice(sorted, func(i, j int) bool {
			if key(sorted[i]) != key(sorted[j]) {
				return key(sorted[i]) > key(sorted[j])
			}
			return sorted[i].id > sorted[j].id
		})
		out := []uint{}
		for _, r := range sorted {
			out = append(out, r.id)
		}
		return out
	}
	wants := map[string][]uint{
		"newest":      expected(func(r row) int { return int(r.id) }),
		"popular":     expected(func(r row) int { return r.like }),
		"most_viewed": expected(func(r row) int { return r.views }),
	}

	for mode, want := range wants {
		for limit := 1; limit <= len(rows)+1; limit++ {
			var got []uint
			cursor := ""
			for pages := 0; pages <= len(rows)+1; pages++ {
				page, err := f.feed.Page(ctx, FeedRequest{Sort: mode, Cursor: cursor, Limit: limit})
				if err != nil {
					t.Fatalf("%s limit %d: %v", mode, limit, err)
				}
				got = append(got, pageIDs(page)...)
				if !page.HasMore {
					break
				}
				cursor = *page.NextCursor
			}
			if !sameIDs(got, want) {
				t.Fatalf("%s limit %d: walked %v, want %v", mode, limit, got, want)
			}
		}
	}
}

func TestFeedLimitIsClamped(t *testing.T) {
	f := newFixture(t)
	f.feed = NewFeedService(repositories.NewPostgresContentRepository(f.db), 3)
	alice := testutil.CreateUser(t, f.db, "alice")
	for i := 0; i < 5; i++ {
		testutil.CreateContent(t, f.db, alice.ID, fmt.Sprintf("p%d", i))
	}

	page, err := f.feed.Page(context.Background(), FeedRequest{Limit: 500})
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if len(page.Posts) != 3 || !page.HasMore {
		t.Fatalf("got %d posts hasMore=%v, want 3 and true", len(page.Posts), page.HasMore)
	}
}

func TestFeedRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.feed.Page(ctx, FeedRequest{Sort: "random"}); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("unknown sort: %v, want validation", err)
	}
	if _, err := f.feed.Page(ctx, FeedRequest{Cursor: "nope"}); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("bad cursor: %v, want validation", err)
	}
}

func TestFeedEmptyPage(t *testing.T) {
	f := newFixture(t)
	page, err := f.feed.Page(context.Background(), FeedRequest{})
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if page.Posts == nil || len(page.Posts) != 0 || page.HasMore || page.NextCursor != nil {
		t.Fatalf("empty feed = %+v", page)
	}
}
