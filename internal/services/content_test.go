package services

import (
	"context"
	"strings"
	"testing"

	"github.com/anonto42/mediashare/backend/internal/apperr"
	"github.com/anonto42/mediashare/backend/internal/models"
	"github.com/anonto42/mediashare/backend/internal/testutil"
)

func upload(name string) *Upload {
	return &Upload{Filename: name, ContentType: "image/jpeg", Size: 4, Body: strings.NewReader("data")}
}

func TestCreatePhotoUsesMediaAsThumbnail(t *testing.T) {
	f := newFixture(t)
	a := testutil.CreateUser(t, f.db, "a")

	got, err := f.content.Create(context.Background(), CreateContentInput{
		AuthorID: a.ID,
		Kind:     models.KindPhoto,
		Title:    "  Sunset ",
		Media:    upload("sunset.jpg"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.Title != "Sunset" || got.AuthorUsername != "a" {
		t.Fatalf("details = %+v", got)
	}
	if got.MediaURL == nil || !strings.HasPrefix(*got.MediaURL, "https://cdn.test/media/") {
		t.Fatalf("media url = %v", got.MediaURL)
	}
	if got.ThumbnailURL == nil || *got.ThumbnailURL != *got.MediaURL {
		t.Fatalf("thumbnail = %v, want media url", got.ThumbnailURL)
	}
	if len(f.blobs.objects) != 1 {
		t.Fatalf("stored %d blobs, want 1", len(f.blobs.objects))
	}
}

func TestCreateVideoThumbnails(t *testing.T) {
	f := newFixture(t)
	a := testutil.CreateUser(t, f.db, "a")
	ctx := context.Background()

	got, err := f.content.Create(ctx, CreateContentInput{AuthorID: a.ID, Kind: models.KindVideo, Title: "clip", Media: upload("clip.mp4")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.ThumbnailURL == nil || *got.ThumbnailURL != VideoPlaceholderThumbnail {
		t.Fatalf("thumbnail = %v, want placeholder", got.ThumbnailURL)
	}

	got, err = f.content.Create(ctx, CreateContentInput{
		AuthorID: a.ID, Kind: models.KindVideo, Title: "clip",
		Media: upload("clip.mp4"), Thumbnail: upload("cover.png"),
	})
	if err != nil {
		t.Fatalf("create with thumbnail: %v", err)
	}
	if got.ThumbnailURL == nil || !strings.Contains(*got.ThumbnailURL, "/thumbnails/") {
		t.Fatalf("thumbnail = %v, want uploaded cover", got.ThumbnailURL)
	}
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	a := testutil.CreateUser(t, f.db, "a")
	ctx := context.Background()

	cases := map[string]CreateContentInput{
		"no title":        {AuthorID: a.ID, Kind: models.KindText, Title: "  "},
		"long title":      {AuthorID: a.ID, Kind: models.KindText, Title: strings.Repeat("x", MaxTitleLength+1)},
		"long desc":       {AuthorID: a.ID, Kind: models.KindText, Title: "t", Description: strings.Repeat("x", MaxDescriptionLength+1)},
		"bad kind":        {AuthorID: a.ID, Kind: "gif", Title: "t"},
		"photo no media":  {AuthorID: a.ID, Kind: models.KindPhoto, Title: "t"},
		"text with media": {AuthorID: a.ID, Kind: models.KindText, Title: "t", Media: upload("x.jpg")},
	}
	for name, in := range cases {
		if _, err := f.content.Create(ctx, in); !apperr.Is(err, apperr.KindValidation) {
			t.Errorf("%s: %v, want validation", name, err)
		}
	}
}

func TestCreateBlobFailureIsUpstream(t *testing.T) {
	f := newFixture(t)
	a := testutil.CreateUser(t, f.db, "a")
	f.blobs.fail = true

	_, err := f.content.Create(context.Background(), CreateContentInput{AuthorID: a.ID, Kind: models.KindPhoto, Title: "t", Media: upload("x.jpg")})
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("blob failure: %v, want upstream", err)
	}
	n, err := f.content.Count(context.Background())
	if err != nil || n != 0 {
		t.Fatalf("count after failed upload = %d, %v", n, err)
	}
}

func TestGetCountsViews(t *testing.T) {
	f := newFixture(t)
	a := testutil.CreateUser(t, f.db, "a")
	post := testutil.CreateContent(t, f.db, a.ID, "hello")
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := f.content.Get(ctx, post.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.ViewCount != want {
			t.Fatalf("view count = %d, want %d", got.ViewCount, want)
		}
	}
	if _, err := f.content.Get(ctx, 999); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("get missing: %v, want not found", err)
	}
}

func TestDeleteByNonAuthorIsNotFound(t *testing.T) {
	f := newFixture(t)
	a := testutil.CreateUser(t, f.db, "a")
	b := testutil.CreateUser(t, f.db, "b")
	post := testutil.CreateContent(t, f.db, a.ID, "hello")
	ctx := context.Background()

	if err := f.content.Delete(ctx, post.ID, b.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("delete by b: %v, want not found", err)
	}
	if _, err := f.content.Get(ctx, post.ID); err != nil {
		t.Fatalf("content gone after rejected delete: %v", err)
	}
	if err := f.content.Delete(ctx, post.ID, a.ID); err != nil {
		t.Fatalf("delete by author: %v", err)
	}
	if _, err := f.content.Get(ctx, post.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("get after delete: %v, want not found", err)
	}
	list, err := f.content.ListByAuthor(ctx, a.ID)
	if err != nil || len(list) != 0 {
		t.Fatalf("list after delete = %+v, %v", list, err)
	}
}
