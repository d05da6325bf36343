package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/anonto42/mediashare/backend/internal/apperr"
	"github.com/anonto42/mediashare/backend/internal/models"
	"github.com/anonto42/mediashare/backend/internal/repositories"
	"github.com/anonto42/mediashare/backend/pkg/storage"
)

const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 2000

	// VideoPlaceholderThumbnail is used for videos uploaded without a thumbnail.
	VideoPlaceholderThumbnail = "/images/video-placeholder.svg"
)

// Upload is one file part of a multipart request.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type CreateContentInput struct {
	AuthorID    uint
	Kind        models.ContentKind
	Title       string
	Description string
	Media       *Upload
	Thumbnail   *Upload
}

// ContentService publishes, reads and deletes content.
type ContentService struct {
	contents repositories.ContentRepository
	counters repositories.CounterStore
	blobs    storage.BlobStore
}

// NewContentService creates a ContentService. blobs may be nil, in which case
// only text posts can be published.
func NewContentService(contents repositories.ContentRepository, counters repositories.CounterStore, blobs storage.BlobStore) *ContentService {
	return &ContentService{contents: contents, counters: counters, blobs: blobs}
}

func (s *ContentService) Create(ctx context.Context, in CreateContentInput) (*models.ContentDetails, error) {
	title := strings.TrimSpace(in.Title)
	switch {
	case in.AuthorID == 0:
		return nil, apperr.Unauthorized("authentication required")
	case !in.Kind.Valid():
		return nil, apperr.Validation(`type must be "photo", "video" or "text"`)
	case title == "":
		return nil, apperr.Validation("title is required")
	case utf8.RuneCountInString(title) > MaxTitleLength:
		return nil, apperr.Validation(fmt.Sprintf("title must be at most %d characters", MaxTitleLength))
	case utf8.RuneCountInString(in.Description) > MaxDescriptionLength:
		return nil, apperr.Validation(fmt.Sprintf("description must be at most %d characters", MaxDescriptionLength))
	case in.Kind != models.KindText && in.Media == nil:
		return nil, apperr.Validation("a media file is required for photo and video posts")
	case in.Kind == models.KindText && in.Media != nil:
		return nil, apperr.Validation("text posts cannot carry a media file")
	}

	content := &models.Content{
		AuthorID:    in.AuthorID,
		Kind:        in.Kind,
		Title:       title,
		Description: in.Description,
	}

	if in.Media != nil {
		mediaURL, err := s.store(ctx, "media", in.AuthorID, in.Media)
		if err != nil {
			return nil, err
		}
		content.MediaURL = &mediaURL

		thumb := mediaURL
		switch {
		case in.Thumbnail != nil:
			if thumb, err = s.store(ctx, "thumbnails", in.AuthorID, in.Thumbnail); err != nil {
				return nil, err
			}
		case in.Kind == models.KindVideo:
			thumb = VideoPlaceholderThumbnail
		}
		content.ThumbnailURL = &thumb
	}

	if err := s.contents.CreateContent(ctx, content); err != nil {
		return nil, err
	}

	details, err := s.contents.GetContentDetails(ctx, content.ID)
	if err != nil {
		log.Printf("content %d stored but author lookup failed: %v", content.ID, err)
		return &models.ContentDetails{Content: *content}, nil
	}
	return details, nil
}

func (s *ContentService) store(ctx context.Context, prefix string, ownerID uint, up *Upload) (string, error) {
	if s.blobs == nil {
		return "", apperr.Upstream("blob storage is not configured", nil)
	}
	contentType := up.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	url, err := s.blobs.Put(ctx, storage.ObjectKey(prefix, ownerID, up.Filename), contentType, up.Body, up.Size)
	if err != nil {
		return "", apperr.Upstream("store "+prefix, err)
	}
	return url, nil
}

// Get returns content details and counts the view. A failed view update is
// logged and the details are still returned.
func (s *ContentService) Get(ctx context.Context, id uint) (*models.ContentDetails, error) {
	details, err := s.contents.GetContentDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := s.counters.Increment(ctx, id, repositories.ViewCount)
	if err != nil {
		log.Printf("view count for content %d: %v", id, err)
		return details, nil
	}
	details.ViewCount = res.Value
	return details, nil
}

// Delete removes id when authorID owns it. Anything else is reported as not found.
func (s *ContentService) Delete(ctx context.Context, id, authorID uint) error {
	deleted, err := s.contents.DeleteContent(ctx, id, authorID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound(fmt.Sprintf("content %d not found", id))
	}
	return nil
}

func (s *ContentService) ListByAuthor(ctx context.Context, authorID uint) ([]models.ContentDetails, error) {
	return s.contents.GetContentByAuthor(ctx, authorID)
}

func (s *ContentService) Count(ctx context.Context) (int64, error) {
	return s.contents.CountContent(ctx)
}
