package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/anonto42/mediashare/backend/internal/models"
	"github.com/anonto42/mediashare/backend/internal/repositories"
	"github.com/anonto42/mediashare/backend/pkg/telemetry"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

var tracer = otel.Tracer("github.com/anonto42/mediashare/backend/internal/services")

// FeedRequest describes one feed page.
type FeedRequest struct {
	Sort        string
	FollowingOf uint // non-zero restricts the feed to authors this user follows
	Cursor      string
	Limit       int
}

// FeedService assembles paginated feeds.
type FeedService struct {
	contents repositories.ContentRepository
	maxLimit int
}

// NewFeedService creates a FeedService. maxLimit <= 0 means MaxPageSize.
func NewFeedService(contents repositories.ContentRepository, maxLimit int) *FeedService {
	if maxLimit <= 0 {
		maxLimit = MaxPageSize
	}
	return &FeedService{contents: contents, maxLimit: maxLimit}
}

// Page returns the page after req.Cursor. HasMore is set when the page came back full.
func (s *FeedService) Page(ctx context.Context, req FeedRequest) (*models.FeedPage, error) {
	ctx, span := tracer.Start(ctx, "FeedService.Page")
	defer span.End()

	mode, err := ParseSortMode(req.Sort)
	if err != nil {
		return nil, err
	}
	cur, err := parseCursor(req.Cursor, mode)
	if err != nil {
		return nil, err
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	audience := "global"
	if req.FollowingOf != 0 {
		audience = "following"
	}
	span.SetAttributes(
		attribute.String("feed.sort", string(mode)),
		attribute.String("feed.audience", audience),
		attribute.Int("feed.limit", limit),
	)

	q := repositories.PageQuery{Sort: mode, FollowerID: req.FollowingOf, Limit: limit}
	cur.apply(&q)
	items, err := s.contents.FindPage(ctx, q)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	telemetry.FeedPages.WithLabelValues(string(mode), audience).Inc()

	if items == nil {
		items = []models.FeedItem{}
	}
	page := &models.FeedPage{Posts: items, HasMore: len(items) == limit}
	if page.HasMore {
		next := encodeCursor(items[len(items)-1], mode)
		page.NextCursor = &next
	}
	return page, nil
}
