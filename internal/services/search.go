package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/anonto42/mediashare/backend/internal/apperr"
	"github.com/anonto42/mediashare/backend/internal/models"
	"github.com/anonto42/mediashare/backend/internal/repositories"
)

const (
	SearchLimit       = 20
	MaxSearchQueryLen = 100
)

// SearchService runs user and content searches side by side.
type SearchService struct {
	users    repositories.UserRepository
	contents repositories.ContentRepository
}

func NewSearchService(users repositories.UserRepository, contents repositories.ContentRepository) *SearchService {
	return &SearchService{users: users, contents: contents}
}

// Search returns user matches followed by content matches. A blank query matches nothing.
func (s *SearchService) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return []models.SearchResult{}, nil
	}
	if utf8.RuneCountInString(q) > MaxSearchQueryLen {
		return nil, apperr.Validation("search query is too long")
	}

	ctx, span := tracer.Start(ctx, "SearchService.Search")
	defer span.End()

	var (
		users    []models.UserSummary
		contents []models.ContentDetails
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.users.SearchUsers(gctx, q, SearchLimit)
		return err
	})
	g.Go(func() error {
		var err error
		contents, err = s.contents.SearchContent(gctx, q, SearchLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(users)+len(contents))
	for i := range users {
		results = append(results, models.SearchResult{Type: models.SearchResultUser, User: &users[i]})
	}
	for i := range contents {
		results = append(results, models.SearchResult{Type: models.SearchResultContent, Content: &contents[i]})
	}
	span.SetAttributes(attribute.Int("search.users", len(users)), attribute.Int("search.contents", len(contents)))
	return results, nil
}
