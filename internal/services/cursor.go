package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/anonto42/mediashare/backend/internal/apperr"
	"github.com/anonto42/mediashare/backend/internal/models"
	"github.com/anonto42/mediashare/backend/internal/repositories"
)

// cursor is the position of the last row of a page.
// key is nil for newest, and for a bare id on a keyed sort.
type cursor struct {
	id  uint
	key *int64
}

// ParseSortMode accepts the feed sort names. Empty means newest.
func ParseSortMode(s string) (models.SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "newest":
		return models.SortNewest, nil
	case "popular":
		return models.SortPopular, nil
	case "most_viewed", "most-viewed", "mostviewed":
		return models.SortMostViewed, nil
	default:
		return "", apperr.Validation(fmt.Sprintf("unknown sort %q", s))
	}
}

// parseCursor reads "<id>" or, for popular and most_viewed, "<key>_<id>".
func parseCursor(raw string, mode models.SortMode) (cursor, error) {
	if raw == "" {
		return cursor{}, nil
	}
	invalid := apperr.Validation(fmt.Sprintf("invalid cursor %q", raw))

	keyPart, idPart, compound := strings.Cut(raw, "_")
	if !compound {
		idPart = keyPart
	}
	id, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil || id == 0 {
		return cursor{}, invalid
	}
	c := cursor{id: uint(id)}
	if !compound {
		return c, nil
	}
	if mode == models.SortNewest {
		return cursor{}, invalid
	}
	key, err := strconv.ParseInt(keyPart, 10, 64)
	if err != nil || key < 0 {
		return cursor{}, invalid
	}
	c.key = &key
	return c, nil
}

// encodeCursor returns the cursor that resumes after item.
func encodeCursor(item models.FeedItem, mode models.SortMode) string {
	switch mode {
	case models.SortPopular:
		return fmt.Sprintf("%d_%d", item.LikeCount, item.ID)
	case models.SortMostViewed:
		return fmt.Sprintf("%d_%d", item.ViewCount, item.ID)
	default:
		return strconv.FormatUint(uint64(item.ID), 10)
	}
}

func (c cursor) apply(q *repositories.PageQuery) {
	q.CursorID = c.id
	q.CursorKey = c.key
}
