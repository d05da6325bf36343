package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/mediashare/backend/internal/apperr"
	"gorm.io/gorm"
)

// CounterField names one of the counters kept on a content row.
type CounterField string

const (
	LikeCount CounterField = "like_count"
	ViewCount CounterField = "view_count"
)

func (f CounterField) valid() bool {
	return f == LikeCount || f == ViewCount
}

// CounterResult is the post-update counter value and the owning author.
type CounterResult struct {
	Value    int64 `json:"value"`
	AuthorID uint  `json:"author_id"`
}

// CounterStore applies atomic deltas to content counters.
type CounterStore interface {
	Increment(ctx context.Context, contentID uint, field CounterField) (CounterResult, error)
	Decrement(ctx context.Context, contentID uint, field CounterField) (CounterResult, error)
}

// PostgresCounterStore implements CounterStore with single-statement updates
type PostgresCounterStore struct {
	db *gorm.DB
}

// NewPostgresCounterStore creates a new PostgresCounterStore
func NewPostgresCounterStore(db *gorm.DB) *PostgresCounterStore {
	return &PostgresCounterStore{db: db}
}

func (s *PostgresCounterStore) Increment(ctx context.Context, contentID uint, field CounterField) (CounterResult, error) {
	return s.apply(ctx, contentID, field, fmt.Sprintf("%s + 1", field))
}

// Decrement never takes a counter below zero.
func (s *PostgresCounterStore) Decrement(ctx context.Context, contentID uint, field CounterField) (CounterResult, error) {
	return s.apply(ctx, contentID, field, fmt.Sprintf("CASE WHEN %[1]s > 0 THEN %[1]s - 1 ELSE 0 END", field))
}

func (s *PostgresCounterStore) apply(ctx context.Context, contentID uint, field CounterField, expr string) (CounterResult, error) {
	if !field.valid() {
		return CounterResult{}, apperr.Validation(fmt.Sprintf("unknown counter %q", field))
	}
	query := fmt.Sprintf("UPDATE contents SET %s = %s WHERE id = ? RETURNING %s AS value, author_id", field, expr, field)

	var rows []CounterResult
	if err := s.db.WithContext(ctx).Raw(query, contentID).Scan(&rows).Error; err != nil {
		return CounterResult{}, apperr.Upstream("update "+string(field), err)
	}
	if len(rows) == 0 {
		return CounterResult{}, apperr.NotFound(fmt.Sprintf("content %d not found", contentID))
	}
	return rows[0], nil
}
