package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/anonto42/mediashare/backend/internal/apperr"
	"github.com/anonto42/mediashare/backend/internal/models"
	"github.com/anonto42/mediashare/backend/internal/repositories"
	"github.com/anonto42/mediashare/backend/pkg/telemetry"
)

// MaxCommentLength is measured in runes.
const MaxCommentLength = 5000

type LikeAction string

const (
	ActionLike   LikeAction = "like"
	ActionUnlike LikeAction = "unlike"
)

// LikeResult echoes the applied action and the resulting like count.
type LikeResult struct {
	Success   bool       `json:"success"`
	Action    LikeAction `json:"action"`
	LikeCount int64      `json:"like_count"`
}

// InteractionService applies likes and comments to content.
type InteractionService struct {
	counters      repositories.CounterStore
	contents      repositories.ContentRepository
	comments      repositories.CommentRepository
	notifications *NotificationService
}

func NewInteractionService(counters repositories.CounterStore, contents repositories.ContentRepository,
	comments repositories.CommentRepository, notifications *NotificationService) *InteractionService {
	return &InteractionService{
		counters:      counters,
		contents:      contents,
		comments:      comments,
		notifications: notifications,
	}
}

// ToggleLike applies action to contentID's like counter. An empty action means like.
// No per-user ledger is kept, so the caller decides which way the toggle goes.
func (s *InteractionService) ToggleLike(ctx context.Context, contentID, userID uint, action LikeAction) (*LikeResult, error) {
	if contentID == 0 {
		return nil, apperr.Validation("content id is required")
	}
	if action == "" {
		action = ActionLike
	}

	var (
		res repositories.CounterResult
		err error
	)
	switch action {
	case ActionLike:
		res, err = s.counters.Increment(ctx, contentID, repositories.LikeCount)
	case ActionUnlike:
		res, err = s.counters.Decrement(ctx, contentID, repositories.LikeCount)
	default:
		return nil, apperr.Validation(`action must be "like" or "unlike"`)
	}
	if err != nil {
		return nil, err
	}
	telemetry.Interactions.WithLabelValues(string(action)).Inc()

	if action == ActionLike {
		ref := contentID
		s.notifications.Notify(ctx, res.AuthorID, userID, models.NotificationLike, &ref)
	}
	return &LikeResult{Success: true, Action: action, LikeCount: res.Value}, nil
}

// CreateComment stores a comment and notifies the content's author.
func (s *InteractionService) CreateComment(ctx context.Context, contentID, authorID uint, body string) (*models.CommentDetails, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperr.Validation("comment body is required")
	}
	if utf8.RuneCountInString(body) > MaxCommentLength {
		return nil, apperr.Validation(fmt.Sprintf("comment body must be at most %d characters", MaxCommentLength))
	}

	content, err := s.contents.GetContentByID(ctx, contentID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{ContentID: contentID, AuthorID: authorID, Body: body}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	telemetry.Interactions.WithLabelValues("comment").Inc()

	ref := contentID
	s.notifications.Notify(ctx, content.AuthorID, authorID, models.NotificationComment, &ref)

	details, err := s.comments.GetCommentDetails(ctx, comment.ID)
	if err != nil {
		log.Printf("comment %d stored but author lookup failed: %v", comment.ID, err)
		return &models.CommentDetails{Comment: *comment}, nil
	}
	return details, nil
}

// ListComments returns contentID's comments oldest first.
func (s *InteractionService) ListComments(ctx context.Context, contentID uint) ([]models.CommentDetails, error) {
	if _, err := s.contents.GetContentByID(ctx, contentID); err != nil {
		return nil, err
	}
	return s.comments.GetCommentsByContentID(ctx, contentID)
}
