package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/anonto42/mediashare/backend/internal/apperr"
	"github.com/anonto42/mediashare/backend/internal/models"
	"github.com/anonto42/mediashare/backend/internal/repositories"
	"github.com/anonto42/mediashare/backend/pkg/telemetry"
)

// SocialService maintains the follow graph.
type SocialService struct {
	follows       repositories.FollowRepository
	users         repositories.UserRepository
	notifications *NotificationService
}

func NewSocialService(follows repositories.FollowRepository, users repositories.UserRepository,
	notifications *NotificationService) *SocialService {
	return &SocialService{follows: follows, users: users, notifications: notifications}
}

// ToggleFollow flips the follow edge and reports whether it exists afterwards.
func (s *SocialService) ToggleFollow(ctx context.Context, followerID, followedID uint) (bool, error) {
	if followerID == 0 || followedID == 0 {
		return false, apperr.Validation("follower and followed ids are required")
	}
	if followerID == followedID {
		return false, apperr.Validation("users cannot follow themselves")
	}
	if _, err := s.users.GetUserByID(ctx, followedID); err != nil {
		return false, err
	}

	removed, err := s.follows.DeleteFollow(ctx, followerID, followedID)
	if err != nil {
		return false, err
	}
	if removed {
		telemetry.Interactions.WithLabelValues("unfollow").Inc()
		return false, nil
	}

	inserted, err := s.follows.CreateFollow(ctx, followerID, followedID)
	if err != nil {
		return false, err
	}
	if inserted {
		telemetry.Interactions.WithLabelValues("follow").Inc()
		s.notifications.Notify(ctx, followedID, followerID, models.NotificationFollow, nil)
	}
	return true, nil
}

func (s *SocialService) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	if followerID == 0 || followerID == followedID {
		return false, nil
	}
	return s.follows.IsFollowing(ctx, followerID, followedID)
}

// Stats loads both counts in parallel.
func (s *SocialService) Stats(ctx context.Context, userID uint) (*models.UserStats, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	var stats models.UserStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.FollowersCount, err = s.follows.GetFollowersCount(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		stats.FollowingCount, err = s.follows.GetFollowingCount(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *SocialService) Followers(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.follows.GetFollowers(ctx, userID)
}

func (s *SocialService) Following(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.follows.GetFollowing(ctx, userID)
}

// Profile returns the public summary of userID.
func (s *SocialService) Profile(ctx context.Context, userID uint) (*models.UserSummary, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := user.Summary()
	return &summary, nil
}
