package repositories

import (
	"context"

	"github.com/anonto42/mediashare/backend/internal/apperr"
	"github.com/anonto42/mediashare/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(ctx context.Context, followerID, followedID uint) (bool, error)
	DeleteFollow(ctx context.Context, followerID, followedID uint) (bool, error)
	IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error)
	GetFollowers(ctx context.Context, userID uint) ([]models.UserSummary, error)
	GetFollowing(ctx context.Context, userID uint) ([]models.UserSummary, error)
	GetFollowersCount(ctx context.Context, userID uint) (int64, error)
	GetFollowingCount(ctx context.Context, userID uint) (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow reports whether a new edge was inserted. An existing edge is left untouched.
func (r *PostgresFollowRepository) CreateFollow(ctx context.Context, followerID, followedID uint) (bool, error) {
	follow := models.Follow{FollowerID: followerID, FollowedID: followedID}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&follow)
	if res.Error != nil {
		return false, apperr.Upstream("create follow", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *PostgresFollowRepository) DeleteFollow(ctx context.Context, followerID, followedID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return false, apperr.Upstream("delete follow", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *PostgresFollowRepository) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, apperr.Upstream("check follow", err)
	}
	return count > 0, nil
}

func (r *PostgresFollowRepository) GetFollowers(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	return r.listUsers(ctx, "f.follower_id", "f.followed_id", userID)
}

func (r *PostgresFollowRepository) GetFollowing(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	return r.listUsers(ctx, "f.followed_id", "f.follower_id", userID)
}

// listUsers joins the user on joinCol for every edge whose filterCol equals userID, newest edge first.
func (r *PostgresFollowRepository) listUsers(ctx context.Context, joinCol, filterCol string, userID uint) ([]models.UserSummary, error) {
	users := []models.UserSummary{}
	err := r.db.WithContext(ctx).
		Table("follows AS f").
		Select("u.id, u.username, u.display_name, u.avatar_url").
		Joins("JOIN users u ON u.id = "+joinCol).
		Where(filterCol+" = ?", userID).
		Order("f.created_at DESC, f.id DESC").
		Scan(&users).Error
	if err != nil {
		return nil, apperr.Upstream("list follows", err)
	}
	return users, nil
}

func (r *PostgresFollowRepository) GetFollowersCount(ctx context.Context, userID uint) (int64, error) {
	return r.count(ctx, "followed_id = ?", userID)
}

func (r *PostgresFollowRepository) GetFollowingCount(ctx context.Context, userID uint) (int64, error) {
	return r.count(ctx, "follower_id = ?", userID)
}

func (r *PostgresFollowRepository) count(ctx context.Context, cond string, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).Where(cond, userID).Count(&count).Error; err != nil {
		return 0, apperr.Upstream("count follows", err)
	}
	return count, nil
}
