package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/mediashare/backend/internal/apperr"
	"github.com/anonto42/mediashare/backend/internal/models"
	"gorm.io/gorm"
)

const commentDetailsColumns = "cm.*, COALESCE(u.username, '') AS author_username, " +
	"COALESCE(u.display_name, '') AS author_display_name, u.avatar_url AS author_avatar_url"

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentDetails(ctx context.Context, id uint) (*models.CommentDetails, error)
	GetCommentsByContentID(ctx context.Context, contentID uint) ([]models.CommentDetails, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) details(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("comments AS cm").
		Select(commentDetailsColumns).
		Joins("LEFT JOIN users u ON u.id = cm.author_id")
}

func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return storeErr("create comment", r.db.WithContext(ctx).Create(comment).Error)
}

func (r *PostgresCommentRepository) GetCommentDetails(ctx context.Context, id uint) (*models.CommentDetails, error) {
	var rows []models.CommentDetails
	if err := r.details(ctx).Where("cm.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, apperr.Upstream("load comment", err)
	}
	if len(rows) == 0 {
		return nil, apperr.NotFound(fmt.Sprintf("comment %d not found", id))
	}
	return &rows[0], nil
}

// GetCommentsByContentID lists comments oldest first.
func (r *PostgresCommentRepository) GetCommentsByContentID(ctx context.Context, contentID uint) ([]models.CommentDetails, error) {
	rows := []models.CommentDetails{}
	err := r.details(ctx).
		Where("cm.content_id = ?", contentID).
		Order("cm.created_at ASC, cm.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Upstream("list comments", err)
	}
	return rows, nil
}
