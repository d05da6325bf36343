package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/mediashare/backend/internal/apperr"
	"github.com/anonto42/mediashare/backend/internal/models"
	"gorm.io/gorm"
)

const contentDetailsColumns = "c.*, COALESCE(u.username, '') AS author_username, " +
	"COALESCE(u.display_name, '') AS author_display_name, u.avatar_url AS author_avatar_url"

const commentCountColumn = "(SELECT COUNT(*) FROM comments cm WHERE cm.content_id = c.id) AS comment_count"

// PageQuery selects one page of content.
type PageQuery struct {
	Sort       models.SortMode
	FollowerID uint   // non-zero restricts the page to authors this user follows
	CursorID   uint   // zero for the first page
	CursorKey  *int64 // sort key of the cursor row for popular and most_viewed
	Limit      int
}

// ContentRepository defines the interface for content data operations
type ContentRepository interface {
	CreateContent(ctx context.Context, content *models.Content) error
	GetContentByID(ctx context.Context, id uint) (*models.Content, error)
	GetContentDetails(ctx context.Context, id uint) (*models.ContentDetails, error)
	GetContentByAuthor(ctx context.Context, authorID uint) ([]models.ContentDetails, error)
	DeleteContent(ctx context.Context, id, authorID uint) (bool, error)
	FindPage(ctx context.Context, q PageQuery) ([]models.FeedItem, error)
	SearchContent(ctx context.Context, term string, limit int) ([]models.ContentDetails, error)
	CountContent(ctx context.Context) (int64, error)
}

// PostgresContentRepository implements ContentRepository for PostgreSQL
type PostgresContentRepository struct {
	db *gorm.DB
}

// NewPostgresContentRepository creates a new PostgresContentRepository
func NewPostgresContentRepository(db *gorm.DB) *PostgresContentRepository {
	return &PostgresContentRepository{db: db}
}

func (r *PostgresContentRepository) details(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("contents AS c").
		Joins("LEFT JOIN users u ON u.id = c.author_id")
}

func (r *PostgresContentRepository) CreateContent(ctx context.Context, content *models.Content) error {
	return storeErr("create content", r.db.WithContext(ctx).Create(content).Error)
}

func (r *PostgresContentRepository) GetContentByID(ctx context.Context, id uint) (*models.Content, error) {
	var content models.Content
	if err := r.db.WithContext(ctx).First(&content, id).Error; err != nil {
		return nil, storeErr(fmt.Sprintf("content %d", id), err)
	}
	return &content, nil
}

func (r *PostgresContentRepository) GetContentDetails(ctx context.Context, id uint) (*models.ContentDetails, error) {
	var rows []models.ContentDetails
	err := r.details(ctx).
		Select(contentDetailsColumns).
		Where("c.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Upstream("load content", err)
	}
	if len(rows) == 0 {
		return nil, apperr.NotFound(fmt.Sprintf("content %d not found", id))
	}
	return &rows[0], nil
}

func (r *PostgresContentRepository) GetContentByAuthor(ctx context.Context, authorID uint) ([]models.ContentDetails, error) {
	rows := []models.ContentDetails{}
	err := r.details(ctx).
		Select(contentDetailsColumns).
		Where("c.author_id = ?", authorID).
		Order("c.created_at DESC, c.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Upstream("list content by author", err)
	}
	return rows, nil
}

// DeleteContent removes the content and its comments when authorID owns it.
// It reports false when no such content exists for that author.
func (r *PostgresContentRepository) DeleteContent(ctx context.Context, id, authorID uint) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND author_id = ?", id, authorID).Delete(&models.Content{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return tx.Where("content_id = ?", id).Delete(&models.Comment{}).Error
	})
	if err != nil {
		return false, apperr.Upstream("delete content", err)
	}
	return deleted, nil
}

// FindPage returns up to q.Limit feed items strictly after the cursor in sort order.
func (r *PostgresContentRepository) FindPage(ctx context.Context, q PageQuery) ([]models.FeedItem, error) {
	tx := r.details(ctx).Select(contentDetailsColumns + ", " + commentCountColumn)
	if q.FollowerID != 0 {
		tx = tx.Joins("JOIN follows f ON f.followed_id = c.author_id AND f.follower_id = ?", q.FollowerID)
	}

	key := sortKeyColumn(q.Sort)
	switch {
	case q.CursorID == 0:
	case key != "" && q.CursorKey != nil:
		tx = tx.Where(fmt.Sprintf("(c.%[1]s < ? OR (c.%[1]s = ? AND c.id < ?))", key), *q.CursorKey, *q.CursorKey, q.CursorID)
	default:
		tx = tx.Where("c.id < ?", q.CursorID)
	}

	items := []models.FeedItem{}
	err := tx.Order(orderClause(q.Sort)).Limit(q.Limit).Scan(&items).Error
	if err != nil {
		return nil, apperr.Upstream("load feed page", err)
	}
	return items, nil
}

func (r *PostgresContentRepository) SearchContent(ctx context.Context, term string, limit int) ([]models.ContentDetails, error) {
	p := likePattern(term)
	rows := []models.ContentDetails{}
	err := r.details(ctx).
		Select(contentDetailsColumns).
		Where(`(LOWER(c.title) LIKE ? ESCAPE '\' OR LOWER(c.description) LIKE ? ESCAPE '\' `+
			`OR LOWER(u.username) LIKE ? ESCAPE '\' OR LOWER(u.display_name) LIKE ? ESCAPE '\')`, p, p, p, p).
		Order("c.created_at DESC, c.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Upstream("search content", err)
	}
	return rows, nil
}

func (r *PostgresContentRepository) CountContent(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Content{}).Count(&count).Error; err != nil {
		return 0, apperr.Upstream("count content", err)
	}
	return count, nil
}

// sortKeyColumn is empty for newest, whose cursor is the id alone.
func sortKeyColumn(mode models.SortMode) string {
	switch mode {
	case models.SortPopular:
		return "like_count"
	case models.SortMostViewed:
		return "view_count"
	default:
		return ""
	}
}

func orderClause(mode models.SortMode) string {
	if key := sortKeyColumn(mode); key != "" {
		return "c." + key + " DESC, c.id DESC"
	}
	return "c.created_at DESC, c.id DESC"
}
