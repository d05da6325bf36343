package repositories

import (
	"context"

	"github.com/anonto42/mediashare/backend/internal/apperr"
	"github.com/anonto42/mediashare/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetNotificationsByRecipient(ctx context.Context, recipientID uint, limit int) ([]models.NotificationDetails, error)
	MarkAsRead(ctx context.Context, id, recipientID uint) (bool, error)
	MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error)
	GetUnreadCount(ctx context.Context, recipientID uint) (int64, error)
}

// PostgresNotificationRepository implements NotificationRepository for PostgreSQL
type PostgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a new PostgresNotificationRepository
func NewPostgresNotificationRepository(db *gorm.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

func (r *PostgresNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return storeErr("create notification", r.db.WithContext(ctx).Create(notification).Error)
}

// GetNotificationsByRecipient returns the newest notifications first.
func (r *PostgresNotificationRepository) GetNotificationsByRecipient(ctx context.Context, recipientID uint, limit int) ([]models.NotificationDetails, error) {
	rows := []models.NotificationDetails{}
	err := r.db.WithContext(ctx).
		Table("notifications AS n").
		Select("n.*, COALESCE(u.username, '') AS actor_username, "+
			"COALESCE(u.display_name, '') AS actor_display_name, u.avatar_url AS actor_avatar_url").
		Joins("LEFT JOIN users u ON u.id = n.actor_id").
		Where("n.recipient_id = ?", recipientID).
		Order("n.created_at DESC, n.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Upstream("list notifications", err)
	}
	return rows, nil
}

// MarkAsRead reports whether a notification with id belongs to recipientID.
// Marking an already read notification succeeds.
func (r *PostgresNotificationRepository) MarkAsRead(ctx context.Context, id, recipientID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scope := tx.Model(&models.Notification{}).Where("id = ? AND recipient_id = ?", id, recipientID)
		if err := scope.Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		return tx.Model(&models.Notification{}).
			Where("id = ? AND recipient_id = ?", id, recipientID).
			Update("is_read", true).Error
	})
	if err != nil {
		return false, apperr.Upstream("mark notification read", err)
	}
	return count > 0, nil
}

func (r *PostgresNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, apperr.Upstream("mark notifications read", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *PostgresNotificationRepository) GetUnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	if err != nil {
		return 0, apperr.Upstream("count unread notifications", err)
	}
	return count, nil
}
