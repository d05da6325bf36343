package models

import "time"

type NotificationType string

const (
	NotificationFollow  NotificationType = "follow"
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
)

// Notification represents a user notification (PostgreSQL)
type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	RecipientID uint             `json:"recipient_id" gorm:"not null;index:idx_notifications_recipient_created,priority:1"`
	ActorID     uint             `json:"actor_id" gorm:"not null"`
	Type        NotificationType `json:"type" gorm:"size:20;not null"`
	ReferenceID *uint            `json:"reference_id"` // content id for like and comment
	IsRead      bool             `json:"is_read" gorm:"not null;default:false"`
	CreatedAt   time.Time        `json:"created_at" gorm:"index:idx_notifications_recipient_created,priority:2"`
}

type NotificationDetails struct {
	Notification
	ActorUsername    string  `json:"actor_username"`
	ActorDisplayName string  `json:"actor_display_name"`
	ActorAvatarURL   *string `json:"actor_avatar_url"`
}

type UnreadCount struct {
	Count int64 `json:"count"`
}
