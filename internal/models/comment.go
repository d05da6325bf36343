package models

import "time"

// Comment is a text reply attached to a content item.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ContentID uint      `json:"content_id" gorm:"not null;index"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Body      string    `json:"body" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentDetails struct {
	Comment
	AuthorUsername    string  `json:"author_username"`
	AuthorDisplayName string  `json:"author_display_name"`
	AuthorAvatarURL   *string `json:"author_avatar_url"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Body string `json:"body" validate:"required"`
}
