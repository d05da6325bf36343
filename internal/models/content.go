package models

import "time"

type ContentKind string

const (
	KindPhoto ContentKind = "photo"
	KindVideo ContentKind = "video"
	KindText  ContentKind = "text"
)

func (k ContentKind) Valid() bool {
	return k == KindPhoto || k == KindVideo || k == KindText
}

// Content is a published photo, video or text post.
type Content struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	AuthorID     uint        `json:"author_id" gorm:"not null;index"`
	Kind         ContentKind `json:"type" gorm:"size:10;not null"`
	MediaURL     *string     `json:"media_url"`
	ThumbnailURL *string     `json:"thumbnail_url"`
	Title        string      `json:"title" gorm:"size:255;not null"`
	Description  string      `json:"description"`
	LikeCount    int64       `json:"like_count" gorm:"not null;default:0;index;check:like_count >= 0"`
	ViewCount    int64       `json:"view_count" gorm:"not null;default:0;index;check:view_count >= 0"`
	CreatedAt    time.Time   `json:"created_at" gorm:"index"`
}

// ContentDetails is a content row joined with its author's public fields.
type ContentDetails struct {
	Content
	AuthorUsername    string  `json:"author_username"`
	AuthorDisplayName string  `json:"author_display_name"`
	AuthorAvatarURL   *string `json:"author_avatar_url"`
}

// FeedItem adds the comment count to ContentDetails.
type FeedItem struct {
	ContentDetails
	CommentCount int64 `json:"comment_count"`
}

// FeedPage is one page of a feed.
type FeedPage struct {
	Posts      []FeedItem `json:"posts"`
	NextCursor *string    `json:"nextCursor"`
	HasMore    bool       `json:"hasMore"`
}

// SortMode selects the feed ordering.
type SortMode string

const (
	SortNewest     SortMode = "newest"
	SortPopular    SortMode = "popular"
	SortMostViewed SortMode = "most_viewed"
)

// CreateContentRequest holds the text fields of a multipart upload.
type CreateContentRequest struct {
	Title       string `json:"title" form:"title" validate:"required,max=255"`
	Description string `json:"description" form:"description" validate:"max=2000"`
	Kind        string `json:"type" form:"type" validate:"required,oneof=photo video text"`
}
