package models

import "time"

// Follow is a directed edge from follower to followed.
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"follower_id" gorm:"not null;uniqueIndex:idx_follows_pair;index:idx_follows_follower_created,priority:1;check:chk_follows_not_self,follower_id <> followed_id"`
	FollowedID uint      `json:"followed_id" gorm:"not null;uniqueIndex:idx_follows_pair;index:idx_follows_followed_created,priority:1"`
	CreatedAt  time.Time `json:"created_at" gorm:"index:idx_follows_follower_created,priority:2;index:idx_follows_followed_created,priority:2"`
}

type FollowRequest struct {
	FollowerID *uint `json:"followerId"` // optional, must match the caller when present
}

type FollowStatus struct {
	IsFollowing bool `json:"isFollowing"`
}
