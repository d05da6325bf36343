package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:255;uniqueIndex;not null"`
	DisplayName  string    `json:"display_name" gorm:"size:255"`
	Email        string    `json:"email,omitempty" gorm:"size:255;uniqueIndex;not null"`
	AvatarURL    *string   `json:"avatar_url"`
	Bio          string    `json:"bio,omitempty"`
	PasswordHash string    `json:"-"`                             // bcrypt hash, empty for firebase-only accounts
	FirebaseUID  *string   `json:"-" gorm:"size:128;uniqueIndex"` // set once the account is linked to firebase
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserSummary is the public projection of a user embedded in other responses.
type UserSummary struct {
	ID          uint    `json:"id"`
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, DisplayName: u.DisplayName, AvatarURL: u.AvatarURL}
}

// UserStats holds follower and following counts.
type UserStats struct {
	FollowersCount int64 `json:"followersCount"`
	FollowingCount int64 `json:"followingCount"`
}

type SignupRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=255"`
	DisplayName string `json:"display_name" validate:"omitempty,max=255"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type FirebaseLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// AuthResponse is returned by every login flow.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
