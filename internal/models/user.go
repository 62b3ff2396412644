package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User represents an account stored in PostgreSQL
type User struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	DisplayName string    `json:"display_name"`
	Username    string    `json:"username" gorm:"uniqueIndex"`
	Password    string    `json:"-"` // bcrypt hash, never serialized
	PictureURL  string    `json:"picture_url"`
	BannerURL   string    `json:"banner_url"`
	FirebaseUID string    `json:"firebase_uid,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserCompact is the author summary embedded in feed items
type UserCompact struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Username    string `json:"username"`
	PictureURL  string `json:"picture_url"`
}

// ToCompact converts a User to its embeddable summary
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Username:    u.Username,
		PictureURL:  u.PictureURL,
	}
}

// SignupRequest defines the request body for creating an account
type SignupRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=1,max=64"`
	Username    string `json:"username" validate:"required,min=1,max=32,username"`
	Password    string `json:"password" validate:"required,min=8"`
}

// SigninRequest defines the request body for local authentication
type SigninRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Profile is the public view of a user plus aggregate counts
type Profile struct {
	User           UserCompact `json:"user"`
	BannerURL      string      `json:"banner_url"`
	PostsCount     int64       `json:"posts_count"`
	FollowersCount int64       `json:"followers_count"`
	FollowingCount int64       `json:"following_count"`
}
