package models

import "time"

// Follow represents a directed follow edge: FollowedByID follows
// FollowingID. At most one edge per ordered pair.
type Follow struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	FollowedByID string    `json:"followed_by_id" gorm:"index;uniqueIndex:idx_followed_by_following"`
	FollowingID  string    `json:"following_id" gorm:"index;uniqueIndex:idx_followed_by_following"`
	CreatedAt    time.Time `json:"created_at"`
}

// FollowRequest defines the request body for following or unfollowing a user
type FollowRequest struct {
	Username string `json:"username" validate:"required,min=1,max=32,username"`
}
