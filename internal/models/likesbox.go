package models

import "time"

// LikesBox type tags, one per likeable entity kind
const (
	LikesBoxTypePost    = "POST"
	LikesBoxTypeComment = "COMMENT"
	LikesBoxTypeReply   = "REPLY"
)

// LikesBox is the per-entity aggregation record owning the likes on a
// post, comment, or reply. Stored in PostgreSQL; feed items reference
// it by id.
type LikesBox struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeRequest defines the request body for liking or unliking an entity
type LikeRequest struct {
	Type       string `json:"type" validate:"required,oneof=POST COMMENT REPLY"`
	LikesBoxID string `json:"likesboxid" validate:"required,uuid4"`
}
