package models

import "time"

// Comment represents a comment on a post, stored in MongoDB
type Comment struct {
	ID           string       `json:"id" bson:"_id"`
	PostID       string       `json:"post_id" bson:"post_id"`
	AuthorID     string       `json:"author_id" bson:"author_id"`
	Content      string       `json:"content" bson:"content"`
	LikesBoxID   string       `json:"likes_box_id" bson:"likes_box_id"`
	LikesCount   int64        `json:"likes_count" bson:"likes_count"`
	RepliesCount int64        `json:"replies_count" bson:"replies_count"`
	CreatedAt    time.Time    `json:"created_at" bson:"created_at"`
	Author       *UserCompact `json:"author,omitempty" bson:"-"`
}

func (c Comment) ItemID() string           { return c.ID }
func (c Comment) ItemCreatedAt() time.Time { return c.CreatedAt }
func (c Comment) ItemLikesBoxID() string   { return c.LikesBoxID }

// CreateCommentRequest defines the request body for creating a comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2048"`
}
