package models

import "time"

// Reply represents a threaded reply under a comment, stored in MongoDB.
// ReplyToID points at the user being answered; ParentID groups nested
// replies under their top-level sibling.
type Reply struct {
	ID         string       `json:"id" bson:"_id"`
	PostID     string       `json:"post_id" bson:"post_id"`
	CommentID  string       `json:"comment_id" bson:"comment_id"`
	AuthorID   string       `json:"author_id" bson:"author_id"`
	ReplyToID  string       `json:"reply_to_id" bson:"reply_to_id"`
	ParentID   string       `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	Content    string       `json:"content" bson:"content"`
	LikesBoxID string       `json:"likes_box_id" bson:"likes_box_id"`
	LikesCount int64        `json:"likes_count" bson:"likes_count"`
	CreatedAt  time.Time    `json:"created_at" bson:"created_at"`
	Author     *UserCompact `json:"author,omitempty" bson:"-"`
}

func (r Reply) ItemID() string           { return r.ID }
func (r Reply) ItemCreatedAt() time.Time { return r.CreatedAt }
func (r Reply) ItemLikesBoxID() string   { return r.LikesBoxID }

// CreateReplyRequest defines the request body for creating a reply
type CreateReplyRequest struct {
	Content   string `json:"content" validate:"required,min=1,max=2048"`
	ReplyToID string `json:"reply_to_id" validate:"required,uuid4"`
	ParentID  string `json:"parent_id,omitempty" validate:"omitempty,uuid4"`
}
