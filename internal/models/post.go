package models

import "time"

// Post represents a photo post stored in MongoDB
type Post struct {
	ID            string       `json:"id" bson:"_id"`
	AuthorID      string       `json:"author_id" bson:"author_id"`
	Caption       string       `json:"caption" bson:"caption"`
	ThumbnailURL  string       `json:"thumbnail_url" bson:"thumbnail_url"`
	ImageURLs     []string     `json:"image_urls" bson:"image_urls"`
	LikesBoxID    string       `json:"likes_box_id" bson:"likes_box_id"`
	LikesCount    int64        `json:"likes_count" bson:"likes_count"`
	CommentsCount int64        `json:"comments_count" bson:"comments_count"`
	CreatedAt     time.Time    `json:"created_at" bson:"created_at"`
	Author        *UserCompact `json:"author,omitempty" bson:"-"`
}

func (p Post) ItemID() string            { return p.ID }
func (p Post) ItemCreatedAt() time.Time  { return p.CreatedAt }
func (p Post) ItemLikesBoxID() string    { return p.LikesBoxID }
