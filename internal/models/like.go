package models

import "time"

// Like represents one user's like on a likes box. The unique index on
// (author_id, likes_box_id) is what serializes concurrent like attempts
// from the same user.
type Like struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	AuthorID   string    `json:"author_id" gorm:"index;uniqueIndex:idx_author_likes_box"`
	LikesBoxID string    `json:"likes_box_id" gorm:"index;uniqueIndex:idx_author_likes_box"`
	CreatedAt  time.Time `json:"created_at"`
}
