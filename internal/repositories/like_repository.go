package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avenmora/lenspark/backend/internal/feed"
	"github.com/avenmora/lenspark/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrLikeNotFound is returned when unliking something never liked
var ErrLikeNotFound = errors.New("like not found")

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, authorID, likesBoxID string) error
	HasLiked(ctx context.Context, viewerID, likesBoxID string) (bool, error)
	CountByLikesBox(ctx context.Context, likesBoxID string) (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike creates a like. A second like by the same author on the
// same likes box trips the unique index and comes back as
// feed.ErrConflictExists, so racing duplicates are serialized by the
// constraint rather than by the application.
func (r *PostgresLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	if like.ID == "" {
		like.ID = uuid.NewString()
	}
	like.CreatedAt = time.Now().UTC()
	err := r.db.WithContext(ctx).Create(like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("like on %s: %w", like.LikesBoxID, feed.ErrConflictExists)
		}
		return err
	}
	return nil
}

// DeleteLike removes an author's like from a likes box
func (r *PostgresLikeRepository) DeleteLike(ctx context.Context, authorID, likesBoxID string) error {
	res := r.db.WithContext(ctx).
		Where("author_id = ? AND likes_box_id = ?", authorID, likesBoxID).
		Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLikeNotFound
	}
	return nil
}

// HasLiked checks whether a viewer has liked the given likes box
func (r *PostgresLikeRepository) HasLiked(ctx context.Context, viewerID, likesBoxID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("author_id = ? AND likes_box_id = ?", viewerID, likesBoxID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByLikesBox counts the likes in a likes box
func (r *PostgresLikeRepository) CountByLikesBox(ctx context.Context, likesBoxID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("likes_box_id = ?", likesBoxID).
		Count(&count).Error
	return count, err
}
