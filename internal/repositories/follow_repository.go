package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avenmora/lenspark/backend/internal/feed"
	"github.com/avenmora/lenspark/backend/internal/models"
	"gorm.io/gorm"
)

// ErrFollowNotFound is returned when unfollowing a user never followed
var ErrFollowNotFound = errors.New("follow relationship not found")

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(ctx context.Context, followedByID, followingID string) (*models.Follow, error)
	DeleteFollow(ctx context.Context, followedByID, followingID string) error
	IsFollowing(ctx context.Context, followedByID, followingID string) (bool, error)
	FollowingIDs(ctx context.Context, viewerID string) ([]string, error)
	FollowersCount(ctx context.Context, userID string) (int64, error)
	FollowingCount(ctx context.Context, userID string) (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow creates a follow edge. A duplicate edge trips the
// unique index on (followed_by_id, following_id) and comes back as
// feed.ErrConflictExists.
func (r *PostgresFollowRepository) CreateFollow(ctx context.Context, followedByID, followingID string) (*models.Follow, error) {
	follow := &models.Follow{
		FollowedByID: followedByID,
		FollowingID:  followingID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("follow %s -> %s: %w", followedByID, followingID, feed.ErrConflictExists)
		}
		return nil, err
	}
	return follow, nil
}

// DeleteFollow removes a follow edge
func (r *PostgresFollowRepository) DeleteFollow(ctx context.Context, followedByID, followingID string) error {
	res := r.db.WithContext(ctx).
		Where("followed_by_id = ? AND following_id = ?", followedByID, followingID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFollowNotFound
	}
	return nil
}

// IsFollowing checks whether the edge followedByID -> followingID exists
func (r *PostgresFollowRepository) IsFollowing(ctx context.Context, followedByID, followingID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("followed_by_id = ? AND following_id = ?", followedByID, followingID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FollowingIDs lists the ids of everyone the viewer follows
func (r *PostgresFollowRepository) FollowingIDs(ctx context.Context, viewerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("followed_by_id = ?", viewerID).
		Pluck("following_id", &ids).Error
	return ids, err
}

// FollowersCount counts the users following userID
func (r *PostgresFollowRepository) FollowersCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}

// FollowingCount counts the users userID follows
func (r *PostgresFollowRepository) FollowingCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("followed_by_id = ?", userID).
		Count(&count).Error
	return count, err
}
