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

// LikesBoxRepository defines the interface for likes box operations
type LikesBoxRepository interface {
	CreateLikesBox(ctx context.Context, boxType string) (*models.LikesBox, error)
	GetLikesBox(ctx context.Context, id string) (*models.LikesBox, error)
}

// PostgresLikesBoxRepository implements LikesBoxRepository for PostgreSQL
type PostgresLikesBoxRepository struct {
	db *gorm.DB
}

// NewPostgresLikesBoxRepository creates a new PostgresLikesBoxRepository
func NewPostgresLikesBoxRepository(db *gorm.DB) *PostgresLikesBoxRepository {
	return &PostgresLikesBoxRepository{db: db}
}

// CreateLikesBox creates the aggregation record for a new post,
// comment, or reply
func (r *PostgresLikesBoxRepository) CreateLikesBox(ctx context.Context, boxType string) (*models.LikesBox, error) {
	box := &models.LikesBox{
		ID:        uuid.NewString(),
		Type:      boxType,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(box).Error; err != nil {
		return nil, err
	}
	return box, nil
}

// GetLikesBox retrieves a likes box by id. Unknown ids map to
// feed.ErrScopeNotFound.
func (r *PostgresLikesBoxRepository) GetLikesBox(ctx context.Context, id string) (*models.LikesBox, error) {
	var box models.LikesBox
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&box).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("likes box %s: %w", id, feed.ErrScopeNotFound)
		}
		return nil, err
	}
	return &box, nil
}
