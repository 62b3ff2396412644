package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/avenmora/lenspark/backend/internal/feed"
	"github.com/avenmora/lenspark/backend/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id string) (*models.Comment, error)
	CommentsPage(ctx context.Context, postID string, cursor *feed.Cursor, limit int) ([]models.Comment, error)
	IncrementLikesCount(ctx context.Context, likesBoxID string, delta int) error
	IncrementRepliesCount(ctx context.Context, commentID string, delta int) error
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection("comments")}
}

// CreateComment creates a new comment in MongoDB
func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	comment.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

// GetCommentByID retrieves a comment by ID from MongoDB
func (r *MongoCommentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("comment %s: %w", id, feed.ErrScopeNotFound)
		}
		return nil, err
	}
	return &comment, nil
}

// CommentsPage retrieves one page of a post's comments in feed order
func (r *MongoCommentRepository) CommentsPage(ctx context.Context, postID string, cursor *feed.Cursor, limit int) ([]models.Comment, error) {
	filter := withCursor(bson.M{"post_id": postID}, cursor)
	cur, err := r.collection.Find(ctx, filter, pageOptions(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var comments []models.Comment
	if err = cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// IncrementLikesCount adjusts the denormalized likes count of the
// comment owning the given likes box
func (r *MongoCommentRepository) IncrementLikesCount(ctx context.Context, likesBoxID string, delta int) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"likes_box_id": likesBoxID},
		bson.M{"$inc": bson.M{"likes_count": delta}})
	return err
}

// IncrementRepliesCount adjusts the denormalized replies count of a comment
func (r *MongoCommentRepository) IncrementRepliesCount(ctx context.Context, commentID string, delta int) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": commentID},
		bson.M{"$inc": bson.M{"replies_count": delta}})
	return err
}
