package repositories

import (
	"context"
	"time"

	"github.com/avenmora/lenspark/backend/internal/feed"
	"github.com/avenmora/lenspark/backend/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReplyRepository defines the interface for reply data operations
type ReplyRepository interface {
	CreateReply(ctx context.Context, reply *models.Reply) error
	RepliesPage(ctx context.Context, commentID string, cursor *feed.Cursor, limit int) ([]models.Reply, error)
	IncrementLikesCount(ctx context.Context, likesBoxID string, delta int) error
}

// MongoReplyRepository implements ReplyRepository for MongoDB
type MongoReplyRepository struct {
	collection *mongo.Collection
}

// NewMongoReplyRepository creates a new MongoReplyRepository
func NewMongoReplyRepository(db *mongo.Database) *MongoReplyRepository {
	return &MongoReplyRepository{collection: db.Collection("replies")}
}

// CreateReply creates a new reply in MongoDB
func (r *MongoReplyRepository) CreateReply(ctx context.Context, reply *models.Reply) error {
	if reply.ID == "" {
		reply.ID = uuid.NewString()
	}
	reply.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	_, err := r.collection.InsertOne(ctx, reply)
	return err
}

// RepliesPage retrieves one page of a comment's replies in feed order
func (r *MongoReplyRepository) RepliesPage(ctx context.Context, commentID string, cursor *feed.Cursor, limit int) ([]models.Reply, error) {
	filter := withCursor(bson.M{"comment_id": commentID}, cursor)
	cur, err := r.collection.Find(ctx, filter, pageOptions(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var replies []models.Reply
	if err = cur.All(ctx, &replies); err != nil {
		return nil, err
	}
	return replies, nil
}

// IncrementLikesCount adjusts the denormalized likes count of the
// reply owning the given likes box
func (r *MongoReplyRepository) IncrementLikesCount(ctx context.Context, likesBoxID string, delta int) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"likes_box_id": likesBoxID},
		bson.M{"$inc": bson.M{"likes_count": delta}})
	return err
}
