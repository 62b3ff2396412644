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

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GlobalPage(ctx context.Context, excludeAuthorID string, cursor *feed.Cursor, limit int) ([]models.Post, error)
	AuthorPage(ctx context.Context, authorID string, cursor *feed.Cursor, limit int) ([]models.Post, error)
	FollowingPage(ctx context.Context, authorIDs []string, cursor *feed.Cursor, limit int) ([]models.Post, error)
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
	IncrementLikesCount(ctx context.Context, likesBoxID string, delta int) error
	IncrementCommentsCount(ctx context.Context, postID string, delta int) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost creates a new post in MongoDB. Timestamps are truncated
// to milliseconds so stored keys round-trip through cursor tokens.
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	post.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("post %s: %w", id, feed.ErrScopeNotFound)
		}
		return nil, err
	}
	return &post, nil
}

// GlobalPage retrieves one page of every author's posts except the
// excluded author's own (empty means exclude nobody).
func (r *MongoPostRepository) GlobalPage(ctx context.Context, excludeAuthorID string, cursor *feed.Cursor, limit int) ([]models.Post, error) {
	filter := bson.M{}
	if excludeAuthorID != "" {
		filter["author_id"] = bson.M{"$ne": excludeAuthorID}
	}
	return r.findPage(ctx, filter, cursor, limit)
}

// AuthorPage retrieves one page of a single author's posts
func (r *MongoPostRepository) AuthorPage(ctx context.Context, authorID string, cursor *feed.Cursor, limit int) ([]models.Post, error) {
	return r.findPage(ctx, bson.M{"author_id": authorID}, cursor, limit)
}

// FollowingPage retrieves one page of posts by the given authors. An
// empty author list is a valid scope that yields an empty page.
func (r *MongoPostRepository) FollowingPage(ctx context.Context, authorIDs []string, cursor *feed.Cursor, limit int) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	return r.findPage(ctx, bson.M{"author_id": bson.M{"$in": authorIDs}}, cursor, limit)
}

func (r *MongoPostRepository) findPage(ctx context.Context, filter bson.M, cursor *feed.Cursor, limit int) ([]models.Post, error) {
	cur, err := r.collection.Find(ctx, withCursor(filter, cursor), pageOptions(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []models.Post
	if err = cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CountByAuthor counts an author's posts
func (r *MongoPostRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"author_id": authorID})
}

// IncrementLikesCount adjusts the denormalized likes count of the post
// owning the given likes box
func (r *MongoPostRepository) IncrementLikesCount(ctx context.Context, likesBoxID string, delta int) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"likes_box_id": likesBoxID},
		bson.M{"$inc": bson.M{"likes_count": delta}})
	return err
}

// IncrementCommentsCount adjusts the denormalized comments count of a post
func (r *MongoPostRepository) IncrementCommentsCount(ctx context.Context, postID string, delta int) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$inc": bson.M{"comments_count": delta}})
	return err
}
