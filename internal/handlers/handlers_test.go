package handlers

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avenmora/lenspark/backend/internal/feed"
	"github.com/avenmora/lenspark/backend/internal/models"
	"github.com/avenmora/lenspark/backend/internal/repositories"
	"github.com/avenmora/lenspark/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// newTestContext builds an echo context around a JSON request, with
// the production validator installed.
func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validators.NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asViewer(c echo.Context, userID string) {
	c.Set("userID", userID)
	c.Set("username", "viewer")
}

// httpStatus unwraps the status code a handler error maps to.
func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr.Code
}

// --- in-memory repository fakes ---

type stubUserRepo struct {
	users map[string]*models.User // keyed by lowercase username
}

func newStubUserRepo(users ...*models.User) *stubUserRepo {
	repo := &stubUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		repo.users[strings.ToLower(u.Username)] = u
	}
	return repo
}

func (r *stubUserRepo) CreateUser(user *models.User) error {
	if user.ID == "" {
		user.ID = "user-" + user.Username
	}
	r.users[strings.ToLower(user.Username)] = user
	return nil
}

func (r *stubUserRepo) GetUserByID(id string) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %s not found", id)
}

func (r *stubUserRepo) GetUserByUsername(username string) (*models.User, error) {
	if u, ok := r.users[strings.ToLower(username)]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %s not found", username)
}

func (r *stubUserRepo) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	for _, u := range r.users {
		if u.FirebaseUID == firebaseUID {
			return u, nil
		}
	}
	return nil, fmt.Errorf("firebase user %s not found", firebaseUID)
}

func (r *stubUserRepo) GetUsersByIDs(ids []string) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, err := r.GetUserByID(id); err == nil {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) UpdateUser(user *models.User) error {
	r.users[strings.ToLower(user.Username)] = user
	return nil
}

func (r *stubUserRepo) UserIDByUsername(_ context.Context, username string) (string, error) {
	u, ok := r.users[strings.ToLower(username)]
	if !ok {
		return "", fmt.Errorf("user %q: %w", username, feed.ErrScopeNotFound)
	}
	return u.ID, nil
}

type stubLikesBoxRepo struct {
	boxes map[string]*models.LikesBox
}

func (r *stubLikesBoxRepo) CreateLikesBox(_ context.Context, boxType string) (*models.LikesBox, error) {
	box := &models.LikesBox{ID: fmt.Sprintf("box-%d", len(r.boxes)+1), Type: boxType}
	r.boxes[box.ID] = box
	return box, nil
}

func (r *stubLikesBoxRepo) GetLikesBox(_ context.Context, id string) (*models.LikesBox, error) {
	if box, ok := r.boxes[id]; ok {
		return box, nil
	}
	return nil, fmt.Errorf("likes box %s: %w", id, feed.ErrScopeNotFound)
}

type stubLikeRepo struct {
	liked map[string]bool // authorID + "|" + likesBoxID
}

func likeKey(authorID, likesBoxID string) string { return authorID + "|" + likesBoxID }

func (r *stubLikeRepo) CreateLike(_ context.Context, like *models.Like) error {
	key := likeKey(like.AuthorID, like.LikesBoxID)
	if r.liked[key] {
		return fmt.Errorf("like on %s: %w", like.LikesBoxID, feed.ErrConflictExists)
	}
	r.liked[key] = true
	like.ID = "like-" + key
	return nil
}

func (r *stubLikeRepo) DeleteLike(_ context.Context, authorID, likesBoxID string) error {
	key := likeKey(authorID, likesBoxID)
	if !r.liked[key] {
		return repositories.ErrLikeNotFound
	}
	delete(r.liked, key)
	return nil
}

func (r *stubLikeRepo) HasLiked(_ context.Context, viewerID, likesBoxID string) (bool, error) {
	return r.liked[likeKey(viewerID, likesBoxID)], nil
}

func (r *stubLikeRepo) CountByLikesBox(_ context.Context, likesBoxID string) (int64, error) {
	var count int64
	for key := range r.liked {
		if strings.HasSuffix(key, "|"+likesBoxID) {
			count++
		}
	}
	return count, nil
}

type stubPostRepo struct {
	posts       map[string]*models.Post
	likesDeltas map[string]int
}

func (r *stubPostRepo) CreatePost(_ context.Context, post *models.Post) error {
	if r.posts == nil {
		r.posts = make(map[string]*models.Post)
	}
	if post.ID == "" {
		post.ID = fmt.Sprintf("post-%d", len(r.posts)+1)
	}
	r.posts[post.ID] = post
	return nil
}

func (r *stubPostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	if post, ok := r.posts[id]; ok {
		return post, nil
	}
	return nil, fmt.Errorf("post %s: %w", id, feed.ErrScopeNotFound)
}

func (r *stubPostRepo) GlobalPage(context.Context, string, *feed.Cursor, int) ([]models.Post, error) {
	return nil, nil
}

func (r *stubPostRepo) AuthorPage(context.Context, string, *feed.Cursor, int) ([]models.Post, error) {
	return nil, nil
}

func (r *stubPostRepo) FollowingPage(context.Context, []string, *feed.Cursor, int) ([]models.Post, error) {
	return nil, nil
}

func (r *stubPostRepo) CountByAuthor(context.Context, string) (int64, error) { return 0, nil }

func (r *stubPostRepo) IncrementLikesCount(_ context.Context, likesBoxID string, delta int) error {
	if r.likesDeltas != nil {
		r.likesDeltas[likesBoxID] += delta
	}
	return nil
}

func (r *stubPostRepo) IncrementCommentsCount(context.Context, string, int) error { return nil }

type stubCommentRepo struct {
	comments []*models.Comment
}

func (r *stubCommentRepo) CreateComment(_ context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = fmt.Sprintf("comment-%d", len(r.comments)+1)
	}
	r.comments = append(r.comments, comment)
	return nil
}

func (r *stubCommentRepo) GetCommentByID(_ context.Context, id string) (*models.Comment, error) {
	for _, comment := range r.comments {
		if comment.ID == id {
			return comment, nil
		}
	}
	return nil, fmt.Errorf("comment %s: %w", id, feed.ErrScopeNotFound)
}

func (r *stubCommentRepo) CommentsPage(_ context.Context, postID string, cursor *feed.Cursor, limit int) ([]models.Comment, error) {
	var out []models.Comment
	for _, comment := range r.comments {
		if comment.PostID != postID {
			continue
		}
		if cursor != nil && !cursor.Precedes(*comment) {
			continue
		}
		out = append(out, *comment)
		if len(out) == feed.ClampLimit(limit) {
			break
		}
	}
	return out, nil
}

func (r *stubCommentRepo) IncrementLikesCount(context.Context, string, int) error   { return nil }
func (r *stubCommentRepo) IncrementRepliesCount(context.Context, string, int) error { return nil }

type stubReplyRepo struct{}

func (stubReplyRepo) CreateReply(context.Context, *models.Reply) error { return nil }

func (stubReplyRepo) RepliesPage(context.Context, string, *feed.Cursor, int) ([]models.Reply, error) {
	return nil, nil
}

func (stubReplyRepo) IncrementLikesCount(context.Context, string, int) error { return nil }

type stubFollowRepo struct {
	edges map[string]bool // followedByID + "|" + followingID
}

func followKey(followedByID, followingID string) string { return followedByID + "|" + followingID }

func (r *stubFollowRepo) CreateFollow(_ context.Context, followedByID, followingID string) (*models.Follow, error) {
	key := followKey(followedByID, followingID)
	if r.edges[key] {
		return nil, fmt.Errorf("follow %s -> %s: %w", followedByID, followingID, feed.ErrConflictExists)
	}
	r.edges[key] = true
	return &models.Follow{FollowedByID: followedByID, FollowingID: followingID}, nil
}

func (r *stubFollowRepo) DeleteFollow(_ context.Context, followedByID, followingID string) error {
	key := followKey(followedByID, followingID)
	if !r.edges[key] {
		return repositories.ErrFollowNotFound
	}
	delete(r.edges, key)
	return nil
}

func (r *stubFollowRepo) IsFollowing(_ context.Context, followedByID, followingID string) (bool, error) {
	return r.edges[followKey(followedByID, followingID)], nil
}

func (r *stubFollowRepo) FollowingIDs(_ context.Context, viewerID string) ([]string, error) {
	var ids []string
	for key := range r.edges {
		if strings.HasPrefix(key, viewerID+"|") {
			ids = append(ids, strings.TrimPrefix(key, viewerID+"|"))
		}
	}
	return ids, nil
}

func (r *stubFollowRepo) FollowersCount(_ context.Context, userID string) (int64, error) {
	var count int64
	for key := range r.edges {
		if strings.HasSuffix(key, "|"+userID) {
			count++
		}
	}
	return count, nil
}

func (r *stubFollowRepo) FollowingCount(_ context.Context, userID string) (int64, error) {
	var count int64
	for key := range r.edges {
		if strings.HasPrefix(key, userID+"|") {
			count++
		}
	}
	return count, nil
}
