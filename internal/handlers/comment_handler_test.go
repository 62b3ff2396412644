package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/avenmora/lenspark/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPostID = "33333333-3333-4333-8333-333333333333"

func newCommentHandlerUnderTest(t *testing.T) (*CommentHandler, *stubCommentRepo, *stubPostRepo) {
	t.Helper()

	postRepo := &stubPostRepo{}
	require.NoError(t, postRepo.CreatePost(context.Background(), &models.Post{
		ID:         testPostID,
		AuthorID:   "author-1",
		LikesBoxID: "box-post",
		CreatedAt:  time.Now().UTC(),
	}))

	commentRepo := &stubCommentRepo{}
	boxRepo := &stubLikesBoxRepo{boxes: make(map[string]*models.LikesBox)}
	userRepo := newStubUserRepo(
		&models.User{ID: "viewer-1", Username: "viewer"},
		&models.User{ID: "author-1", Username: "alice"},
	)
	likeRepo := &stubLikeRepo{liked: make(map[string]bool)}

	return NewCommentHandler(commentRepo, postRepo, boxRepo, userRepo, likeRepo), commentRepo, postRepo
}

func TestCreateComment(t *testing.T) {
	handler, commentRepo, _ := newCommentHandlerUnderTest(t)

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/posts/"+testPostID+"/comments",
		`{"content":"what a shot"}`)
	c.SetParamNames("postid")
	c.SetParamValues(testPostID)
	asViewer(c, "viewer-1")

	require.NoError(t, handler.CreateComment(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, commentRepo.comments, 1)
	created := commentRepo.comments[0]
	assert.Equal(t, testPostID, created.PostID)
	assert.Equal(t, "viewer-1", created.AuthorID)
	assert.Equal(t, "what a shot", created.Content)
	assert.NotEmpty(t, created.LikesBoxID)
}

func TestCreateCommentOnUnknownPost(t *testing.T) {
	handler, _, _ := newCommentHandlerUnderTest(t)

	c, _ := newTestContext(t, http.MethodPost, "/api/v1/posts/unknown/comments",
		`{"content":"what a shot"}`)
	c.SetParamNames("postid")
	c.SetParamValues("44444444-4444-4444-8444-444444444444")
	asViewer(c, "viewer-1")

	err := handler.CreateComment(c)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

func TestCreateCommentRejectsEmptyContent(t *testing.T) {
	handler, _, _ := newCommentHandlerUnderTest(t)

	c, _ := newTestContext(t, http.MethodPost, "/api/v1/posts/"+testPostID+"/comments",
		`{"content":""}`)
	c.SetParamNames("postid")
	c.SetParamValues(testPostID)
	asViewer(c, "viewer-1")

	err := handler.CreateComment(c)
	assert.Equal(t, http.StatusUnprocessableEntity, httpStatus(t, err))
}

func TestGetComments(t *testing.T) {
	handler, commentRepo, _ := newCommentHandlerUnderTest(t)
	now := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, commentRepo.CreateComment(context.Background(), &models.Comment{
		PostID:     testPostID,
		AuthorID:   "author-1",
		Content:    "first",
		LikesBoxID: "box-c1",
		CreatedAt:  now,
	}))

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/posts/"+testPostID+"/comments", "")
	c.SetParamNames("postid")
	c.SetParamValues(testPostID)

	require.NoError(t, handler.GetComments(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message    string            `json:"message"`
		NextCursor json.RawMessage   `json:"nextCursor"`
		Comments   []json.RawMessage `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Comments, 1)

	var first map[string]any
	require.NoError(t, json.Unmarshal(resp.Comments[0], &first))
	assert.Equal(t, "first", first["content"])
	assert.Equal(t, false, first["viewer_like_status"])
	authorField, ok := first["author"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice", authorField["username"])
	assert.NotEqual(t, "false", string(resp.NextCursor))
}

func TestGetCommentsUnknownPost(t *testing.T) {
	handler, _, _ := newCommentHandlerUnderTest(t)

	c, _ := newTestContext(t, http.MethodGet, "/api/v1/posts/unknown/comments", "")
	c.SetParamNames("postid")
	c.SetParamValues("44444444-4444-4444-8444-444444444444")

	err := handler.GetComments(c)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}
