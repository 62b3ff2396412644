package handlers

import (
	"context"
	"net/http"

	"github.com/avenmora/lenspark/backend/internal/feed"
	"github.com/avenmora/lenspark/backend/internal/models"
	"github.com/avenmora/lenspark/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository  repositories.CommentRepository
	postRepository     repositories.PostRepository
	likesBoxRepository repositories.LikesBoxRepository
	userRepository     repositories.UserRepository
	likeRepository     repositories.LikeRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	likesBoxRepo repositories.LikesBoxRepository,
	userRepo repositories.UserRepository,
	likeRepo repositories.LikeRepository,
) *CommentHandler {
	return &CommentHandler{
		commentRepository:  commentRepo,
		postRepository:     postRepo,
		likesBoxRepository: likesBoxRepo,
		userRepository:     userRepo,
		likeRepository:     likeRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(public, protected *echo.Group) {
	public.GET("/posts/:postid/comments", h.GetComments)
	protected.POST("/posts/:postid/comments", h.CreateComment)
}

// GetComments returns one cursor-paginated page of a post's comments,
// annotated with the viewer's like status
func (h *CommentHandler) GetComments(c echo.Context) error {
	postID := c.Param("postid")
	ctx := c.Request().Context()

	// Verify post exists
	if _, err := h.postRepository.GetPostByID(ctx, postID); err != nil {
		return feedHTTPError(err)
	}

	limit, err := parseLimit(c)
	if err != nil {
		return err
	}

	var cursor *feed.Cursor
	if token := c.QueryParam("cursor"); token != "" {
		decoded, err := feed.DecodeCursor(token)
		if err != nil {
			return feedHTTPError(err)
		}
		cursor = &decoded
	}

	comments, err := h.commentRepository.CommentsPage(ctx, postID, cursor, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	annotated, err := feed.Annotate(ctx, comments, getViewerID(c), h.likeRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	authorIDs := make([]string, len(annotated))
	for i := range annotated {
		authorIDs[i] = annotated[i].Item.AuthorID
	}
	authors, err := compactAuthors(h.userRepository, authorIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	for i := range annotated {
		if author, ok := authors[annotated[i].Item.AuthorID]; ok {
			annotated[i].Item.Author = &author
		}
	}

	page := feed.NewPage(annotated)

	message := "Successfully retrieved post comments"
	if len(page.Items) == 0 {
		message = "No more comments to fetch"
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":    message,
		"nextCursor": page.NextCursor,
		"comments":   page.Items,
	})
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	viewerID := getViewerID(c)
	postID := c.Param("postid")
	ctx := c.Request().Context()

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return validationError("Failed to create comment", err)
	}

	// Verify post exists
	if _, err := h.postRepository.GetPostByID(ctx, postID); err != nil {
		return feedHTTPError(err)
	}

	box, err := h.likesBoxRepository.CreateLikesBox(ctx, models.LikesBoxTypeComment)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comment := &models.Comment{
		PostID:     postID,
		AuthorID:   viewerID,
		Content:    req.Content,
		LikesBoxID: box.ID,
	}

	if err := h.commentRepository.CreateComment(ctx, comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Increment comments count in the post
	go h.postRepository.IncrementCommentsCount(context.Background(), postID, 1)

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Successfully created a comment",
		"comment": comment,
	})
}
