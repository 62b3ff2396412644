package handlers

import (
	"context"
	"net/http"

	"github.com/avenmora/lenspark/backend/internal/feed"
	"github.com/avenmora/lenspark/backend/internal/models"
	"github.com/avenmora/lenspark/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ReplyHandler handles HTTP requests related to threaded replies
type ReplyHandler struct {
	replyRepository    repositories.ReplyRepository
	commentRepository  repositories.CommentRepository
	likesBoxRepository repositories.LikesBoxRepository
	userRepository     repositories.UserRepository
	likeRepository     repositories.LikeRepository
}

// NewReplyHandler creates a new ReplyHandler
func NewReplyHandler(
	replyRepo repositories.ReplyRepository,
	commentRepo repositories.CommentRepository,
	likesBoxRepo repositories.LikesBoxRepository,
	userRepo repositories.UserRepository,
	likeRepo repositories.LikeRepository,
) *ReplyHandler {
	return &ReplyHandler{
		replyRepository:    replyRepo,
		commentRepository:  commentRepo,
		likesBoxRepository: likesBoxRepo,
		userRepository:     userRepo,
		likeRepository:     likeRepo,
	}
}

// RegisterReplyRoutes registers reply-related routes
func (h *ReplyHandler) RegisterReplyRoutes(public, protected *echo.Group) {
	public.GET("/comments/:commentid/replies", h.GetReplies)
	protected.POST("/posts/:postid/comments/:commentid/replies", h.CreateReply)
}

// GetReplies returns one cursor-paginated page of a comment's replies,
// annotated with the viewer's like status
func (h *ReplyHandler) GetReplies(c echo.Context) error {
	commentID := c.Param("commentid")
	ctx := c.Request().Context()

	// Verify comment exists
	if _, err := h.commentRepository.GetCommentByID(ctx, commentID); err != nil {
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

	replies, err := h.replyRepository.RepliesPage(ctx, commentID, cursor, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	annotated, err := feed.Annotate(ctx, replies, getViewerID(c), h.likeRepository)
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

	message := "Successfully retrieved comment replies"
	if len(page.Items) == 0 {
		message = "No more replies to fetch"
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":    message,
		"nextCursor": page.NextCursor,
		"replies":    page.Items,
	})
}

// CreateReply creates a reply under a comment, optionally grouped
// beneath a parent reply
func (h *ReplyHandler) CreateReply(c echo.Context) error {
	viewerID := getViewerID(c)
	postID := c.Param("postid")
	commentID := c.Param("commentid")
	ctx := c.Request().Context()

	var req models.CreateReplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return validationError("Failed to create reply", err)
	}

	// Verify comment exists
	if _, err := h.commentRepository.GetCommentByID(ctx, commentID); err != nil {
		return feedHTTPError(err)
	}

	box, err := h.likesBoxRepository.CreateLikesBox(ctx, models.LikesBoxTypeReply)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	reply := &models.Reply{
		PostID:     postID,
		CommentID:  commentID,
		AuthorID:   viewerID,
		ReplyToID:  req.ReplyToID,
		ParentID:   req.ParentID,
		Content:    req.Content,
		LikesBoxID: box.ID,
	}

	if err := h.replyRepository.CreateReply(ctx, reply); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Increment replies count in the comment
	go h.commentRepository.IncrementRepliesCount(context.Background(), commentID, 1)

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Successfully created a reply",
		"reply":   reply,
	})
}
