package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/avenmora/lenspark/backend/internal/models"
	"github.com/avenmora/lenspark/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeRepository     repositories.LikeRepository
	likesBoxRepository repositories.LikesBoxRepository
	postRepository     repositories.PostRepository
	commentRepository  repositories.CommentRepository
	replyRepository    repositories.ReplyRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(
	likeRepo repositories.LikeRepository,
	likesBoxRepo repositories.LikesBoxRepository,
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	replyRepo repositories.ReplyRepository,
) *LikeHandler {
	return &LikeHandler{
		likeRepository:     likeRepo,
		likesBoxRepository: likesBoxRepo,
		postRepository:     postRepo,
		commentRepository:  commentRepo,
		replyRepository:    replyRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(protected *echo.Group) {
	protected.POST("/likes", h.Like)
	protected.DELETE("/likes", h.Unlike)
}

// Like records the viewer's like on a likes box. Liking the same box
// twice is an explicit conflict, not a silent success: the unique
// constraint on (author_id, likes_box_id) is the arbiter under
// concurrent attempts.
func (h *LikeHandler) Like(c echo.Context) error {
	viewerID := getViewerID(c)
	ctx := c.Request().Context()

	req, err := h.bindLikeRequest(c)
	if err != nil {
		return err
	}

	box, err := h.likesBoxRepository.GetLikesBox(ctx, req.LikesBoxID)
	if err != nil {
		return feedHTTPError(err)
	}

	like := &models.Like{
		AuthorID:   viewerID,
		LikesBoxID: box.ID,
	}
	if err := h.likeRepository.CreateLike(ctx, like); err != nil {
		return feedHTTPError(err)
	}

	// Adjust the denormalized count on the owning document
	go h.incrementLikesCount(box, 1)

	kind := strings.ToLower(box.Type)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Successfully liked the " + kind,
		"like":    like,
	})
}

// Unlike removes the viewer's like from a likes box
func (h *LikeHandler) Unlike(c echo.Context) error {
	viewerID := getViewerID(c)
	ctx := c.Request().Context()

	req, err := h.bindLikeRequest(c)
	if err != nil {
		return err
	}

	box, err := h.likesBoxRepository.GetLikesBox(ctx, req.LikesBoxID)
	if err != nil {
		return feedHTTPError(err)
	}

	kind := strings.ToLower(box.Type)

	if err := h.likeRepository.DeleteLike(ctx, viewerID, box.ID); err != nil {
		if errors.Is(err, repositories.ErrLikeNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "You haven't liked this "+kind)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	go h.incrementLikesCount(box, -1)

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Successfully unliked the " + kind,
	})
}

func (h *LikeHandler) bindLikeRequest(c echo.Context) (*models.LikeRequest, error) {
	var req models.LikeRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	req.Type = strings.ToUpper(strings.TrimSpace(req.Type))
	if err := c.Validate(&req); err != nil {
		return nil, validationError("Failed to process like", err)
	}
	return &req, nil
}

func (h *LikeHandler) incrementLikesCount(box *models.LikesBox, delta int) {
	ctx := context.Background()
	switch box.Type {
	case models.LikesBoxTypePost:
		h.postRepository.IncrementLikesCount(ctx, box.ID, delta)
	case models.LikesBoxTypeComment:
		h.commentRepository.IncrementLikesCount(ctx, box.ID, delta)
	case models.LikesBoxTypeReply:
		h.replyRepository.IncrementLikesCount(ctx, box.ID, delta)
	}
}
