package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/avenmora/lenspark/backend/internal/feed"
	"github.com/avenmora/lenspark/backend/internal/models"
	"github.com/avenmora/lenspark/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles HTTP requests related to follow relationships
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(
	followRepo repositories.FollowRepository,
	userRepo repositories.UserRepository,
) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(protected *echo.Group) {
	protected.POST("/follows", h.Follow)
	protected.DELETE("/follows", h.Unfollow)
}

// Follow creates a follow edge from the viewer to the requested user
func (h *FollowHandler) Follow(c echo.Context) error {
	viewerID := getViewerID(c)
	ctx := c.Request().Context()

	req, err := h.bindFollowRequest(c)
	if err != nil {
		return err
	}

	target, err := h.userRepository.GetUserByUsername(req.Username)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User with that username doesn't exist")
	}

	if target.ID == viewerID {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "You cannot follow yourself")
	}

	if _, err := h.followRepository.CreateFollow(ctx, viewerID, target.ID); err != nil {
		if errors.Is(err, feed.ErrConflictExists) {
			return echo.NewHTTPError(http.StatusConflict, "You are already following this user")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": fmt.Sprintf("Successfully followed %s", target.Username),
	})
}

// Unfollow removes the follow edge from the viewer to the requested user
func (h *FollowHandler) Unfollow(c echo.Context) error {
	viewerID := getViewerID(c)
	ctx := c.Request().Context()

	req, err := h.bindFollowRequest(c)
	if err != nil {
		return err
	}

	target, err := h.userRepository.GetUserByUsername(req.Username)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User with that username doesn't exist")
	}

	if err := h.followRepository.DeleteFollow(ctx, viewerID, target.ID); err != nil {
		if errors.Is(err, repositories.ErrFollowNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "You are not following this user")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Successfully unfollowed %s", target.Username),
	})
}

func (h *FollowHandler) bindFollowRequest(c echo.Context) (*models.FollowRequest, error) {
	var req models.FollowRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return nil, validationError("Failed to process follow", err)
	}
	return &req, nil
}
