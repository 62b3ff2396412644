package handlers

import (
	"net/http"

	"github.com/avenmora/lenspark/backend/internal/models"
	"github.com/avenmora/lenspark/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to user profiles
type UserHandler struct {
	userRepository   repositories.UserRepository
	postRepository   repositories.PostRepository
	followRepository repositories.FollowRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	followRepo repositories.FollowRepository,
) *UserHandler {
	return &UserHandler{
		userRepository:   userRepo,
		postRepository:   postRepo,
		followRepository: followRepo,
	}
}

// RegisterUserRoutes registers profile-related routes
func (h *UserHandler) RegisterUserRoutes(public *echo.Group) {
	public.GET("/profiles/:username", h.GetProfile)
}

// GetProfile returns a user's public profile with aggregate counts.
// When the request carries a valid token the response also reports
// whether the viewer follows this user.
func (h *UserHandler) GetProfile(c echo.Context) error {
	username := c.Param("username")
	ctx := c.Request().Context()

	user, err := h.userRepository.GetUserByUsername(username)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User profile with that username doesn't exist")
	}

	postsCount, err := h.postRepository.CountByAuthor(ctx, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	followersCount, err := h.followRepository.FollowersCount(ctx, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	followingCount, err := h.followRepository.FollowingCount(ctx, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	profile := models.Profile{
		User:           user.ToCompact(),
		BannerURL:      user.BannerURL,
		PostsCount:     postsCount,
		FollowersCount: followersCount,
		FollowingCount: followingCount,
	}

	viewerFollowing := false
	if viewerID := getViewerID(c); viewerID != "" && viewerID != user.ID {
		viewerFollowing, err = h.followRepository.IsFollowing(ctx, viewerID, user.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":          "Successfully retrieved user profile",
		"profile":          profile,
		"viewer_following": viewerFollowing,
	})
}
