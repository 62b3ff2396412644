package handlers

import (
	"net/http"
	"strconv"

	"github.com/avenmora/lenspark/backend/internal/feed"
	"github.com/avenmora/lenspark/backend/internal/models"
	"github.com/avenmora/lenspark/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the three cursor-paginated post feeds
type FeedHandler struct {
	composer       *feed.Composer
	userRepository repositories.UserRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(composer *feed.Composer, userRepo repositories.UserRepository) *FeedHandler {
	return &FeedHandler{
		composer:       composer,
		userRepository: userRepo,
	}
}

// RegisterFeedRoutes registers feed routes. The public group allows
// anonymous viewers; the protected group requires authentication.
func (h *FeedHandler) RegisterFeedRoutes(public, protected *echo.Group) {
	public.GET("/feed", h.GetFeed)
	public.GET("/users/:username/posts", h.GetUserFeed)
	protected.GET("/feed/following", h.GetFollowingFeed)
}

// GetFeed returns the global feed, excluding the viewer's own posts
// when signed in
func (h *FeedHandler) GetFeed(c echo.Context) error {
	return h.serveFeed(c, feed.Request{
		Kind:     feed.Global,
		ViewerID: getViewerID(c),
	})
}

// GetUserFeed returns one user's posts, newest first
func (h *FeedHandler) GetUserFeed(c echo.Context) error {
	return h.serveFeed(c, feed.Request{
		Kind:     feed.ByUser,
		Username: c.Param("username"),
		ViewerID: getViewerID(c),
	})
}

// GetFollowingFeed returns posts by the users the viewer follows
func (h *FeedHandler) GetFollowingFeed(c echo.Context) error {
	return h.serveFeed(c, feed.Request{
		Kind:     feed.Following,
		ViewerID: getViewerID(c),
	})
}

func (h *FeedHandler) serveFeed(c echo.Context, req feed.Request) error {
	limit, err := parseLimit(c)
	if err != nil {
		return err
	}
	req.Limit = limit
	req.CursorToken = c.QueryParam("cursor")

	page, err := h.composer.Feed(c.Request().Context(), req)
	if err != nil {
		return feedHTTPError(err)
	}

	if err := h.attachAuthors(page); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	message := "Successfully retrieved posts"
	if len(page.Items) == 0 {
		message = "No more posts to fetch"
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":    message,
		"nextCursor": page.NextCursor,
		"posts":      page.Items,
	})
}

// attachAuthors joins compact author records onto the page's posts
func (h *FeedHandler) attachAuthors(page *feed.Page[models.Post]) error {
	authorIDs := make([]string, len(page.Items))
	for i := range page.Items {
		authorIDs[i] = page.Items[i].Item.AuthorID
	}

	authors, err := compactAuthors(h.userRepository, authorIDs)
	if err != nil {
		return err
	}

	for i := range page.Items {
		if author, ok := authors[page.Items[i].Item.AuthorID]; ok {
			page.Items[i].Item.Author = &author
		}
	}
	return nil
}

// parseLimit reads the limit query parameter; a non-integer value is a
// client validation error
func parseLimit(c echo.Context) (int, error) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusUnprocessableEntity, "Limit must be an integer")
	}
	return limit, nil
}
