package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/avenmora/lenspark/backend/internal/feed"
	"github.com/avenmora/lenspark/backend/internal/models"
	"github.com/avenmora/lenspark/backend/internal/repositories"
	"github.com/avenmora/lenspark/backend/internal/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// imageMimetypes is the whitelist for post image uploads
var imageMimetypes = map[string]bool{
	"image/jpeg":  true,
	"image/png":   true,
	"image/x-png": true,
}

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository     repositories.PostRepository
	likesBoxRepository repositories.LikesBoxRepository
	userRepository     repositories.UserRepository
	likeRepository     repositories.LikeRepository
	uploader           storage.Uploader
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	likesBoxRepo repositories.LikesBoxRepository,
	userRepo repositories.UserRepository,
	likeRepo repositories.LikeRepository,
	uploader storage.Uploader,
) *PostHandler {
	return &PostHandler{
		postRepository:     postRepo,
		likesBoxRepository: likesBoxRepo,
		userRepository:     userRepo,
		likeRepository:     likeRepo,
		uploader:           uploader,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(public, protected *echo.Group) {
	public.GET("/posts/:postid", h.GetPost)
	protected.POST("/posts", h.CreatePost)
}

type createPostForm struct {
	Caption string `form:"caption" validate:"required,min=1,max=2048"`
}

// CreatePost creates a post from a multipart form: a caption plus at
// least one jpeg/png image. Images go to object storage; the first
// image doubles as the thumbnail.
func (h *PostHandler) CreatePost(c echo.Context) error {
	viewerID := getViewerID(c)

	var form createPostForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&form); err != nil {
		return validationError("Failed to create post", err)
	}

	multipartForm, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid multipart form")
	}

	files := multipartForm.File["images"]
	if len(files) == 0 {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "Please attach at least one image on your post")
	}
	for _, file := range files {
		if !imageMimetypes[file.Header.Get("Content-Type")] {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "Please only submit jpeg or png file")
		}
	}

	ctx := c.Request().Context()

	urls := make([]string, 0, len(files))
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}

		key := "images/image-" + uuid.NewString() + filepath.Ext(file.Filename)
		url, err := h.uploader.Upload(ctx, src, key, file.Header.Get("Content-Type"))
		src.Close()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		urls = append(urls, url)
	}

	box, err := h.likesBoxRepository.CreateLikesBox(ctx, models.LikesBoxTypePost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	post := &models.Post{
		AuthorID:     viewerID,
		Caption:      form.Caption,
		ThumbnailURL: urls[0],
		ImageURLs:    urls,
		LikesBoxID:   box.ID,
	}

	if err := h.postRepository.CreatePost(ctx, post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Successfully created a post",
		"post":    post,
	})
}

// GetPost retrieves a single post with its author and the viewer's
// like status
func (h *PostHandler) GetPost(c echo.Context) error {
	postID := c.Param("postid")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return feedHTTPError(err)
	}

	annotated, err := feed.Annotate(c.Request().Context(), []models.Post{*post}, getViewerID(c), h.likeRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if author, err := h.userRepository.GetUserByID(post.AuthorID); err == nil {
		compact := author.ToCompact()
		annotated[0].Item.Author = &compact
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Successfully retrieved post",
		"post":    annotated[0],
	})
}
