package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/avenmora/lenspark/backend/internal/feed"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// feedHTTPError maps the feed subsystem's error taxonomy to HTTP
// statuses at the boundary
func feedHTTPError(err error) error {
	switch {
	case errors.Is(err, feed.ErrInvalidCursor):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, feed.ErrScopeNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, feed.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, feed.ErrConflictExists):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// validationError builds a 422 carrying the per-field error list
func validationError(message string, err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	errorsList := make([]echo.Map, len(fieldErrors))
	for i, fe := range fieldErrors {
		errorsList[i] = echo.Map{
			"field": fe.Field(),
			"value": fe.Value(),
			"msg":   fmt.Sprintf("failed on the %q rule", fe.Tag()),
		}
	}

	return echo.NewHTTPError(http.StatusUnprocessableEntity, echo.Map{
		"message": message,
		"errors":  errorsList,
	})
}

// getViewerID returns the authenticated viewer's id, or empty for
// anonymous requests
func getViewerID(c echo.Context) string {
	if id, ok := c.Get("userID").(string); ok {
		return id
	}
	return ""
}
