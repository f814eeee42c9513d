package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"aifinder/internal/api/middleware"
	"aifinder/internal/domain"
	"aifinder/internal/query"
)

const (
	msgCatalogUnavailable = "Failed to load AI tools"
	msgToolNotFound       = "AI tool not found"
	msgCategoryNotFound   = "Category not found"
	msgMissingRating      = "Missing aiId or rating"
	msgRatingRange        = "Rating must be between 1 and 5"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorResponse{Success: false, Error: message})
}

func ErrNotFound(c echo.Context, message string) error {
	if message == "" {
		message = "not found"
	}
	return errorJSON(c, http.StatusNotFound, message)
}

func ErrBadRequest(c echo.Context, message string) error {
	if message == "" {
		message = "invalid request"
	}
	return errorJSON(c, http.StatusBadRequest, message)
}

func ErrServiceUnavailable(c echo.Context, message string) error {
	return errorJSON(c, http.StatusServiceUnavailable, message)
}

func ErrInternalServerError(c echo.Context) error {
	return errorJSON(c, http.StatusInternalServerError, "internal server error")
}

// handleServiceError maps domain sentinels onto the response envelope.
func handleServiceError(c echo.Context, err error, notFoundMessage string, minSearchLength int) error {
	switch {
	case errors.Is(err, domain.ErrCatalogUnavailable):
		log.Error().Err(err).Msg("catalog unavailable")
		return ErrServiceUnavailable(c, msgCatalogUnavailable)
	case errors.Is(err, query.ErrSearchTooShort):
		return ErrBadRequest(c, fmt.Sprintf("Please enter at least %d characters", minSearchLength))
	case errors.Is(err, domain.ErrNotFound):
		return ErrNotFound(c, notFoundMessage)
	case errors.Is(err, domain.ErrValidation):
		return ErrBadRequest(c, "")
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		return ErrInternalServerError(c)
	}
}

func profileID(c echo.Context) (string, error) {
	id, err := middleware.GetProfileIDFromContext(c.Request().Context())
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
