package handlers

import (
	"math"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"aifinder/internal/api/services"
	"aifinder/internal/domain"
)

type RatingHandler struct {
	finder *services.FinderService
}

type RateRequest struct {
	AIID   string  `json:"aiId" validate:"required"`
	Rating float64 `json:"rating" validate:"required"`
}

type RateResponse struct {
	Success       bool    `json:"success"`
	Message       string  `json:"message"`
	AIID          string  `json:"aiId"`
	Rating        int     `json:"rating"`
	AverageRating float64 `json:"averageRating"`
}

func NewRatingHandler(finder *services.FinderService) *RatingHandler {
	return &RatingHandler{finder: finder}
}

// Rate godoc
// @Summary Rate an AI tool
// @Description Store the caller's 1-5 rating; the latest rating replaces earlier ones
// @Tags ratings
// @Accept json
// @Produce json
// @Param request body RateRequest true "Rating"
// @Success 200 {object} RateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/rate [post]
func (h *RatingHandler) Rate(c echo.Context) error {
	var req RateRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest(c, "invalid request body")
	}
	req.AIID = strings.TrimSpace(req.AIID)
	if err := c.Validate(&req); err != nil {
		return ErrBadRequest(c, msgMissingRating)
	}

	if req.Rating != math.Trunc(req.Rating) || !domain.IsValidRating(int(req.Rating)) {
		return ErrBadRequest(c, msgRatingRange)
	}
	value := int(req.Rating)

	pid, err := profileID(c)
	if err != nil {
		return ErrInternalServerError(c)
	}

	average, err := h.finder.Rate(c.Request().Context(), pid, req.AIID, value)
	if err != nil {
		return handleServiceError(c, err, msgToolNotFound, h.finder.MinSearchLength())
	}

	return c.JSON(http.StatusOK, RateResponse{
		Success:       true,
		Message:       "Rating saved successfully",
		AIID:          req.AIID,
		Rating:        value,
		AverageRating: average,
	})
}
