package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"aifinder/internal/api/dto"
	"aifinder/internal/api/services"
)

type CategoryHandler struct {
	finder *services.FinderService
}

type CategoriesResponse struct {
	Success    bool           `json:"success"`
	Categories []dto.Category `json:"categories"`
}

type CategoryResponse struct {
	Success  bool         `json:"success"`
	Category dto.Category `json:"category"`
}

func NewCategoryHandler(finder *services.FinderService) *CategoryHandler {
	return &CategoryHandler{finder: finder}
}

// ListCategories godoc
// @Summary List categories
// @Description The fixed category list with the number of tools in each
// @Tags categories
// @Produce json
// @Success 200 {object} CategoriesResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/categories [get]
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	summaries, err := h.finder.Categories(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err, msgCategoryNotFound, h.finder.MinSearchLength())
	}

	return c.JSON(http.StatusOK, CategoriesResponse{
		Success:    true,
		Categories: dto.CategoriesFromSummaries(summaries),
	})
}

// GetCategory godoc
// @Summary Get category
// @Tags categories
// @Produce json
// @Param id path string true "Category id"
// @Success 200 {object} CategoryResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/categories/{id} [get]
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	summary, err := h.finder.Category(c.Request().Context(), c.Param("id"))
	if err != nil {
		return handleServiceError(c, err, msgCategoryNotFound, h.finder.MinSearchLength())
	}

	return c.JSON(http.StatusOK, CategoryResponse{
		Success:  true,
		Category: dto.CategoryFromSummary(*summary),
	})
}
