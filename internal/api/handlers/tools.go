package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"aifinder/internal/api/dto"
	"aifinder/internal/api/services"
)

type ToolHandler struct {
	finder *services.FinderService
}

type ListToolsResponse struct {
	Success    bool       `json:"success"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	TotalPages int        `json:"totalPages"`
	AIs        []dto.Tool `json:"ais"`
}

type ToolResponse struct {
	Success bool     `json:"success"`
	AI      dto.Tool `json:"ai"`
}

type ToolsResponse struct {
	Success bool       `json:"success"`
	Total   int        `json:"total"`
	AIs     []dto.Tool `json:"ais"`
}

func NewToolHandler(finder *services.FinderService) *ToolHandler {
	return &ToolHandler{finder: finder}
}

// ListTools godoc
// @Summary List AI tools
// @Description Filter, sort and paginate the catalog for the caller's profile
// @Tags tools
// @Produce json
// @Param search query string false "Text matched against name, description and functions"
// @Param func query string false "Category id"
// @Param price query string false "Price tier or 'all'"
// @Param sort query string false "rating or name"
// @Param page query int false "1-based page" default(1)
// @Param limit query int false "Page size (1-100)" default(12)
// @Success 200 {object} ListToolsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/ais [get]
func (h *ToolHandler) ListTools(c echo.Context) error {
	page, ok := intParam(c, "page")
	if !ok || page < 0 || (page == 0 && c.QueryParam("page") != "") {
		return ErrBadRequest(c, "Invalid page")
	}
	limit, ok := intParam(c, "limit")
	if !ok || limit < 0 || limit > services.MaxPageSize || (limit == 0 && c.QueryParam("limit") != "") {
		return ErrBadRequest(c, "Invalid limit")
	}

	pid, err := profileID(c)
	if err != nil {
		return ErrInternalServerError(c)
	}

	result, err := h.finder.ListTools(c.Request().Context(), pid, services.ListParams{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("func"),
		Price:    c.QueryParam("price"),
		Sort:     c.QueryParam("sort"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return handleServiceError(c, err, msgToolNotFound, h.finder.MinSearchLength())
	}

	return c.JSON(http.StatusOK, ListToolsResponse{
		Success:    true,
		Total:      result.Total,
		Page:       result.Page,
		TotalPages: result.TotalPages,
		AIs:        dto.ToolsFromViews(result.Tools),
	})
}

// GetTool godoc
// @Summary Get AI tool
// @Tags tools
// @Produce json
// @Param id path string true "Tool id"
// @Success 200 {object} ToolResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/ais/{id} [get]
func (h *ToolHandler) GetTool(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return ErrBadRequest(c, "tool id is required")
	}

	pid, err := profileID(c)
	if err != nil {
		return ErrInternalServerError(c)
	}

	view, err := h.finder.GetTool(c.Request().Context(), pid, id)
	if err != nil {
		return handleServiceError(c, err, msgToolNotFound, h.finder.MinSearchLength())
	}

	return c.JSON(http.StatusOK, ToolResponse{Success: true, AI: dto.ToolFromView(*view)})
}

// Search godoc
// @Summary Quick search
// @Description Search every tool regardless of category
// @Tags tools
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {object} ToolsResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/search [get]
func (h *ToolHandler) Search(c echo.Context) error {
	pid, err := profileID(c)
	if err != nil {
		return ErrInternalServerError(c)
	}

	views, err := h.finder.QuickSearch(c.Request().Context(), pid, c.QueryParam("q"))
	if err != nil {
		return handleServiceError(c, err, msgToolNotFound, h.finder.MinSearchLength())
	}

	return c.JSON(http.StatusOK, ToolsResponse{Success: true, Total: len(views), AIs: dto.ToolsFromViews(views)})
}

// Featured godoc
// @Summary Featured tools
// @Tags tools
// @Produce json
// @Success 200 {object} ToolsResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/featured [get]
func (h *ToolHandler) Featured(c echo.Context) error {
	pid, err := profileID(c)
	if err != nil {
		return ErrInternalServerError(c)
	}

	views, err := h.finder.Featured(c.Request().Context(), pid)
	if err != nil {
		return handleServiceError(c, err, msgToolNotFound, h.finder.MinSearchLength())
	}

	return c.JSON(http.StatusOK, ToolsResponse{Success: true, Total: len(views), AIs: dto.ToolsFromViews(views)})
}

// intParam parses an optional integer query parameter; absent means 0.
func intParam(c echo.Context, name string) (int, bool) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
