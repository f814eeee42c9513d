package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"aifinder/internal/api/dto"
	"aifinder/internal/api/services"
	"aifinder/internal/ledger"
)

type SavedHandler struct {
	finder *services.FinderService
}

type SaveResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	AIID    string `json:"aiId"`
}

func NewSavedHandler(finder *services.FinderService) *SavedHandler {
	return &SavedHandler{finder: finder}
}

// ListSaved godoc
// @Summary Saved tools
// @Description Tools bookmarked by the caller, in the order they were saved
// @Tags saved
// @Produce json
// @Success 200 {object} ToolsResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/saved [get]
func (h *SavedHandler) ListSaved(c echo.Context) error {
	pid, err := profileID(c)
	if err != nil {
		return ErrInternalServerError(c)
	}

	views, err := h.finder.Saved(c.Request().Context(), pid)
	if err != nil {
		return handleServiceError(c, err, msgToolNotFound, h.finder.MinSearchLength())
	}

	return c.JSON(http.StatusOK, ToolsResponse{Success: true, Total: len(views), AIs: dto.ToolsFromViews(views)})
}

// Save godoc
// @Summary Save a tool
// @Tags saved
// @Produce json
// @Param id path string true "Tool id"
// @Success 201 {object} SaveResponse
// @Success 200 {object} SaveResponse "Already saved"
// @Failure 404 {object} ErrorResponse
// @Router /api/saved/{id} [post]
func (h *SavedHandler) Save(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return ErrBadRequest(c, "tool id is required")
	}

	pid, err := profileID(c)
	if err != nil {
		return ErrInternalServerError(c)
	}

	result, err := h.finder.Save(c.Request().Context(), pid, id)
	if err != nil {
		return handleServiceError(c, err, msgToolNotFound, h.finder.MinSearchLength())
	}

	if result == ledger.SaveAlreadySaved {
		return c.JSON(http.StatusOK, SaveResponse{Success: true, Message: "Already saved", AIID: id})
	}
	return c.JSON(http.StatusCreated, SaveResponse{Success: true, Message: "Saved", AIID: id})
}
