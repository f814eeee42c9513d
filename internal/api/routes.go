package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"aifinder/internal/api/handlers"
	"aifinder/internal/api/middleware"
	"aifinder/internal/api/services"
	"aifinder/internal/config"
)

func SetupRoutes(e *echo.Echo, finder *services.FinderService, cfg *config.Config) {
	e.GET("/health", healthCheck)

	e.Validator = NewValidator()

	apiGroup := e.Group("/api")
	apiGroup.Use(middleware.ResolveProfile(cfg.IsProduction(), cfg.Ledger.SessionTTL))

	toolHandler := handlers.NewToolHandler(finder)
	apiGroup.GET("/ais", toolHandler.ListTools)
	apiGroup.GET("/ais/:id", toolHandler.GetTool)
	apiGroup.GET("/search", toolHandler.Search)
	apiGroup.GET("/featured", toolHandler.Featured)

	ratingHandler := handlers.NewRatingHandler(finder)
	apiGroup.POST("/rate", ratingHandler.Rate)

	savedHandler := handlers.NewSavedHandler(finder)
	apiGroup.GET("/saved", savedHandler.ListSaved)
	apiGroup.POST("/saved/:id", savedHandler.Save)

	categoryHandler := handlers.NewCategoryHandler(finder)
	apiGroup.GET("/categories", categoryHandler.ListCategories)
	apiGroup.GET("/categories/:id", categoryHandler.GetCategory)

	serveFrontend(e, cfg.StaticDir, cfg.IsProduction())
}

func healthCheck(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
