package api

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var apiPrefixes = []string{"/api", "/health", "/metrics", "/swagger"}

func isAPIPath(path string) bool {
	for _, prefix := range apiPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

func cacheStaticAssets(production bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if !isAPIPath(path) && filepath.Ext(path) != "" && filepath.Ext(path) != ".html" {
				if production {
					c.Response().Header().Set("Cache-Control", "public, max-age=604800")
				} else {
					c.Response().Header().Set("Cache-Control", "public, max-age=3600")
				}
			}
			return next(c)
		}
	}
}

// serveFrontend serves the single-page frontend from dir, falling back to
// index.html for unknown paths. It is a no-op when dir does not exist.
func serveFrontend(e *echo.Echo, dir string, production bool) {
	if dir == "" {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return
	}

	e.Use(cacheStaticAssets(production))
	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Root:  dir,
		Index: "index.html",
		HTML5: true,
		Skipper: func(c echo.Context) bool {
			return isAPIPath(c.Request().URL.Path)
		},
	}))
}
