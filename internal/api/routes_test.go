package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aifinder/internal/api/middleware"
	"aifinder/internal/api/services"
	"aifinder/internal/catalog"
	"aifinder/internal/config"
	"aifinder/internal/domain"
	"aifinder/internal/ledger"
	"aifinder/internal/query"
)

type testServer struct {
	e       *echo.Echo
	profile string
}

func newTestServer(t *testing.T, loader catalog.Loader) *testServer {
	t.Helper()

	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<html>AI Finder</html>"), 0o644))

	cfg := &config.Config{
		Env:       "test",
		StaticDir: static,
		Ledger:    config.LedgerConfig{Backend: config.LedgerMemory, SessionTTL: time.Hour},
	}
	finder := services.NewFinderService(
		catalog.NewProvider(loader),
		ledger.NewMemorySessions(),
		query.NewEngine(query.DefaultMinSearchLength),
		query.DefaultPageSize,
		nil,
	)

	e := echo.New()
	SetupRoutes(e, finder, cfg)
	return &testServer{e: e, profile: uuid.NewString()}
}

func (s *testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set(middleware.ProfileHeader, s.profile)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

type listResponse struct {
	Success    bool `json:"success"`
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	TotalPages int  `json:"totalPages"`
	AIs        []struct {
		ID         string  `json:"id"`
		PriceLabel string  `json:"priceLabel"`
		Rating     float64 `json:"rating"`
		UserRating *int    `json:"userRating"`
		Saved      bool    `json:"saved"`
	} `json:"ais"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func TestListTools(t *testing.T) {
	s := newTestServer(t, catalog.EmbeddedLoader{})

	rec := s.do(t, http.MethodGet, "/api/ais?func=image-generation&sort=rating", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[listResponse](t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, 4, body.Total)
	assert.Equal(t, 1, body.Page)
	assert.Equal(t, 1, body.TotalPages)
	require.Len(t, body.AIs, 4)
	assert.Equal(t, "dalle", body.AIs[0].ID)
	assert.Equal(t, "Free Trial", body.AIs[0].PriceLabel)
	assert.InDelta(t, 4.75, body.AIs[0].Rating, 1e-9)
	assert.Nil(t, body.AIs[0].UserRating)
}

func TestListTools_Pagination(t *testing.T) {
	s := newTestServer(t, catalog.EmbeddedLoader{})

	rec := s.do(t, http.MethodGet, "/api/ais?page=2&limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[listResponse](t, rec)
	assert.Equal(t, 8, body.Total)
	assert.Equal(t, 2, body.Page)
	assert.Equal(t, 2, body.TotalPages)
	assert.Len(t, body.AIs, 3)
}

func TestListTools_HugePage(t *testing.T) {
	s := newTestServer(t, catalog.EmbeddedLoader{})

	rec := s.do(t, http.MethodGet, "/api/ais?page=4611686018427387905&limit=4", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[listResponse](t, rec)
	assert.Equal(t, 8, body.Total)
	assert.Equal(t, 2, body.TotalPages)
	assert.Empty(t, body.AIs)
}

func TestListTools_BadRequests(t *testing.T) {
	s := newTestServer(t, catalog.EmbeddedLoader{})

	tests := []struct {
		target  string
		message string
	}{
		{"/api/ais?page=abc", "Invalid page"},
		{"/api/ais?page=0", "Invalid page"},
		{"/api/ais?limit=101", "Invalid limit"},
		{"/api/ais?limit=0", "Invalid limit"},
		{"/api/ais?search=a", "Please enter at least 2 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decode[errorResponse](t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Error)
		})
	}
}

func TestRate(t *testing.T) {
	s := newTestServer(t, catalog.EmbeddedLoader{})

	t.Run("missing fields", func(t *testing.T) {
		for _, payload := range []string{`{}`, `{"aiId":"midjourney"}`, `{"rating":4}`, `{"aiId":"midjourney","rating":0}`} {
			rec := s.do(t, http.MethodPost, "/api/rate", payload)
			require.Equal(t, http.StatusBadRequest, rec.Code, payload)
			assert.Equal(t, "Missing aiId or rating", decode[errorResponse](t, rec).Error)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		for _, payload := range []string{`{"aiId":"midjourney","rating":6}`, `{"aiId":"midjourney","rating":-1}`, `{"aiId":"midjourney","rating":4.5}`} {
			rec := s.do(t, http.MethodPost, "/api/rate", payload)
			require.Equal(t, http.StatusBadRequest, rec.Code, payload)
			assert.Equal(t, "Rating must be between 1 and 5", decode[errorResponse](t, rec).Error)
		}
	})

	t.Run("unknown tool", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/rate", `{"aiId":"ghost","rating":3}`)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "AI tool not found", decode[errorResponse](t, rec).Error)
	})

	t.Run("success", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/rate", `{"aiId":"midjourney","rating":1}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Success       bool    `json:"success"`
			Message       string  `json:"message"`
			AIID          string  `json:"aiId"`
			Rating        int     `json:"rating"`
			AverageRating float64 `json:"averageRating"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, "Rating saved successfully", body.Message)
		assert.Equal(t, "midjourney", body.AIID)
		assert.Equal(t, 1, body.Rating)
		assert.InDelta(t, 4.0, body.AverageRating, 1e-9)

		rec = s.do(t, http.MethodGet, "/api/ais/midjourney", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var tool struct {
			AI struct {
				Rating     float64 `json:"rating"`
				UserRating *int    `json:"userRating"`
			} `json:"ai"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tool))
		require.NotNil(t, tool.AI.UserRating)
		assert.Equal(t, 1, *tool.AI.UserRating)
		assert.InDelta(t, 4.0, tool.AI.Rating, 1e-9)
	})
}

func TestRate_ScopedToProfile(t *testing.T) {
	s := newTestServer(t, catalog.EmbeddedLoader{})

	rec := s.do(t, http.MethodPost, "/api/rate", `{"aiId":"claude","rating":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	s.profile = uuid.NewString()
	rec = s.do(t, http.MethodGet, "/api/ais/claude", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"userRating":null`)
}

func TestGetTool_NotFound(t *testing.T) {
	s := newTestServer(t, catalog.EmbeddedLoader{})

	rec := s.do(t, http.MethodGet, "/api/ais/ghost", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "AI tool not found", decode[errorResponse](t, rec).Error)
}

func TestSaved(t *testing.T) {
	s := newTestServer(t, catalog.EmbeddedLoader{})

	rec := s.do(t, http.MethodPost, "/api/saved/runway", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/saved/runway", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Already saved")

	rec = s.do(t, http.MethodPost, "/api/saved/ghost", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/saved", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[listResponse](t, rec)
	assert.Equal(t, 1, body.Total)
	require.Len(t, body.AIs, 1)
	assert.Equal(t, "runway", body.AIs[0].ID)
	assert.True(t, body.AIs[0].Saved)
}

func TestSearchAndFeatured(t *testing.T) {
	s := newTestServer(t, catalog.EmbeddedLoader{})

	rec := s.do(t, http.MethodGet, "/api/search?q=", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please enter at least 2 characters", decode[errorResponse](t, rec).Error)

	rec = s.do(t, http.MethodGet, "/api/search?q=copilot", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[listResponse](t, rec).Total)

	rec = s.do(t, http.MethodGet, "/api/featured", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decode[listResponse](t, rec).Total)
}

func TestCategories(t *testing.T) {
	s := newTestServer(t, catalog.EmbeddedLoader{})

	rec := s.do(t, http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Categories []struct {
			ID    string `json:"id"`
			Total int    `json:"total"`
		} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Categories, len(domain.Categories))

	rec = s.do(t, http.MethodGet, "/api/categories/image-generation", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":4`)

	rec = s.do(t, http.MethodGet, "/api/categories/cooking", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Category not found", decode[errorResponse](t, rec).Error)
}

func TestCatalogUnavailable(t *testing.T) {
	failing := catalog.LoaderFunc(func(context.Context) ([]domain.Tool, error) {
		return nil, errors.New("dial tcp: connection refused")
	})
	s := newTestServer(t, failing)

	for _, target := range []string{"/api/ais", "/api/featured", "/api/categories"} {
		rec := s.do(t, http.MethodGet, target, "")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
		body := decode[errorResponse](t, rec)
		assert.False(t, body.Success)
		assert.Equal(t, "Failed to load AI tools", body.Error)
	}
}

func TestProfileCookieIssued(t *testing.T) {
	s := newTestServer(t, catalog.EmbeddedLoader{})

	req := httptest.NewRequest(http.MethodGet, "/api/featured", nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.ProfileCookie, cookies[0].Name)
}

func TestHealthAndFrontend(t *testing.T) {
	s := newTestServer(t, catalog.EmbeddedLoader{})

	rec := s.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = s.do(t, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "AI Finder")

	rec = s.do(t, http.MethodGet, "/saved/list", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "AI Finder")

	rec = s.do(t, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
