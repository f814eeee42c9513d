package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aifinder/internal/domain"
)

func TestEmbeddedLoader(t *testing.T) {
	tools, err := EmbeddedLoader{}.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, tools, 8)

	store, err := NewStore(tools)
	require.NoError(t, err)

	midjourney, err := store.FindByID("midjourney")
	require.NoError(t, err)
	assert.Equal(t, domain.PriceHigh, midjourney.Price)
	assert.Len(t, store.Featured(), 3)
}

func TestFileLoader_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.json")
	doc := `[{"id":"x","name":"X","price":"free","description":"d","link":"https://x.dev","functions":["finance"],"ratings":{"finance":[3]}}]`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	tools, err := FileLoader{Path: path}.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, tools, 1)
	assert.Equal(t, []int{3}, tools[0].Ratings[domain.FinanceSlug])
}

func TestFileLoader_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.yaml")
	doc := `
- id: y
  name: "Y"
  price: 6-10
  description: voice tool
  link: https://y.dev
  functions: [voice-generation]
  ratings:
    voice-generation: [4, 5]
  tags: [Voice]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	tools, err := FileLoader{Path: path}.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, tools, 1)
	assert.Equal(t, domain.PriceMid, tools[0].Price)
	assert.Equal(t, []string{"Voice"}, tools[0].Tags)
}

func TestFileLoader_Errors(t *testing.T) {
	_, err := FileLoader{Path: filepath.Join(t.TempDir(), "missing.json")}.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"an array"}`), 0o600))
	_, err = FileLoader{Path: path}.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestURLLoader(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(defaultCatalog)
		}))
		defer srv.Close()

		tools, err := NewURLLoader(srv.URL, time.Second).Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, tools, 8)
	})

	t.Run("server error is a network error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := NewURLLoader(srv.URL, time.Second).Load(context.Background())
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	})

	t.Run("unreachable host", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewURLLoader(url, time.Second).Load(context.Background())
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	})
}

func TestProvider_RetriesAfterFailure(t *testing.T) {
	calls := 0
	loader := LoaderFunc(func(ctx context.Context) ([]domain.Tool, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("connection refused")
		}
		return []domain.Tool{validTool("a")}, nil
	})
	provider := NewProvider(loader)

	_, err := provider.Store(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	assert.False(t, provider.Loaded())

	store, err := provider.Store(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
	assert.True(t, provider.Loaded())

	_, err = provider.Store(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestProvider_InvalidRecordsLeaveItUnusable(t *testing.T) {
	bad := validTool("a")
	bad.Price = "priceless"
	provider := NewProvider(LoaderFunc(func(ctx context.Context) ([]domain.Tool, error) {
		return []domain.Tool{bad}, nil
	}))

	_, err := provider.Store(context.Background())
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, provider.Loaded())
}
