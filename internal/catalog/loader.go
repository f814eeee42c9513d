package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"aifinder/internal/domain"
)

//go:embed data/tools.json
var defaultCatalog []byte

// Loader reads the raw catalog records from a data source.
type Loader interface {
	Load(ctx context.Context) ([]domain.Tool, error)
}

type LoaderFunc func(ctx context.Context) ([]domain.Tool, error)

func (f LoaderFunc) Load(ctx context.Context) ([]domain.Tool, error) {
	return f(ctx)
}

type EmbeddedLoader struct{}

func (EmbeddedLoader) Load(_ context.Context) ([]domain.Tool, error) {
	return decodeJSON(defaultCatalog)
}

// FileLoader reads a JSON document, or YAML when the file ends in .yaml/.yml.
type FileLoader struct {
	Path string
}

func (l FileLoader) Load(_ context.Context) ([]domain.Tool, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrCatalogUnavailable, l.Path, err)
	}

	switch strings.ToLower(filepath.Ext(l.Path)) {
	case ".yaml", ".yml":
		var tools []domain.Tool
		if err := yaml.Unmarshal(data, &tools); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrCatalogUnavailable, l.Path, err)
		}
		return tools, nil
	default:
		return decodeJSON(data)
	}
}

// URLLoader fetches the catalog JSON document over HTTP.
type URLLoader struct {
	URL    string
	Client *http.Client
}

func NewURLLoader(url string, timeout time.Duration) *URLLoader {
	return &URLLoader{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

func (l *URLLoader) Load(ctx context.Context) ([]domain.Tool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", domain.ErrCatalogUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %w", domain.ErrCatalogUnavailable, l.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetch %s: unexpected status %d", domain.ErrCatalogUnavailable, l.URL, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", domain.ErrCatalogUnavailable, err)
	}

	return decodeJSON(data)
}

func decodeJSON(data []byte) ([]domain.Tool, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var tools []domain.Tool
	if err := dec.Decode(&tools); err != nil {
		return nil, fmt.Errorf("%w: decode catalog: %w", domain.ErrCatalogUnavailable, err)
	}
	return tools, nil
}
