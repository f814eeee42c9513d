package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"ENV", "HTTP_ADDR", "CATALOG_SOURCE", "CATALOG_TIMEOUT", "LEDGER_BACKEND",
		"SESSION_TTL", "MIN_SEARCH_LENGTH", "DEFAULT_PAGE_SIZE", "REDIS_DB",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, CatalogEmbedded, cfg.Catalog.Source)
	assert.Equal(t, 10*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, LedgerMemory, cfg.Ledger.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Ledger.SessionTTL)
	assert.Equal(t, 2, cfg.Query.MinSearchLength)
	assert.Equal(t, 12, cfg.Query.DefaultPageSize)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("HTTP_ADDR", "9090")
	t.Setenv("CATALOG_SOURCE", CatalogURL)
	t.Setenv("CATALOG_URL", "https://example.com/ais.json")
	t.Setenv("CATALOG_TIMEOUT", "3s")
	t.Setenv("LEDGER_BACKEND", LedgerRedis)
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("MIN_SEARCH_LENGTH", "3")
	t.Setenv("REDIS_DB", "2")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, CatalogURL, cfg.Catalog.Source)
	assert.Equal(t, "https://example.com/ais.json", cfg.Catalog.URL)
	assert.Equal(t, 3*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, LedgerRedis, cfg.Ledger.Backend)
	assert.Equal(t, 30*time.Minute, cfg.Ledger.SessionTTL)
	assert.Equal(t, 3, cfg.Query.MinSearchLength)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoad_MalformedNumbersFallBack(t *testing.T) {
	t.Setenv("MIN_SEARCH_LENGTH", "two")
	t.Setenv("SESSION_TTL", "-5m")
	t.Setenv("CATALOG_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 2, cfg.Query.MinSearchLength)
	assert.Equal(t, 24*time.Hour, cfg.Ledger.SessionTTL)
	assert.Equal(t, 10*time.Second, cfg.Catalog.Timeout)
}

func TestNormalizeAddr(t *testing.T) {
	tests := map[string]string{
		"":               "",
		"8080":           ":8080",
		":8080":          ":8080",
		"localhost:8080": "localhost:8080",
		"[::1]:8080":     "[::1]:8080",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeAddr(in), in)
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "aifinder", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=aifinder sslmode=disable", d.DSN())
}
