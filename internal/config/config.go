package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	CatalogEmbedded = "embedded"
	CatalogFile     = "file"
	CatalogURL      = "url"
	CatalogPostgres = "postgres"

	LedgerMemory = "memory"
	LedgerRedis  = "redis"
)

type Config struct {
	Env       string
	HTTPAddr  string
	StaticDir string
	Catalog   CatalogConfig
	Ledger    LedgerConfig
	Query     QueryConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Telemetry TelemetryConfig
	Log       LogConfig
}

type CatalogConfig struct {
	Source  string
	Path    string
	URL     string
	Timeout time.Duration
}

type LedgerConfig struct {
	Backend    string
	SessionTTL time.Duration
}

type QueryConfig struct {
	MinSearchLength int
	DefaultPageSize int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type TelemetryConfig struct {
	OTLPEndpoint string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() *Config {
	return &Config{
		Env:       getEnv("ENV", "development"),
		HTTPAddr:  normalizeAddr(getEnv("HTTP_ADDR", ":8080")),
		StaticDir: getEnv("STATIC_DIR", "public"),
		Catalog: CatalogConfig{
			Source:  getEnv("CATALOG_SOURCE", CatalogEmbedded),
			Path:    getEnv("CATALOG_PATH", "data/ais.json"),
			URL:     getEnv("CATALOG_URL", ""),
			Timeout: getEnvDuration("CATALOG_TIMEOUT", 10*time.Second),
		},
		Ledger: LedgerConfig{
			Backend:    getEnv("LEDGER_BACKEND", LedgerMemory),
			SessionTTL: getEnvDuration("SESSION_TTL", 24*time.Hour),
		},
		Query: QueryConfig{
			MinSearchLength: getEnvInt("MIN_SEARCH_LENGTH", 2),
			DefaultPageSize: getEnvInt("DEFAULT_PAGE_SIZE", 12),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DATABASE_HOST", "localhost"),
			Port:     getEnv("DATABASE_PORT", "5433"),
			User:     getEnv("DATABASE_USER", "postgres"),
			Password: getEnv("DATABASE_PASSWORD", "postgres"),
			Name:     getEnv("DATABASE_NAME", "aifinder"),
			SSLMode:  getEnv("DATABASE_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", ""),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvInt falls back on unset or malformed values.
func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func normalizeAddr(addr string) string {
	if addr == "" {
		return addr
	}

	if addr[0] == ':' || addr[0] == '[' {
		return addr
	}

	for _, r := range addr {
		if r < '0' || r > '9' {
			return addr
		}
	}

	return ":" + addr
}
