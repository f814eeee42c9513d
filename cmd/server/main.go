package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"aifinder/cmd/server/docs"
	"aifinder/internal/api"
	"aifinder/internal/api/services"
	"aifinder/internal/catalog"
	"aifinder/internal/config"
	"aifinder/internal/ledger"
	"aifinder/internal/logging"
	"aifinder/internal/metrics"
	"aifinder/internal/query"
	"aifinder/internal/redis"
	"aifinder/internal/repository"
	"aifinder/internal/telemetry"
	"aifinder/internal/worker"
)

// @title AI Finder API
// @version 1.0
// @description Catalog, search and rating API for AI tools
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @schemes http https

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.Setup(cfg)

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Telemetry)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	loader, closeLoader, err := newCatalogLoader(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize catalog source")
	}
	defer closeLoader()
	provider := catalog.NewProvider(loader)

	sessions, sweeper, closeSessions, err := newSessions(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize ledger backend")
	}
	defer closeSessions()

	finder := services.NewFinderService(
		provider,
		sessions,
		query.NewEngine(cfg.Query.MinSearchLength),
		cfg.Query.DefaultPageSize,
		m,
	)

	docs.SwaggerInfo.Host = cfg.HTTPAddr
	if cfg.IsProduction() {
		docs.SwaggerInfo.Schemes = []string{"https"}
	} else {
		docs.SwaggerInfo.Schemes = []string{"http"}
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(otelecho.Middleware(telemetry.ServiceName))
	e.Use(m.PrometheusMiddleware())

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api.SetupRoutes(e, finder, cfg)

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("catalog", cfg.Catalog.Source).Str("ledger", cfg.Ledger.Backend).Msg("server starting")
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	go worker.NewCatalogWarmer(provider, 30*time.Second, m).StartWorker(ctx)
	if sweeper != nil {
		go worker.NewSessionSweeper(sweeper, cfg.Ledger.SessionTTL, time.Minute, m).StartWorker(ctx)
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracer shutdown failed")
	}
}

func newCatalogLoader(cfg *config.Config) (catalog.Loader, func(), error) {
	noop := func() {}

	switch cfg.Catalog.Source {
	case config.CatalogEmbedded, "":
		return catalog.EmbeddedLoader{}, noop, nil
	case config.CatalogFile:
		return catalog.FileLoader{Path: cfg.Catalog.Path}, noop, nil
	case config.CatalogURL:
		if cfg.Catalog.URL == "" {
			return nil, nil, fmt.Errorf("CATALOG_URL is required for the url catalog source")
		}
		return catalog.NewURLLoader(cfg.Catalog.URL, cfg.Catalog.Timeout), noop, nil
	case config.CatalogPostgres:
		db, err := repository.New(cfg)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewToolRepository(db.DB()), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
}

// newSessions returns the per-profile ledger backend. The sweeper is nil when
// the backend expires sessions by itself.
func newSessions(ctx context.Context, cfg *config.Config) (ledger.Sessions, worker.Sweeper, func(), error) {
	switch cfg.Ledger.Backend {
	case config.LedgerMemory, "":
		sessions := ledger.NewMemorySessions()
		return sessions, sessions, func() {}, nil
	case config.LedgerRedis:
		rdb := redis.New(cfg)
		if err := redis.Ping(ctx, rdb); err != nil {
			rdb.Close()
			return nil, nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		return ledger.NewRedisSessions(rdb, cfg.Ledger.SessionTTL), nil, func() { rdb.Close() }, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown ledger backend %q", cfg.Ledger.Backend)
	}
}
