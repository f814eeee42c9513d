// Package metrics exposes the service's Prometheus collectors. A nil *Metrics
// is valid and records nothing.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	ratingsSubmitted prometheus.Counter
	toolsSaved       *prometheus.CounterVec
	catalogLoads     *prometheus.CounterVec
	sessionsSwept    prometheus.Counter
}

func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &Metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aifinder_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aifinder_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"method", "path"},
		),
		ratingsSubmitted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "aifinder_ratings_submitted_total",
				Help: "Total number of accepted rating submissions",
			},
		),
		toolsSaved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aifinder_tools_saved_total",
				Help: "Total number of save requests by outcome",
			},
			[]string{"result"},
		),
		catalogLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aifinder_catalog_loads_total",
				Help: "Total number of catalog load attempts",
			},
			[]string{"status"},
		),
		sessionsSwept: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "aifinder_sessions_swept_total",
				Help: "Total number of idle sessions evicted",
			},
		),
	}
}

// PrometheusMiddleware records request counts and latency per route template.
func (m *Metrics) PrometheusMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m == nil {
				return next(c)
			}

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			method := c.Request().Method
			status := strconv.Itoa(c.Response().Status)

			m.requests.WithLabelValues(method, path, status).Inc()
			m.requestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

func (m *Metrics) ObserveRating() {
	if m == nil {
		return
	}
	m.ratingsSubmitted.Inc()
}

func (m *Metrics) ObserveSave(result string) {
	if m == nil {
		return
	}
	m.toolsSaved.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveCatalogLoad(err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.catalogLoads.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveSweep(removed int) {
	if m == nil {
		return
	}
	m.sessionsSwept.Add(float64(removed))
}
