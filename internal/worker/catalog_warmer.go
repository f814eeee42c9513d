package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"aifinder/internal/catalog"
	"aifinder/internal/metrics"
)

// CatalogWarmer loads the catalog at startup and keeps retrying in the
// background until a load succeeds, so the first visitor does not pay for it.
type CatalogWarmer struct {
	provider *catalog.Provider
	metrics  *metrics.Metrics
	interval time.Duration
}

func NewCatalogWarmer(provider *catalog.Provider, interval time.Duration, m *metrics.Metrics) *CatalogWarmer {
	return &CatalogWarmer{provider: provider, metrics: m, interval: interval}
}

func (w *CatalogWarmer) StartWorker(ctx context.Context) {
	if w.warm(ctx) {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if w.warm(ctx) {
				return
			}
		}
	}
}

func (w *CatalogWarmer) warm(ctx context.Context) bool {
	if w.provider.Loaded() {
		return true
	}

	store, err := w.provider.Store(ctx)
	w.metrics.ObserveCatalogLoad(err)
	if err != nil {
		log.Warn().Err(err).Dur("retry_in", w.interval).Msg("[CatalogWarmer] catalog load failed")
		return false
	}

	log.Info().Int("tools", store.Len()).Msg("[CatalogWarmer] catalog loaded")
	return true
}
