package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"aifinder/internal/metrics"
)

// Sweeper evicts sessions idle for longer than the given duration.
type Sweeper interface {
	Sweep(idle time.Duration) int
}

type SessionSweeper struct {
	sessions Sweeper
	idle     time.Duration
	metrics  *metrics.Metrics
	ticker   *time.Ticker
}

func NewSessionSweeper(sessions Sweeper, idle, interval time.Duration, m *metrics.Metrics) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		idle:     idle,
		metrics:  m,
		ticker:   time.NewTicker(interval),
	}
}

func (w *SessionSweeper) StartWorker(ctx context.Context) {
	defer w.ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.ticker.C:
			w.sweep()
		}
	}
}

func (w *SessionSweeper) sweep() int {
	removed := w.sessions.Sweep(w.idle)
	w.metrics.ObserveSweep(removed)
	if removed > 0 {
		log.Debug().Int("removed", removed).Msg("[SessionSweeper] evicted idle sessions")
	}
	return removed
}
