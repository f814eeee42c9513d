package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aifinder/internal/catalog"
	"aifinder/internal/domain"
)

type countingSweeper struct {
	calls atomic.Int32
	idle  atomic.Int64
}

func (s *countingSweeper) Sweep(idle time.Duration) int {
	s.calls.Add(1)
	s.idle.Store(int64(idle))
	return 2
}

func TestSessionSweeper_SweepsOnTick(t *testing.T) {
	sweeper := &countingSweeper{}
	w := NewSessionSweeper(sweeper, time.Hour, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.StartWorker(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
	assert.Equal(t, int64(time.Hour), sweeper.idle.Load())
}

func TestSessionSweeper_Sweep(t *testing.T) {
	w := NewSessionSweeper(&countingSweeper{}, time.Minute, time.Hour, nil)
	defer w.ticker.Stop()

	assert.Equal(t, 2, w.sweep())
}

func TestCatalogWarmer_RetriesUntilLoaded(t *testing.T) {
	var attempts atomic.Int32
	loader := catalog.LoaderFunc(func(ctx context.Context) ([]domain.Tool, error) {
		if attempts.Add(1) < 3 {
			return nil, errors.New("not yet")
		}
		return catalog.EmbeddedLoader{}.Load(ctx)
	})
	provider := catalog.NewProvider(loader)
	w := NewCatalogWarmer(provider, 5*time.Millisecond, nil)

	done := make(chan struct{})
	go func() {
		w.StartWorker(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("warmer did not finish")
	}
	assert.True(t, provider.Loaded())
	assert.Equal(t, int32(3), attempts.Load())
}

func TestCatalogWarmer_StopsOnCancel(t *testing.T) {
	loader := catalog.LoaderFunc(func(context.Context) ([]domain.Tool, error) {
		return nil, errors.New("down")
	})
	w := NewCatalogWarmer(catalog.NewProvider(loader), time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.StartWorker(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("warmer did not stop after cancel")
	}
}
