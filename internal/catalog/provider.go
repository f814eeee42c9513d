package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"aifinder/internal/domain"
)

// Provider loads the catalog once. A failed load leaves it unusable and the
// next call to Store retries.
type Provider struct {
	loader Loader

	mu    sync.RWMutex
	store *Store
}

func NewProvider(loader Loader) *Provider {
	return &Provider{loader: loader}
}

// NewStaticProvider wraps an already loaded store.
func NewStaticProvider(store *Store) *Provider {
	return &Provider{store: store}
}

func (p *Provider) Store(ctx context.Context) (*Store, error) {
	p.mu.RLock()
	store := p.store
	p.mu.RUnlock()
	if store != nil {
		return store, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.store != nil {
		return p.store, nil
	}
	if p.loader == nil {
		return nil, fmt.Errorf("%w: no loader configured", domain.ErrCatalogUnavailable)
	}

	tools, err := p.loader.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrCatalogUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}

	store, err = NewStore(tools)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}

	p.store = store
	return store, nil
}

func (p *Provider) Loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.store != nil
}
