package ledger

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"
)

type MemoryStore struct {
	mu       sync.Mutex
	ratings  map[string]int
	saved    []string
	now      func() time.Time
	lastUsed time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ratings: make(map[string]int), now: time.Now}
}

// touch marks the store as in use; callers hold s.mu.
func (s *MemoryStore) touch() {
	s.lastUsed = s.now()
}

func (s *MemoryStore) Ratings(_ context.Context) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return maps.Clone(s.ratings), nil
}

func (s *MemoryStore) SetRating(_ context.Context, toolID string, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.ratings[toolID] = value
	return nil
}

func (s *MemoryStore) SavedTools(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return slices.Clone(s.saved), nil
}

func (s *MemoryStore) AddSaved(_ context.Context, toolID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if slices.Contains(s.saved, toolID) {
		return false, nil
	}
	s.saved = append(s.saved, toolID)
	return true, nil
}

// MemorySessions keeps one MemoryStore per profile for the life of the
// process, or until swept.
type MemorySessions struct {
	mu     sync.Mutex
	stores map[string]*MemoryStore
	now    func() time.Time
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{
		stores: make(map[string]*MemoryStore),
		now:    time.Now,
	}
}

func (m *MemorySessions) Open(profileID string) Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, ok := m.stores[profileID]
	if !ok {
		store = NewMemoryStore()
		store.now = func() time.Time { return m.now() }
		m.stores[profileID] = store
	}
	store.mu.Lock()
	store.touch()
	store.mu.Unlock()

	return store
}

// Sweep drops sessions unused for longer than idle and returns how many were
// removed. Any store operation counts as use, not only Open.
func (m *MemorySessions) Sweep(idle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-idle)
	removed := 0
	for id, store := range m.stores {
		store.mu.Lock()
		expired := store.lastUsed.Before(cutoff)
		store.mu.Unlock()
		if expired {
			delete(m.stores, id)
			removed++
		}
	}
	return removed
}

func (m *MemorySessions) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stores)
}
