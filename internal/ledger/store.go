package ledger

import "context"

// Store persists the ledger of a single profile: the last rating given to
// each tool and the ordered set of saved tool ids.
type Store interface {
	Ratings(ctx context.Context) (map[string]int, error)
	SetRating(ctx context.Context, toolID string, value int) error
	SavedTools(ctx context.Context) ([]string, error)
	// AddSaved inserts toolID and reports false when it was already present.
	AddSaved(ctx context.Context, toolID string) (bool, error)
}

// Sessions hands out the store of a profile, creating it on first use.
type Sessions interface {
	Open(profileID string) Store
}

// SingleSession serves one store to every profile, as in a local CLI.
type SingleSession struct {
	store Store
}

func NewSingleSession(store Store) *SingleSession {
	return &SingleSession{store: store}
}

func (s *SingleSession) Open(string) Store {
	return s.store
}
