// Package ledger tracks the ratings and bookmarks of a single profile and
// aggregates them with the seed ratings shipped in the catalog.
package ledger

import (
	"context"
	"fmt"
	"slices"

	"aifinder/internal/domain"
)

var ErrInvalidRating = fmt.Errorf("%w: rating must be between %d and %d",
	domain.ErrValidation, domain.MinRating, domain.MaxRating)

type SaveResult int

const (
	SaveAdded SaveResult = iota
	SaveAlreadySaved
)

func (r SaveResult) String() string {
	if r == SaveAlreadySaved {
		return "already_saved"
	}
	return "added"
}

// ToolFinder resolves catalog records; *catalog.Store satisfies it.
type ToolFinder interface {
	FindByID(id string) (domain.Tool, error)
}

type Ledger struct {
	tools ToolFinder
	store Store
}

func New(tools ToolFinder, store Store) *Ledger {
	return &Ledger{tools: tools, store: store}
}

// SubmitRating overwrites the profile's rating of toolID. Invalid input never
// reaches the store.
func (l *Ledger) SubmitRating(ctx context.Context, toolID string, value int) error {
	if !domain.IsValidRating(value) {
		return fmt.Errorf("%w: got %d", ErrInvalidRating, value)
	}
	if _, err := l.tools.FindByID(toolID); err != nil {
		return err
	}
	return l.store.SetRating(ctx, toolID, value)
}

func (l *Ledger) UserRating(ctx context.Context, toolID string) (int, bool, error) {
	ratings, err := l.store.Ratings(ctx)
	if err != nil {
		return 0, false, err
	}
	value, ok := ratings[toolID]
	return value, ok, nil
}

// UserRatings returns every rating the profile submitted, keyed by tool id.
func (l *Ledger) UserRatings(ctx context.Context) (map[string]int, error) {
	return l.store.Ratings(ctx)
}

// AverageRating is recomputed on every call from the seed samples and the
// stored user rating.
func (l *Ledger) AverageRating(ctx context.Context, tool domain.Tool) (float64, error) {
	value, rated, err := l.UserRating(ctx, tool.ID)
	if err != nil {
		return 0, err
	}
	return Average(tool.SeedRatings(), value, rated), nil
}

// Averages computes the averages of many tools from a single store read.
func (l *Ledger) Averages(ctx context.Context, tools []domain.Tool) (map[string]float64, error) {
	ratings, err := l.store.Ratings(ctx)
	if err != nil {
		return nil, err
	}

	averages := make(map[string]float64, len(tools))
	for _, tool := range tools {
		value, rated := ratings[tool.ID]
		averages[tool.ID] = Average(tool.SeedRatings(), value, rated)
	}
	return averages, nil
}

func (l *Ledger) IsSaved(ctx context.Context, toolID string) (bool, error) {
	saved, err := l.store.SavedTools(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(saved, toolID), nil
}

// ToggleSave bookmarks toolID. Saving twice is a no-op reported as SaveAlreadySaved.
func (l *Ledger) ToggleSave(ctx context.Context, toolID string) (SaveResult, error) {
	if _, err := l.tools.FindByID(toolID); err != nil {
		return SaveAdded, err
	}

	added, err := l.store.AddSaved(ctx, toolID)
	if err != nil {
		return SaveAdded, err
	}
	if !added {
		return SaveAlreadySaved, nil
	}
	return SaveAdded, nil
}

func (l *Ledger) SavedTools(ctx context.Context) ([]string, error) {
	return l.store.SavedTools(ctx)
}

// Average is the plain mean of the seed samples plus the user rating when
// present, or 0 when nothing contributes.
func Average(seeds []int, userRating int, rated bool) float64 {
	sum, count := 0, len(seeds)
	for _, v := range seeds {
		sum += v
	}
	if rated {
		sum += userRating
		count++
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}
