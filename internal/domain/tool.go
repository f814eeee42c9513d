package domain

import "slices"

const (
	MinRating = 1
	MaxRating = 5
)

// Tool is a catalog entry. Records are immutable once the catalog is loaded.
type Tool struct {
	ID          string           `json:"id" yaml:"id" db:"id" valid:"required"`
	Name        string           `json:"name" yaml:"name" db:"name" valid:"required"`
	Price       Price            `json:"price" yaml:"price" db:"price" valid:"required"`
	Description string           `json:"description" yaml:"description" db:"description"`
	Link        string           `json:"link" yaml:"link" db:"link" valid:"required,url"`
	Functions   []string         `json:"functions" yaml:"functions" db:"-" valid:"-"`
	Ratings     map[string][]int `json:"ratings,omitempty" yaml:"ratings,omitempty" db:"-" valid:"-"`
	Tags        []string         `json:"tags,omitempty" yaml:"tags,omitempty" db:"-" valid:"-"`
	Featured    bool             `json:"featured,omitempty" yaml:"featured,omitempty" db:"featured"`
}

func (t Tool) HasFunction(category string) bool {
	return slices.Contains(t.Functions, category)
}

// SeedRatings flattens the seed samples of every category the tool belongs to,
// in function order. Samples keyed by categories outside Functions are ignored.
func (t Tool) SeedRatings() []int {
	var seeds []int
	for _, fn := range t.Functions {
		seeds = append(seeds, t.Ratings[fn]...)
	}
	return seeds
}

func IsValidRating(value int) bool {
	return value >= MinRating && value <= MaxRating
}
