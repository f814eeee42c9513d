package catalog

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/asaskevich/govalidator"

	"aifinder/internal/domain"
)

var (
	ErrToolNotFound  = fmt.Errorf("tool %w", domain.ErrNotFound)
	ErrInvalidRecord = fmt.Errorf("%w: invalid tool record", domain.ErrValidation)
)

// Store is the immutable, validated set of catalog records. It is safe for
// concurrent readers; the records it hands out must be treated as read-only.
type Store struct {
	tools []domain.Tool
	index map[string]int
}

func NewStore(tools []domain.Tool) (*Store, error) {
	s := &Store{
		tools: make([]domain.Tool, 0, len(tools)),
		index: make(map[string]int, len(tools)),
	}

	for _, tool := range tools {
		if err := validateTool(tool); err != nil {
			return nil, err
		}
		if _, exists := s.index[tool.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidRecord, tool.ID)
		}
		s.index[tool.ID] = len(s.tools)
		s.tools = append(s.tools, cloneTool(tool))
	}

	return s, nil
}

// Tools returns the records in catalog order. The returned slice may be
// reordered by the caller.
func (s *Store) Tools() []domain.Tool {
	return slices.Clone(s.tools)
}

func (s *Store) Len() int {
	return len(s.tools)
}

func (s *Store) FindByID(id string) (domain.Tool, error) {
	i, ok := s.index[id]
	if !ok {
		return domain.Tool{}, ErrToolNotFound
	}
	return s.tools[i], nil
}

func (s *Store) Featured() []domain.Tool {
	var featured []domain.Tool
	for _, tool := range s.tools {
		if tool.Featured {
			featured = append(featured, tool)
		}
	}
	return featured
}

func (s *Store) CountByCategory(category string) int {
	count := 0
	for _, tool := range s.tools {
		if tool.HasFunction(category) {
			count++
		}
	}
	return count
}

func validateTool(tool domain.Tool) error {
	if _, err := govalidator.ValidateStruct(tool); err != nil {
		return fmt.Errorf("%w: tool %q: %w", ErrInvalidRecord, tool.ID, err)
	}

	if !tool.Price.Valid() {
		return fmt.Errorf("%w: tool %q: unknown price %q", ErrInvalidRecord, tool.ID, tool.Price)
	}

	if len(tool.Functions) == 0 {
		return fmt.Errorf("%w: tool %q: no functions", ErrInvalidRecord, tool.ID)
	}

	seen := make(map[string]struct{}, len(tool.Functions))
	for _, fn := range tool.Functions {
		if !domain.IsKnownCategory(fn) {
			return fmt.Errorf("%w: tool %q: unknown function %q", ErrInvalidRecord, tool.ID, fn)
		}
		if _, dup := seen[fn]; dup {
			return fmt.Errorf("%w: tool %q: duplicate function %q", ErrInvalidRecord, tool.ID, fn)
		}
		seen[fn] = struct{}{}
	}

	var errs []error
	for category, values := range tool.Ratings {
		if !domain.IsKnownCategory(category) {
			errs = append(errs, fmt.Errorf("unknown rating category %q", category))
			continue
		}
		for _, v := range values {
			if !domain.IsValidRating(v) {
				errs = append(errs, fmt.Errorf("rating %d in %q out of range", v, category))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: tool %q: %w", ErrInvalidRecord, tool.ID, errors.Join(errs...))
	}

	return nil
}

func cloneTool(tool domain.Tool) domain.Tool {
	tool.Functions = slices.Clone(tool.Functions)
	tool.Tags = slices.Clone(tool.Tags)
	if tool.Ratings != nil {
		ratings := maps.Clone(tool.Ratings)
		for k, v := range ratings {
			ratings[k] = slices.Clone(v)
		}
		tool.Ratings = ratings
	}
	return tool
}
