// Package query implements filtering, ordering and pagination over catalog
// records. The engine is deterministic and keeps no state between calls.
package query

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"aifinder/internal/domain"
)

const (
	SortRating = "rating"
	SortName   = "name"

	DefaultPageSize        = 12
	DefaultMinSearchLength = 2
)

var (
	ErrSearchTooShort = fmt.Errorf("%w: search text too short", domain.ErrValidation)
	ErrInvalidPage    = fmt.Errorf("%w: invalid page", domain.ErrValidation)
)

type Params struct {
	Category   string
	SearchText string
	Price      string
	Sort       string
	PageIndex  int
	PageSize   int
}

type Result struct {
	Tools     []domain.Tool
	Total     int
	PageIndex int
	PageSize  int
}

// HasMore reports whether a "load more" affordance applies.
func (r Result) HasMore() bool {
	return r.PageIndex < r.TotalPages()-1
}

func (r Result) TotalPages() int {
	if r.PageSize <= 0 {
		return 0
	}
	pages := r.Total / r.PageSize
	if r.Total%r.PageSize != 0 {
		pages++
	}
	return pages
}

// AverageFunc yields the current average rating of a tool.
type AverageFunc func(domain.Tool) float64

// Engine is safe for concurrent use; case folding state is created per call.
type Engine struct {
	minSearchLength int
}

func NewEngine(minSearchLength int) *Engine {
	if minSearchLength < 0 {
		minSearchLength = 0
	}
	return &Engine{minSearchLength: minSearchLength}
}

func (e *Engine) MinSearchLength() int {
	return e.minSearchLength
}

// Query filters, sorts and paginates tools. Blank search text disables the
// text filter; non-blank text shorter than the minimum length is rejected.
// avg is only consulted when sorting by rating and may be nil otherwise.
func (e *Engine) Query(tools []domain.Tool, p Params, avg AverageFunc) (Result, error) {
	if p.PageIndex < 0 || p.PageSize <= 0 {
		return Result{}, fmt.Errorf("%w: page %d size %d", ErrInvalidPage, p.PageIndex, p.PageSize)
	}

	search := strings.TrimSpace(p.SearchText)
	if search != "" && len([]rune(search)) < e.minSearchLength {
		return Result{}, fmt.Errorf("%w: need at least %d characters", ErrSearchTooShort, e.minSearchLength)
	}

	fold := cases.Fold()
	needle := fold.String(search)
	filtered := make([]domain.Tool, 0, len(tools))
	for _, tool := range tools {
		if p.Category != "" && !tool.HasFunction(p.Category) {
			continue
		}
		if needle != "" && !matchesText(fold, tool, needle) {
			continue
		}
		if p.Price != "" && p.Price != domain.PriceAll && string(tool.Price) != p.Price {
			continue
		}
		filtered = append(filtered, tool)
	}

	sortTools(fold, filtered, p.Sort, avg)

	return paginate(filtered, p.PageIndex, p.PageSize), nil
}

// Search is the quick-search variant: text is required and must meet the
// minimum length, empty input included.
func (e *Engine) Search(tools []domain.Tool, text string) ([]domain.Tool, error) {
	search := strings.TrimSpace(text)
	if search == "" || len([]rune(search)) < e.minSearchLength {
		return nil, fmt.Errorf("%w: please enter at least %d characters", ErrSearchTooShort, e.minSearchLength)
	}

	fold := cases.Fold()
	needle := fold.String(search)
	results := make([]domain.Tool, 0)
	for _, tool := range tools {
		if matchesText(fold, tool, needle) {
			results = append(results, tool)
		}
	}
	return results, nil
}

func matchesText(fold cases.Caser, tool domain.Tool, needle string) bool {
	if strings.Contains(fold.String(tool.Name), needle) ||
		strings.Contains(fold.String(tool.Description), needle) {
		return true
	}
	for _, fn := range tool.Functions {
		if strings.Contains(fold.String(fn), needle) {
			return true
		}
	}
	return false
}

func sortTools(fold cases.Caser, tools []domain.Tool, key string, avg AverageFunc) {
	switch key {
	case SortRating:
		if avg == nil {
			return
		}
		averages := make(map[string]float64, len(tools))
		for _, tool := range tools {
			averages[tool.ID] = avg(tool)
		}
		slices.SortStableFunc(tools, func(a, b domain.Tool) int {
			switch {
			case averages[a.ID] > averages[b.ID]:
				return -1
			case averages[a.ID] < averages[b.ID]:
				return 1
			default:
				return 0
			}
		})
	case SortName:
		slices.SortStableFunc(tools, func(a, b domain.Tool) int {
			return strings.Compare(fold.String(a.Name), fold.String(b.Name))
		})
	}
}

func paginate(tools []domain.Tool, pageIndex, pageSize int) Result {
	total := len(tools)
	// pageIndex*pageSize may overflow for huge indexes; compare by division first.
	start := total
	if pageIndex <= total/pageSize {
		start = min(pageIndex*pageSize, total)
	}
	end := start + min(pageSize, total-start)

	page := make([]domain.Tool, end-start)
	copy(page, tools[start:end])

	return Result{
		Tools:     page,
		Total:     total,
		PageIndex: pageIndex,
		PageSize:  pageSize,
	}
}
