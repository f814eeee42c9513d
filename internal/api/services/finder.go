package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"aifinder/internal/catalog"
	"aifinder/internal/domain"
	"aifinder/internal/ledger"
	"aifinder/internal/metrics"
	"aifinder/internal/query"
)

var (
	ErrCategoryNotFound = fmt.Errorf("category %w", domain.ErrNotFound)
)

const MaxPageSize = 100

// ToolView is a catalog record as seen by one profile.
type ToolView struct {
	Tool       domain.Tool
	Rating     float64
	UserRating int
	Rated      bool
	Saved      bool
}

type ListParams struct {
	Search   string
	Category string
	Price    string
	Sort     string
	Page     int
	Limit    int
}

type ToolPage struct {
	Tools      []ToolView
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// HasMore reports whether a following page holds more tools.
func (p *ToolPage) HasMore() bool {
	return p.Page < p.TotalPages
}

type CategorySummary struct {
	domain.Category
	Total int
}

type FinderService struct {
	catalog  *catalog.Provider
	sessions ledger.Sessions
	engine   *query.Engine
	pageSize int
	metrics  *metrics.Metrics
}

func NewFinderService(
	provider *catalog.Provider,
	sessions ledger.Sessions,
	engine *query.Engine,
	pageSize int,
	m *metrics.Metrics,
) *FinderService {
	if pageSize <= 0 {
		pageSize = query.DefaultPageSize
	}
	return &FinderService{
		catalog:  provider,
		sessions: sessions,
		engine:   engine,
		pageSize: pageSize,
		metrics:  m,
	}
}

func (s *FinderService) MinSearchLength() int {
	return s.engine.MinSearchLength()
}

func (s *FinderService) open(ctx context.Context, profileID string) (*catalog.Store, *ledger.Ledger, error) {
	store, err := s.catalog.Store(ctx)
	if err != nil {
		return nil, nil, err
	}
	return store, ledger.New(store, s.sessions.Open(profileID)), nil
}

// ListTools runs a filtered, sorted page query. Page is 1-based; a zero Limit
// selects the default page size.
func (s *FinderService) ListTools(ctx context.Context, profileID string, p ListParams) (*ToolPage, error) {
	view, err := s.View(p)
	if err != nil {
		return nil, err
	}
	return s.Browse(ctx, profileID, view)
}

// View turns list parameters into a browsing state, filling in defaults.
func (s *FinderService) View(p ListParams) (query.ViewState, error) {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Limit == 0 {
		p.Limit = s.pageSize
	}
	if p.Page < 1 || p.Limit < 1 || p.Limit > MaxPageSize {
		return query.ViewState{}, fmt.Errorf("%w: page %d limit %d", query.ErrInvalidPage, p.Page, p.Limit)
	}

	return query.NewViewState(p.Limit).
		WithCategory(p.Category).
		WithSearch(p.Search).
		WithPrice(p.Price).
		WithSort(p.Sort).
		AtPage(p.Page - 1), nil
}

// Browse returns the page a browsing state currently points at.
func (s *FinderService) Browse(ctx context.Context, profileID string, view query.ViewState) (*ToolPage, error) {
	if view.PageSize() > MaxPageSize {
		return nil, fmt.Errorf("%w: limit %d", query.ErrInvalidPage, view.PageSize())
	}

	store, l, err := s.open(ctx, profileID)
	if err != nil {
		return nil, err
	}

	tools := store.Tools()
	averages, err := l.Averages(ctx, tools)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.Query(tools, view.Params(), func(t domain.Tool) float64 { return averages[t.ID] })
	if err != nil {
		return nil, err
	}

	views, err := s.views(ctx, l, result.Tools)
	if err != nil {
		return nil, err
	}

	return &ToolPage{
		Tools:      views,
		Total:      result.Total,
		Page:       view.Page() + 1,
		Limit:      view.PageSize(),
		TotalPages: result.TotalPages(),
	}, nil
}

func (s *FinderService) GetTool(ctx context.Context, profileID, toolID string) (*ToolView, error) {
	store, l, err := s.open(ctx, profileID)
	if err != nil {
		return nil, err
	}

	tool, err := store.FindByID(toolID)
	if err != nil {
		return nil, err
	}

	views, err := s.views(ctx, l, []domain.Tool{tool})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// QuickSearch matches text against every record regardless of category.
func (s *FinderService) QuickSearch(ctx context.Context, profileID, text string) ([]ToolView, error) {
	store, l, err := s.open(ctx, profileID)
	if err != nil {
		return nil, err
	}

	matches, err := s.engine.Search(store.Tools(), text)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, l, matches)
}

func (s *FinderService) Featured(ctx context.Context, profileID string) ([]ToolView, error) {
	store, l, err := s.open(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, l, store.Featured())
}

func (s *FinderService) Categories(ctx context.Context) ([]CategorySummary, error) {
	store, err := s.catalog.Store(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]CategorySummary, len(domain.Categories))
	for i, category := range domain.Categories {
		summaries[i] = CategorySummary{
			Category: category,
			Total:    store.CountByCategory(category.ID),
		}
	}
	return summaries, nil
}

func (s *FinderService) Category(ctx context.Context, id string) (*CategorySummary, error) {
	category, ok := domain.FindCategory(strings.TrimSpace(id))
	if !ok {
		return nil, ErrCategoryNotFound
	}

	store, err := s.catalog.Store(ctx)
	if err != nil {
		return nil, err
	}

	return &CategorySummary{
		Category: category,
		Total:    store.CountByCategory(category.ID),
	}, nil
}

// Rate stores the profile's rating and returns the tool's new average.
func (s *FinderService) Rate(ctx context.Context, profileID, toolID string, value int) (float64, error) {
	store, l, err := s.open(ctx, profileID)
	if err != nil {
		return 0, err
	}

	if err := l.SubmitRating(ctx, toolID, value); err != nil {
		return 0, err
	}
	s.metrics.ObserveRating()

	tool, err := store.FindByID(toolID)
	if err != nil {
		return 0, err
	}
	return l.AverageRating(ctx, tool)
}

func (s *FinderService) Save(ctx context.Context, profileID, toolID string) (ledger.SaveResult, error) {
	_, l, err := s.open(ctx, profileID)
	if err != nil {
		return ledger.SaveAdded, err
	}

	result, err := l.ToggleSave(ctx, toolID)
	if err != nil {
		return result, err
	}
	s.metrics.ObserveSave(result.String())
	return result, nil
}

// Saved lists the profile's bookmarks in the order they were added. Ids no
// longer present in the catalog are skipped.
func (s *FinderService) Saved(ctx context.Context, profileID string) ([]ToolView, error) {
	store, l, err := s.open(ctx, profileID)
	if err != nil {
		return nil, err
	}

	ids, err := l.SavedTools(ctx)
	if err != nil {
		return nil, err
	}

	tools := make([]domain.Tool, 0, len(ids))
	for _, id := range ids {
		tool, err := store.FindByID(id)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		tools = append(tools, tool)
	}
	return s.views(ctx, l, tools)
}

func (s *FinderService) views(ctx context.Context, l *ledger.Ledger, tools []domain.Tool) ([]ToolView, error) {
	ratings, err := l.UserRatings(ctx)
	if err != nil {
		return nil, err
	}
	saved, err := l.SavedTools(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ToolView, len(tools))
	for i, tool := range tools {
		value, rated := ratings[tool.ID]
		views[i] = ToolView{
			Tool:       tool,
			Rating:     ledger.Average(tool.SeedRatings(), value, rated),
			UserRating: value,
			Rated:      rated,
			Saved:      slices.Contains(saved, tool.ID),
		}
	}
	return views, nil
}
