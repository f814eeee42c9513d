package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aifinder/internal/catalog"
	"aifinder/internal/domain"
	"aifinder/internal/ledger"
	"aifinder/internal/query"
)

func newTestFinder(t *testing.T) *FinderService {
	t.Helper()
	return NewFinderService(
		catalog.NewProvider(catalog.EmbeddedLoader{}),
		ledger.NewMemorySessions(),
		query.NewEngine(query.DefaultMinSearchLength),
		0,
		nil,
	)
}

func viewIDs(views []ToolView) []string {
	ids := make([]string, len(views))
	for i, v := range views {
		ids[i] = v.Tool.ID
	}
	return ids
}

func TestFinderService_ListTools(t *testing.T) {
	ctx := context.Background()
	s := newTestFinder(t)

	page, err := s.ListTools(ctx, "p1", ListParams{
		Category: domain.ImageGenerationSlug,
		Sort:     query.SortRating,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 12, page.Limit)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, []string{"dalle", "midjourney", "runway", "stablediffusion"}, viewIDs(page.Tools))
	assert.InDelta(t, 4.75, page.Tools[0].Rating, 1e-9)
	assert.False(t, page.Tools[0].Rated)
}

func TestFinderService_ListToolsPaging(t *testing.T) {
	ctx := context.Background()
	s := newTestFinder(t)

	first, err := s.ListTools(ctx, "p1", ListParams{Page: 1, Limit: 3})
	require.NoError(t, err)
	second, err := s.ListTools(ctx, "p1", ListParams{Page: 3, Limit: 3})
	require.NoError(t, err)

	assert.Equal(t, 8, first.Total)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, []string{"chatgpt", "midjourney", "claude"}, viewIDs(first.Tools))
	assert.Equal(t, []string{"github-copilot", "stablediffusion"}, viewIDs(second.Tools))
}

func TestFinderService_BrowseLoadMore(t *testing.T) {
	ctx := context.Background()
	s := newTestFinder(t)

	view, err := s.View(ListParams{Limit: 3, Sort: query.SortName})
	require.NoError(t, err)

	var collected []string
	pages := 0
	for {
		page, err := s.Browse(ctx, "p1", view)
		require.NoError(t, err)
		pages++
		assert.Equal(t, pages, page.Page)
		collected = append(collected, viewIDs(page.Tools)...)
		if !page.HasMore() {
			break
		}
		view = view.NextPage()
	}

	all, err := s.ListTools(ctx, "p1", ListParams{Limit: 8, Sort: query.SortName})
	require.NoError(t, err)
	assert.Equal(t, 3, pages)
	assert.Equal(t, viewIDs(all.Tools), collected)
}

func TestFinderService_BrowseRejectsOversizedPage(t *testing.T) {
	s := newTestFinder(t)

	_, err := s.Browse(context.Background(), "p1", query.NewViewState(MaxPageSize+1))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFinderService_ListToolsValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestFinder(t)

	for _, p := range []ListParams{
		{Page: -1},
		{Limit: 101},
		{Limit: -5},
		{Search: "a"},
	} {
		_, err := s.ListTools(ctx, "p1", p)
		assert.ErrorIs(t, err, domain.ErrValidation, "%+v", p)
	}
}

func TestFinderService_RateUpdatesAverage(t *testing.T) {
	ctx := context.Background()
	s := newTestFinder(t)

	avg, err := s.Rate(ctx, "p1", "midjourney", 1)
	require.NoError(t, err)
	assert.InDelta(t, 24.0/6.0, avg, 1e-9)

	view, err := s.GetTool(ctx, "p1", "midjourney")
	require.NoError(t, err)
	assert.True(t, view.Rated)
	assert.Equal(t, 1, view.UserRating)
	assert.InDelta(t, 4.0, view.Rating, 1e-9)

	other, err := s.GetTool(ctx, "p2", "midjourney")
	require.NoError(t, err)
	assert.False(t, other.Rated)
	assert.InDelta(t, 4.6, other.Rating, 1e-9)
}

func TestFinderService_RateErrors(t *testing.T) {
	ctx := context.Background()
	s := newTestFinder(t)

	_, err := s.Rate(ctx, "p1", "midjourney", 6)
	assert.ErrorIs(t, err, ledger.ErrInvalidRating)

	_, err = s.Rate(ctx, "p1", "ghost", 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFinderService_SaveAndList(t *testing.T) {
	ctx := context.Background()
	s := newTestFinder(t)

	result, err := s.Save(ctx, "p1", "claude")
	require.NoError(t, err)
	assert.Equal(t, ledger.SaveAdded, result)

	result, err = s.Save(ctx, "p1", "claude")
	require.NoError(t, err)
	assert.Equal(t, ledger.SaveAlreadySaved, result)

	_, err = s.Save(ctx, "p1", "dalle")
	require.NoError(t, err)

	saved, err := s.Saved(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"claude", "dalle"}, viewIDs(saved))
	assert.True(t, saved[0].Saved)

	_, err = s.Save(ctx, "p1", "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFinderService_QuickSearchAndFeatured(t *testing.T) {
	ctx := context.Background()
	s := newTestFinder(t)

	matches, err := s.QuickSearch(ctx, "p1", "GitHub")
	require.NoError(t, err)
	assert.Equal(t, []string{"github-copilot"}, viewIDs(matches))

	_, err = s.QuickSearch(ctx, "p1", "")
	assert.ErrorIs(t, err, query.ErrSearchTooShort)

	featured, err := s.Featured(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"chatgpt", "midjourney", "runway"}, viewIDs(featured))
}

func TestFinderService_Categories(t *testing.T) {
	ctx := context.Background()
	s := newTestFinder(t)

	summaries, err := s.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, len(domain.Categories))
	assert.Equal(t, domain.TextGenerationSlug, summaries[0].ID)
	assert.Equal(t, 2, summaries[0].Total)

	category, err := s.Category(ctx, domain.ImageGenerationSlug)
	require.NoError(t, err)
	assert.Equal(t, 4, category.Total)

	_, err = s.Category(ctx, "cooking")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFinderService_CatalogUnavailable(t *testing.T) {
	ctx := context.Background()
	failing := catalog.LoaderFunc(func(context.Context) ([]domain.Tool, error) {
		return nil, errors.New("connection refused")
	})
	s := NewFinderService(
		catalog.NewProvider(failing),
		ledger.NewMemorySessions(),
		query.NewEngine(query.DefaultMinSearchLength),
		12,
		nil,
	)

	_, err := s.ListTools(ctx, "p1", ListParams{})
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)

	_, err = s.Categories(ctx)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}
