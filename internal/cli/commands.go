package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"aifinder/internal/api/services"
	"aifinder/internal/ledger"
)

func newListCommand(a *app) *cobra.Command {
	var (
		p   services.ListParams
		all bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tools with optional filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.finder.View(p)
			if err != nil {
				return err
			}

			var tools []services.ToolView
			var page *services.ToolPage
			for {
				page, err = a.finder.Browse(cmd.Context(), localProfile, view)
				if err != nil {
					return err
				}
				tools = append(tools, page.Tools...)
				if !all || !page.HasMore() {
					break
				}
				view = view.NextPage()
			}

			if err := a.printTools(cmd, tools); err != nil {
				return err
			}
			if !a.opts.jsonOutput {
				if all {
					fmt.Fprintf(cmd.OutOrStdout(), "%d of %d tools\n", len(tools), page.Total)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d, %d tools\n", page.Page, page.TotalPages, page.Total)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&p.Category, "func", "", "category id")
	cmd.Flags().StringVar(&p.Price, "price", "", "price tier or 'all'")
	cmd.Flags().StringVar(&p.Sort, "sort", "", "rating or name")
	cmd.Flags().StringVar(&p.Search, "search", "", "search text")
	cmd.Flags().IntVar(&p.Page, "page", 1, "1-based page")
	cmd.Flags().IntVar(&p.Limit, "limit", 0, "page size (default 12)")
	cmd.Flags().BoolVar(&all, "all", false, "keep loading pages from --page until the end")
	return cmd
}

func newSearchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Search every tool by name, description or category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			views, err := a.finder.QuickSearch(cmd.Context(), localProfile, args[0])
			if err != nil {
				return err
			}
			return a.printTools(cmd, views)
		},
	}
}

func newShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.finder.GetTool(cmd.Context(), localProfile, args[0])
			if err != nil {
				return err
			}
			return a.printTool(cmd, *view)
		},
	}
}

func newRateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <id> <1-5>",
		Short: "Rate a tool; a new rating replaces the previous one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%w: %q is not a whole number", ledger.ErrInvalidRating, args[1])
			}

			average, err := a.finder.Rate(cmd.Context(), localProfile, args[0], value)
			if err != nil {
				return err
			}
			return a.printResult(cmd, map[string]any{
				"aiId":          args[0],
				"rating":        value,
				"averageRating": average,
			}, fmt.Sprintf("Rated %s %d/5, average now %.2f", args[0], value, average))
		},
	}
}

func newSaveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save <id>",
		Short: "Bookmark a tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.finder.Save(cmd.Context(), localProfile, args[0])
			if err != nil {
				return err
			}
			message := "Saved " + args[0]
			if result == ledger.SaveAlreadySaved {
				message = args[0] + " is already saved"
			}
			return a.printResult(cmd, map[string]any{
				"aiId":   args[0],
				"result": result.String(),
			}, message)
		},
	}
}

func newSavedCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "saved",
		Short: "List bookmarked tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			views, err := a.finder.Saved(cmd.Context(), localProfile)
			if err != nil {
				return err
			}
			return a.printTools(cmd, views)
		},
	}
}

func newCategoriesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories with tool counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := a.finder.Categories(cmd.Context())
			if err != nil {
				return err
			}
			return a.printCategories(cmd, summaries)
		},
	}
}
