package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"aifinder/internal/api/dto"
	"aifinder/internal/api/services"
)

func (a *app) printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func (a *app) printResult(cmd *cobra.Command, v any, message string) error {
	if a.opts.jsonOutput {
		return a.printJSON(cmd, v)
	}
	fmt.Fprintln(cmd.OutOrStdout(), message)
	return nil
}

func (a *app) printTools(cmd *cobra.Command, views []services.ToolView) error {
	if a.opts.jsonOutput {
		return a.printJSON(cmd, dto.ToolsFromViews(views))
	}
	if len(views) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No AI tools found")
		return nil
	}

	table := tablewriter.NewTable(cmd.OutOrStdout(),
		tablewriter.WithHeader([]string{"ID", "Name", "Price", "Rating", "Yours", "Categories"}),
	)
	for _, v := range views {
		table.Append([]string{
			v.Tool.ID,
			v.Tool.Name,
			v.Tool.Price.Label(),
			strconv.FormatFloat(v.Rating, 'f', 2, 64),
			userRating(v),
			strings.Join(v.Tool.Functions, ", "),
		})
	}
	return table.Render()
}

func (a *app) printTool(cmd *cobra.Command, v services.ToolView) error {
	if a.opts.jsonOutput {
		return a.printJSON(cmd, dto.ToolFromView(v))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", v.Tool.Name, v.Tool.ID)
	fmt.Fprintf(out, "  %s\n", v.Tool.Description)
	fmt.Fprintf(out, "  Price:      %s\n", v.Tool.Price.Label())
	fmt.Fprintf(out, "  Rating:     %.2f (yours: %s)\n", v.Rating, userRating(v))
	fmt.Fprintf(out, "  Categories: %s\n", strings.Join(v.Tool.Functions, ", "))
	fmt.Fprintf(out, "  Link:       %s\n", v.Tool.Link)
	if v.Saved {
		fmt.Fprintln(out, "  Saved")
	}
	return nil
}

func (a *app) printCategories(cmd *cobra.Command, summaries []services.CategorySummary) error {
	if a.opts.jsonOutput {
		return a.printJSON(cmd, dto.CategoriesFromSummaries(summaries))
	}

	table := tablewriter.NewTable(cmd.OutOrStdout(),
		tablewriter.WithHeader([]string{"ID", "Name", "Tools"}),
	)
	for _, s := range summaries {
		table.Append([]string{s.ID, s.Name, strconv.Itoa(s.Total)})
	}
	return table.Render()
}

func userRating(v services.ToolView) string {
	if !v.Rated {
		return "-"
	}
	return strconv.Itoa(v.UserRating)
}
