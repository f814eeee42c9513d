// Package cli implements the finder command line client. It browses the
// catalog locally and keeps ratings and bookmarks in a bbolt file.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"aifinder/internal/api/services"
	"aifinder/internal/catalog"
	"aifinder/internal/ledger"
	"aifinder/internal/query"
)

const localProfile = "local"

type options struct {
	catalogPath string
	dbPath      string
	jsonOutput  bool
	minSearch   int
	pageSize    int
}

type app struct {
	opts   *options
	finder *services.FinderService
	store  *ledger.BoltStore
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "aifinder.db"
	}
	return filepath.Join(dir, "aifinder", "ledger.db")
}

// Run executes the finder command line with args, writing to out. The ledger
// is closed even when the command fails.
func Run(ctx context.Context, out io.Writer, args []string) error {
	root, a := newRootCommand(out)
	defer a.close()

	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCommand(out io.Writer) (*cobra.Command, *app) {
	opts := &options{}
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:           "finder",
		Short:         "Browse, search and rate AI tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
	}
	root.SetOut(out)
	root.SetErr(out)

	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "catalog JSON or YAML file (default is the built-in catalog)")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", defaultDBPath(), "ledger database file")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "output in JSON format")
	root.PersistentFlags().IntVar(&opts.minSearch, "min-search", query.DefaultMinSearchLength, "minimum search length")

	root.AddCommand(
		newListCommand(a),
		newSearchCommand(a),
		newShowCommand(a),
		newRateCommand(a),
		newSaveCommand(a),
		newSavedCommand(a),
		newCategoriesCommand(a),
	)
	return root, a
}

func (a *app) open() error {
	var loader catalog.Loader = catalog.EmbeddedLoader{}
	if a.opts.catalogPath != "" {
		loader = catalog.FileLoader{Path: a.opts.catalogPath}
	}

	store, err := ledger.OpenBoltStore(a.opts.dbPath)
	if err != nil {
		return err
	}
	a.store = store

	a.finder = services.NewFinderService(
		catalog.NewProvider(loader),
		ledger.NewSingleSession(store),
		query.NewEngine(a.opts.minSearch),
		query.DefaultPageSize,
		nil,
	)
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	if err != nil {
		return fmt.Errorf("close ledger: %w", err)
	}
	return nil
}
