package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/ontoq/internal/index"
	"github.com/aidanlsb/ontoq/internal/ui"
	"github.com/aidanlsb/ontoq/internal/watcher"
)

var indexWatch bool

// IndexResult is the JSON payload of 'ontoq index'.
type IndexResult struct {
	Path       string `json:"path"`
	Ontologies int    `json:"ontologies"`
	Documents  int    `json:"documents"`
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the search index",
	Long: `Loads every configured ontology and rebuilds the SQLite index from
scratch. Only one rebuild can run at a time.

With --watch the command keeps running after the rebuild and re-indexes each
ontology file when it changes, until interrupted.

Examples:
  ontoq index
  ontoq index --json
  ontoq index --watch`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		catalog, err := loadCatalog()
		if err != nil {
			return fail(err)
		}

		path := getConfig().ResolvedIndexPath()
		db, err := index.Open(path)
		if err != nil {
			return handleError(ErrIndexError, err, "")
		}
		defer db.Close()
		db.SetLogger(logger)

		var spinner *ui.Spinner
		if !isJSONOutput() {
			spinner = ui.NewSpinner("Indexing ontologies")
			spinner.Start()
		}
		result, err := db.Rebuild(cmd.Context(), catalog)
		if spinner != nil {
			spinner.Stop()
		}
		if err != nil {
			return fail(err)
		}
		elapsed := time.Since(start).Milliseconds()
		logger.Info("index rebuilt", "path", path, "ontologies", result.Ontologies, "documents", result.Documents)

		if isJSONOutput() {
			outputSuccess(IndexResult{Path: path, Ontologies: result.Ontologies, Documents: result.Documents},
				&Meta{Count: result.Documents, QueryTimeMs: elapsed})
			return nil
		}

		fmt.Println(ui.Successf("Indexed %d documents from %s into %s",
			result.Documents, ui.Count(result.Ontologies, "ontology", "ontologies"), ui.Accent.Render(path)))

		if indexWatch {
			return watchOntologies(cmd.Context(), db)
		}
		return nil
	},
}

func watchOntologies(parent context.Context, db *index.Database) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	w, err := watcher.New(watcher.Config{
		Paths:    getConfig().OntologyPaths(),
		Database: db,
		Logger:   logger,
		OnReindex: func(path string, documents int, err error) {
			if err != nil {
				fmt.Println(ui.Errorf("%s: %v", path, err))
				return
			}
			fmt.Println(ui.Successf("Re-indexed %s (%d documents)", ui.Accent.Render(path), documents))
		},
	})
	if err != nil {
		return err
	}

	fmt.Println(ui.Hint("Watching for changes. Press Ctrl-C to stop."))
	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := getConfig().ResolvedIndexPath()
		db, err := index.Open(path)
		if err != nil {
			return handleError(ErrIndexError, err, suggestionFor(ErrIndexError))
		}
		defer db.Close()

		stats, err := db.Stats()
		if err != nil {
			return fail(err)
		}

		if isJSONOutput() {
			outputSuccess(stats, &Meta{Count: stats.Documents})
			return nil
		}

		tbl := ui.NewTable(2)
		tbl.AddRow(ui.Muted.Render("Ontologies:"), ui.Accent.Render(fmt.Sprint(stats.Ontologies)))
		tbl.AddRow(ui.Muted.Render("Documents:"), ui.Accent.Render(fmt.Sprint(stats.Documents)))
		for _, category := range []string{index.CategoryDeclaration, index.CategoryAnnotationValue, index.CategoryLogicalAxiom} {
			tbl.AddRow(ui.Muted.Render("  "+category+":"), fmt.Sprint(stats.Categories[category]))
		}
		fmt.Println(ui.Header("Index Statistics"))
		fmt.Print(tbl.String())
		return nil
	},
}

func init() {
	indexCmd.Flags().BoolVar(&indexWatch, "watch", false, "Keep re-indexing ontology files as they change (ignored with --json)")
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(statsCmd)
}
