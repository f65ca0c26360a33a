package cli

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/ontoq/internal/filter"
	"github.com/aidanlsb/ontoq/internal/query"
	"github.com/aidanlsb/ontoq/internal/ui"
)

// matchFlag is a --match value; unset means the filter document decides.
type matchFlag struct {
	mode query.MatchMode
	set  bool
}

var _ pflag.Value = (*matchFlag)(nil)

func (m *matchFlag) String() string {
	if !m.set {
		return ""
	}
	return m.mode.String()
}

func (m *matchFlag) Set(s string) error {
	mode, err := query.ParseMatchMode(s)
	if err != nil {
		return err
	}
	m.mode, m.set = mode, true
	return nil
}

func (m *matchFlag) Type() string { return "all|any" }

func (m *matchFlag) override() *query.MatchMode {
	if !m.set {
		return nil
	}
	mode := m.mode
	return &mode
}

var (
	queryMatch      matchFlag
	queryNoProgress bool
)

// QueryResult is the JSON payload of 'ontoq query'.
type QueryResult struct {
	Query    string         `json:"query"`
	Entities []EntityResult `json:"entities"`
}

var queryCmd = &cobra.Command{
	Use:   "query <filter.yaml>",
	Short: "Evaluate a filter document",
	Long: `Compiles a YAML filter document into a query tree and evaluates it
against the index. Matching entities are printed sorted by IRI.

Pass - to read the filter document from stdin. Interrupting the command
cancels the evaluation.

Examples:
  ontoq query filters/tumors.yaml
  ontoq query filters/tumors.yaml --match any
  ontoq query filters/tumors.yaml --json
  cat filters/tumors.yaml | ontoq query -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		start := time.Now()

		doc, err := readFilter(args[0])
		if err != nil {
			return fail(err)
		}

		ws, err := openWorkspace()
		if err != nil {
			return fail(err)
		}
		defer ws.Close()

		engine := ws.engine()
		q, err := compileFilter(engine, ws, doc)
		if err != nil {
			return fail(err)
		}

		var listener query.Listener
		var progress *ui.EvaluationProgress
		if !isJSONOutput() && !queryNoProgress {
			progress = ui.NewEvaluationProgress()
			listener = progress
		}
		matches, err := engine.Evaluate(ctx, q, listener)
		if progress != nil {
			progress.Done()
		}
		if err != nil {
			return fail(err)
		}

		results, err := ws.describe(ctx, matches.Sorted())
		if err != nil {
			return fail(err)
		}
		elapsed := time.Since(start).Milliseconds()

		if isJSONOutput() {
			outputSuccess(QueryResult{Query: q.String(), Entities: results},
				&Meta{Count: len(results), QueryTimeMs: elapsed, Session: engine.Session()})
			return nil
		}

		if len(results) == 0 {
			fmt.Println(ui.Hint("No matching entities."))
			return nil
		}
		printEntities(results)
		fmt.Printf("\n%s\n", ui.Hint(fmt.Sprintf("%s in %dms", ui.Count(len(results), "entity", "entities"), elapsed)))
		return nil
	},
}

func compileFilter(engine *query.Engine, ws *workspace, doc *filter.Document) (*query.FilteredQuery, error) {
	mode, err := query.ParseMatchMode(getConfig().DefaultMatch())
	if err != nil {
		return nil, err
	}
	return filter.NewCompiler(engine, ws.catalog, mode).Compile(doc, queryMatch.override())
}

func printEntities(results []EntityResult) {
	tbl := ui.NewResultsTable(ui.NewDisplayContext(), ui.EntityLayout)
	for i, r := range results {
		tbl.AddRow(ui.ResultRow{Num: i + 1, Cells: []string{r.Name, r.IRI}})
	}
	fmt.Println(tbl.Render())
}

func init() {
	queryCmd.Flags().Var(&queryMatch, "match", "Override the top-level match mode (all or any)")
	queryCmd.Flags().BoolVar(&queryNoProgress, "no-progress", false, "Do not print evaluation progress")
	rootCmd.AddCommand(queryCmd)
}
