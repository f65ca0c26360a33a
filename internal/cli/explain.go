package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/ontoq/internal/filter"
	"github.com/aidanlsb/ontoq/internal/query"
	"github.com/aidanlsb/ontoq/internal/ui"
)

var explainMatch matchFlag

// ExplainResult is the JSON payload of 'ontoq explain'.
type ExplainResult struct {
	Query    string `json:"query"`
	Markdown string `json:"markdown"`
}

var explainCmd = &cobra.Command{
	Use:   "explain <filter.yaml>",
	Short: "Show the query tree a filter document compiles to",
	Long: `Compiles a filter document without evaluating it and prints the query
tree: the match mode of every group, and the search category and index clause
of every leaf.

Examples:
  ontoq explain filters/tumors.yaml
  ontoq explain filters/tumors.yaml --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readFilter(args[0])
		if err != nil {
			return fail(err)
		}
		catalog, err := loadCatalog()
		if err != nil {
			return fail(err)
		}

		mode, err := query.ParseMatchMode(getConfig().DefaultMatch())
		if err != nil {
			return fail(err)
		}
		engine := query.NewEngine(catalog, nil, query.WithLogger(logger))
		q, err := filter.NewCompiler(engine, catalog, mode).Compile(doc, explainMatch.override())
		if err != nil {
			return fail(err)
		}
		md := query.Explain(q)

		if isJSONOutput() {
			outputSuccess(ExplainResult{Query: q.String(), Markdown: md}, nil)
			return nil
		}

		display := ui.NewDisplayContext()
		if !display.IsTTY {
			fmt.Print(md)
			return nil
		}
		rendered, err := ui.RenderMarkdown(md, display.TermWidth)
		if err != nil {
			return fail(err)
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	explainCmd.Flags().Var(&explainMatch, "match", "Override the top-level match mode (all or any)")
	rootCmd.AddCommand(explainCmd)
}
