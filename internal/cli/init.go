package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/ontoq/internal/config"
	"github.com/aidanlsb/ontoq/internal/ontology"
	"github.com/aidanlsb/ontoq/internal/ui"
)

var (
	initOntologies []string
	initIndexPath  string
	initMatch      string
	initForce      bool
)

// InitResult is the JSON payload of 'ontoq init'.
type InitResult struct {
	ConfigPath string   `json:"config_path"`
	Ontologies []string `json:"ontologies"`
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file",
	Long: `Creates the ontoq config file at --config (or the default location)
listing the ontologies in scope. Each ontology is loaded once to check it parses.

Examples:
  ontoq init --ontology onco.yaml --ontology anatomy.yaml
  ontoq init --config ./ontoq.toml --ontology onco.yaml --index-path .ontoq/index.db`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ResolveConfigPath(configPath)
		if _, err := os.Stat(path); err == nil && !initForce {
			return handleErrorMsg(ErrConfigExists, fmt.Sprintf("config already exists: %s", path), "Pass --force to overwrite it")
		}

		ontologies := make([]string, 0, len(initOntologies))
		for _, p := range initOntologies {
			abs, err := filepath.Abs(p)
			if err != nil {
				return handleError(ErrInvalidInput, err, "")
			}
			if _, err := ontology.Load(abs); err != nil {
				return fail(err)
			}
			ontologies = append(ontologies, abs)
		}

		c := &config.Config{
			Ontologies: ontologies,
			IndexPath:  initIndexPath,
			Search:     config.SearchConfig{DefaultMatch: initMatch},
		}
		if err := c.Validate(); err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
		if err := config.SaveTo(path, c); err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		if isJSONOutput() {
			outputSuccess(InitResult{ConfigPath: path, Ontologies: ontologies}, &Meta{Count: len(ontologies)})
			return nil
		}
		fmt.Println(ui.Successf("Wrote %s %s", ui.Accent.Render(path), ui.Count(len(ontologies), "ontology", "ontologies")))
		fmt.Println(ui.Hint("Build the index with: " + commandLine("index")))
		return nil
	},
}

func init() {
	initCmd.Flags().StringArrayVar(&initOntologies, "ontology", nil, "Ontology YAML file to include (repeatable)")
	initCmd.Flags().StringVar(&initIndexPath, "index-path", "", "Index file (default: index.db next to the config)")
	initCmd.Flags().StringVar(&initMatch, "match", "", "Default match mode for filter documents (all or any)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config")
	rootCmd.AddCommand(initCmd)
}
