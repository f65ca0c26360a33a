// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/ontoq/internal/config"
	"github.com/aidanlsb/ontoq/internal/ui"
)

var (
	// Global flags
	configPath   string
	logLevelFlag string

	// Resolved values
	resolvedConfigPath string
	cfg                *config.Config
	logger             = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ontoq",
	Short: "ontoq - query ontology entities through a search index",
	Long: `ontoq indexes OWL-style ontologies described in YAML and answers
composite entity queries: text filters over annotation and property values,
presence and absence of properties, negation, and nested restrictions.

Filters are written as YAML documents and evaluated with 'ontoq query'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "init", "completion", "help", "version":
			return nil
		}

		var err error
		cfg, resolvedConfigPath, err = loadGlobalConfigWithPath()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "Fix the config file or pass --config")
		}
		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)

		logger, err = newLogger(cfg, os.Stderr)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "Use one of debug, info, warn, error")
		}
		slog.SetDefault(logger)
		return nil
	},
}

// Execute runs the CLI. Errors already written as JSON are not printed again.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, ui.Errorf("%s", err))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	return cfg
}

// getConfigPath returns the resolved global config path.
func getConfigPath() string {
	return resolvedConfigPath
}

func loadGlobalConfigWithPath() (*config.Config, string, error) {
	resolvedPath := config.ResolveConfigPath(configPath)

	var loadedCfg *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loadedCfg, err = config.LoadFrom(configPath)
	} else {
		loadedCfg, err = config.Load()
	}
	if err != nil {
		return nil, "", err
	}
	return loadedCfg, resolvedPath, nil
}

// newLogger builds the stderr logger from config. --log-level wins over
// the config file.
func newLogger(c *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := c.LogLevel()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(logLevelFlag) != "" {
		if err := level.UnmarshalText([]byte(logLevelFlag)); err != nil {
			return nil, fmt.Errorf("invalid --log-level %q: %w", logLevelFlag, err)
		}
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.JSONLogs() {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
