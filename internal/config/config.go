// Package config handles ontoq configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the ontoq configuration file.
type Config struct {
	// Ontologies lists the ontology YAML files in scope for every search.
	// Relative paths are resolved against the config file's directory.
	Ontologies []string `toml:"ontologies"`

	// IndexPath is the SQLite index file. Defaults to index.db next to the
	// config file.
	IndexPath string `toml:"index_path"`

	Search SearchConfig `toml:"search"`
	Log    LogConfig    `toml:"log"`
	UI     UIConfig     `toml:"ui"`

	// dir is the directory of the file the config was loaded from.
	dir string
}

// SearchConfig holds query defaults.
type SearchConfig struct {
	// DefaultMatch is the match mode used when a filter document names none:
	// "all" or "any".
	DefaultMatch string `toml:"default_match"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Defaults to warn.
	Level string `toml:"level"`
	// Format is text or json. Defaults to text.
	Format string `toml:"format"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered markdown.
	CodeTheme string `toml:"code_theme"`
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{dir: filepath.Dir(configPath)}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	config.dir = filepath.Dir(path)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &config, nil
}

// ResolveConfigPath resolves the effective config path from an optional override.
func ResolveConfigPath(explicitConfigPath string) string {
	if strings.TrimSpace(explicitConfigPath) != "" {
		return explicitConfigPath
	}
	return DefaultPath()
}

// DefaultPath returns the default config file path.
// Checks ~/.config/ontoq/config.toml first (XDG style),
// then falls back to the OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "ontoq", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "ontoq", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Search.DefaultMatch) {
	case "", "all", "any":
	default:
		return fmt.Errorf("search.default_match must be all or any, got %q", c.Search.DefaultMatch)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// OntologyPaths returns the configured ontology files as absolute paths.
func (c *Config) OntologyPaths() []string {
	out := make([]string, 0, len(c.Ontologies))
	for _, p := range c.Ontologies {
		out = append(out, c.resolve(p))
	}
	return out
}

// ResolvedIndexPath returns the index file path.
func (c *Config) ResolvedIndexPath() string {
	if strings.TrimSpace(c.IndexPath) == "" {
		return c.resolve("index.db")
	}
	return c.resolve(c.IndexPath)
}

// DefaultMatch returns the configured default match mode name.
func (c *Config) DefaultMatch() string {
	if c.Search.DefaultMatch == "" {
		return "all"
	}
	return strings.ToLower(c.Search.DefaultMatch)
}

// LogLevel parses the configured log level. Defaults to warn.
func (c *Config) LogLevel() (slog.Level, error) {
	if strings.TrimSpace(c.Log.Level) == "" {
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// JSONLogs reports whether logs should be written as JSON.
func (c *Config) JSONLogs() bool {
	return strings.EqualFold(c.Log.Format, "json")
}

func (c *Config) resolve(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	if filepath.IsAbs(path) || c.dir == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(c.dir, path)
}
