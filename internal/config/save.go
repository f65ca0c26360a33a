package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type persistedConfig struct {
	Ontologies []string             `toml:"ontologies,omitempty"`
	IndexPath  *string              `toml:"index_path,omitempty"`
	Search     *persistedSearch     `toml:"search,omitempty"`
	Log        *persistedLog        `toml:"log,omitempty"`
	UI         *persistedUISettings `toml:"ui,omitempty"`
}

type persistedSearch struct {
	DefaultMatch *string `toml:"default_match,omitempty"`
}

type persistedLog struct {
	Level  *string `toml:"level,omitempty"`
	Format *string `toml:"format,omitempty"`
}

type persistedUISettings struct {
	Accent    *string `toml:"accent,omitempty"`
	CodeTheme *string `toml:"code_theme,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// SaveTo writes cfg to path, omitting unset keys. The file is replaced
// atomically so a crash never leaves a torn config behind.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		Ontologies: cfg.Ontologies,
		IndexPath:  nonEmptyPtr(cfg.IndexPath),
	}
	if m := nonEmptyPtr(cfg.Search.DefaultMatch); m != nil {
		out.Search = &persistedSearch{DefaultMatch: m}
	}
	level, format := nonEmptyPtr(cfg.Log.Level), nonEmptyPtr(cfg.Log.Format)
	if level != nil || format != nil {
		out.Log = &persistedLog{Level: level, Format: format}
	}
	accent, codeTheme := nonEmptyPtr(cfg.UI.Accent), nonEmptyPtr(cfg.UI.CodeTheme)
	if accent != nil || codeTheme != nil {
		out.UI = &persistedUISettings{Accent: accent, CodeTheme: codeTheme}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := writeFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it into place.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	_ = tmp.Chmod(perm)
	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// Renaming over an existing file fails on Windows.
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(path)
		if err2 := os.Rename(tmpPath, path); err2 != nil {
			return fmt.Errorf("rename temp file: %w", err)
		}
	}
	committed = true
	return nil
}
