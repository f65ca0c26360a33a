// Package testutil provides reusable fixtures for ontoq tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/aidanlsb/ontoq/internal/index"
	"github.com/aidanlsb/ontoq/internal/ontology"
)

// TestWorkspace is a temporary directory holding ontology files, filter
// documents and a config.toml pointing at them.
type TestWorkspace struct {
	Path string
	t    *testing.T

	config     string
	ontologies map[string]string
	files      map[string]string
}

// NewTestWorkspace creates a workspace builder.
// Call Build() to create the directory.
func NewTestWorkspace(t *testing.T) *TestWorkspace {
	t.Helper()
	return &TestWorkspace{
		t:          t,
		ontologies: make(map[string]string),
		files:      make(map[string]string),
	}
}

// WithOntology adds an ontology YAML file. The path is relative to the
// workspace root and is listed in the generated config.
func (w *TestWorkspace) WithOntology(path, yaml string) *TestWorkspace {
	w.ontologies[path] = yaml
	return w
}

// WithFile adds an arbitrary file, such as a filter document.
func (w *TestWorkspace) WithFile(path, content string) *TestWorkspace {
	w.files[path] = content
	return w
}

// WithConfig replaces the generated config.toml.
func (w *TestWorkspace) WithConfig(toml string) *TestWorkspace {
	w.config = toml
	return w
}

// Build writes every configured file.
func (w *TestWorkspace) Build() *TestWorkspace {
	w.t.Helper()

	w.Path = w.t.TempDir()
	for path, content := range w.ontologies {
		w.writeFile(path, content)
	}
	for path, content := range w.files {
		w.writeFile(path, content)
	}

	config := w.config
	if config == "" {
		config = w.defaultConfig()
	}
	w.writeFile("config.toml", config)
	return w
}

// ConfigPath returns the path of the workspace's config.toml.
func (w *TestWorkspace) ConfigPath() string {
	return filepath.Join(w.Path, "config.toml")
}

// OntologyPaths returns absolute paths of the ontology files, sorted.
func (w *TestWorkspace) OntologyPaths() []string {
	paths := make([]string, 0, len(w.ontologies))
	for path := range w.ontologies {
		paths = append(paths, filepath.Join(w.Path, path))
	}
	sort.Strings(paths)
	return paths
}

// Catalog loads the workspace ontologies.
func (w *TestWorkspace) Catalog() *ontology.Catalog {
	w.t.Helper()
	c, err := ontology.LoadCatalog(w.OntologyPaths())
	if err != nil {
		w.t.Fatalf("failed to load catalog: %v", err)
	}
	return c
}

func (w *TestWorkspace) defaultConfig() string {
	quoted := make([]string, 0, len(w.ontologies))
	for _, path := range w.OntologyPaths() {
		quoted = append(quoted, fmt.Sprintf("%q", path))
	}
	return fmt.Sprintf("ontologies = [%s]\nindex_path = %q\n",
		strings.Join(quoted, ", "), filepath.Join(w.Path, ".ontoq", "index.db"))
}

func (w *TestWorkspace) writeFile(relPath, content string) {
	w.t.Helper()
	fullPath := filepath.Join(w.Path, relPath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		w.t.Fatalf("failed to create directory %s: %v", dir, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		w.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// ReadFile reads a file from the workspace.
func (w *TestWorkspace) ReadFile(relPath string) string {
	w.t.Helper()
	content, err := os.ReadFile(filepath.Join(w.Path, relPath))
	if err != nil {
		w.t.Fatalf("failed to read file %s: %v", relPath, err)
	}
	return string(content)
}

// IndexCatalog indexes the ontologies given as YAML documents into an
// in-memory index.
func IndexCatalog(t *testing.T, docs ...string) (*index.Database, *ontology.Catalog) {
	t.Helper()

	ontologies := make([]*ontology.Ontology, 0, len(docs))
	for i, doc := range docs {
		o, err := ontology.Parse([]byte(doc))
		if err != nil {
			t.Fatalf("failed to parse ontology %d: %v", i, err)
		}
		ontologies = append(ontologies, o)
	}
	catalog := ontology.NewCatalog(ontologies...)

	db, err := index.OpenInMemory()
	if err != nil {
		t.Fatalf("failed to open index: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Rebuild(context.Background(), catalog); err != nil {
		t.Fatalf("failed to build index: %v", err)
	}
	return db, catalog
}
