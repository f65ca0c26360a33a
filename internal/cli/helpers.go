package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aidanlsb/ontoq/internal/filter"
	"github.com/aidanlsb/ontoq/internal/index"
	"github.com/aidanlsb/ontoq/internal/model"
	"github.com/aidanlsb/ontoq/internal/ontology"
	"github.com/aidanlsb/ontoq/internal/query"
	"github.com/aidanlsb/ontoq/internal/shellquote"
)

// workspace is the catalog and index a command works against.
type workspace struct {
	catalog *ontology.Catalog
	db      *index.Database
}

func (w *workspace) Close() error {
	if w.db == nil {
		return nil
	}
	return w.db.Close()
}

// readFilter loads a filter document from a file, or from stdin for "-".
func readFilter(arg string) (*filter.Document, error) {
	if arg != "-" {
		return filter.Load(arg)
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read filter from stdin: %w", err)
	}
	return filter.Parse(data)
}

// loadCatalog loads the ontologies listed in the config.
func loadCatalog() (*ontology.Catalog, error) {
	paths := getConfig().OntologyPaths()
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no ontologies configured in %s", ontology.ErrInvalidOntology, getConfigPath())
	}
	return ontology.LoadCatalog(paths)
}

// openWorkspace loads the catalog and opens an existing index.
func openWorkspace() (*workspace, error) {
	catalog, err := loadCatalog()
	if err != nil {
		return nil, err
	}

	indexPath := getConfig().ResolvedIndexPath()
	if _, err := os.Stat(indexPath); err != nil {
		return nil, fmt.Errorf("%w: index %s not found: %w", index.ErrIndexIO, indexPath, err)
	}
	db, err := index.Open(indexPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", index.ErrIndexIO, err)
	}
	db.SetLogger(logger)

	return &workspace{catalog: catalog, db: db}, nil
}

func (w *workspace) engine() *query.Engine {
	return query.NewEngine(w.catalog, w.db, query.WithLogger(logger))
}

// EntityResult is one entity in command output.
type EntityResult struct {
	IRI  string           `json:"iri"`
	Name string           `json:"name"`
	Kind model.EntityKind `json:"kind,omitempty"`
}

// describe resolves display names for ids, preferring the indexed name.
func (w *workspace) describe(ctx context.Context, ids []model.EntityID) ([]EntityResult, error) {
	out := describeFromCatalog(w.catalog, ids)
	if len(ids) == 0 {
		return out, nil
	}

	iris := make([]string, len(ids))
	for i, id := range ids {
		iris[i] = string(id)
	}
	names, err := w.db.DisplayNames(ctx, iris)
	if err != nil {
		return nil, err
	}
	for i := range out {
		if name, ok := names[out[i].IRI]; ok && name != "" {
			out[i].Name = name
		}
	}
	return out, nil
}

// commandLine renders an ontoq invocation the user can paste, carrying over
// an explicit --config.
func commandLine(args ...string) string {
	words := []string{"ontoq"}
	if configPath != "" {
		words = append(words, "--config", configPath)
	}
	return shellquote.Join(append(words, args...)...)
}
