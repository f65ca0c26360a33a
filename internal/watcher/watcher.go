// Package watcher re-indexes ontology files when they change on disk.
//
// It backs `ontoq index --watch`.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aidanlsb/ontoq/internal/index"
	"github.com/aidanlsb/ontoq/internal/ontology"
)

// Watcher monitors ontology files and re-indexes the ones that change.
type Watcher struct {
	paths  []string
	db     *index.Database
	logger *slog.Logger

	debounceDelay time.Duration

	fsWatcher *fsnotify.Watcher
	pending   map[string]time.Time
	// iris maps each watched file to the ontology IRI it last indexed as
	iris map[string]string
	mu   sync.Mutex

	onReindex func(path string, documents int, err error)
}

// Config holds configuration options for the Watcher.
type Config struct {
	Paths         []string
	Database      *index.Database
	DebounceDelay time.Duration // Default: 100ms
	Logger        *slog.Logger
	OnReindex     func(path string, documents int, err error) // Optional callback
}

// New creates a Watcher for the given ontology files.
func New(cfg Config) (*Watcher, error) {
	if len(cfg.Paths) == 0 {
		return nil, fmt.Errorf("at least one ontology path is required")
	}
	if cfg.Database == nil {
		return nil, fmt.Errorf("database is required")
	}

	debounce := cfg.DebounceDelay
	if debounce == 0 {
		debounce = 100 * time.Millisecond
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	w := &Watcher{
		db:            cfg.Database,
		logger:        logger.With("component", "watcher"),
		debounceDelay: debounce,
		pending:       make(map[string]time.Time),
		iris:          make(map[string]string),
		onReindex:     cfg.OnReindex,
	}
	for _, p := range cfg.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		w.paths = append(w.paths, abs)
		if o, err := ontology.Load(abs); err == nil {
			w.iris[abs] = o.IRI
		}
	}
	return w, nil
}

// Start watches the ontology files until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	var err error
	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.fsWatcher.Close()

	// Editors often replace files by rename, so watch the directories.
	dirs := make(map[string]bool)
	for _, p := range w.paths {
		dirs[filepath.Dir(p)] = true
	}
	for dir := range dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	w.logger.Info("watching ontologies", "files", len(w.paths))

	go w.processDebounced(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) watched(path string) bool {
	clean := filepath.Clean(path)
	for _, p := range w.paths {
		if p == clean {
			return true
		}
	}
	return false
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !w.watched(event.Name) {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	w.logger.Debug("ontology changed", "path", event.Name, "op", event.Op.String())
	w.scheduleReindex(filepath.Clean(event.Name))
}

func (w *Watcher) scheduleReindex(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[path] = time.Now()
}

func (w *Watcher) processDebounced(ctx context.Context) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.processPending(ctx)
		}
	}
}

// processPending re-indexes files whose last event is older than the
// debounce delay.
func (w *Watcher) processPending(ctx context.Context) {
	w.mu.Lock()
	now := time.Now()
	var ready []string
	for path, scheduledAt := range w.pending {
		if now.Sub(scheduledAt) >= w.debounceDelay {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	for _, path := range ready {
		n, err := w.ReindexFile(ctx, path)
		if w.onReindex != nil {
			w.onReindex(path, n, err)
		}
		if err != nil {
			w.logger.Warn("reindex failed", "path", path, "error", err)
		} else {
			w.logger.Info("reindexed ontology", "path", path, "documents", n)
		}
	}
}

// ReindexFile re-indexes the ontology stored at path. A file that no longer
// exists has its ontology removed from the index. If the file now declares a
// different ontology IRI, the old ontology's documents are removed first.
func (w *Watcher) ReindexFile(ctx context.Context, path string) (int, error) {
	path = filepath.Clean(path)

	w.mu.Lock()
	previous := w.iris[path]
	w.mu.Unlock()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if previous == "" {
			return 0, nil
		}
		if err := w.db.RemoveOntology(previous); err != nil {
			return 0, err
		}
		w.mu.Lock()
		delete(w.iris, path)
		w.mu.Unlock()
		return 0, nil
	}

	o, err := ontology.Load(path)
	if err != nil {
		return 0, err
	}
	if previous != "" && previous != o.IRI {
		if err := w.db.RemoveOntology(previous); err != nil {
			return 0, err
		}
	}

	n, err := w.db.IndexOntology(ctx, o, w.namer(path, o))
	if err != nil {
		return 0, err
	}
	w.mu.Lock()
	w.iris[path] = o.IRI
	w.mu.Unlock()
	return n, nil
}

// namer builds a catalog of the changed ontology plus every other watched
// file that still loads, so fillers from other ontologies keep their names.
func (w *Watcher) namer(changed string, o *ontology.Ontology) *ontology.Catalog {
	ontologies := []*ontology.Ontology{o}
	for _, p := range w.paths {
		if p == changed {
			continue
		}
		if other, err := ontology.Load(p); err == nil {
			ontologies = append(ontologies, other)
		}
	}
	return ontology.NewCatalog(ontologies...)
}
