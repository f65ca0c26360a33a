// Package index stores ontology documents in SQLite and answers index queries.
package index

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Database is the SQLite-backed document index.
type Database struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

var (
	// ErrIndexIO indicates the underlying store failed while serving a request.
	ErrIndexIO = errors.New("index i/o failure")
	// ErrDocumentNotFound indicates a document reference does not resolve.
	ErrDocumentNotFound = errors.New("document not found in index")
	// ErrIndexLocked indicates another process is rebuilding the index.
	ErrIndexLocked = errors.New("index is locked for rebuild")
)

// CurrentDBVersion is the current index schema version.
const CurrentDBVersion = 1

// DB returns the underlying sql.DB for advanced queries.
func (d *Database) DB() *sql.DB {
	return d.db
}

// SetLogger replaces the logger used for index maintenance messages.
func (d *Database) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	d.logger = logger
}

// Open opens or creates the index database at path.
func Open(path string) (*Database, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	d := &Database{db: db, path: path, logger: slog.Default()}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// OpenInMemory opens an in-memory database (for testing).
func OpenInMemory() (*Database, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// Every pooled connection to :memory: would see its own empty database.
	db.SetMaxOpenConns(1)

	d := &Database{db: db, logger: slog.Default()}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the database.
func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) initialize() error {
	schema := `
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		-- One row per indexed document
		CREATE TABLE IF NOT EXISTS documents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ontology_iri TEXT NOT NULL,
			entity_iri TEXT NOT NULL,
			category TEXT NOT NULL
		);

		-- Field values; norm is the analyzed form of value
		CREATE TABLE IF NOT EXISTS fields (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			doc_id INTEGER NOT NULL,
			field TEXT NOT NULL,
			value TEXT NOT NULL,
			norm TEXT NOT NULL
		);

		-- Postings: analyzed terms of each field value
		CREATE TABLE IF NOT EXISTS terms (
			field_id INTEGER NOT NULL,
			term TEXT NOT NULL,
			position INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_documents_ontology ON documents(ontology_iri);
		CREATE INDEX IF NOT EXISTS idx_fields_doc ON fields(doc_id);
		CREATE INDEX IF NOT EXISTS idx_fields_field_norm ON fields(field, norm);
		CREATE INDEX IF NOT EXISTS idx_terms_term ON terms(term, field_id);
		CREATE INDEX IF NOT EXISTS idx_terms_field ON terms(field_id);
	`

	if _, err := d.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	_, err := d.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('version', ?)`,
		fmt.Sprintf("%d", CurrentDBVersion))
	if err != nil {
		return fmt.Errorf("failed to set database version: %w", err)
	}
	return nil
}

// Stats summarizes index contents.
type Stats struct {
	Documents  int            `json:"documents"`
	Ontologies int            `json:"ontologies"`
	Categories map[string]int `json:"categories"`
}

// Stats returns document counts.
func (d *Database) Stats() (*Stats, error) {
	stats := &Stats{Categories: make(map[string]int)}

	if err := d.db.QueryRow("SELECT COUNT(*), COUNT(DISTINCT ontology_iri) FROM documents").
		Scan(&stats.Documents, &stats.Ontologies); err != nil {
		return nil, fmt.Errorf("%w: stats: %w", ErrIndexIO, err)
	}

	rows, err := d.db.Query("SELECT category, COUNT(*) FROM documents GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("%w: stats: %w", ErrIndexIO, err)
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, err
		}
		stats.Categories[category] = n
	}
	return stats, rows.Err()
}

type indexLock struct {
	file *os.File
}

func acquireIndexLock(dir string) (*indexLock, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	lockPath := filepath.Join(dir, "index.lock")
	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open index lock: %w", err)
	}

	if err := lockFileExclusiveNonBlocking(lockFile); err != nil {
		lockFile.Close()
		if isWouldBlockError(err) {
			return nil, ErrIndexLocked
		}
		return nil, fmt.Errorf("failed to acquire index lock: %w", err)
	}

	return &indexLock{file: lockFile}, nil
}

func (l *indexLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	unlockErr := unlockFile(l.file)
	closeErr := l.file.Close()
	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}
