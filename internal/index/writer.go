package index

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aidanlsb/ontoq/internal/analysis"
	"github.com/aidanlsb/ontoq/internal/model"
	"github.com/aidanlsb/ontoq/internal/ontology"
)

// Namer resolves display names for filler entities.
type Namer interface {
	DisplayName(id model.EntityID) string
}

// CategorizedDocument is a document ready to be written, tagged with the
// search category it belongs to.
type CategorizedDocument struct {
	Category string
	Document Document
}

// RebuildResult summarizes a full index rebuild.
type RebuildResult struct {
	Ontologies int `json:"ontologies"`
	Documents  int `json:"documents"`
}

// Rebuild clears the index and re-indexes every ontology in the catalog.
// File-backed indexes are locked for the duration of the rebuild.
func (d *Database) Rebuild(ctx context.Context, catalog *ontology.Catalog) (*RebuildResult, error) {
	if d.path != "" {
		lock, err := acquireIndexLock(filepath.Dir(d.path))
		if err != nil {
			return nil, err
		}
		defer lock.Release()
	}

	if err := d.ClearAllData(); err != nil {
		return nil, err
	}

	result := &RebuildResult{}
	for _, o := range catalog.List() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := d.IndexOntology(ctx, o, catalog)
		if err != nil {
			return nil, err
		}
		result.Ontologies++
		result.Documents += n
		d.logger.Debug("indexed ontology", "ontology", o.IRI, "documents", n)
	}
	return result, nil
}

// ClearAllData removes all indexed documents.
func (d *Database) ClearAllData() error {
	for _, table := range []string{"terms", "fields", "documents"} {
		if _, err := d.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("%w: clear %s: %w", ErrIndexIO, table, err)
		}
	}
	return nil
}

// RemoveOntology removes every document of an ontology.
func (d *Database) RemoveOntology(ontologyIRI string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIndexIO, err)
	}
	defer tx.Rollback()

	if err := deleteByOntology(tx, ontologyIRI); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrIndexIO, err)
	}
	return nil
}

// IndexOntology replaces the documents of o and returns how many were written.
func (d *Database) IndexOntology(ctx context.Context, o *ontology.Ontology, namer Namer) (int, error) {
	docs := OntologyDocuments(o, namer)

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIndexIO, err)
	}
	defer tx.Rollback()

	if err := deleteByOntology(tx, o.IRI); err != nil {
		return 0, err
	}
	if err := insertDocuments(ctx, tx, o.IRI, docs); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIndexIO, err)
	}
	return len(docs), nil
}

// OntologyDocuments derives the searchable documents of an ontology:
// one declaration document per entity, one annotation-value document per
// annotation (labels included as rdfs:label) and one logical-axiom document
// per restriction.
func OntologyDocuments(o *ontology.Ontology, namer Namer) []CategorizedDocument {
	var docs []CategorizedDocument

	for _, e := range o.Entities() {
		id := model.EntityID(e.IRI)
		docs = append(docs, declarationDocument(id, e.Kind, displayName(namer, id, e.Label)))

		if e.Label != "" {
			docs = append(docs, annotationDocument(e.IRI, ontology.RDFSLabel, e.Label))
		}
		for _, a := range e.Annotations {
			docs = append(docs, annotationDocument(e.IRI, a.Property, a.Value))
		}
		for _, r := range e.Restrictions {
			docs = append(docs, restrictionDocument(e.IRI, r, namer))
		}
	}

	for _, p := range o.Properties {
		if !p.Declared {
			continue
		}
		id := model.EntityID(p.IRI)
		docs = append(docs, declarationDocument(id, p.Kind.EntityKind(), displayName(namer, id, p.Label)))
		if p.Label != "" {
			docs = append(docs, annotationDocument(p.IRI, ontology.RDFSLabel, p.Label))
		}
	}
	return docs
}

func displayName(namer Namer, id model.EntityID, label string) string {
	if label != "" {
		return label
	}
	if namer != nil {
		return namer.DisplayName(id)
	}
	return model.LocalName(string(id))
}

func declarationDocument(id model.EntityID, kind model.EntityKind, name string) CategorizedDocument {
	doc := Document{}
	doc.Add(FieldEntityIRI, string(id))
	doc.Add(FieldEntityKind, string(kind))
	doc.Add(FieldDisplayName, name)
	return CategorizedDocument{Category: CategoryDeclaration, Document: doc}
}

func annotationDocument(entityIRI, propertyIRI, value string) CategorizedDocument {
	doc := Document{}
	doc.Add(FieldEntityIRI, entityIRI)
	doc.Add(FieldAnnotationIRI, propertyIRI)
	doc.Add(FieldAnnotationText, value)
	return CategorizedDocument{Category: CategoryAnnotationValue, Document: doc}
}

func restrictionDocument(entityIRI string, r ontology.Restriction, namer Namer) CategorizedDocument {
	doc := Document{}
	doc.Add(FieldEntityIRI, entityIRI)
	switch r.Kind {
	case model.PropertyObject:
		doc.Add(FieldObjectPropertyIRI, r.Property)
		doc.Add(FieldFillerIRI, r.Filler)
		doc.Add(FieldFillerDisplayName, displayName(namer, model.EntityID(r.Filler), ""))
	default:
		doc.Add(FieldDataPropertyIRI, r.Property)
		doc.Add(FieldFillerDisplayName, r.Value)
	}
	return CategorizedDocument{Category: CategoryLogicalAxiom, Document: doc}
}

func deleteByOntology(tx *sql.Tx, ontologyIRI string) error {
	stmts := []string{
		`DELETE FROM terms WHERE field_id IN (
			SELECT f.id FROM fields f JOIN documents d ON d.id = f.doc_id WHERE d.ontology_iri = ?)`,
		`DELETE FROM fields WHERE doc_id IN (SELECT id FROM documents WHERE ontology_iri = ?)`,
		`DELETE FROM documents WHERE ontology_iri = ?`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt, ontologyIRI); err != nil {
			return fmt.Errorf("%w: delete ontology %s: %w", ErrIndexIO, ontologyIRI, err)
		}
	}
	return nil
}

func insertDocuments(ctx context.Context, tx *sql.Tx, ontologyIRI string, docs []CategorizedDocument) error {
	docStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (ontology_iri, entity_iri, category) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIndexIO, err)
	}
	defer docStmt.Close()

	fieldStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO fields (doc_id, field, value, norm) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIndexIO, err)
	}
	defer fieldStmt.Close()

	termStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO terms (field_id, term, position) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIndexIO, err)
	}
	defer termStmt.Close()

	for _, cd := range docs {
		res, err := docStmt.ExecContext(ctx, ontologyIRI, cd.Document.Get(FieldEntityIRI), cd.Category)
		if err != nil {
			return fmt.Errorf("%w: insert document: %w", ErrIndexIO, err)
		}
		docID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrIndexIO, err)
		}

		// Stable field order keeps row ids deterministic across rebuilds.
		names := make([]string, 0, len(cd.Document))
		for name := range cd.Document {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			analyzer := AnalyzerFor(name)
			for _, value := range cd.Document[name] {
				tokens := analyzer.Analyze(value)
				res, err := fieldStmt.ExecContext(ctx, docID, name, value, joinTerms(tokens))
				if err != nil {
					return fmt.Errorf("%w: insert field %s: %w", ErrIndexIO, name, err)
				}
				fieldID, err := res.LastInsertId()
				if err != nil {
					return fmt.Errorf("%w: %w", ErrIndexIO, err)
				}
				for _, tok := range tokens {
					if _, err := termStmt.ExecContext(ctx, fieldID, tok.Term, tok.Position); err != nil {
						return fmt.Errorf("%w: insert term: %w", ErrIndexIO, err)
					}
				}
			}
		}
	}
	return nil
}

func joinTerms(tokens []analysis.Token) string {
	terms := make([]string, len(tokens))
	for i, tok := range tokens {
		terms[i] = tok.Term
	}
	return strings.Join(terms, " ")
}
