package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aidanlsb/ontoq/internal/analysis"
	"github.com/aidanlsb/ontoq/internal/sqlutil"
)

// ErrUnsupportedQuery indicates an index query node the compiler does not know.
var ErrUnsupportedQuery = errors.New("unsupported index query")

// Search returns the documents matching q, ordered by reference.
func (d *Database) Search(ctx context.Context, q Query) ([]DocRef, error) {
	where, args, err := compile(q)
	if err != nil {
		return nil, err
	}

	rows, err := d.db.QueryContext(ctx, "SELECT d.id FROM documents d WHERE "+where+" ORDER BY d.id", args...)
	if err != nil {
		return nil, fmt.Errorf("%w: search %s: %w", ErrIndexIO, q, err)
	}
	refs, err := sqlutil.ScanRows(rows, func(rows *sql.Rows) (DocRef, error) {
		var ref DocRef
		err := rows.Scan(&ref)
		return ref, err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: search %s: %w", ErrIndexIO, q, err)
	}
	d.logger.Debug("index search", "query", q.String(), "hits", len(refs))
	return refs, nil
}

// Fetch loads every field of a document.
func (d *Database) Fetch(ctx context.Context, ref DocRef) (Document, error) {
	rows, err := d.db.QueryContext(ctx, "SELECT field, value FROM fields WHERE doc_id = ? ORDER BY id", int64(ref))
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %d: %w", ErrIndexIO, ref, err)
	}
	type pair struct{ field, value string }
	pairs, err := sqlutil.ScanRows(rows, func(rows *sql.Rows) (pair, error) {
		var p pair
		err := rows.Scan(&p.field, &p.value)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %d: %w", ErrIndexIO, ref, err)
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrDocumentNotFound, ref)
	}

	doc := make(Document, len(pairs))
	for _, p := range pairs {
		doc.Add(p.field, p.value)
	}
	return doc, nil
}

// compile translates a query node into a WHERE condition over documents d.
func compile(q Query) (string, []any, error) {
	switch q := q.(type) {
	case *TermQuery:
		return compileTerm(q)
	case *PrefixQuery:
		return compileNormalized(q.Field, q.Literal, func(norm string) (string, []any) {
			return "substr(f.norm, 1, length(?)) = ?", []any{norm, norm}
		})
	case *SuffixQuery:
		return compileNormalized(q.Field, q.Literal, func(norm string) (string, []any) {
			return "length(f.norm) >= length(?) AND substr(f.norm, length(f.norm) - length(?) + 1) = ?",
				[]any{norm, norm, norm}
		})
	case *PhraseQuery:
		return compileNormalized(q.Field, q.Literal, func(norm string) (string, []any) {
			return "f.norm = ?", []any{norm}
		})
	case *BooleanQuery:
		return compileBoolean(q)
	case nil:
		return "", nil, fmt.Errorf("%w: nil query", ErrUnsupportedQuery)
	}
	return "", nil, fmt.Errorf("%w: %T", ErrUnsupportedQuery, q)
}

func fieldMatch(cond string) string {
	return "d.id IN (SELECT f.doc_id FROM fields f WHERE f.field = ? AND " + cond + ")"
}

// compileNormalized compares the normalized literal against normalized field
// values. A literal that normalizes to nothing matches nothing.
func compileNormalized(field, literal string, cond func(norm string) (string, []any)) (string, []any, error) {
	norm := analysis.Normalize(AnalyzerFor(field), literal)
	if norm == "" {
		return "0", nil, nil
	}
	where, args := cond(norm)
	return fieldMatch(where), append([]any{field}, args...), nil
}

// compileTerm requires every analyzed term of the literal to occur in a
// single value of the field. A literal without terms matches nothing.
func compileTerm(q *TermQuery) (string, []any, error) {
	terms := analysis.Terms(AnalyzerFor(q.Field), q.Literal)
	if len(terms) == 0 {
		return "0", nil, nil
	}

	conds := make([]string, len(terms))
	args := []any{q.Field}
	for i, term := range terms {
		conds[i] = "EXISTS (SELECT 1 FROM terms t WHERE t.field_id = f.id AND t.term = ?)"
		args = append(args, term)
	}
	return fieldMatch(strings.Join(conds, " AND ")), args, nil
}

func compileBoolean(q *BooleanQuery) (string, []any, error) {
	var conds []string
	var args []any
	hasMust := false

	for _, c := range q.Clauses {
		where, clauseArgs, err := compile(c.Query)
		if err != nil {
			return "", nil, err
		}
		switch c.Occur {
		case OccurMust:
			hasMust = true
			conds = append(conds, "("+where+")")
		case OccurMustNot:
			conds = append(conds, "NOT ("+where+")")
		default:
			return "", nil, fmt.Errorf("%w: occur %d", ErrUnsupportedQuery, c.Occur)
		}
		args = append(args, clauseArgs...)
	}

	if !hasMust {
		return "0", nil, nil
	}
	return strings.Join(conds, " AND "), args, nil
}

// DisplayNames returns the indexed display names of the given entities.
// Entities without a declaration document are omitted.
func (d *Database) DisplayNames(ctx context.Context, iris []string) (map[string]string, error) {
	placeholders, args := sqlutil.InClauseArgs(iris)
	query := `
		SELECT d.entity_iri, f.value
		FROM documents d
		JOIN fields f ON f.doc_id = d.id AND f.field = ?
		WHERE d.category = ? AND d.entity_iri IN (` + placeholders + `)
		ORDER BY d.id
	`
	args = append([]any{FieldDisplayName, CategoryDeclaration}, args...)

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: display names: %w", ErrIndexIO, err)
	}
	type pair struct{ iri, name string }
	pairs, err := sqlutil.ScanRows(rows, func(rows *sql.Rows) (pair, error) {
		var p pair
		err := rows.Scan(&p.iri, &p.name)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: display names: %w", ErrIndexIO, err)
	}

	names := make(map[string]string, len(pairs))
	for _, p := range pairs {
		if _, seen := names[p.iri]; !seen {
			names[p.iri] = p.name
		}
	}
	return names, nil
}
