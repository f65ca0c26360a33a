package index

import (
	"context"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanlsb/ontoq/internal/ontology"
)

const base = "http://example.org/onco#"

func openFixture(t *testing.T) *Database {
	t.Helper()

	catalog, err := ontology.LoadCatalog([]string{"../ontology/testdata/onco.yaml"})
	require.NoError(t, err)

	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Rebuild(context.Background(), catalog)
	require.NoError(t, err)
	return db
}

// entitiesOf runs q and returns the sorted entity IRIs of the hits.
func entitiesOf(t *testing.T, db *Database, q Query) []string {
	t.Helper()
	ctx := context.Background()

	refs, err := db.Search(ctx, q)
	require.NoError(t, err)

	seen := map[string]bool{}
	out := []string{}
	for _, ref := range refs {
		doc, err := db.Fetch(ctx, ref)
		require.NoError(t, err)
		id, ok := doc.Entity()
		require.True(t, ok)
		if !seen[string(id)] {
			seen[string(id)] = true
			out = append(out, string(id))
		}
	}
	sort.Strings(out)
	return out
}

func TestRebuildStats(t *testing.T) {
	db := openFixture(t)

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 26, stats.Documents)
	assert.Equal(t, 1, stats.Ontologies)
	assert.Equal(t, map[string]int{
		CategoryDeclaration:     10,
		CategoryAnnotationValue: 12,
		CategoryLogicalAxiom:    4,
	}, stats.Categories)

	t.Run("rebuild is idempotent", func(t *testing.T) {
		catalog, err := ontology.LoadCatalog([]string{"../ontology/testdata/onco.yaml"})
		require.NoError(t, err)
		result, err := db.Rebuild(context.Background(), catalog)
		require.NoError(t, err)
		assert.Equal(t, &RebuildResult{Ontologies: 1, Documents: 26}, result)

		again, err := db.Stats()
		require.NoError(t, err)
		assert.Equal(t, stats, again)
	})
}

func TestSearch(t *testing.T) {
	db := openFixture(t)

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{
			name:  "term on text field",
			query: Term(FieldAnnotationText, "cell"),
			want:  []string{base + "A", base + "C"},
		},
		{
			name:  "term needs every token in one value",
			query: Term(FieldAnnotationText, "Cell Tumor"),
			want:  []string{base + "A"},
		},
		{
			name:  "term without tokens matches nothing",
			query: Term(FieldAnnotationText, "  !! "),
			want:  []string{},
		},
		{
			name:  "prefix is case insensitive",
			query: Prefix(FieldAnnotationText, "NEO"),
			want:  []string{base + "A", base + "B"},
		},
		{
			name:  "prefix spans tokens",
			query: Prefix(FieldAnnotationText, "neoplastic c"),
			want:  []string{base + "A"},
		},
		{
			name:  "suffix",
			query: Suffix(FieldAnnotationText, "cell"),
			want:  []string{base + "A", base + "C"},
		},
		{
			name:  "suffix longer than value",
			query: Suffix(FieldAnnotationText, "a very long suffix that matches nothing"),
			want:  []string{},
		},
		{
			name:  "prefix without tokens matches nothing",
			query: Prefix(FieldAnnotationText, "-"),
			want:  []string{},
		},
		{
			name:  "suffix without tokens matches nothing",
			query: Suffix(FieldAnnotationText, "()"),
			want:  []string{},
		},
		{
			name:  "phrase without tokens matches nothing",
			query: Phrase(FieldAnnotationText, " . "),
			want:  []string{},
		},
		{
			name:  "phrase is whole value",
			query: Phrase(FieldAnnotationText, "tumor growth"),
			want:  []string{base + "B"},
		},
		{
			name:  "phrase does not match part of a value",
			query: Phrase(FieldAnnotationText, "tumor"),
			want:  []string{},
		},
		{
			name:  "keyword field",
			query: Term(FieldAnnotationIRI, base+"hasSynonym"),
			want:  []string{base + "A", base + "B"},
		},
		{
			name:  "keyword field is exact",
			query: Term(FieldAnnotationIRI, base+"HASSYNONYM"),
			want:  []string{},
		},
		{
			name: "boolean and",
			query: And(
				Term(FieldAnnotationIRI, base+"hasSynonym"),
				Term(FieldAnnotationText, "growth"),
			),
			want: []string{base + "B"},
		},
		{
			name: "boolean and not",
			query: AndNot(
				Term(FieldAnnotationIRI, base+"hasSynonym"),
				Term(FieldAnnotationText, "growth"),
			),
			want: []string{base + "A"},
		},
		{
			name: "boolean without must",
			query: &BooleanQuery{Clauses: []BooleanClause{
				{Occur: OccurMustNot, Query: Term(FieldAnnotationText, "growth")},
			}},
			want: []string{},
		},
		{
			name:  "object restriction holders",
			query: Term(FieldObjectPropertyIRI, base+"hasLocation"),
			want:  []string{base + "A", base + "B", base + "patient1"},
		},
		{
			name:  "restriction filler name",
			query: Term(FieldFillerDisplayName, "lung"),
			want:  []string{base + "A", base + "patient1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entitiesOf(t, db, tt.query))
		})
	}
}

func TestFetch(t *testing.T) {
	db := openFixture(t)
	ctx := context.Background()

	refs, err := db.Search(ctx, And(
		Term(FieldEntityIRI, base+"B"),
		Term(FieldDataPropertyIRI, base+"hasStage"),
	))
	require.NoError(t, err)
	require.Len(t, refs, 1)

	doc, err := db.Fetch(ctx, refs[0])
	require.NoError(t, err)
	assert.Equal(t, Document{
		FieldEntityIRI:         {base + "B"},
		FieldDataPropertyIRI:   {base + "hasStage"},
		FieldFillerDisplayName: {"II"},
	}, doc)

	_, err = db.Fetch(ctx, DocRef(1<<40))
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestFillerDocument(t *testing.T) {
	db := openFixture(t)
	ctx := context.Background()

	refs, err := db.Search(ctx, And(
		Term(FieldEntityIRI, base+"B"),
		Term(FieldObjectPropertyIRI, base+"hasLocation"),
	))
	require.NoError(t, err)
	require.Len(t, refs, 1)

	doc, err := db.Fetch(ctx, refs[0])
	require.NoError(t, err)
	filler, ok := doc.Filler()
	require.True(t, ok)
	assert.Equal(t, base+"liver", string(filler))
	assert.Equal(t, "liver", doc.Get(FieldFillerDisplayName))
}

func TestDisplayNames(t *testing.T) {
	db := openFixture(t)

	names, err := db.DisplayNames(context.Background(), []string{base + "A", base + "hasStage", base + "missing"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		base + "A":        "neoplastic cell",
		base + "hasStage": "hasStage",
	}, names)

	names, err = db.DisplayNames(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSearchCancelled(t *testing.T) {
	db := openFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := db.Search(ctx, Term(FieldAnnotationText, "cell"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIndexIO)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearchUnsupported(t *testing.T) {
	db := openFixture(t)

	_, err := db.Search(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnsupportedQuery)
}

func TestRemoveOntology(t *testing.T) {
	db := openFixture(t)

	require.NoError(t, db.RemoveOntology("http://example.org/onco"))
	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Zero(t, stats.Documents)
}

func TestOpenFileBacked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "index.db")

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	catalog, err := ontology.LoadCatalog([]string{"../ontology/testdata/onco.yaml"})
	require.NoError(t, err)
	result, err := db.Rebuild(context.Background(), catalog)
	require.NoError(t, err)
	assert.Equal(t, 26, result.Documents)

	t.Run("lock blocks a concurrent rebuild", func(t *testing.T) {
		lock, err := acquireIndexLock(filepath.Dir(path))
		require.NoError(t, err)
		defer lock.Release()

		_, err = db.Rebuild(context.Background(), catalog)
		assert.ErrorIs(t, err, ErrIndexLocked)
	})
}
