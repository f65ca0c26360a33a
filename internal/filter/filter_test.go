package filter

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanlsb/ontoq/internal/model"
	"github.com/aidanlsb/ontoq/internal/ontology"
	"github.com/aidanlsb/ontoq/internal/query"
	"github.com/aidanlsb/ontoq/internal/testutil"
)

const base = testutil.OncologyBase

func setup(t *testing.T) (*query.Engine, *Compiler) {
	t.Helper()
	db, catalog := testutil.IndexCatalog(t, testutil.OncologyOntology())
	engine := query.NewEngine(catalog, db, query.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return engine, NewCompiler(engine, catalog, query.MatchAll)
}

func compile(t *testing.T, c *Compiler, src string) *query.FilteredQuery {
	t.Helper()
	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	q, err := c.Compile(doc, nil)
	require.NoError(t, err)
	return q
}

func TestCompileTree(t *testing.T) {
	engine, c := setup(t)

	got := compile(t, c, `
match: any
filters:
  - property: has synonym
    type: contains
    value: tumor
  - property: label
    type: starts-with
    value: blood
    negated: true
  - not:
      match: all
      filters:
        - property: hasDefinition
          type: property_value_present
  - some:
      relation: has location
      filters:
        - {property: label, type: exact_match, value: lung}
`)

	synonym := model.AnnotationProperty(base + "hasSynonym")
	label := model.AnnotationProperty(ontology.RDFSLabel)
	definition := model.AnnotationProperty(base + "hasDefinition")

	present, err := engine.CreateQuery(definition, query.PropertyValuePresent, "")
	require.NoError(t, err)
	lung, err := engine.CreateExactMatchFilter(label, "lung")
	require.NoError(t, err)

	want, err := engine.NewUserQueryBuilder().
		AddBasicQuery(synonym, query.Contains, "tumor", false).
		AddBasicQuery(label, query.StartsWith, "blood", true).
		AddNegatedQuery(query.NewFilteredQueryBuilder().Add(present).Build(query.MatchAll)).
		AddNestedQuery(query.NewFilteredQueryBuilder().Add(lung).Build(query.MatchAll), base+"hasLocation").
		Build(query.MatchAny)
	require.NoError(t, err)

	assert.True(t, query.Equal(want, got), "got %s\nwant %s", got, want)
}

func TestCompileAndEvaluate(t *testing.T) {
	engine, c := setup(t)

	tests := []struct {
		name string
		src  string
		want []model.EntityID
	}{
		{
			name: "all of two label filters",
			src: `
filters:
  - {property: label, type: contains, value: cell}
  - {property: label, type: starts_with, value: neo}
`,
			want: []model.EntityID{base + "A"},
		},
		{
			name: "nested relation",
			src: `
filters:
  - some:
      relation: hasLocation
      filters:
        - {property: label, type: ends_with, value: lung}
`,
			want: []model.EntityID{base + "A", base + "patient1"},
		},
		{
			name: "classes without a stage",
			src: `
filters:
  - {property: hasStage, type: property_restriction_absent}
  - {property: label, type: contains, value: neoplastic}
`,
			want: []model.EntityID{base + "A"},
		},
		{
			name: "empty document",
			src:  `filters: []`,
			want: []model.EntityID{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := compile(t, c, tt.src)
			got, err := engine.Evaluate(context.Background(), q, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Sorted())
		})
	}
}

func TestMatchOverride(t *testing.T) {
	_, c := setup(t)

	doc, err := Parse([]byte("match: all\nfilters:\n  - {property: label, type: contains, value: cell}\n"))
	require.NoError(t, err)

	anyMode := query.MatchAny
	q, err := c.Compile(doc, &anyMode)
	require.NoError(t, err)
	assert.False(t, q.IsMatchAll())

	t.Run("default mode applies when none is named", func(t *testing.T) {
		engine, _ := setup(t)
		catalog := ontology.NewCatalog()
		anyCompiler := NewCompiler(engine, catalog, query.MatchAny)
		q, err := anyCompiler.Compile(&Document{}, nil)
		require.NoError(t, err)
		assert.False(t, q.IsMatchAll())
	})
}

func TestCompileErrors(t *testing.T) {
	_, c := setup(t)

	tests := []struct {
		name    string
		src     string
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown property",
			src:     "filters:\n  - {property: colour, type: contains, value: red}",
			wantErr: ontology.ErrUnknownProperty,
			wantMsg: "filters[0].property",
		},
		{
			name:    "unknown type",
			src:     "filters:\n  - {property: label, type: matches, value: x}",
			wantErr: query.ErrUnsupportedQueryType,
			wantMsg: "filters[0].type",
		},
		{
			name:    "value type without value",
			src:     "filters:\n  - {property: label, type: contains}",
			wantErr: query.ErrUnsupportedQueryType,
		},
		{
			name:    "two kinds in one filter",
			src:     "filters:\n  - property: label\n    type: contains\n    value: x\n    not: {filters: []}",
			wantErr: ErrInvalidFilter,
		},
		{
			name:    "empty filter",
			src:     "filters:\n  - {}",
			wantErr: ErrInvalidFilter,
		},
		{
			name:    "relation is not an object property",
			src:     "filters:\n  - some: {relation: hasSynonym, filters: []}",
			wantErr: ErrInvalidFilter,
			wantMsg: "filters[0].some.relation",
		},
		{
			name:    "bad nested match",
			src:     "filters:\n  - not: {match: most, filters: []}",
			wantErr: ErrInvalidFilter,
		},
		{
			name:    "error inside nested group",
			src:     "filters:\n  - not:\n      filters:\n        - {property: nope, type: contains, value: x}",
			wantErr: ontology.ErrUnknownProperty,
			wantMsg: "filters[0].not.filters[0].property",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.src))
			require.NoError(t, err)
			_, err = c.Compile(doc, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("filters: {"))
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestLoad(t *testing.T) {
	ws := testutil.NewTestWorkspace(t).
		WithFile("filters/cells.yaml", "filters:\n  - {property: label, type: contains, value: cell}\n").
		Build()

	doc, err := Load(filepath.Join(ws.Path, "filters", "cells.yaml"))
	require.NoError(t, err)
	require.Len(t, doc.Filters, 1)
	assert.Equal(t, "cell", doc.Filters[0].Value)

	_, err = Load(filepath.Join(ws.Path, "missing.yaml"))
	assert.Error(t, err)
}
