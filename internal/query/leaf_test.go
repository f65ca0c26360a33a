package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanlsb/ontoq/internal/index"
	"github.com/aidanlsb/ontoq/internal/model"
)

const (
	synonymIRI  = "http://example.org/onco#hasSynonym"
	stageIRI    = "http://example.org/onco#hasStage"
	locationIRI = "http://example.org/onco#hasLocation"
)

func TestQueryTypeGroupsAreDisjoint(t *testing.T) {
	for qt := Contains; qt <= PropertyRestrictionAbsent; qt++ {
		assert.NotEqual(t, qt.IsValueType(), qt.IsNonValueType(), "type %s", qt)
	}
	assert.False(t, QueryType(42).IsValueType())
	assert.False(t, QueryType(42).IsNonValueType())
}

func TestParseQueryType(t *testing.T) {
	tests := []struct {
		input string
		want  QueryType
	}{
		{"contains", Contains},
		{"STARTS_WITH", StartsWith},
		{"ends-with", EndsWith},
		{"exact match", ExactMatch},
		{"property_value_present", PropertyValuePresent},
		{" Property-Restriction-Absent ", PropertyRestrictionAbsent},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseQueryType(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseQueryType("matches")
	assert.ErrorIs(t, err, ErrUnsupportedQueryType)
}

func TestParseMatchMode(t *testing.T) {
	for input, want := range map[string]MatchMode{"all": MatchAll, "ANY": MatchAny, "or": MatchAny, "and": MatchAll} {
		got, err := ParseMatchMode(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
	_, err := ParseMatchMode("some")
	assert.Error(t, err)
}

func TestBuildIndexQuery(t *testing.T) {
	tests := []struct {
		name     string
		property model.Property
		typ      QueryType
		text     string
		want     index.Query
	}{
		{
			name:     "annotation contains",
			property: model.AnnotationProperty(synonymIRI),
			typ:      Contains,
			text:     "tumor",
			want:     index.And(index.Term(index.FieldAnnotationIRI, synonymIRI), index.Term(index.FieldAnnotationText, "tumor")),
		},
		{
			name:     "annotation starts with",
			property: model.AnnotationProperty(synonymIRI),
			typ:      StartsWith,
			text:     "neo",
			want:     index.And(index.Term(index.FieldAnnotationIRI, synonymIRI), index.Prefix(index.FieldAnnotationText, "neo")),
		},
		{
			name:     "data ends with",
			property: model.DataProperty(stageIRI),
			typ:      EndsWith,
			text:     "II",
			want:     index.And(index.Term(index.FieldDataPropertyIRI, stageIRI), index.Suffix(index.FieldFillerDisplayName, "II")),
		},
		{
			name:     "object exact match",
			property: model.ObjectProperty(locationIRI),
			typ:      ExactMatch,
			text:     "lung",
			want:     index.And(index.Term(index.FieldObjectPropertyIRI, locationIRI), index.Phrase(index.FieldFillerDisplayName, "lung")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildIndexQuery(tt.property, tt.typ, tt.text)
			require.NoError(t, err)
			assert.True(t, index.Equal(tt.want, got), "got %s, want %s", got, tt.want)

			b, ok := got.(*index.BooleanQuery)
			require.True(t, ok)
			assert.Len(t, b.Clauses, 2)
		})
	}
}

func TestBuildNegatedIndexQuery(t *testing.T) {
	got, err := BuildNegatedIndexQuery(model.AnnotationProperty(synonymIRI), Contains, "growth")
	require.NoError(t, err)
	want := index.AndNot(index.Term(index.FieldAnnotationIRI, synonymIRI), index.Term(index.FieldAnnotationText, "growth"))
	assert.True(t, index.Equal(want, got), "got %s", got)
}

func TestBuildExistenceQuery(t *testing.T) {
	got, err := BuildExistenceQuery(model.DataProperty(stageIRI))
	require.NoError(t, err)
	assert.True(t, index.Equal(index.Term(index.FieldDataPropertyIRI, stageIRI), got))
}

func TestBuildIndexQueryErrors(t *testing.T) {
	tests := []struct {
		name     string
		property model.Property
		typ      QueryType
		text     string
	}{
		{"non-value type", model.AnnotationProperty(synonymIRI), PropertyValuePresent, "tumor"},
		{"missing text", model.AnnotationProperty(synonymIRI), Contains, ""},
		{"blank text", model.AnnotationProperty(synonymIRI), ExactMatch, "   "},
		{"prefix of punctuation only", model.AnnotationProperty(synonymIRI), StartsWith, "-"},
		{"suffix of punctuation only", model.DataProperty(stageIRI), EndsWith, "()"},
		{"contains punctuation only", model.ObjectProperty(locationIRI), Contains, " !! "},
		{"missing iri", model.AnnotationProperty(""), Contains, "tumor"},
		{"unknown kind", model.Property{IRI: synonymIRI, Kind: model.PropertyKind(9)}, Contains, "tumor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildIndexQuery(tt.property, tt.typ, tt.text)
			assert.ErrorIs(t, err, ErrUnsupportedQueryType)
		})
	}
}
