package query

import (
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanlsb/ontoq/internal/model"
)

// bareEngine builds queries without touching an index.
func bareEngine() *Engine {
	return NewEngine(nil, nil, WithLogger(quietLogger()), WithSession("test"))
}

func sampleTree(t *testing.T) *FilteredQuery {
	t.Helper()
	e := bareEngine()

	anyDefinition := NewFilteredQueryBuilder().
		Add(mustQuery(t, e, definition, ExactMatch, "Respiratory organ")).
		Build(MatchAny)
	lungFillers := NewFilteredQueryBuilder().
		Add(mustQuery(t, e, label, EndsWith, "lung")).
		Build(MatchAll)

	q, err := e.NewUserQueryBuilder().
		AddBasicQuery(synonym, Contains, "tumor", false).
		AddBasicQuery(label, StartsWith, "blood", true).
		AddBasicQuery(stage, PropertyRestrictionAbsent, "", false).
		AddNegatedQuery(anyDefinition).
		AddNestedQuery(lungFillers, location.IRI).
		Build(MatchAll)
	require.NoError(t, err)
	return q
}

func TestExplainGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "explain", []byte(Explain(sampleTree(t))))
}

func TestExplainEmpty(t *testing.T) {
	assert.Equal(t, "- **any of** (no filters)\n", Explain(NewFilteredQueryBuilder().Build(MatchAny)))
}

func TestString(t *testing.T) {
	e := bareEngine()
	inner := NewFilteredQueryBuilder().Add(mustQuery(t, e, label, EndsWith, "lung")).Build(MatchAny)
	nested, err := NewNestedQuery(inner, location.IRI)
	require.NoError(t, err)

	q := NewFilteredQueryBuilder().
		Add(mustQuery(t, e, synonym, Contains, "tumor")).
		Add(NewNegatedQuery(nested)).
		Add(mustQuery(t, e, stage, PropertyRestrictionPresent, "")).
		Build(MatchAll)

	assert.Equal(t,
		`all(contains(<http://example.org/onco#hasSynonym>, "tumor"), `+
			`not(some(<http://example.org/onco#hasLocation>, any(ends_with(<http://www.w3.org/2000/01/rdf-schema#label>, "lung")))), `+
			`property_restriction_present(<http://example.org/onco#hasStage>))`,
		q.String())
}

func TestEqual(t *testing.T) {
	e := bareEngine()
	a := mustQuery(t, e, synonym, Contains, "tumor")
	b := mustQuery(t, e, label, StartsWith, "neo")

	tests := []struct {
		name  string
		x, y  Query
		equal bool
	}{
		{"same leaf", a, mustQuery(t, e, synonym, Contains, "tumor"), true},
		{"different text", a, mustQuery(t, e, synonym, Contains, "cell"), false},
		{"different type", a, mustQuery(t, e, synonym, ExactMatch, "tumor"), false},
		{
			name:  "negated leaf differs",
			x:     a,
			y:     func() Query { q, _ := e.CreateNegatedQuery(synonym, Contains, "tumor"); return q }(),
			equal: false,
		},
		{
			name:  "same children and mode",
			x:     NewFilteredQueryBuilder().Add(a).Add(b).Build(MatchAll),
			y:     NewFilteredQueryBuilder().Add(a).Add(b).Build(MatchAll),
			equal: true,
		},
		{
			name: "child order matters",
			x:    NewFilteredQueryBuilder().Add(a).Add(b).Build(MatchAll),
			y:    NewFilteredQueryBuilder().Add(b).Add(a).Build(MatchAll),
		},
		{
			name: "mode matters",
			x:    NewFilteredQueryBuilder().Add(a).Build(MatchAll),
			y:    NewFilteredQueryBuilder().Add(a).Build(MatchAny),
		},
		{
			name:  "negation",
			x:     NewNegatedQuery(a),
			y:     NewNegatedQuery(mustQuery(t, e, synonym, Contains, "tumor")),
			equal: true,
		},
		{
			name: "negation universe",
			x:    NewNegatedQuery(a),
			y:    NewNegatedQueryOver(a, UniverseClasses),
		},
		{"variant mismatch", a, NewNegatedQuery(a), false},
		{"nil and nil", nil, nil, true},
		{"leaf and nil", a, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, Equal(tt.x, tt.y))
			assert.Equal(t, tt.equal, Equal(tt.y, tt.x))
		})
	}

	t.Run("nested relation", func(t *testing.T) {
		inner := NewFilteredQueryBuilder().Add(a).Build(MatchAll)
		x, err := NewNestedQuery(inner, location.IRI)
		require.NoError(t, err)
		y, err := NewNestedQuery(inner, base+"hasSite")
		require.NoError(t, err)
		z, err := NewNestedQuery(NewFilteredQueryBuilder().Add(a).Build(MatchAll), location.IRI)
		require.NoError(t, err)

		assert.False(t, Equal(x, y))
		assert.True(t, Equal(x, z))
	})
}

func TestIsMatchAll(t *testing.T) {
	e := bareEngine()
	leaf := mustQuery(t, e, synonym, Contains, "tumor")
	anyOf := NewFilteredQueryBuilder().Add(leaf).Build(MatchAny)

	assert.True(t, leaf.IsMatchAll())
	assert.True(t, NewFilteredQueryBuilder().Build(MatchAll).IsMatchAll())
	assert.False(t, anyOf.IsMatchAll())
	assert.False(t, NewNegatedQuery(anyOf).IsMatchAll())

	nested, err := NewNestedQuery(anyOf, location.IRI)
	require.NoError(t, err)
	assert.False(t, nested.IsMatchAll())
}

func TestBuiltQueriesAreFrozen(t *testing.T) {
	e := bareEngine()
	a := mustQuery(t, e, synonym, Contains, "tumor")
	b := mustQuery(t, e, label, StartsWith, "neo")

	builder := NewFilteredQueryBuilder().Add(a)
	q := builder.Build(MatchAll)
	builder.Add(b)
	assert.Equal(t, 1, q.Len())

	children := q.Children()
	children[0] = b
	assert.True(t, Equal(a, q.Children()[0]))

	user := e.NewUserQueryBuilder().AddQuery(a)
	built, err := user.Build(MatchAny)
	require.NoError(t, err)
	user.AddQuery(b)
	assert.Equal(t, 1, built.Len())
	assert.Equal(t, 2, user.Len())
	assert.False(t, built.IsEmpty())
}

func TestBasicQueryAccessors(t *testing.T) {
	e := bareEngine()

	q := mustQuery(t, e, location, PropertyRestrictionAbsent, "")
	assert.Equal(t, location, q.Property())
	assert.Equal(t, CategoryLogicalAxiom, q.Category())
	u, ok := q.Universe()
	assert.True(t, ok)
	assert.Equal(t, UniverseClasses, u)

	q = mustQuery(t, e, synonym, PropertyValueAbsent, "")
	assert.Equal(t, CategoryAnnotationValue, q.Category())
	u, ok = q.Universe()
	assert.True(t, ok)
	assert.Equal(t, UniverseEntities, u)

	_, ok = mustQuery(t, e, synonym, PropertyValuePresent, "").Universe()
	assert.False(t, ok)
}

// countingScope counts how often the universe enumerates the ontologies.
type countingScope struct {
	mu         sync.Mutex
	calls      int
	signatures []model.Signature
}

func (c *countingScope) Ontologies() []model.Signature {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.signatures
}

type staticSignature struct {
	entities, classes []model.EntityID
}

func (s staticSignature) Signature() []model.EntityID          { return s.entities }
func (s staticSignature) ClassesInSignature() []model.EntityID { return s.classes }

func TestUniverseCache(t *testing.T) {
	t.Run("populated once", func(t *testing.T) {
		scope := &countingScope{signatures: []model.Signature{
			staticSignature{entities: []model.EntityID{"a", "b", "c"}, classes: []model.EntityID{"a"}},
			staticSignature{entities: []model.EntityID{"c", "d"}, classes: []model.EntityID{"d"}},
		}}
		u := NewUniverse(scope, quietLogger())

		entities, classes := u.Populated()
		assert.False(t, entities)
		assert.False(t, classes)

		assert.Equal(t, model.NewEntitySet("a", "b", "c", "d"), u.Entities())
		assert.Equal(t, model.NewEntitySet("a", "b", "c", "d"), u.Entities())
		assert.Equal(t, 1, scope.calls)

		assert.Equal(t, model.NewEntitySet("a", "d"), u.Of(UniverseClasses))
		assert.Equal(t, 2, scope.calls)
	})

	t.Run("empty universe is still cached", func(t *testing.T) {
		scope := &countingScope{}
		u := NewUniverse(scope, quietLogger())

		assert.Empty(t, u.Entities())
		assert.Empty(t, u.Entities())
		assert.Equal(t, 1, scope.calls)

		entities, _ := u.Populated()
		assert.True(t, entities)
	})

	t.Run("concurrent first use", func(t *testing.T) {
		scope := &countingScope{signatures: []model.Signature{
			staticSignature{entities: []model.EntityID{"a"}, classes: []model.EntityID{"a"}},
		}}
		u := NewUniverse(scope, quietLogger())

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				u.Entities()
				u.Classes()
			}()
		}
		wg.Wait()
		assert.Equal(t, 2, scope.calls)
	})

	t.Run("warm", func(t *testing.T) {
		u := NewUniverse(&countingScope{}, quietLogger())
		u.Warm()
		entities, classes := u.Populated()
		assert.True(t, entities)
		assert.True(t, classes)
	})
}

func TestEngineSession(t *testing.T) {
	assert.Equal(t, "test", bareEngine().Session())
	generated := NewEngine(nil, nil, WithLogger(quietLogger()))
	assert.Len(t, generated.Session(), 36)
	assert.NotEqual(t, generated.Session(), NewEngine(nil, nil).Session())
}
