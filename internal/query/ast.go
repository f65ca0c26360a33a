package query

import (
	"fmt"
	"strings"

	"github.com/aidanlsb/ontoq/internal/index"
	"github.com/aidanlsb/ontoq/internal/model"
)

// Query is a node in a filter tree: *BasicQuery, *FilteredQuery,
// *NegatedQuery or *NestedQuery. Nodes are immutable once built and may be
// shared and evaluated any number of times.
type Query interface {
	// IsMatchAll reports the match mode of composite nodes. Leaves report true.
	IsMatchAll() bool
	String() string
	queryNode()
}

// BasicQuery is a leaf wrapping one index expression.
type BasicQuery struct {
	typ      QueryType
	property model.Property
	text     string
	negated  bool
	clause   index.Query
	category SearchCategory
}

func (*BasicQuery) queryNode() {}

// IsMatchAll returns true; a leaf has no children to fold.
func (*BasicQuery) IsMatchAll() bool { return true }

// Type returns the operator the query was built with.
func (q *BasicQuery) Type() QueryType { return q.typ }

// Property returns the property the query filters on.
func (q *BasicQuery) Property() model.Property { return q.property }

// Text returns the search text, empty for existence tests.
func (q *BasicQuery) Text() string { return q.text }

// Negated reports whether the value clause is prohibited.
func (q *BasicQuery) Negated() bool { return q.negated }

// Clause returns the index expression searched for this query. For absence
// types it is the existence clause whose hits are removed from the universe.
func (q *BasicQuery) Clause() index.Query { return q.clause }

// Category returns the kind of index document the query searches.
func (q *BasicQuery) Category() SearchCategory { return q.category }

// Universe returns the complement base of an absence query.
func (q *BasicQuery) Universe() (UniverseKind, bool) {
	u, ok := absenceUniverse[q.typ]
	return u, ok
}

func (q *BasicQuery) String() string {
	var b strings.Builder
	if q.negated {
		b.WriteString("not ")
	}
	fmt.Fprintf(&b, "%s(<%s>", q.typ, q.property.IRI)
	if q.typ.IsValueType() {
		fmt.Fprintf(&b, ", %q", q.text)
	}
	b.WriteString(")")
	return b.String()
}

// FilteredQuery folds an ordered list of child queries by match mode.
type FilteredQuery struct {
	mode     MatchMode
	children []Query
}

func (*FilteredQuery) queryNode() {}

// IsMatchAll reports whether children are intersected rather than unioned.
func (q *FilteredQuery) IsMatchAll() bool { return q.mode == MatchAll }

// Mode returns the match mode.
func (q *FilteredQuery) Mode() MatchMode { return q.mode }

// Children returns a copy of the child list.
func (q *FilteredQuery) Children() []Query {
	out := make([]Query, len(q.children))
	copy(out, q.children)
	return out
}

// Len returns the number of children.
func (q *FilteredQuery) Len() int { return len(q.children) }

// IsEmpty reports whether the query has no children.
func (q *FilteredQuery) IsEmpty() bool { return len(q.children) == 0 }

func (q *FilteredQuery) String() string {
	parts := make([]string, len(q.children))
	for i, c := range q.children {
		parts[i] = c.String()
	}
	return q.mode.String() + "(" + strings.Join(parts, ", ") + ")"
}

// NegatedQuery is the complement of its inner query against a universe.
type NegatedQuery struct {
	inner    Query
	universe UniverseKind
}

// NewNegatedQuery negates inner against the entity universe.
func NewNegatedQuery(inner Query) *NegatedQuery {
	return &NegatedQuery{inner: inner, universe: UniverseEntities}
}

// NewNegatedQueryOver negates inner against the given universe.
func NewNegatedQueryOver(inner Query, universe UniverseKind) *NegatedQuery {
	return &NegatedQuery{inner: inner, universe: universe}
}

func (*NegatedQuery) queryNode() {}

// IsMatchAll reports the inner query's mode.
func (q *NegatedQuery) IsMatchAll() bool { return q.inner.IsMatchAll() }

// Inner returns the negated query.
func (q *NegatedQuery) Inner() Query { return q.inner }

// Universe returns the complement base.
func (q *NegatedQuery) Universe() UniverseKind { return q.universe }

func (q *NegatedQuery) String() string {
	if q.universe == UniverseClasses {
		return "not[classes](" + q.inner.String() + ")"
	}
	return "not(" + q.inner.String() + ")"
}

// NestedQuery matches the holders of a relation whose filler satisfies the
// inner query.
type NestedQuery struct {
	inner    Query
	relation string
	clause   index.Query
}

// NewNestedQuery restricts the fillers of the object property relation (an
// IRI) to the results of inner.
func NewNestedQuery(inner Query, relation string) (*NestedQuery, error) {
	if inner == nil {
		return nil, fmt.Errorf("%w: nested query needs a filler query", ErrUnsupportedQueryType)
	}
	clause, err := BuildExistenceQuery(model.ObjectProperty(relation))
	if err != nil {
		return nil, err
	}
	return &NestedQuery{inner: inner, relation: relation, clause: clause}, nil
}

func (*NestedQuery) queryNode() {}

// IsMatchAll reports the inner query's mode.
func (q *NestedQuery) IsMatchAll() bool { return q.inner.IsMatchAll() }

// Inner returns the filler query.
func (q *NestedQuery) Inner() Query { return q.inner }

// Relation returns the IRI of the restricted object property.
func (q *NestedQuery) Relation() string { return q.relation }

// Clause returns the restriction existence clause searched for holders.
func (q *NestedQuery) Clause() index.Query { return q.clause }

func (q *NestedQuery) String() string {
	return fmt.Sprintf("some(<%s>, %s)", q.relation, q.inner)
}

var (
	_ Query = (*BasicQuery)(nil)
	_ Query = (*FilteredQuery)(nil)
	_ Query = (*NegatedQuery)(nil)
	_ Query = (*NestedQuery)(nil)
)
