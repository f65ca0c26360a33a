package query

import (
	"fmt"

	"github.com/aidanlsb/ontoq/internal/model"
)

// FilteredQueryBuilder accumulates children for a FilteredQuery.
type FilteredQueryBuilder struct {
	children []Query
}

// NewFilteredQueryBuilder returns an empty builder.
func NewFilteredQueryBuilder() *FilteredQueryBuilder {
	return &FilteredQueryBuilder{}
}

// Add appends a child. Nil children are ignored.
func (b *FilteredQueryBuilder) Add(q Query) *FilteredQueryBuilder {
	if q != nil {
		b.children = append(b.children, q)
	}
	return b
}

// Build freezes the children into a FilteredQuery. Later calls to Add do not
// affect queries already built.
func (b *FilteredQueryBuilder) Build(mode MatchMode) *FilteredQuery {
	children := make([]Query, len(b.children))
	copy(children, b.children)
	return &FilteredQuery{mode: mode, children: children}
}

// UserQueryBuilder builds the top-level filter a user composes: basic
// queries by property, negated groups and nested relation groups.
//
// The first construction error is kept and returned by Build; later
// additions are ignored once an error has occurred.
type UserQueryBuilder struct {
	engine   *Engine
	children []Query
	err      error
}

// NewUserQueryBuilder returns a builder creating basic queries with e.
func (e *Engine) NewUserQueryBuilder() *UserQueryBuilder {
	return &UserQueryBuilder{engine: e}
}

// AddBasicQuery appends a basic query on p. When negated is set the value
// clause is prohibited: the entity must assert p, with no value matching.
func (b *UserQueryBuilder) AddBasicQuery(p model.Property, t QueryType, text string, negated bool) *UserQueryBuilder {
	if b.err != nil {
		return b
	}
	q, err := newBasicQuery(p, t, text, negated)
	if err != nil {
		b.err = err
		return b
	}
	b.children = append(b.children, q)
	return b
}

// AddQuery appends an already built query.
func (b *UserQueryBuilder) AddQuery(q Query) *UserQueryBuilder {
	if b.err != nil {
		return b
	}
	if q == nil {
		b.err = fmt.Errorf("%w: nil query", ErrUnsupportedQueryType)
		return b
	}
	b.children = append(b.children, q)
	return b
}

// AddNegatedQuery appends the complement of q over the entity universe.
func (b *UserQueryBuilder) AddNegatedQuery(q *FilteredQuery) *UserQueryBuilder {
	if q == nil {
		return b.AddQuery(nil)
	}
	return b.AddQuery(NewNegatedQuery(q))
}

// AddNestedQuery appends the holders of relation whose filler matches q.
func (b *UserQueryBuilder) AddNestedQuery(q *FilteredQuery, relation string) *UserQueryBuilder {
	if b.err != nil {
		return b
	}
	if q == nil {
		return b.AddQuery(nil)
	}
	nested, err := NewNestedQuery(q, relation)
	if err != nil {
		b.err = err
		return b
	}
	return b.AddQuery(nested)
}

// Len returns the number of children added so far.
func (b *UserQueryBuilder) Len() int { return len(b.children) }

// IsEmpty reports whether nothing has been added.
func (b *UserQueryBuilder) IsEmpty() bool { return len(b.children) == 0 }

// Err returns the first construction error, if any.
func (b *UserQueryBuilder) Err() error { return b.err }

// Build freezes the children into a FilteredQuery.
func (b *UserQueryBuilder) Build(mode MatchMode) (*FilteredQuery, error) {
	if b.err != nil {
		return nil, b.err
	}
	children := make([]Query, len(b.children))
	copy(children, b.children)
	return &FilteredQuery{mode: mode, children: children}, nil
}
