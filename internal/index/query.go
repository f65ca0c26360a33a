package index

import (
	"fmt"
	"strings"
)

// QueryType identifies the kind of index query node.
type QueryType int

const (
	QueryTypeTerm QueryType = iota
	QueryTypePrefix
	QueryTypeSuffix
	QueryTypePhrase
	QueryTypeBoolean
)

// Query is a node in the index query language. Query values are immutable
// once built.
type Query interface {
	Type() QueryType
	String() string
}

// TermQuery matches documents with a value in Field containing every analyzed
// term of Literal.
type TermQuery struct {
	Field   string
	Literal string
}

func (q *TermQuery) Type() QueryType { return QueryTypeTerm }

func (q *TermQuery) String() string { return fmt.Sprintf("%s:%q", q.Field, q.Literal) }

// PrefixQuery matches documents with a value in Field whose normalized form
// starts with the normalized Literal.
type PrefixQuery struct {
	Field   string
	Literal string
}

func (q *PrefixQuery) Type() QueryType { return QueryTypePrefix }

func (q *PrefixQuery) String() string { return fmt.Sprintf("%s:%q*", q.Field, q.Literal) }

// SuffixQuery matches documents with a value in Field whose normalized form
// ends with the normalized Literal.
type SuffixQuery struct {
	Field   string
	Literal string
}

func (q *SuffixQuery) Type() QueryType { return QueryTypeSuffix }

func (q *SuffixQuery) String() string { return fmt.Sprintf("%s:*%q", q.Field, q.Literal) }

// PhraseQuery matches documents with a value in Field whose analyzed term
// sequence equals that of Literal.
type PhraseQuery struct {
	Field   string
	Literal string
}

func (q *PhraseQuery) Type() QueryType { return QueryTypePhrase }

func (q *PhraseQuery) String() string { return fmt.Sprintf("%s:[%q]", q.Field, q.Literal) }

// Occur defines how a clause participates in a BooleanQuery.
type Occur int

const (
	OccurMust    Occur = iota // required
	OccurMustNot              // prohibited
)

// BooleanClause is a single clause within a BooleanQuery.
type BooleanClause struct {
	Occur Occur
	Query Query
}

// BooleanQuery matches documents satisfying every Must clause and no MustNot
// clause. A boolean query without a Must clause matches nothing.
type BooleanQuery struct {
	Clauses []BooleanClause
}

func (q *BooleanQuery) Type() QueryType { return QueryTypeBoolean }

func (q *BooleanQuery) String() string {
	parts := make([]string, len(q.Clauses))
	for i, c := range q.Clauses {
		prefix := "+"
		if c.Occur == OccurMustNot {
			prefix = "-"
		}
		parts[i] = prefix + c.Query.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Term returns a TermQuery.
func Term(field, literal string) Query { return &TermQuery{Field: field, Literal: literal} }

// Prefix returns a PrefixQuery.
func Prefix(field, literal string) Query { return &PrefixQuery{Field: field, Literal: literal} }

// Suffix returns a SuffixQuery.
func Suffix(field, literal string) Query { return &SuffixQuery{Field: field, Literal: literal} }

// Phrase returns a PhraseQuery.
func Phrase(field, literal string) Query { return &PhraseQuery{Field: field, Literal: literal} }

// And returns a BooleanQuery requiring every clause.
func And(clauses ...Query) Query {
	b := &BooleanQuery{Clauses: make([]BooleanClause, len(clauses))}
	for i, c := range clauses {
		b.Clauses[i] = BooleanClause{Occur: OccurMust, Query: c}
	}
	return b
}

// AndNot returns a BooleanQuery requiring must and prohibiting mustNot.
func AndNot(must, mustNot Query) Query {
	return &BooleanQuery{Clauses: []BooleanClause{
		{Occur: OccurMust, Query: must},
		{Occur: OccurMustNot, Query: mustNot},
	}}
}

// Equal reports whether two index queries are structurally equal.
func Equal(a, b Query) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch qa := a.(type) {
	case *TermQuery:
		qb, ok := b.(*TermQuery)
		return ok && *qa == *qb
	case *PrefixQuery:
		qb, ok := b.(*PrefixQuery)
		return ok && *qa == *qb
	case *SuffixQuery:
		qb, ok := b.(*SuffixQuery)
		return ok && *qa == *qb
	case *PhraseQuery:
		qb, ok := b.(*PhraseQuery)
		return ok && *qa == *qb
	case *BooleanQuery:
		qb, ok := b.(*BooleanQuery)
		if !ok || len(qa.Clauses) != len(qb.Clauses) {
			return false
		}
		for i := range qa.Clauses {
			if qa.Clauses[i].Occur != qb.Clauses[i].Occur || !Equal(qa.Clauses[i].Query, qb.Clauses[i].Query) {
				return false
			}
		}
		return true
	}
	return false
}
