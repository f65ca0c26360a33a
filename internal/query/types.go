// Package query composes entity filters and evaluates them against the index.
package query

import (
	"fmt"
	"strings"

	"github.com/aidanlsb/ontoq/internal/index"
)

// QueryType is the operator of a basic query.
type QueryType int

const (
	// Value types compare a property's textual value and need a search string.
	Contains QueryType = iota
	StartsWith
	EndsWith
	ExactMatch

	// Non-value types test for the existence of a value or restriction.
	PropertyValuePresent
	PropertyValueAbsent
	PropertyRestrictionPresent
	PropertyRestrictionAbsent
)

var queryTypeNames = []string{
	Contains:                   "contains",
	StartsWith:                 "starts_with",
	EndsWith:                   "ends_with",
	ExactMatch:                 "exact_match",
	PropertyValuePresent:       "property_value_present",
	PropertyValueAbsent:        "property_value_absent",
	PropertyRestrictionPresent: "property_restriction_present",
	PropertyRestrictionAbsent:  "property_restriction_absent",
}

func (t QueryType) String() string {
	if t < 0 || int(t) >= len(queryTypeNames) {
		return fmt.Sprintf("QueryType(%d)", int(t))
	}
	return queryTypeNames[t]
}

// IsValueType reports whether t compares a value and so requires search text.
func (t QueryType) IsValueType() bool {
	return t >= Contains && t <= ExactMatch
}

// IsNonValueType reports whether t is an existence test.
func (t QueryType) IsNonValueType() bool {
	return t >= PropertyValuePresent && t <= PropertyRestrictionAbsent
}

// ParseQueryType parses a query type name. Case, '-' and ' ' separators are
// accepted, so "STARTS_WITH", "starts-with" and "starts with" are equivalent.
func ParseQueryType(s string) (QueryType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	for i, name := range queryTypeNames {
		if name == key {
			return QueryType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown query type %q", ErrUnsupportedQueryType, s)
}

// MatchMode controls how a composite query folds its children.
type MatchMode int

const (
	// MatchAll intersects child results.
	MatchAll MatchMode = iota
	// MatchAny unions child results.
	MatchAny
)

func (m MatchMode) String() string {
	if m == MatchAny {
		return "any"
	}
	return "all"
}

// ParseMatchMode parses "all" or "any".
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "and":
		return MatchAll, nil
	case "any", "or":
		return MatchAny, nil
	}
	return MatchAll, fmt.Errorf("invalid match mode %q (expected all or any)", s)
}

// SearchCategory names the kind of index document a basic query searches.
type SearchCategory string

const (
	CategoryAnnotationValue SearchCategory = index.CategoryAnnotationValue
	CategoryLogicalAxiom    SearchCategory = index.CategoryLogicalAxiom
)

// UniverseKind selects the complement base for absence and negation.
type UniverseKind int

const (
	// UniverseEntities is every entity in the signature of the ontologies in scope.
	UniverseEntities UniverseKind = iota
	// UniverseClasses is every class in scope.
	UniverseClasses
)

func (u UniverseKind) String() string {
	if u == UniverseClasses {
		return "classes"
	}
	return "entities"
}
