package query

import "github.com/aidanlsb/ontoq/internal/index"

// Equal reports whether two query trees are structurally equal. Child order
// is significant.
func Equal(a, b Query) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch qa := a.(type) {
	case *BasicQuery:
		qb, ok := b.(*BasicQuery)
		return ok &&
			qa.typ == qb.typ &&
			qa.property == qb.property &&
			qa.text == qb.text &&
			qa.negated == qb.negated &&
			qa.category == qb.category &&
			index.Equal(qa.clause, qb.clause)
	case *FilteredQuery:
		qb, ok := b.(*FilteredQuery)
		if !ok || qa.mode != qb.mode || len(qa.children) != len(qb.children) {
			return false
		}
		for i := range qa.children {
			if !Equal(qa.children[i], qb.children[i]) {
				return false
			}
		}
		return true
	case *NegatedQuery:
		qb, ok := b.(*NegatedQuery)
		return ok && qa.universe == qb.universe && Equal(qa.inner, qb.inner)
	case *NestedQuery:
		qb, ok := b.(*NestedQuery)
		return ok && qa.relation == qb.relation && Equal(qa.inner, qb.inner)
	}
	return false
}
