package query

import (
	"fmt"
	"strings"
)

// Explain renders q as a nested markdown list: one item per node, with the
// category and index clause of every leaf.
func Explain(q Query) string {
	var b strings.Builder
	explain(&b, q, 0)
	return b.String()
}

func explain(b *strings.Builder, q Query, depth int) {
	indent := strings.Repeat("  ", depth)

	switch q := q.(type) {
	case *BasicQuery:
		op := q.typ.String()
		if q.negated {
			op = "not " + op
		}
		fmt.Fprintf(b, "%s- **%s** `%s`", indent, op, q.property.IRI)
		if q.typ.IsValueType() {
			fmt.Fprintf(b, " %q", q.text)
		}
		b.WriteString("\n")
		fmt.Fprintf(b, "%s  - category: %s\n", indent, q.category)
		if u, ok := q.Universe(); ok {
			fmt.Fprintf(b, "%s  - universe: %s minus matches\n", indent, u)
		}
		fmt.Fprintf(b, "%s  - clause: `%s`\n", indent, q.clause)

	case *FilteredQuery:
		label := "all of"
		if q.mode == MatchAny {
			label = "any of"
		}
		if len(q.children) == 0 {
			fmt.Fprintf(b, "%s- **%s** (no filters)\n", indent, label)
			return
		}
		fmt.Fprintf(b, "%s- **%s**\n", indent, label)
		for _, child := range q.children {
			explain(b, child, depth+1)
		}

	case *NegatedQuery:
		fmt.Fprintf(b, "%s- **not** (universe: %s)\n", indent, q.universe)
		explain(b, q.inner, depth+1)

	case *NestedQuery:
		fmt.Fprintf(b, "%s- **some** `%s`\n", indent, q.relation)
		fmt.Fprintf(b, "%s  - clause: `%s`\n", indent, q.clause)
		fmt.Fprintf(b, "%s  - fillers:\n", indent)
		explain(b, q.inner, depth+2)

	default:
		fmt.Fprintf(b, "%s- (unknown query %T)\n", indent, q)
	}
}
