// Package slugs derives IRI fragments for entities declared by label only.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

// Fragment converts a label to an IRI-safe fragment, e.g. "Blood Cell" -> "blood-cell".
func Fragment(label string) string {
	slugged := goslug.Make(strings.TrimSpace(label))
	if slugged == "" {
		slugged = strings.ToLower(strings.Join(strings.Fields(label), "-"))
	}
	return slugged
}

// JoinIRI appends fragment to a base IRI, inserting '#' unless the base
// already ends in a separator.
func JoinIRI(base, fragment string) string {
	if base == "" {
		return fragment
	}
	if strings.HasSuffix(base, "#") || strings.HasSuffix(base, "/") {
		return base + fragment
	}
	return base + "#" + fragment
}

// IsAbsoluteIRI reports whether ref looks like an absolute IRI ("scheme:...").
func IsAbsoluteIRI(ref string) bool {
	i := strings.Index(ref, ":")
	if i <= 0 {
		return false
	}
	for _, r := range ref[:i] {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.') {
			return false
		}
	}
	return true
}
