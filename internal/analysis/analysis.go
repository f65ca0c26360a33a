// Package analysis turns indexed field values and query literals into terms.
package analysis

import "strings"

// Token is a single analyzed term and its position within the value.
type Token struct {
	Term     string
	Position int
}

// Analyzer processes text into a stream of tokens.
// Implementations must be safe for concurrent use.
type Analyzer interface {
	Analyze(text string) []Token
}

// Terms returns just the terms of the analyzed text.
func Terms(a Analyzer, text string) []string {
	tokens := a.Analyze(text)
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Term
	}
	return out
}

// Normalize returns the analyzed form of a whole value: its terms joined by a
// single space. Prefix, suffix and phrase matching compare normalized values.
func Normalize(a Analyzer, text string) string {
	return strings.Join(Terms(a, text), " ")
}
