package analysis

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// StandardAnalyzer applies NFKC normalization and Unicode case folding, then
// splits on anything that is not a letter or digit.
type StandardAnalyzer struct{}

// NewStandardAnalyzer creates a new StandardAnalyzer.
func NewStandardAnalyzer() *StandardAnalyzer {
	return &StandardAnalyzer{}
}

// Analyze tokenizes text into folded terms with positions.
func (a *StandardAnalyzer) Analyze(text string) []Token {
	// Casers carry state and are not shareable across goroutines.
	folded := cases.Fold().String(norm.NFKC.String(text))

	var tokens []Token
	pos := 0
	i := 0
	for i < len(folded) {
		r, size := utf8.DecodeRuneInString(folded[i:])
		if !isWordRune(r) {
			i += size
			continue
		}

		start := i
		for i < len(folded) {
			r, size = utf8.DecodeRuneInString(folded[i:])
			if !isWordRune(r) {
				break
			}
			i += size
		}

		tokens = append(tokens, Token{Term: folded[start:i], Position: pos})
		pos++
	}
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
