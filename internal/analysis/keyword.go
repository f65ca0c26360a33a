package analysis

// KeywordAnalyzer passes the entire input through as a single token.
// Used for IRIs and other identity fields, which match exactly.
type KeywordAnalyzer struct{}

// NewKeywordAnalyzer creates a new KeywordAnalyzer.
func NewKeywordAnalyzer() *KeywordAnalyzer {
	return &KeywordAnalyzer{}
}

// Analyze returns the entire input as a single token.
func (a *KeywordAnalyzer) Analyze(text string) []Token {
	if text == "" {
		return nil
	}
	return []Token{{Term: text, Position: 0}}
}
