package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardAnalyzer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "simple", input: "Neoplastic cell", want: []string{"neoplastic", "cell"}},
		{name: "punctuation", input: "tumor-growth, (benign)", want: []string{"tumor", "growth", "benign"}},
		{name: "case folding", input: "TUMOR Growth", want: []string{"tumor", "growth"}},
		{name: "digits kept", input: "CD4 T-cell", want: []string{"cd4", "t", "cell"}},
		{name: "compatibility form", input: "ﬁbroma", want: []string{"fibroma"}},
		{name: "empty", input: "", want: []string{}},
		{name: "only separators", input: " - , ", want: []string{}},
	}

	a := NewStandardAnalyzer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Terms(a, tt.input))
		})
	}
}

func TestStandardAnalyzerPositions(t *testing.T) {
	tokens := NewStandardAnalyzer().Analyze("blood  cell count")
	assert.Equal(t, []Token{
		{Term: "blood", Position: 0},
		{Term: "cell", Position: 1},
		{Term: "count", Position: 2},
	}, tokens)
}

func TestKeywordAnalyzer(t *testing.T) {
	a := NewKeywordAnalyzer()
	assert.Equal(t, []string{"http://example.org/onco#Has Synonym"}, Terms(a, "http://example.org/onco#Has Synonym"))
	assert.Empty(t, a.Analyze(""))
}

func TestNormalize(t *testing.T) {
	a := NewStandardAnalyzer()
	assert.Equal(t, "tumor growth", Normalize(a, "  Tumor   GROWTH "))
	assert.Equal(t, "", Normalize(a, "--"))
	assert.Equal(t, "Tumor Growth", Normalize(NewKeywordAnalyzer(), "Tumor Growth"))
}
