package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aidanlsb/ontoq/internal/query"
)

func TestTableAlignsColumns(t *testing.T) {
	tbl := NewTable(2)
	tbl.AddRow("entities", "10")
	tbl.AddRow("classes", "5", "ignored")

	assert.Equal(t, "entities  10\nclasses   5\n", tbl.String())
	assert.Empty(t, NewTable(1).String())
}

func TestResultsTableRendersRows(t *testing.T) {
	tbl := NewResultsTable(NewDisplayContextWithWidth(80), EntityLayout)
	assert.Empty(t, tbl.Render())

	tbl.AddRow(ResultRow{Num: 1, Cells: []string{"neoplastic cell", "http://example.org/onco#A"}})
	tbl.AddRow(ResultRow{Num: 2, Cells: []string{"Patient One", "http://example.org/onco#patient1"}})

	out := tbl.Render()
	assert.Contains(t, out, "neoplastic cell")
	assert.Contains(t, out, "http://example.org/onco#patient1")
	assert.Equal(t, 2, strings.Count(strings.TrimRight(out, "\n"), "\n")+1)
	assert.GreaterOrEqual(t, tbl.ColumnWidth("iri"), ColIRI.MinWidth)
	assert.Zero(t, tbl.ColumnWidth("missing"))
}

func TestTruncateWithEllipsis(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"neoplastic tissue", 10, "neoplas..."},
		{"abcdef", 3, "abc"},
		{"tumör cell", 6, "tum..."},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TruncateWithEllipsis(tt.in, tt.max), tt.in)
	}
}

func TestFormatRowNum(t *testing.T) {
	assert.Equal(t, " 3", FormatRowNum(3, 9))
	assert.Equal(t, "  7", FormatRowNum(7, 120))
}

func TestEvaluationProgress(t *testing.T) {
	t.Run("enabled writes a status line", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewEvaluationProgressTo(&buf, true)
		p.OnProgress(query.Progress{Node: query.NodeBasic, Depth: 1, Matches: 2})
		p.OnProgress(query.Progress{Node: query.NodeFiltered, Depth: 0, Matches: 1})
		p.Done()

		assert.Equal(t, 2, p.Nodes())
		assert.Equal(t, query.NodeFiltered, p.Last().Node)
		assert.Contains(t, buf.String(), "2 nodes")
		assert.True(t, strings.HasSuffix(buf.String(), "\r\033[K"))
	})

	t.Run("disabled only counts", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewEvaluationProgressTo(&buf, false)
		var l query.Listener = p
		l.OnProgress(query.Progress{Node: query.NodeNegated})
		p.Done()

		assert.Equal(t, 1, p.Nodes())
		assert.Empty(t, buf.String())
	})
}

func TestOutputHelpers(t *testing.T) {
	assert.Equal(t, "✓ indexed 2 ontologies", Successf("indexed %d ontologies", 2))
	assert.Equal(t, "✗ bad", Errorf("%s", "bad"))
	assert.Equal(t, "(1 entity)", Count(1, "entity", "entities"))
	assert.Equal(t, "(0 entities)", Count(0, "entity", "entities"))
}
