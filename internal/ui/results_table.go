package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Alignment represents column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// ColumnDef defines a column in a ResultsTable.
type ColumnDef struct {
	Name       string
	WidthRatio float64 // proportion of the flexible width, 0 for fixed columns
	MinWidth   int
	MaxWidth   int // 0 = no limit
	Align      Alignment
	Style      lipgloss.Style
}

// ResultRow is a single row in the results table.
type ResultRow struct {
	Num   int
	Cells []string
}

// ResultsTable renders query results in a minimal borderless table.
type ResultsTable struct {
	display *DisplayContext
	columns []ColumnDef
	rows    []ResultRow
}

var (
	// ColNum is the row number column.
	ColNum = ColumnDef{Name: "num", MinWidth: 4, MaxWidth: 6, Align: AlignRight, Style: Muted}

	// ColName holds the entity display name.
	ColName = ColumnDef{Name: "name", WidthRatio: 0.35, MinWidth: 16, MaxWidth: 50}

	// ColIRI holds the entity IRI.
	ColIRI = ColumnDef{Name: "iri", WidthRatio: 0.65, MinWidth: 24, MaxWidth: 120, Style: Muted}

	// EntityLayout is [num, name, iri].
	EntityLayout = []ColumnDef{ColNum, ColName, ColIRI}
)

// NewResultsTable creates a ResultsTable with the given column layout.
func NewResultsTable(display *DisplayContext, columns []ColumnDef) *ResultsTable {
	return &ResultsTable{display: display, columns: columns}
}

// AddRow adds a row to the table.
func (t *ResultsTable) AddRow(row ResultRow) {
	t.rows = append(t.rows, row)
}

// ColumnWidth returns the computed width of the named column, or 0.
func (t *ResultsTable) ColumnWidth(name string) int {
	widths := t.calculateWidths()
	for i, col := range t.columns {
		if col.Name == name {
			return widths[i]
		}
	}
	return 0
}

func (t *ResultsTable) calculateWidths() []int {
	const (
		columnPadding = 2
		leftMargin    = 2
	)
	widths := make([]int, len(t.columns))

	var totalRatio float64
	var fixedWidth int
	for i, col := range t.columns {
		if col.WidthRatio == 0 {
			widths[i] = col.MinWidth
			fixedWidth += widths[i]
		} else {
			totalRatio += col.WidthRatio
		}
	}

	available := t.display.TermWidth - fixedWidth - (len(t.columns)-1)*columnPadding - leftMargin
	if available < 0 {
		available = 0
	}

	for i, col := range t.columns {
		if col.WidthRatio == 0 {
			continue
		}
		width := int(float64(available) * col.WidthRatio / totalRatio)
		if width < col.MinWidth {
			width = col.MinWidth
		}
		if col.MaxWidth > 0 && width > col.MaxWidth {
			width = col.MaxWidth
		}
		widths[i] = width
	}
	return widths
}

// Render generates the table output. Cells longer than their column are
// truncated with an ellipsis.
func (t *ResultsTable) Render() string {
	if len(t.rows) == 0 {
		return ""
	}
	widths := t.calculateWidths()

	tableRows := make([][]string, len(t.rows))
	for i, row := range t.rows {
		cells := make([]string, len(t.columns))
		cells[0] = FormatRowNum(row.Num, len(t.rows))
		for j := 1; j < len(t.columns) && j-1 < len(row.Cells); j++ {
			limit := widths[j]
			if j < len(t.columns)-1 {
				limit -= 2
			}
			cells[j] = TruncateWithEllipsis(row.Cells[j-1], limit)
		}
		tableRows[i] = cells
	}

	tbl := table.New().
		Border(lipgloss.Border{Middle: "─"}).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderRow(false).
		BorderColumn(false).
		BorderHeader(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col >= len(t.columns) {
				return lipgloss.NewStyle()
			}
			def := t.columns[col]
			style := def.Style.Width(widths[col])
			if def.Align == AlignRight {
				style = style.Align(lipgloss.Right)
			} else {
				style = style.Align(lipgloss.Left)
			}
			if col < len(t.columns)-1 {
				style = style.PaddingRight(2)
			}
			return style
		}).
		Rows(tableRows...)

	return tbl.Render()
}

// TruncateWithEllipsis shortens s to at most maxLen runes.
func TruncateWithEllipsis(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 || len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// FormatRowNum formats a row number padded to the width of maxNum.
func FormatRowNum(num, maxNum int) string {
	width := len(fmt.Sprintf("%d", maxNum))
	if width < 2 {
		width = 2
	}
	return fmt.Sprintf("%*d", width, num)
}
