package components

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/bikeshare-explorer/internal/ui/styles"
)

const (
	minColumnWidth = 6
	maxColumnWidth = 24
)

// NewRawTable creates a table for raw dataset rows.
func NewRawTable() table.Model {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(8),
	)

	s := table.DefaultStyles()
	s.Header = styles.TableHeaderStyle.Padding(0, 1)
	s.Selected = styles.TableSelectedStyle
	t.SetStyles(s)

	return t
}

// RawColumns sizes one column per header to fit the rows within width.
func RawColumns(header []string, rows [][]string, width int) []table.Column {
	if len(header) == 0 {
		return nil
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = max(ansi.StringWidth(h), minColumnWidth)
	}
	for _, row := range rows {
		for i := range header {
			if i < len(row) {
				widths[i] = max(widths[i], ansi.StringWidth(row[i]))
			}
		}
	}

	// Shrink to the available width, two cells of padding per column
	budget := max(width/len(header)-2, minColumnWidth)
	columns := make([]table.Column, len(header))
	for i, h := range header {
		w := min(widths[i], maxColumnWidth, budget)
		columns[i] = table.Column{Title: TruncateCell(h, w), Width: w}
	}
	return columns
}

// RawRows truncates every cell to its column width.
func RawRows(columns []table.Column, rows [][]string) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i, c := range columns {
			if i < len(row) {
				r[i] = TruncateCell(row[i], c.Width)
			}
		}
		out = append(out, r)
	}
	return out
}

// TruncateCell shortens s to width cells, marking the cut with an ellipsis.
func TruncateCell(s string, width int) string {
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
