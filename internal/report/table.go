package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1E293B"))
	noteStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#64748B"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#4F46E5")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Table renders the report for a terminal.
func (r *Report) Table() string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(r.Columns...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, row := range r.Rows {
		t.Row(row.Cells...)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(r.Title))
	b.WriteString("\n")
	b.WriteString(noteStyle.Render(r.GeneratedLine()))
	b.WriteString("\n")
	b.WriteString(t.String())
	b.WriteString("\n")
	return b.String()
}
