package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nrfta/datatable-go"
)

var (
	ColorGray   = lipgloss.Color("245")
	ColorAccent = lipgloss.Color("39")

	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	selectedStyle = headerStyle.Foreground(ColorAccent)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	borderStyle   = lipgloss.NewStyle().Foreground(ColorGray)
	footerStyle   = lipgloss.NewStyle().Foreground(ColorGray)
	loadingStyle  = lipgloss.NewStyle().Foreground(ColorGray).Italic(true)
)

// TableView is everything needed to draw one table page.
type TableView[T any] struct {
	Columns []datatable.Column[T]
	State   *datatable.State[T]

	// Selected is the identifier of the highlighted header, if any.
	Selected string

	// Loading appends the loading line.
	Loading bool
}

// RenderTable draws the page as a bordered table followed by a footer line. Partially
// filled pages are padded with blank rows so the table keeps its height.
func RenderTable[T any](v TableView[T]) string {
	p := datatable.NewPagination(v.State)

	headers := make([]string, len(v.Columns))
	for i, col := range v.Columns {
		headers[i] = headerLabel(col, v.State)
	}

	rows := make([][]string, 0, len(v.State.Data)+p.EmptyRows)
	for _, r := range v.State.Data {
		cells := make([]string, len(v.Columns))
		for i, col := range v.Columns {
			if col.Render != nil {
				cells[i] = col.Render(r)
			}
		}
		rows = append(rows, cells)
	}
	for i := 0; i < p.EmptyRows; i++ {
		rows = append(rows, make([]string, len(v.Columns)))
	}

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				if col < len(v.Columns) && v.Selected != "" && v.Columns[col].ID() == v.Selected {
					return selectedStyle
				}
				return headerStyle
			}
			return cellStyle
		})

	out := []string{t.Render(), footerStyle.Render(Footer(p))}
	if v.Loading {
		out = append(out, loadingStyle.Render("Loading..."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

// Footer summarizes the page as "11-20 of 45 · page 2/5 · 10 per page".
func Footer(p datatable.Pagination) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d-%d of %d", p.From, p.To, p.Total)
	fmt.Fprintf(&b, " · page %d/%d", datatable.DisplayPage(p.Page), max(p.PageCount, 1))
	fmt.Fprintf(&b, " · %d per page", p.PerPage)
	return b.String()
}

func headerLabel[T any](col datatable.Column[T], s *datatable.State[T]) string {
	if col.ID() != s.OrderBy || !col.Sortable() {
		return col.Label
	}
	if s.SortDirection == datatable.Desc {
		return col.Label + " ▼"
	}
	return col.Label + " ▲"
}
