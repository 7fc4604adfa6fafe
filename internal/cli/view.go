package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/protonav/pkg/nav"
)

// crumbSeparator joins breadcrumbs.
const crumbSeparator = " › "

// renderBreadcrumbs renders the trail with jump indexes, highlighting the
// current entry.
func renderBreadcrumbs(crumbs []nav.Breadcrumb) string {
	parts := make([]string, len(crumbs))
	for i, b := range crumbs {
		label := fmt.Sprintf("%d:%s", b.Index, b.Key)
		if b.Current {
			parts[i] = styleCrumbCurrent.Render(label)
		} else {
			parts[i] = styleCrumb.Render(label)
		}
	}
	return strings.Join(parts, StyleDim.Render(crumbSeparator))
}

// rowCells returns the table cells of one row. Linked rows show their target.
func rowCells(r nav.Row) []string {
	typ := r.Type
	if r.Array {
		typ = "[]" + typ
	}
	link := ""
	if r.HasLink() {
		link = iconLink + " " + r.Link
	}
	req := ""
	if r.Required {
		req = "*"
	}
	return []string{r.Name, req, typ, link, r.Description}
}

// renderRowsTable renders rows as a table. cursor is the highlighted row
// index, or -1 for none.
func renderRowsTable(rows []nav.Row, cursor int) string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = rowCells(r)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Property", "", "Type", "Link", "Description").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if row < 0 || row >= len(rows) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			switch {
			case col == 1:
				base = styleRequired
			case col == 3:
				base = base.Foreground(colorBlue)
			case col == 4:
				base = base.Foreground(colorDim)
			}
			if row == cursor {
				return base.Bold(true).Foreground(colorCyan)
			}
			if !rows[row].HasLink() && col == 0 {
				return base.Foreground(colorWhite)
			}
			return base
		})
	return t.Render()
}

// renderView renders the full text view: breadcrumbs, the definition
// description and the rows table.
func renderView(v nav.View, cursor int) string {
	var b strings.Builder
	if !v.Loaded {
		b.WriteString(StyleDim.Render("No document loaded"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(renderBreadcrumbs(v.Breadcrumbs))
	b.WriteString("\n\n")
	b.WriteString(StyleTitle.Render(v.CurrentKey))
	b.WriteString("\n")

	if !v.Found() {
		b.WriteString(StyleWarning.Render(fmt.Sprintf("definition %q not found", v.CurrentKey)))
		b.WriteString("\n")
		return b.String()
	}
	if v.Definition.Description != "" {
		b.WriteString(StyleDim.Render(v.Definition.Description))
		b.WriteString("\n")
	}
	if len(v.Rows) == 0 {
		b.WriteString(StyleDim.Render("(no properties)"))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(renderRowsTable(v.Rows, cursor))
	b.WriteString("\n")
	return b.String()
}
