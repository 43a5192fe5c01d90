package hub

import "github.com/ryan-rushton/toolhub/internal/catalog"

type rowRole int

const (
	roleCategory rowRole = iota
	roleTool
)

// row is one selectable line of the dashboard list. Key handling dispatches
// on the selected row's role instead of binding handlers per line.
type row struct {
	role     rowRole
	category catalog.Category
	tool     catalog.Tool
}

// buildRows flattens the filtered catalog: every category header, followed
// by its tools when expanded.
func buildRows(c catalog.Catalog, vs ViewState) []row {
	var rows []row
	for _, cat := range c.Categories {
		rows = append(rows, row{role: roleCategory, category: cat})
		if !vs.Expanded(cat.ID) {
			continue
		}
		for _, t := range cat.Tools {
			rows = append(rows, row{role: roleTool, category: cat, tool: t})
		}
	}
	return rows
}
