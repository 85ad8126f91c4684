// Package query provides SQL query construction utilities with view-to-column
// projection mapping and automatic parameter numbering.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps view-level field names to aliased table columns.
type ProjectionMap struct {
	schema string
	table  string
	alias  string
	order  []string
	fields map[string]string
}

// NewProjectionMap creates a ProjectionMap for the given schema, table, and alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		fields: make(map[string]string),
	}
}

// Project registers a column-to-view-name mapping and returns the map for chaining.
func (p *ProjectionMap) Project(column, viewName string) *ProjectionMap {
	p.fields[viewName] = column
	p.order = append(p.order, viewName)
	return p
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the schema-qualified table reference with its alias.
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Column resolves a view name to its aliased column reference.
// Unknown view names are returned unchanged.
func (p *ProjectionMap) Column(viewName string) string {
	col, ok := p.fields[viewName]
	if !ok {
		return viewName
	}
	return fmt.Sprintf("%s.%s", p.alias, col)
}

// Columns returns the comma-separated aliased column list in projection order.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.ColumnList(), ", ")
}

// ColumnList returns the aliased column references in projection order.
func (p *ProjectionMap) ColumnList() []string {
	cols := make([]string, len(p.order))
	for i, viewName := range p.order {
		cols[i] = p.Column(viewName)
	}
	return cols
}
