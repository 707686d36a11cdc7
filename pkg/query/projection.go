// Package query provides SQL query building utilities with projection mapping.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps view property names to qualified column references (alias.column).
// It defines the table, alias, and column mappings for SQL query construction.
type ProjectionMap struct {
	schema     string
	table      string
	alias      string
	columns    map[string]string
	columnList []string
	names      []string
}

// NewProjectionMap creates a ProjectionMap for the given schema, table, and alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:     schema,
		table:      table,
		alias:      alias,
		columns:    make(map[string]string),
		columnList: make([]string, 0),
		names:      make([]string, 0),
	}
}

// Project adds a column mapping from database column to view property name.
func (p *ProjectionMap) Project(column, viewName string) *ProjectionMap {
	qualified := fmt.Sprintf("%s.%s", p.alias, column)
	p.columns[viewName] = qualified
	p.columnList = append(p.columnList, qualified)
	p.names = append(p.names, column)
	return p
}

// From returns the fully qualified table reference with alias (schema.table alias).
func (p *ProjectionMap) From() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Table returns the fully qualified table name without alias (schema.table).
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s", p.schema, p.table)
}

// Column returns the qualified column for a view property name, or the input if not mapped.
func (p *ProjectionMap) Column(viewName string) string {
	if col, ok := p.columns[viewName]; ok {
		return col
	}
	return viewName
}

// Columns returns all mapped columns as a comma-separated string.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columnList, ", ")
}

// Names returns the unqualified column names in projection order, comma-separated.
// Suitable for INSERT ... RETURNING clauses where no alias is in scope.
func (p *ProjectionMap) Names() string {
	return strings.Join(p.names, ", ")
}
