package query

import (
	"fmt"
	"strings"
)

// SortField represents a single column in an ORDER BY clause.
// Field is the logical field name (mapped via ProjectionMap).
// Descending controls sort direction (false = ASC, true = DESC).
type SortField struct {
	Field      string
	Descending bool
}

// Builder constructs SELECT queries against a projection with a fixed ordering.
type Builder struct {
	projection *ProjectionMap
	sortFields []SortField
}

// NewBuilder creates a Builder for the given projection ordered by sort.
// Multiple sort fields are applied in order, so later fields break ties in earlier ones.
func NewBuilder(projection *ProjectionMap, sort ...SortField) *Builder {
	return &Builder{
		projection: projection,
		sortFields: sort,
	}
}

// BuildCount returns a COUNT(*) query over the projection's table.
func (b *Builder) BuildCount() string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", b.projection.From())
}

// BuildPage returns an ordered SELECT query with LIMIT and OFFSET bound as parameters.
func (b *Builder) BuildPage(limit, offset int) (string, []any) {
	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s LIMIT $1 OFFSET $2",
		b.projection.Columns(),
		b.projection.From(),
		b.buildOrderBy(),
	)
	return sql, []any{limit, offset}
}

// BuildInsert returns an INSERT statement for the given columns that returns
// every projected column of the inserted row.
func (b *Builder) BuildInsert(columns ...string) string {
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		b.projection.Table(),
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		b.projection.Names(),
	)
}

func (b *Builder) buildOrderBy() string {
	if len(b.sortFields) == 0 {
		return ""
	}

	parts := make([]string, len(b.sortFields))
	for i, f := range b.sortFields {
		col := b.projection.Column(f.Field)
		dir := "ASC"
		if f.Descending {
			dir = "DESC"
		}
		parts[i] = fmt.Sprintf("%s %s", col, dir)
	}

	return " ORDER BY " + strings.Join(parts, ", ")
}
