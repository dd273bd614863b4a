// Package querybuilder assembles parameterized SELECT statements for the
// postgres repositories. Placeholders are numbered in append order, so a
// condition may only reference arguments it pushed itself.
package querybuilder

import (
	"fmt"
	"strings"
)

// Condition writes one WHERE predicate and pushes its arguments.
type Condition func(buf *strings.Builder, args *[]any)

func Eq(column string, value any) Condition {
	return func(buf *strings.Builder, args *[]any) {
		*args = append(*args, value)
		fmt.Fprintf(buf, "%s = $%d", column, len(*args))
	}
}

// In yields the always-false predicate for an empty value set so callers
// never have to special-case it.
func In(column string, values []any) Condition {
	return func(buf *strings.Builder, args *[]any) {
		if len(values) == 0 {
			buf.WriteString("1=0")
			return
		}
		buf.WriteString(column)
		buf.WriteString(" IN (")
		for i, value := range values {
			if i > 0 {
				buf.WriteString(", ")
			}
			*args = append(*args, value)
			fmt.Fprintf(buf, "$%d", len(*args))
		}
		buf.WriteByte(')')
	}
}

func IsNull(column string) Condition {
	return func(buf *strings.Builder, _ *[]any) {
		buf.WriteString(column)
		buf.WriteString(" IS NULL")
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

// Where appends predicates; all predicates are joined with AND.
func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(exprs ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, exprs...)
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var buf strings.Builder
	buf.WriteString("SELECT ")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(" FROM ")
	buf.WriteString(b.table)

	args := make([]any, 0, len(b.where))
	for i, condition := range b.where {
		if i == 0 {
			buf.WriteString(" WHERE ")
		} else {
			buf.WriteString(" AND ")
		}
		condition(&buf, &args)
	}

	if len(b.orderBy) > 0 {
		buf.WriteString(" ORDER BY ")
		buf.WriteString(strings.Join(b.orderBy, ", "))
	}

	return buf.String(), args, nil
}
