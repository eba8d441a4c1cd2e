// Package querybuilder renders the small read-only SELECTs the warehouse
// loader issues, with postgres $n placeholders.
package querybuilder

import (
	"errors"
	"strconv"
	"strings"
)

// Condition renders one WHERE predicate. bind appends a value to the argument
// list and returns its placeholder.
type Condition func(bind func(value any) string) string

// Eq matches column = value.
func Eq(column string, value any) Condition {
	return func(bind func(any) string) string {
		return column + " = " + bind(value)
	}
}

// IsNull matches rows where column is NULL.
func IsNull(column string) Condition {
	return func(func(any) string) string {
		return column + " IS NULL"
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
	b.table = strings.TrimSpace(table)
	return b
}

// Where adds predicates joined with AND, in call order.
func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(columns ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, columns...)
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, errors.New("querybuilder: no columns selected")
	case b.table == "":
		return "", nil, errors.New("querybuilder: no table given")
	}

	var args []any
	bind := func(value any) string {
		args = append(args, value)
		return "$" + strconv.Itoa(len(args))
	}

	parts := []string{"SELECT", strings.Join(b.columns, ", "), "FROM", b.table}
	if len(b.where) > 0 {
		preds := make([]string, 0, len(b.where))
		for _, cond := range b.where {
			preds = append(preds, cond(bind))
		}
		parts = append(parts, "WHERE", strings.Join(preds, " AND "))
	}
	if len(b.orderBy) > 0 {
		parts = append(parts, "ORDER BY", strings.Join(b.orderBy, ", "))
	}

	return strings.Join(parts, " "), args, nil
}
