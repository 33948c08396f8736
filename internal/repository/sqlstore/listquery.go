// internal/repository/sqlstore/listquery.go
package sqlstore

import (
	"fmt"
	"strings"

	"crm-service/internal/db"
	"crm-service/internal/domain/listing"

	"github.com/lib/pq"
)

// ListSource describes one entity's list query.
type ListSource struct {
	// Table is the aliased base table, e.g. "contacts ct".
	Table string
	Alias string
	// Select is the row projection; Joins is appended to FROM for rows only.
	Select string
	Joins  string

	Sortable   []string
	Searchable []string

	// SumColumn, when set, adds a filtered SUM over that column.
	SumColumn string
}

// Filter is an exact-match predicate on a base table column.
type Filter struct {
	Column string
	Value  any
}

type Stmt struct {
	SQL  string
	Args []any
}

// ListPlan is the set of statements behind one list page. Count and Sum
// share the row query's predicates but not its paging.
type ListPlan struct {
	Rows  Stmt
	Count Stmt
	Sum   *Stmt
}

// SortColumn returns requested when it is in allowed, otherwise id.
func SortColumn(allowed []string, requested string) string {
	for _, col := range allowed {
		if col == requested {
			return col
		}
	}
	return listing.DefaultSort
}

// BuildList renders the list statements for src. Search terms and filter
// values are always bound, never spliced into SQL; the sort column is
// checked against src.Sortable and quoted.
func BuildList(d db.Dialect, src ListSource, p listing.Params, filters ...Filter) ListPlan {
	var (
		conditions []string
		args       []any
	)
	bind := func(v any) string {
		args = append(args, v)
		return d.Placeholder(len(args))
	}

	if p.Search != "" && len(src.Searchable) > 0 {
		pattern := "%" + p.Search + "%"
		parts := make([]string, len(src.Searchable))
		for i, col := range src.Searchable {
			parts[i] = fmt.Sprintf("%s.%s %s %s", src.Alias, col, d.LikeOperator(), bind(pattern))
		}
		conditions = append(conditions, "("+strings.Join(parts, " OR ")+")")
	}

	for _, f := range filters {
		conditions = append(conditions, fmt.Sprintf("%s.%s = %s", src.Alias, f.Column, bind(f.Value)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}
	predicateArgs := append([]any(nil), args...)

	direction := "DESC"
	if p.Order == listing.Asc {
		direction = "ASC"
	}
	sortCol := SortColumn(src.Sortable, p.Sort)
	orderBy := fmt.Sprintf(" ORDER BY %s.%s %s", src.Alias, pq.QuoteIdentifier(sortCol), direction)
	if sortCol != listing.DefaultSort {
		// Stable pages when the sort column has duplicates.
		orderBy += fmt.Sprintf(", %s.id %s", src.Alias, direction)
	}

	limitPh := bind(p.Limit)
	offsetPh := bind(p.Offset())

	plan := ListPlan{
		Rows: Stmt{
			SQL:  "SELECT " + src.Select + " FROM " + src.Table + src.Joins + where + orderBy + " LIMIT " + limitPh + " OFFSET " + offsetPh,
			Args: args,
		},
		Count: Stmt{
			SQL:  "SELECT COUNT(*) FROM " + src.Table + where,
			Args: predicateArgs,
		},
	}

	if src.SumColumn != "" {
		plan.Sum = &Stmt{
			SQL:  fmt.Sprintf("SELECT COALESCE(SUM(%s.%s), 0) FROM %s%s", src.Alias, src.SumColumn, src.Table, where),
			Args: predicateArgs,
		}
	}

	return plan
}
