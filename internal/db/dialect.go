// internal/db/dialect.go
package db

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect captures the few places where PostgreSQL and SQLite disagree.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ParseDialect maps a DB_DRIVER value onto a Dialect.
func ParseDialect(raw string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", raw)
	}
}

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	if d == Postgres {
		return "pgx"
	}
	return "sqlite"
}

// Placeholder returns the n-th (1-based) bind parameter.
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// LikeOperator is the case-insensitive pattern match operator. SQLite's LIKE
// already ignores ASCII case.
func (d Dialect) LikeOperator() string {
	if d == Postgres {
		return "ILIKE"
	}
	return "LIKE"
}
