// internal/repository/sqlstore/db.go
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"crm-service/internal/db"
	"crm-service/internal/domain/shared"
)

// DB is the database/sql handle plus the dialect its SQL is rendered for.
type DB struct {
	conn    *sql.DB
	dialect db.Dialect
}

func NewDB(conn *sql.DB, dialect db.Dialect) *DB {
	return &DB{conn: conn, dialect: dialect}
}

func (d *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return d.conn.BeginTx(ctx, nil)
}

func (d *DB) Conn() *sql.DB {
	return d.conn
}

func (d *DB) Dialect() db.Dialect {
	return d.dialect
}

// WithTx runs fn inside a transaction, committing when it returns nil.
func (d *DB) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// insertSQL renders INSERT ... RETURNING id for the given columns.
func insertSQL(d db.Dialect, table string, columns []string) string {
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = d.Placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
}

// updateSQL renders a partial UPDATE that also stamps updated_at. The id is
// bound last.
func updateSQL(d db.Dialect, table string, fields []shared.Field, now time.Time, id int64) (string, []any) {
	sets := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+2)
	for _, f := range fields {
		args = append(args, f.Value)
		sets = append(sets, fmt.Sprintf("%s = %s", f.Column, d.Placeholder(len(args))))
	}
	args = append(args, now)
	sets = append(sets, "updated_at = "+d.Placeholder(len(args)))
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = %s",
		table, strings.Join(sets, ", "), d.Placeholder(len(args)))
	return query, args
}

// timestamp scans created_at/updated_at whichever way the driver hands them
// back: pgx returns time.Time, SQLite may return text or unix seconds.
type timestamp struct {
	t *time.Time
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999 -0700 MST",
}

func (ts timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*ts.t = time.Time{}
	case time.Time:
		*ts.t = v.UTC()
	case int64:
		*ts.t = time.Unix(v, 0).UTC()
	case []byte:
		return ts.parse(string(v))
	case string:
		return ts.parse(v)
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
	return nil
}

func (ts timestamp) parse(raw string) error {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			*ts.t = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("cannot parse timestamp %q", raw)
}

// now is the single clock used for created_at/updated_at.
func now() time.Time {
	return time.Now().UTC()
}
