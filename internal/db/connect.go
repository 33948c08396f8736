// internal/db/connect.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"crm-service/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	_ "modernc.org/sqlite"             // registers the pure Go "sqlite" driver
)

// Connect opens the configured store, verifies it answers and applies the
// schema.
func Connect(ctx context.Context, cfg config.DBConfig) (*sql.DB, Dialect, error) {
	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, "", err
	}

	var conn *sql.DB
	switch dialect {
	case Postgres:
		conn, err = sql.Open(dialect.DriverName(), cfg.URL)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open postgres: %w", err)
		}
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
		conn.SetConnMaxIdleTime(5 * time.Minute)
	case SQLite:
		conn, err = OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, "", err
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, "", fmt.Errorf("failed to ping %s: %w", dialect, err)
	}

	if err := Migrate(ctx, conn, dialect); err != nil {
		conn.Close()
		return nil, "", err
	}

	return conn, dialect, nil
}

// OpenSQLite opens (creating if needed) a SQLite file with foreign keys
// enforced on every connection. SQLite allows one writer, so the pool is
// capped at a single connection.
func OpenSQLite(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Set("_time_format", "sqlite")

	conn, err := sql.Open(SQLite.DriverName(), "file:"+path+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	conn.SetMaxOpenConns(1)
	return conn, nil
}
