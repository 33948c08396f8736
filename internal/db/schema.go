// internal/db/schema.go
package db

import (
	"context"
	"database/sql"
	"fmt"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		domain     TEXT NOT NULL DEFAULT '',
		industry   TEXT NOT NULL DEFAULT '',
		phone      TEXT NOT NULL DEFAULT '',
		email      TEXT NOT NULL DEFAULT '',
		notes      TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id         BIGSERIAL PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name  TEXT NOT NULL DEFAULT '',
		email      TEXT NOT NULL DEFAULT '',
		phone      TEXT NOT NULL DEFAULT '',
		company_id BIGINT REFERENCES companies(id),
		title      TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'lead',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS deals (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		contact_id BIGINT REFERENCES contacts(id),
		value      DOUBLE PRECISION NOT NULL DEFAULT 0,
		stage      TEXT NOT NULL DEFAULT 'prospect',
		close_date TEXT NOT NULL DEFAULT '',
		notes      TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_contacts_company_id ON contacts(company_id)`,
	`CREATE INDEX IF NOT EXISTS idx_deals_contact_id ON deals(contact_id)`,
	`CREATE INDEX IF NOT EXISTS idx_deals_stage ON deals(stage)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		domain     TEXT NOT NULL DEFAULT '',
		industry   TEXT NOT NULL DEFAULT '',
		phone      TEXT NOT NULL DEFAULT '',
		email      TEXT NOT NULL DEFAULT '',
		notes      TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT NOT NULL,
		last_name  TEXT NOT NULL DEFAULT '',
		email      TEXT NOT NULL DEFAULT '',
		phone      TEXT NOT NULL DEFAULT '',
		company_id INTEGER REFERENCES companies(id),
		title      TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'lead',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS deals (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		contact_id INTEGER REFERENCES contacts(id),
		value      REAL NOT NULL DEFAULT 0,
		stage      TEXT NOT NULL DEFAULT 'prospect',
		close_date TEXT NOT NULL DEFAULT '',
		notes      TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_contacts_company_id ON contacts(company_id)`,
	`CREATE INDEX IF NOT EXISTS idx_deals_contact_id ON deals(contact_id)`,
	`CREATE INDEX IF NOT EXISTS idx_deals_stage ON deals(stage)`,
}

// Migrate creates the tables and indexes when they do not exist yet.
func Migrate(ctx context.Context, conn *sql.DB, dialect Dialect) error {
	statements := sqliteSchema
	if dialect == Postgres {
		statements = postgresSchema
	}

	for _, stmt := range statements {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
