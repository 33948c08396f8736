// internal/repository/sqlstore/company_repo.go
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"crm-service/internal/domain/company"
	"crm-service/internal/domain/listing"
	"crm-service/internal/domain/shared"
	xerrors "crm-service/internal/pkg/errors"
)

const companyColumns = `c.id, c.name, c.domain, c.industry, c.phone, c.email, c.notes,
	(SELECT COUNT(*) FROM contacts cc WHERE cc.company_id = c.id) AS contact_count,
	c.created_at, c.updated_at`

var companySource = ListSource{
	Table:      "companies c",
	Alias:      "c",
	Select:     companyColumns,
	Sortable:   company.SortColumns,
	Searchable: company.SearchColumns,
}

type CompanyRepository struct {
	db *DB
}

func NewCompanyRepository(db *DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func scanCompany(row rowScanner) (*company.Company, error) {
	var c company.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.Domain, &c.Industry, &c.Phone, &c.Email, &c.Notes,
		&c.ContactCount, timestamp{&c.CreatedAt}, timestamp{&c.UpdatedAt},
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns one page of companies and the filtered total.
func (r *CompanyRepository) List(ctx context.Context, params listing.Params, filters ...Filter) ([]company.Company, int64, error) {
	plan := BuildList(r.db.Dialect(), companySource, params, filters...)

	var total int64
	if err := r.db.Conn().QueryRowContext(ctx, plan.Count.SQL, plan.Count.Args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count companies: %w", err)
	}

	rows, err := r.db.Conn().QueryContext(ctx, plan.Rows.SQL, plan.Rows.Args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	companies := []company.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list companies: %w", err)
	}

	return companies, total, nil
}

// FindByID retrieves a company with its contact count.
func (r *CompanyRepository) FindByID(ctx context.Context, id int64) (*company.Company, error) {
	return r.findByID(ctx, r.db.Conn(), id)
}

func (r *CompanyRepository) findByID(ctx context.Context, q querier, id int64) (*company.Company, error) {
	query := "SELECT " + companyColumns + " FROM companies c WHERE c.id = " + r.db.Dialect().Placeholder(1)

	c, err := scanCompany(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	return c, nil
}

// Create inserts a company and returns it as stored.
func (r *CompanyRepository) Create(ctx context.Context, req company.CreateCompanyRequest) (*company.Company, error) {
	query := insertSQL(r.db.Dialect(), "companies", []string{
		"name", "domain", "industry", "phone", "email", "notes", "created_at", "updated_at",
	})
	ts := now()

	var created *company.Company
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx, query,
			req.Name, req.Domain, req.Industry, req.Phone, req.Email, req.Notes, ts, ts,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to create company: %w", classify(err))
		}

		created, err = r.findByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies the given fields and returns the row as stored.
func (r *CompanyRepository) Update(ctx context.Context, id int64, fields []shared.Field) (*company.Company, error) {
	query, args := updateSQL(r.db.Dialect(), "companies", fields, now(), id)

	var updated *company.Company
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to update company: %w", classify(err))
		}
		if n, err := result.RowsAffected(); err == nil && n == 0 {
			return xerrors.ErrNotFound
		}

		updated, err = r.findByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a company. A company still referenced by contacts is
// refused with xerrors.ErrConflict.
func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	query := "DELETE FROM companies WHERE id = " + r.db.Dialect().Placeholder(1)

	result, err := r.db.Conn().ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", classify(err))
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// Lookup returns every company's id and display fields ordered by name.
func (r *CompanyRepository) Lookup(ctx context.Context) ([]company.Lookup, error) {
	rows, err := r.db.Conn().QueryContext(ctx, "SELECT id, name, domain FROM companies ORDER BY name ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	out := []company.Lookup{}
	for rows.Next() {
		var l company.Lookup
		if err := rows.Scan(&l.ID, &l.Name, &l.Domain); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
