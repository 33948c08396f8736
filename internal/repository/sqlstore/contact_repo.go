// internal/repository/sqlstore/contact_repo.go
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"crm-service/internal/domain/contact"
	"crm-service/internal/domain/listing"
	"crm-service/internal/domain/shared"
	xerrors "crm-service/internal/pkg/errors"
)

const (
	contactColumns = `ct.id, ct.first_name, ct.last_name, ct.email, ct.phone, ct.company_id,
	ct.title, ct.status, co.name, co.domain, ct.created_at, ct.updated_at`
	contactJoins = " LEFT JOIN companies co ON ct.company_id = co.id"
)

var contactSource = ListSource{
	Table:      "contacts ct",
	Alias:      "ct",
	Select:     contactColumns,
	Joins:      contactJoins,
	Sortable:   contact.SortColumns,
	Searchable: contact.SearchColumns,
}

type ContactRepository struct {
	db *DB
}

func NewContactRepository(db *DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func scanContact(row rowScanner) (*contact.Contact, error) {
	var c contact.Contact
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.CompanyID,
		&c.Title, &c.Status, &c.CompanyName, &c.CompanyDomain,
		timestamp{&c.CreatedAt}, timestamp{&c.UpdatedAt},
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns one page of contacts, joined with their company, and the
// filtered total.
func (r *ContactRepository) List(ctx context.Context, params listing.Params, filters ...Filter) ([]contact.Contact, int64, error) {
	plan := BuildList(r.db.Dialect(), contactSource, params, filters...)

	var total int64
	if err := r.db.Conn().QueryRowContext(ctx, plan.Count.SQL, plan.Count.Args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	rows, err := r.db.Conn().QueryContext(ctx, plan.Rows.SQL, plan.Rows.Args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	contacts := []contact.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list contacts: %w", err)
	}

	return contacts, total, nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id int64) (*contact.Contact, error) {
	return r.findByID(ctx, r.db.Conn(), id)
}

func (r *ContactRepository) findByID(ctx context.Context, q querier, id int64) (*contact.Contact, error) {
	query := "SELECT " + contactColumns + " FROM contacts ct" + contactJoins + " WHERE ct.id = " + r.db.Dialect().Placeholder(1)

	c, err := scanContact(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find contact: %w", err)
	}
	return c, nil
}

// Create inserts a contact. A company_id that does not exist is refused
// with xerrors.ErrConflict.
func (r *ContactRepository) Create(ctx context.Context, req contact.CreateContactRequest, status contact.Status) (*contact.Contact, error) {
	query := insertSQL(r.db.Dialect(), "contacts", []string{
		"first_name", "last_name", "email", "phone", "company_id", "title", "status", "created_at", "updated_at",
	})
	ts := now()

	var created *contact.Contact
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx, query,
			req.FirstName, req.LastName, req.Email, req.Phone, req.CompanyID.Value(),
			req.Title, string(status), ts, ts,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to create contact: %w", classify(err))
		}

		created, err = r.findByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *ContactRepository) Update(ctx context.Context, id int64, fields []shared.Field) (*contact.Contact, error) {
	query, args := updateSQL(r.db.Dialect(), "contacts", fields, now(), id)

	var updated *contact.Contact
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to update contact: %w", classify(err))
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

// Delete removes a contact. Contacts still referenced by deals are refused
// with xerrors.ErrConflict.
func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	query := "DELETE FROM contacts WHERE id = " + r.db.Dialect().Placeholder(1)

	result, err := r.db.Conn().ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", classify(err))
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// Lookup returns every contact's id, name and company ordered by first name.
func (r *ContactRepository) Lookup(ctx context.Context) ([]contact.Lookup, error) {
	query := "SELECT ct.id, ct.first_name, ct.last_name, co.name, co.domain FROM contacts ct" +
		contactJoins + " ORDER BY ct.first_name ASC, ct.id ASC"

	rows, err := r.db.Conn().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	out := []contact.Lookup{}
	for rows.Next() {
		var l contact.Lookup
		if err := rows.Scan(&l.ID, &l.FirstName, &l.LastName, &l.CompanyName, &l.CompanyDomain); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
