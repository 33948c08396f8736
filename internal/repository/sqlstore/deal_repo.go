// internal/repository/sqlstore/deal_repo.go
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"crm-service/internal/domain/deal"
	"crm-service/internal/domain/listing"
	"crm-service/internal/domain/shared"
	xerrors "crm-service/internal/pkg/errors"
)

const (
	dealColumns = `d.id, d.name, d.contact_id, d.value, d.stage, d.close_date, d.notes,
	ct.first_name, ct.last_name, co.name, co.domain, d.created_at, d.updated_at`
	dealJoins = " LEFT JOIN contacts ct ON d.contact_id = ct.id LEFT JOIN companies co ON ct.company_id = co.id"
)

var dealSource = ListSource{
	Table:      "deals d",
	Alias:      "d",
	Select:     dealColumns,
	Joins:      dealJoins,
	Sortable:   deal.SortColumns,
	Searchable: deal.SearchColumns,
	SumColumn:  "value",
}

type DealRepository struct {
	db *DB
}

func NewDealRepository(db *DB) *DealRepository {
	return &DealRepository{db: db}
}

func scanDeal(row rowScanner) (*deal.Deal, error) {
	var d deal.Deal
	err := row.Scan(
		&d.ID, &d.Name, &d.ContactID, &d.Value, &d.Stage, &d.CloseDate, &d.Notes,
		&d.ContactFirstName, &d.ContactLastName, &d.CompanyName, &d.CompanyDomain,
		timestamp{&d.CreatedAt}, timestamp{&d.UpdatedAt},
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DealRepository) scanAll(rows *sql.Rows) ([]deal.Deal, error) {
	defer rows.Close()

	deals := []deal.Deal{}
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deal: %w", err)
		}
		deals = append(deals, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	return deals, nil
}

// List returns one page of deals, the filtered total and the filtered
// value sum (across all pages, lost deals included).
func (r *DealRepository) List(ctx context.Context, params listing.Params, filters ...Filter) ([]deal.Deal, int64, float64, error) {
	plan := BuildList(r.db.Dialect(), dealSource, params, filters...)
	conn := r.db.Conn()

	var total int64
	if err := conn.QueryRowContext(ctx, plan.Count.SQL, plan.Count.Args...).Scan(&total); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to count deals: %w", err)
	}

	var sum float64
	if err := conn.QueryRowContext(ctx, plan.Sum.SQL, plan.Sum.Args...).Scan(&sum); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to sum deals: %w", err)
	}

	rows, err := conn.QueryContext(ctx, plan.Rows.SQL, plan.Rows.Args...)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to list deals: %w", err)
	}
	deals, err := r.scanAll(rows)
	if err != nil {
		return nil, 0, 0, err
	}

	return deals, total, sum, nil
}

// Board returns every deal, oldest first.
func (r *DealRepository) Board(ctx context.Context) ([]deal.Deal, error) {
	query := "SELECT " + dealColumns + " FROM deals d" + dealJoins + " ORDER BY d.created_at ASC, d.id ASC"

	rows, err := r.db.Conn().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load pipeline: %w", err)
	}
	return r.scanAll(rows)
}

func (r *DealRepository) FindByID(ctx context.Context, id int64) (*deal.Deal, error) {
	return r.findByID(ctx, r.db.Conn(), id)
}

func (r *DealRepository) findByID(ctx context.Context, q querier, id int64) (*deal.Deal, error) {
	query := "SELECT " + dealColumns + " FROM deals d" + dealJoins + " WHERE d.id = " + r.db.Dialect().Placeholder(1)

	d, err := scanDeal(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find deal: %w", err)
	}
	return d, nil
}

func (r *DealRepository) Create(ctx context.Context, req deal.CreateDealRequest, stage deal.Stage) (*deal.Deal, error) {
	query := insertSQL(r.db.Dialect(), "deals", []string{
		"name", "contact_id", "value", "stage", "close_date", "notes", "created_at", "updated_at",
	})
	ts := now()

	var created *deal.Deal
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx, query,
			req.Name, req.ContactID.Value(), float64(req.Value), string(stage),
			req.CloseDate, req.Notes, ts, ts,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to create deal: %w", classify(err))
		}

		created, err = r.findByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *DealRepository) Update(ctx context.Context, id int64, fields []shared.Field) (*deal.Deal, error) {
	query, args := updateSQL(r.db.Dialect(), "deals", fields, now(), id)

	var updated *deal.Deal
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to update deal: %w", classify(err))
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

func (r *DealRepository) Delete(ctx context.Context, id int64) error {
	query := "DELETE FROM deals WHERE id = " + r.db.Dialect().Placeholder(1)

	result, err := r.db.Conn().ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete deal: %w", classify(err))
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
