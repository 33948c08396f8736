// internal/repository/sqlstore/stats_repo.go
package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"crm-service/internal/domain/deal"
	"crm-service/internal/domain/stats"
)

type StatsRepository struct {
	db *DB
}

func NewStatsRepository(db *DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Get computes the record counts and the value of every deal whose stage
// counts toward the pipeline, in one round trip. Stages outside the known
// set are counted.
func (r *StatsRepository) Get(ctx context.Context) (*stats.Stats, error) {
	var (
		excluded []string
		args     []any
	)
	for _, st := range deal.Stages {
		if !st.CountsTowardPipeline() {
			args = append(args, string(st))
			excluded = append(excluded, r.db.Dialect().Placeholder(len(args)))
		}
	}

	valueWhere := ""
	if len(excluded) > 0 {
		valueWhere = " WHERE stage NOT IN (" + strings.Join(excluded, ", ") + ")"
	}

	query := `SELECT
		(SELECT COUNT(*) FROM contacts),
		(SELECT COUNT(*) FROM companies),
		(SELECT COUNT(*) FROM deals),
		(SELECT COALESCE(SUM(value), 0) FROM deals` + valueWhere + `)`

	var s stats.Stats
	err := r.db.Conn().QueryRowContext(ctx, query, args...).
		Scan(&s.Contacts, &s.Companies, &s.Deals, &s.DealValue)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	return &s, nil
}
