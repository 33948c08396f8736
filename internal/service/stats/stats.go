// internal/service/stats/stats.go
package stats

import (
	"context"

	"crm-service/internal/domain/stats"
	"crm-service/internal/repository/sqlstore"

	"go.uber.org/zap"
)

type StatsService struct {
	statsRepo *sqlstore.StatsRepository
	logger    *zap.Logger
}

func NewStatsService(statsRepo *sqlstore.StatsRepository, logger *zap.Logger) *StatsService {
	return &StatsService{statsRepo: statsRepo, logger: logger}
}

// GetStats recomputes the dashboard counters.
func (s *StatsService) GetStats(ctx context.Context) (*stats.Stats, error) {
	st, err := s.statsRepo.Get(ctx)
	if err != nil {
		s.logger.Error("failed to load stats", zap.Error(err))
		return nil, err
	}
	return st, nil
}
