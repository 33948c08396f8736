// internal/service/deal/deal.go
package deal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crm-service/internal/domain/deal"
	"crm-service/internal/domain/listing"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/repository/sqlstore"

	"go.uber.org/zap"
)

const notFoundMessage = "Deal not found"

type DealService struct {
	dealRepo *sqlstore.DealRepository
	logger   *zap.Logger
}

func NewDealService(dealRepo *sqlstore.DealRepository, logger *zap.Logger) *DealService {
	return &DealService{
		dealRepo: dealRepo,
		logger:   logger,
	}
}

// ListDeals returns one page of deals plus the summed value of every deal
// matching the filters.
func (s *DealService) ListDeals(ctx context.Context, filters *deal.DealListFilters) (*deal.DealListResponse, error) {
	params := filters.Params()

	var conds []sqlstore.Filter
	if stage := strings.TrimSpace(filters.Stage); stage != "" {
		conds = append(conds, sqlstore.Filter{Column: "stage", Value: stage})
	}
	if contactID, ok := listing.ParseID(filters.ContactID); ok {
		conds = append(conds, sqlstore.Filter{Column: "contact_id", Value: contactID})
	}

	deals, total, sum, err := s.dealRepo.List(ctx, params, conds...)
	if err != nil {
		return nil, err
	}

	return &deal.DealListResponse{
		Deals:      deals,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalValue: sum,
	}, nil
}

// Pipeline returns every deal for the board, oldest first.
func (s *DealService) Pipeline(ctx context.Context) ([]deal.Deal, error) {
	return s.dealRepo.Board(ctx)
}

func (s *DealService) GetDeal(ctx context.Context, id int64) (*deal.Deal, error) {
	d, err := s.dealRepo.FindByID(ctx, id)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.NotFound(notFoundMessage)
	}
	return d, err
}

// CreateDeal stores a new deal. An unknown or missing stage becomes
// prospect.
func (s *DealService) CreateDeal(ctx context.Context, req *deal.CreateDealRequest) (*deal.Deal, error) {
	req.Trim()
	if req.Name == "" {
		return nil, xerrors.Invalid("Name is required")
	}

	d, err := s.dealRepo.Create(ctx, *req, deal.StageOrDefault(req.Stage))
	if err != nil {
		s.logger.Error("failed to create deal", zap.Error(err))
		return nil, err
	}

	s.logger.Info("deal created",
		zap.Int64("deal_id", d.ID),
		zap.String("stage", string(d.Stage)),
		zap.Float64("value", d.Value),
	)

	return d, nil
}

// UpdateDeal applies the fields present in req. Stage must be one of the
// pipeline stages.
func (s *DealService) UpdateDeal(ctx context.Context, id int64, req *deal.UpdateDealRequest) (*deal.Deal, error) {
	fields := req.Fields()
	if len(fields) == 0 {
		return nil, xerrors.Invalid("No fields to update")
	}
	for _, f := range fields {
		switch f.Column {
		case "name":
			if f.Value == "" {
				return nil, xerrors.Invalid("Name is required")
			}
		case "stage":
			if !deal.Stage(f.Value.(string)).Known() {
				return nil, xerrors.Invalid(fmt.Sprintf("Invalid stage: %s", f.Value))
			}
		}
	}

	d, err := s.dealRepo.Update(ctx, id, fields)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.NotFound(notFoundMessage)
	}
	if err != nil {
		s.logger.Error("failed to update deal", zap.Int64("deal_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("deal updated",
		zap.Int64("deal_id", id),
		zap.String("stage", string(d.Stage)),
	)
	return d, nil
}

func (s *DealService) DeleteDeal(ctx context.Context, id int64) error {
	err := s.dealRepo.Delete(ctx, id)
	if errors.Is(err, xerrors.ErrNotFound) {
		return xerrors.NotFound(notFoundMessage)
	}
	if err != nil {
		return xerrors.Wrap(err, "failed to delete deal")
	}

	s.logger.Info("deal deleted", zap.Int64("deal_id", id))
	return nil
}
