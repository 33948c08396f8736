// internal/service/company/company.go
package company

import (
	"context"
	"errors"
	"strings"

	"crm-service/internal/domain/company"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/repository/sqlstore"

	"go.uber.org/zap"
)

const notFoundMessage = "Company not found"

type CompanyService struct {
	companyRepo *sqlstore.CompanyRepository
	logger      *zap.Logger
}

func NewCompanyService(companyRepo *sqlstore.CompanyRepository, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// ListCompanies returns one page of companies matching the filters.
func (s *CompanyService) ListCompanies(ctx context.Context, filters *company.CompanyListFilters) (*company.CompanyListResponse, error) {
	params := filters.Params()

	var conds []sqlstore.Filter
	if industry := strings.TrimSpace(filters.Industry); industry != "" {
		conds = append(conds, sqlstore.Filter{Column: "industry", Value: industry})
	}

	companies, total, err := s.companyRepo.List(ctx, params, conds...)
	if err != nil {
		return nil, err
	}

	return &company.CompanyListResponse{
		Companies: companies,
		Total:     total,
		Page:      params.Page,
		Limit:     params.Limit,
	}, nil
}

// GetCompany retrieves a company by ID
func (s *CompanyService) GetCompany(ctx context.Context, id int64) (*company.Company, error) {
	c, err := s.companyRepo.FindByID(ctx, id)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.NotFound(notFoundMessage)
	}
	return c, err
}

// CreateCompany validates and stores a new company
func (s *CompanyService) CreateCompany(ctx context.Context, req *company.CreateCompanyRequest) (*company.Company, error) {
	req.Trim()
	if req.Name == "" {
		return nil, xerrors.Invalid("Name is required")
	}

	c, err := s.companyRepo.Create(ctx, *req)
	if err != nil {
		s.logger.Error("failed to create company", zap.Error(err))
		return nil, err
	}

	s.logger.Info("company created",
		zap.Int64("company_id", c.ID),
		zap.String("name", c.Name),
	)

	return c, nil
}

// UpdateCompany applies the fields present in req
func (s *CompanyService) UpdateCompany(ctx context.Context, id int64, req *company.UpdateCompanyRequest) (*company.Company, error) {
	fields := req.Fields()
	if len(fields) == 0 {
		return nil, xerrors.Invalid("No fields to update")
	}
	if req.Name != nil && fields[0].Value == "" {
		return nil, xerrors.Invalid("Name is required")
	}

	c, err := s.companyRepo.Update(ctx, id, fields)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.NotFound(notFoundMessage)
	}
	if err != nil {
		s.logger.Error("failed to update company", zap.Int64("company_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("company updated", zap.Int64("company_id", id), zap.Int("fields", len(fields)))
	return c, nil
}

// DeleteCompany removes a company that no contact references
func (s *CompanyService) DeleteCompany(ctx context.Context, id int64) error {
	err := s.companyRepo.Delete(ctx, id)
	if errors.Is(err, xerrors.ErrNotFound) {
		return xerrors.NotFound(notFoundMessage)
	}
	if err != nil {
		s.logger.Warn("failed to delete company", zap.Int64("company_id", id), zap.Error(err))
		return xerrors.Wrap(err, "failed to delete company")
	}

	s.logger.Info("company deleted", zap.Int64("company_id", id))
	return nil
}

// Lookup returns the selector projection of every company.
func (s *CompanyService) Lookup(ctx context.Context) ([]company.Lookup, error) {
	return s.companyRepo.Lookup(ctx)
}

