// internal/service/contact/contact.go
package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crm-service/internal/domain/contact"
	"crm-service/internal/domain/listing"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/repository/sqlstore"

	"go.uber.org/zap"
)

const notFoundMessage = "Contact not found"

type ContactService struct {
	contactRepo *sqlstore.ContactRepository
	logger      *zap.Logger
}

func NewContactService(contactRepo *sqlstore.ContactRepository, logger *zap.Logger) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		logger:      logger,
	}
}

// ListContacts returns one page of contacts. A malformed company_id is
// ignored rather than rejected.
func (s *ContactService) ListContacts(ctx context.Context, filters *contact.ContactListFilters) (*contact.ContactListResponse, error) {
	params := filters.Params()

	var conds []sqlstore.Filter
	if status := strings.TrimSpace(filters.Status); status != "" {
		conds = append(conds, sqlstore.Filter{Column: "status", Value: status})
	}
	if companyID, ok := listing.ParseID(filters.CompanyID); ok {
		conds = append(conds, sqlstore.Filter{Column: "company_id", Value: companyID})
	}

	contacts, total, err := s.contactRepo.List(ctx, params, conds...)
	if err != nil {
		return nil, err
	}

	return &contact.ContactListResponse{
		Contacts: contacts,
		Total:    total,
		Page:     params.Page,
		Limit:    params.Limit,
	}, nil
}

func (s *ContactService) GetContact(ctx context.Context, id int64) (*contact.Contact, error) {
	c, err := s.contactRepo.FindByID(ctx, id)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.NotFound(notFoundMessage)
	}
	return c, err
}

// CreateContact stores a new contact. An unknown or missing status becomes
// lead.
func (s *ContactService) CreateContact(ctx context.Context, req *contact.CreateContactRequest) (*contact.Contact, error) {
	req.Trim()
	if req.FirstName == "" {
		return nil, xerrors.Invalid("First name is required")
	}

	c, err := s.contactRepo.Create(ctx, *req, contact.StatusOrDefault(req.Status))
	if err != nil {
		s.logger.Error("failed to create contact", zap.Error(err))
		return nil, err
	}

	s.logger.Info("contact created",
		zap.Int64("contact_id", c.ID),
		zap.String("status", string(c.Status)),
	)

	return c, nil
}

// UpdateContact applies the fields present in req. Status must be one of
// the known statuses.
func (s *ContactService) UpdateContact(ctx context.Context, id int64, req *contact.UpdateContactRequest) (*contact.Contact, error) {
	fields := req.Fields()
	if len(fields) == 0 {
		return nil, xerrors.Invalid("No fields to update")
	}
	for _, f := range fields {
		switch f.Column {
		case "first_name":
			if f.Value == "" {
				return nil, xerrors.Invalid("First name is required")
			}
		case "status":
			if !contact.Status(f.Value.(string)).Known() {
				return nil, xerrors.Invalid(fmt.Sprintf("Invalid status: %s", f.Value))
			}
		}
	}

	c, err := s.contactRepo.Update(ctx, id, fields)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.NotFound(notFoundMessage)
	}
	if err != nil {
		s.logger.Error("failed to update contact", zap.Int64("contact_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("contact updated", zap.Int64("contact_id", id), zap.Int("fields", len(fields)))
	return c, nil
}

// DeleteContact removes a contact that no deal references.
func (s *ContactService) DeleteContact(ctx context.Context, id int64) error {
	err := s.contactRepo.Delete(ctx, id)
	if errors.Is(err, xerrors.ErrNotFound) {
		return xerrors.NotFound(notFoundMessage)
	}
	if err != nil {
		s.logger.Warn("failed to delete contact", zap.Int64("contact_id", id), zap.Error(err))
		return xerrors.Wrap(err, "failed to delete contact")
	}

	s.logger.Info("contact deleted", zap.Int64("contact_id", id))
	return nil
}

func (s *ContactService) Lookup(ctx context.Context) ([]contact.Lookup, error) {
	return s.contactRepo.Lookup(ctx)
}
