package client

import (
	"context"
	"net/http"

	"crm-service/internal/domain/company"
	"crm-service/internal/domain/contact"
	"crm-service/internal/domain/deal"
	"crm-service/internal/domain/stats"
)

type deletedResponse struct {
	OK bool `json:"ok"`
}

func (c *Client) Stats(ctx context.Context) (*stats.Stats, error) {
	return do[stats.Stats](ctx, c, http.MethodGet, "/api/stats", nil, nil)
}

// ---- Companies ----

func (c *Client) ListCompanies(ctx context.Context, q ListQuery) (*company.CompanyListResponse, error) {
	return do[company.CompanyListResponse](ctx, c, http.MethodGet, "/api/companies", q.values(), nil)
}

func (c *Client) CompanyLookup(ctx context.Context) ([]company.Lookup, error) {
	res, err := do[company.LookupResponse](ctx, c, http.MethodGet, "/api/companies/all", nil, nil)
	if err != nil {
		return nil, err
	}
	return res.Companies, nil
}

func (c *Client) CreateCompany(ctx context.Context, req company.CreateCompanyRequest) (*company.Company, error) {
	res, err := do[company.CompanyResponse](ctx, c, http.MethodPost, "/api/companies", nil, req)
	if err != nil {
		return nil, err
	}
	return res.Company, nil
}

func (c *Client) UpdateCompany(ctx context.Context, id int64, req company.UpdateCompanyRequest) (*company.Company, error) {
	res, err := do[company.CompanyResponse](ctx, c, http.MethodPut, idPath("companies", id), nil, req)
	if err != nil {
		return nil, err
	}
	return res.Company, nil
}

func (c *Client) DeleteCompany(ctx context.Context, id int64) error {
	_, err := do[deletedResponse](ctx, c, http.MethodDelete, idPath("companies", id), nil, nil)
	return err
}

// ---- Contacts ----

func (c *Client) ListContacts(ctx context.Context, q ListQuery) (*contact.ContactListResponse, error) {
	return do[contact.ContactListResponse](ctx, c, http.MethodGet, "/api/contacts", q.values(), nil)
}

func (c *Client) ContactLookup(ctx context.Context) ([]contact.Lookup, error) {
	res, err := do[contact.LookupResponse](ctx, c, http.MethodGet, "/api/contacts/all", nil, nil)
	if err != nil {
		return nil, err
	}
	return res.Contacts, nil
}

func (c *Client) CreateContact(ctx context.Context, req contact.CreateContactRequest) (*contact.Contact, error) {
	res, err := do[contact.ContactResponse](ctx, c, http.MethodPost, "/api/contacts", nil, req)
	if err != nil {
		return nil, err
	}
	return res.Contact, nil
}

func (c *Client) UpdateContact(ctx context.Context, id int64, req contact.UpdateContactRequest) (*contact.Contact, error) {
	res, err := do[contact.ContactResponse](ctx, c, http.MethodPut, idPath("contacts", id), nil, req)
	if err != nil {
		return nil, err
	}
	return res.Contact, nil
}

func (c *Client) DeleteContact(ctx context.Context, id int64) error {
	_, err := do[deletedResponse](ctx, c, http.MethodDelete, idPath("contacts", id), nil, nil)
	return err
}

// ---- Deals ----

func (c *Client) ListDeals(ctx context.Context, q ListQuery) (*deal.DealListResponse, error) {
	return do[deal.DealListResponse](ctx, c, http.MethodGet, "/api/deals", q.values(), nil)
}

// Board returns every deal, oldest first.
func (c *Client) Board(ctx context.Context) ([]deal.Deal, error) {
	res, err := do[deal.BoardResponse](ctx, c, http.MethodGet, "/api/deals/board", nil, nil)
	if err != nil {
		return nil, err
	}
	return res.Deals, nil
}

func (c *Client) CreateDeal(ctx context.Context, req deal.CreateDealRequest) (*deal.Deal, error) {
	res, err := do[deal.DealResponse](ctx, c, http.MethodPost, "/api/deals", nil, req)
	if err != nil {
		return nil, err
	}
	return res.Deal, nil
}

func (c *Client) UpdateDeal(ctx context.Context, id int64, req deal.UpdateDealRequest) (*deal.Deal, error) {
	res, err := do[deal.DealResponse](ctx, c, http.MethodPut, idPath("deals", id), nil, req)
	if err != nil {
		return nil, err
	}
	return res.Deal, nil
}

func (c *Client) DeleteDeal(ctx context.Context, id int64) error {
	_, err := do[deletedResponse](ctx, c, http.MethodDelete, idPath("deals", id), nil, nil)
	return err
}
