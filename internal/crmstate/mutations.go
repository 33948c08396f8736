package crmstate

import (
	"context"

	"crm-service/internal/domain/company"
	"crm-service/internal/domain/contact"
	"crm-service/internal/domain/deal"
)

// Mutations report failures on the banner, leave local state untouched and
// return the error. On success the affected views are refetched; a refetch
// failure is shown on the banner but does not fail the mutation.

func (c *Coordinator) AddCompany(ctx context.Context, req company.CreateCompanyRequest) (*company.Company, error) {
	created, err := c.api.CreateCompany(ctx, req)
	if err != nil {
		return nil, c.report(err)
	}
	c.afterCompanyChange(ctx)
	return created, nil
}

func (c *Coordinator) UpdateCompany(ctx context.Context, id int64, req company.UpdateCompanyRequest) (*company.Company, error) {
	updated, err := c.api.UpdateCompany(ctx, id, req)
	if err != nil {
		return nil, c.report(err)
	}
	c.afterCompanyChange(ctx)
	return updated, nil
}

func (c *Coordinator) DeleteCompany(ctx context.Context, id int64) error {
	if err := c.api.DeleteCompany(ctx, id); err != nil {
		return c.report(err)
	}
	c.afterCompanyChange(ctx)
	return nil
}

func (c *Coordinator) AddContact(ctx context.Context, req contact.CreateContactRequest) (*contact.Contact, error) {
	created, err := c.api.CreateContact(ctx, req)
	if err != nil {
		return nil, c.report(err)
	}
	c.afterContactChange(ctx)
	return created, nil
}

func (c *Coordinator) UpdateContact(ctx context.Context, id int64, req contact.UpdateContactRequest) (*contact.Contact, error) {
	updated, err := c.api.UpdateContact(ctx, id, req)
	if err != nil {
		return nil, c.report(err)
	}
	c.afterContactChange(ctx)
	return updated, nil
}

func (c *Coordinator) DeleteContact(ctx context.Context, id int64) error {
	if err := c.api.DeleteContact(ctx, id); err != nil {
		return c.report(err)
	}
	c.afterContactChange(ctx)
	return nil
}

// AddDeal also serves the board's quick-add form.
func (c *Coordinator) AddDeal(ctx context.Context, req deal.CreateDealRequest) (*deal.Deal, error) {
	created, err := c.api.CreateDeal(ctx, req)
	if err != nil {
		return nil, c.report(err)
	}
	c.afterDealChange(ctx)
	return created, nil
}

// UpdateDeal also serves board stage moves.
func (c *Coordinator) UpdateDeal(ctx context.Context, id int64, req deal.UpdateDealRequest) (*deal.Deal, error) {
	updated, err := c.api.UpdateDeal(ctx, id, req)
	if err != nil {
		return nil, c.report(err)
	}
	c.afterDealChange(ctx)
	return updated, nil
}

func (c *Coordinator) DeleteDeal(ctx context.Context, id int64) error {
	if err := c.api.DeleteDeal(ctx, id); err != nil {
		return c.report(err)
	}
	c.afterDealChange(ctx)
	return nil
}
