package crmstate

import (
	"context"
	"sync"
	"time"

	"crm-service/internal/client"
	"crm-service/internal/domain/company"
	"crm-service/internal/domain/contact"
	"crm-service/internal/domain/deal"
	"crm-service/internal/domain/stats"
	"crm-service/internal/pipeline"

	"golang.org/x/sync/errgroup"
)

// View is the screen currently shown.
type View string

const (
	ViewCompanies View = "companies"
	ViewContacts  View = "contacts"
	ViewDeals     View = "deals"
	ViewPipeline  View = "pipeline"
)

// API is the subset of the HTTP client the coordinator drives.
type API interface {
	Stats(ctx context.Context) (*stats.Stats, error)

	ListCompanies(ctx context.Context, q client.ListQuery) (*company.CompanyListResponse, error)
	CompanyLookup(ctx context.Context) ([]company.Lookup, error)
	CreateCompany(ctx context.Context, req company.CreateCompanyRequest) (*company.Company, error)
	UpdateCompany(ctx context.Context, id int64, req company.UpdateCompanyRequest) (*company.Company, error)
	DeleteCompany(ctx context.Context, id int64) error

	ListContacts(ctx context.Context, q client.ListQuery) (*contact.ContactListResponse, error)
	ContactLookup(ctx context.Context) ([]contact.Lookup, error)
	CreateContact(ctx context.Context, req contact.CreateContactRequest) (*contact.Contact, error)
	UpdateContact(ctx context.Context, id int64, req contact.UpdateContactRequest) (*contact.Contact, error)
	DeleteContact(ctx context.Context, id int64) error

	ListDeals(ctx context.Context, q client.ListQuery) (*deal.DealListResponse, error)
	Board(ctx context.Context) ([]deal.Deal, error)
	CreateDeal(ctx context.Context, req deal.CreateDealRequest) (*deal.Deal, error)
	UpdateDeal(ctx context.Context, id int64, req deal.UpdateDealRequest) (*deal.Deal, error)
	DeleteDeal(ctx context.Context, id int64) error
}

// Coordinator owns every piece of view state and decides what to refetch
// after each change. Errors are shown on Banner and also returned.
type Coordinator struct {
	api API

	Companies *ListState[company.Company]
	Contacts  *ListState[contact.Contact]
	Deals     *ListState[deal.Deal]
	Banner    *Banner

	board  *pipeline.Board
	search *Debouncer

	mu            sync.Mutex
	view          View
	searchInput   string
	stats         stats.Stats
	statsIssued   uint64
	companyLookup []company.Lookup
	contactLookup []contact.Lookup
	lookupsIssued uint64
}

type Option func(*options)

type options struct {
	debounce      time.Duration
	bannerTimeout time.Duration
}

// WithSearchDebounce overrides the 300ms toolbar debounce.
func WithSearchDebounce(d time.Duration) Option {
	return func(o *options) { o.debounce = d }
}

// WithBannerTimeout overrides the 5s error banner lifetime.
func WithBannerTimeout(d time.Duration) Option {
	return func(o *options) { o.bannerTimeout = d }
}

func NewCoordinator(api API, opts ...Option) *Coordinator {
	o := options{debounce: DefaultSearchDebounce, bannerTimeout: DefaultBannerTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Coordinator{
		api:    api,
		Banner: NewBanner(o.bannerTimeout),
		search: NewDebouncer(o.debounce),
		view:   ViewCompanies,
	}

	c.Companies = NewListState(func(ctx context.Context, q client.ListQuery) (Page[company.Company], error) {
		res, err := api.ListCompanies(ctx, q)
		if err != nil {
			return Page[company.Company]{}, err
		}
		return Page[company.Company]{Rows: res.Companies, Total: res.Total}, nil
	})
	c.Contacts = NewListState(func(ctx context.Context, q client.ListQuery) (Page[contact.Contact], error) {
		res, err := api.ListContacts(ctx, q)
		if err != nil {
			return Page[contact.Contact]{}, err
		}
		return Page[contact.Contact]{Rows: res.Contacts, Total: res.Total}, nil
	})
	c.Deals = NewListState(func(ctx context.Context, q client.ListQuery) (Page[deal.Deal], error) {
		res, err := api.ListDeals(ctx, q)
		if err != nil {
			return Page[deal.Deal]{}, err
		}
		return Page[deal.Deal]{Rows: res.Deals, Total: res.Total, TotalValue: res.TotalValue}, nil
	})

	c.Companies.onChange, c.Companies.onError = c.RefreshStats, c.ReportError
	c.Contacts.onChange, c.Contacts.onError = c.RefreshStats, c.ReportError
	c.Deals.onChange, c.Deals.onError = c.RefreshStats, c.ReportError

	c.board = pipeline.NewBoard(api.Board, c)
	return c
}

// Board is the pipeline view.
func (c *Coordinator) Board() *pipeline.Board {
	return c.board
}

// ReportError shows err on the banner.
func (c *Coordinator) ReportError(err error) {
	if err != nil {
		c.Banner.Show(err.Error())
	}
}

func (c *Coordinator) report(err error) error {
	c.ReportError(err)
	return err
}

// Load fetches the stats, the three list pages and both lookups in
// parallel.
func (c *Coordinator) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return c.RefreshStats(ctx) })
	g.Go(func() error { return c.Companies.Refresh(ctx) })
	g.Go(func() error { return c.Contacts.Refresh(ctx) })
	g.Go(func() error { return c.Deals.Refresh(ctx) })
	g.Go(func() error { return c.RefreshLookups(ctx) })
	return g.Wait()
}

// Stats returns the last fetched counters.
func (c *Coordinator) Stats() stats.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// RefreshStats refetches the global counters, keeping only the newest
// response.
func (c *Coordinator) RefreshStats(ctx context.Context) error {
	c.mu.Lock()
	c.statsIssued++
	token := c.statsIssued
	c.mu.Unlock()

	st, err := c.api.Stats(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.statsIssued {
		return nil
	}
	if err != nil {
		c.ReportError(err)
		return err
	}
	c.stats = *st
	return nil
}

// RefreshLookups refetches the company and contact selector options,
// keeping only the newest response.
func (c *Coordinator) RefreshLookups(ctx context.Context) error {
	c.mu.Lock()
	c.lookupsIssued++
	token := c.lookupsIssued
	c.mu.Unlock()

	var g errgroup.Group

	var companies []company.Lookup
	var contacts []contact.Lookup
	g.Go(func() (err error) {
		companies, err = c.api.CompanyLookup(ctx)
		return err
	})
	g.Go(func() (err error) {
		contacts, err = c.api.ContactLookup(ctx)
		return err
	})
	err := g.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.lookupsIssued {
		return nil
	}
	if err != nil {
		c.ReportError(err)
		return err
	}
	c.companyLookup = companies
	c.contactLookup = contacts
	return nil
}

func (c *Coordinator) CompanyLookup() []company.Lookup {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]company.Lookup(nil), c.companyLookup...)
}

func (c *Coordinator) ContactLookup() []contact.Lookup {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]contact.Lookup(nil), c.contactLookup...)
}

// View is the active screen.
func (c *Coordinator) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// SetView switches screens. A pending search is dropped and the toolbar
// input cleared; each list keeps its own page, sort and search. The board
// is fetched the first time the pipeline is shown.
func (c *Coordinator) SetView(ctx context.Context, v View) error {
	c.search.Cancel()

	c.mu.Lock()
	c.view = v
	c.searchInput = ""
	c.mu.Unlock()

	if v == ViewPipeline && !c.board.Loaded() {
		if err := c.board.Load(ctx); err != nil {
			return c.report(err)
		}
	}
	return nil
}

// SearchInput is the toolbar text as typed, before debouncing.
func (c *Coordinator) SearchInput() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searchInput
}

// TypeSearch records a keystroke in the toolbar. The active list's search
// is only updated once typing pauses.
func (c *Coordinator) TypeSearch(ctx context.Context, text string) {
	c.mu.Lock()
	c.searchInput = text
	view := c.view
	c.mu.Unlock()

	var apply func(context.Context, string) error
	switch view {
	case ViewCompanies:
		apply = c.Companies.SetSearch
	case ViewContacts:
		apply = c.Contacts.SetSearch
	case ViewDeals:
		apply = c.Deals.SetSearch
	default:
		return
	}

	c.search.Trigger(func() {
		_ = apply(ctx, text)
	})
}

// SearchPending reports whether a debounced search has not fired yet.
func (c *Coordinator) SearchPending() bool {
	return c.search.Pending()
}

// afterCompanyChange refreshes everything that shows company data.
func (c *Coordinator) afterCompanyChange(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error { return c.Companies.Refresh(ctx) })
	g.Go(func() error { return c.Contacts.Refresh(ctx) })
	g.Go(func() error { return c.Deals.Refresh(ctx) })
	g.Go(func() error { return c.RefreshStats(ctx) })
	g.Go(func() error { return c.RefreshLookups(ctx) })
	_ = g.Wait()
}

func (c *Coordinator) afterContactChange(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error { return c.Contacts.Refresh(ctx) })
	g.Go(func() error { return c.Deals.Refresh(ctx) })
	g.Go(func() error { return c.RefreshStats(ctx) })
	g.Go(func() error { return c.RefreshLookups(ctx) })
	_ = g.Wait()
}

func (c *Coordinator) afterDealChange(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error { return c.Deals.Refresh(ctx) })
	g.Go(func() error { return c.RefreshStats(ctx) })
	if c.board.Loaded() {
		g.Go(func() error { return c.report(c.board.Load(ctx)) })
	}
	_ = g.Wait()
}
