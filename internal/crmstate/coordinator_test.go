package crmstate

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"crm-service/internal/app/apptest"
	"crm-service/internal/client"
	"crm-service/internal/domain/company"
	"crm-service/internal/domain/contact"
	"crm-service/internal/domain/deal"
	"crm-service/internal/domain/shared"
	"crm-service/internal/domain/stats"
	"crm-service/internal/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingAPI counts list fetches per entity on top of the real client.
type countingAPI struct {
	*client.Client

	mu     sync.Mutex
	counts map[string]int
}

func (a *countingAPI) hit(name string) {
	a.mu.Lock()
	a.counts[name]++
	a.mu.Unlock()
}

func (a *countingAPI) snapshot() map[string]int {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]int, len(a.counts))
	for k, v := range a.counts {
		out[k] = v
	}
	return out
}

func (a *countingAPI) ListCompanies(ctx context.Context, q client.ListQuery) (*company.CompanyListResponse, error) {
	a.hit("companies")
	return a.Client.ListCompanies(ctx, q)
}

func (a *countingAPI) ListContacts(ctx context.Context, q client.ListQuery) (*contact.ContactListResponse, error) {
	a.hit("contacts")
	return a.Client.ListContacts(ctx, q)
}

func (a *countingAPI) ListDeals(ctx context.Context, q client.ListQuery) (*deal.DealListResponse, error) {
	a.hit("deals")
	return a.Client.ListDeals(ctx, q)
}

func (a *countingAPI) Board(ctx context.Context) ([]deal.Deal, error) {
	a.hit("board")
	return a.Client.Board(ctx)
}

func (a *countingAPI) Stats(ctx context.Context) (*stats.Stats, error) {
	a.hit("stats")
	return a.Client.Stats(ctx)
}

func newCoordinator(t *testing.T, opts ...Option) (*Coordinator, *countingAPI) {
	t.Helper()
	srv := apptest.NewServer(t)
	api := &countingAPI{Client: client.New(srv.URL), counts: map[string]int{}}
	return NewCoordinator(api, opts...), api
}

func TestLoadFetchesEverything(t *testing.T) {
	ctx := context.Background()
	c, api := newCoordinator(t)

	require.NoError(t, c.Load(ctx))
	assert.Equal(t, map[string]int{"stats": 1, "companies": 1, "contacts": 1, "deals": 1}, api.snapshot())
	assert.Equal(t, ViewCompanies, c.View())
	assert.Empty(t, c.CompanyLookup())
	assert.False(t, c.Board().Loaded())
}

func TestListChangeRefetchesOnlyThatEntityAndStats(t *testing.T) {
	ctx := context.Background()
	c, api := newCoordinator(t)
	require.NoError(t, c.Load(ctx))
	before := api.snapshot()

	require.NoError(t, c.Contacts.SetSort(ctx, "first_name"))
	after := api.snapshot()
	assert.Equal(t, before["contacts"]+1, after["contacts"])
	assert.Equal(t, before["stats"]+1, after["stats"])
	assert.Equal(t, before["companies"], after["companies"])
	assert.Equal(t, before["deals"], after["deals"])

	// Same page again: nothing.
	require.NoError(t, c.Contacts.SetPage(ctx, 1))
	assert.Equal(t, after, api.snapshot())
}

func TestCompanyScenarioThroughCoordinator(t *testing.T) {
	ctx := context.Background()
	c, api := newCoordinator(t)
	require.NoError(t, c.Load(ctx))

	acme, err := c.AddCompany(ctx, company.CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)

	rows := c.Companies.Snapshot().Rows
	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].ContactCount)
	assert.Equal(t, int64(1), c.Stats().Companies)
	require.Len(t, c.CompanyLookup(), 1)

	before := api.snapshot()
	_, err = c.AddContact(ctx, contact.CreateContactRequest{FirstName: "Bob", CompanyID: shared.SomeID(acme.ID)})
	require.NoError(t, err)
	after := api.snapshot()
	assert.Equal(t, before["contacts"]+1, after["contacts"])
	assert.Equal(t, before["deals"]+1, after["deals"])
	assert.Equal(t, before["companies"], after["companies"])
	require.Len(t, c.ContactLookup(), 1)

	// Renaming the company reaches the contact rows through the refetch.
	newName := "Acme Corp"
	_, err = c.UpdateCompany(ctx, acme.ID, company.UpdateCompanyRequest{Name: &newName})
	require.NoError(t, err)
	contacts := c.Contacts.Snapshot().Rows
	require.Len(t, contacts, 1)
	assert.Equal(t, "Acme Corp", *contacts[0].CompanyName)

	require.NoError(t, c.Companies.SetSort(ctx, "name"))
	assert.Equal(t, int64(1), c.Companies.Snapshot().Rows[0].ContactCount)
}

func TestMutationErrorGoesToBanner(t *testing.T) {
	ctx := context.Background()
	c, _ := newCoordinator(t)

	_, err := c.AddContact(ctx, contact.CreateContactRequest{FirstName: ""})
	require.Error(t, err)
	assert.Equal(t, "First name is required", c.Banner.Message())
	assert.Zero(t, c.Stats().Contacts)

	err = c.DeleteDeal(ctx, 404)
	assert.EqualError(t, err, "Deal not found")
	assert.Equal(t, "Deal not found", c.Banner.Message())
}

func TestBoardMoveRefreshesEverything(t *testing.T) {
	ctx := context.Background()
	c, api := newCoordinator(t)
	require.NoError(t, c.Load(ctx))

	d, err := c.AddDeal(ctx, deal.CreateDealRequest{Name: "Renewal", Value: 900})
	require.NoError(t, err)
	assert.Equal(t, 900.0, c.Stats().DealValue)

	require.NoError(t, c.SetView(ctx, ViewPipeline))
	board := c.Board()
	require.True(t, board.Loaded())
	assert.Equal(t, 1, board.Columns()[0].Count)

	before := api.snapshot()
	require.True(t, board.PickUp(d.ID))
	require.NoError(t, board.DropOn(ctx, deal.StageWon))
	after := api.snapshot()

	assert.Equal(t, before["board"]+1, after["board"])
	assert.Equal(t, before["deals"]+1, after["deals"])
	cols := board.Columns()
	assert.Zero(t, cols[0].Count)
	assert.Equal(t, 1, cols[4].Count)
	assert.Equal(t, deal.StageWon, c.Deals.Snapshot().Rows[0].Stage)
	assert.Equal(t, 900.0, c.Stats().DealValue)

	require.NoError(t, board.MoveTo(ctx, d.ID, deal.StageLost))
	assert.Zero(t, c.Stats().DealValue)
	assert.Equal(t, 1, board.Columns()[5].Count)

	board.SetAddForm(deal.StageProposal, pipeline.AddForm{Name: "Upsell", Value: "x"})
	require.NoError(t, board.SubmitAdd(ctx, deal.StageProposal))
	proposal := board.Columns()[2]
	require.Equal(t, 1, proposal.Count)
	assert.Zero(t, proposal.Deals[0].Value)

	err = board.MoveTo(ctx, d.ID, deal.Stage("limbo"))
	assert.ErrorIs(t, err, pipeline.ErrUnknownStage)
	assert.Contains(t, c.Banner.Message(), "unknown stage")
}

func TestDebouncedSearchAndViewSwitch(t *testing.T) {
	ctx := context.Background()
	c, api := newCoordinator(t, WithSearchDebounce(30*time.Millisecond))
	require.NoError(t, c.Load(ctx))
	_, err := c.AddCompany(ctx, company.CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)
	_, err = c.AddCompany(ctx, company.CreateCompanyRequest{Name: "Globex"})
	require.NoError(t, err)

	before := api.snapshot()["companies"]
	for _, text := range []string{"g", "gl", "glo"} {
		c.TypeSearch(ctx, text)
	}
	assert.Equal(t, "glo", c.SearchInput())

	assert.Eventually(t, func() bool {
		return c.Companies.Snapshot().Search == "glo" && !c.SearchPending()
	}, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return len(c.Companies.Snapshot().Rows) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, before+1, api.snapshot()["companies"])

	// A pending search dies with a view switch; the list keeps its search.
	c.TypeSearch(ctx, "acme")
	require.NoError(t, c.SetView(ctx, ViewContacts))
	assert.Empty(t, c.SearchInput())
	assert.False(t, c.SearchPending())
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, "glo", c.Companies.Snapshot().Search)
	assert.Equal(t, ViewContacts, c.View())
}

// heldLookupAPI holds the first company lookup until released and then
// answers it with an outdated list.
type heldLookupAPI struct {
	*client.Client

	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (a *heldLookupAPI) CompanyLookup(ctx context.Context) ([]company.Lookup, error) {
	if a.calls.Add(1) == 1 {
		close(a.started)
		<-a.release
		return []company.Lookup{{ID: 99, Name: "Defunct"}}, nil
	}
	return a.Client.CompanyLookup(ctx)
}

func TestRefreshLookupsKeepsNewestResponse(t *testing.T) {
	ctx := context.Background()
	srv := apptest.NewServer(t)
	api := &heldLookupAPI{
		Client:  client.New(srv.URL),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	_, err := api.CreateCompany(ctx, company.CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)

	c := NewCoordinator(api)

	done := make(chan error, 1)
	go func() { done <- c.RefreshLookups(ctx) }()
	<-api.started

	require.NoError(t, c.RefreshLookups(ctx))
	close(api.release)
	require.NoError(t, <-done)

	lookup := c.CompanyLookup()
	require.Len(t, lookup, 1)
	assert.Equal(t, "Acme", lookup[0].Name)
}
