package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"crm-service/internal/app/apptest"
	"crm-service/internal/client"
	"crm-service/internal/domain/company"
	"crm-service/internal/domain/contact"
	"crm-service/internal/domain/deal"
	"crm-service/internal/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func seed(t *testing.T) (*apptest.Server, *client.Client) {
	t.Helper()
	srv := apptest.NewServer(t)
	api := client.New(srv.URL)
	ctx := context.Background()

	acme, err := api.CreateCompany(ctx, company.CreateCompanyRequest{Name: "Acme", Industry: "Tools"})
	require.NoError(t, err)
	bob, err := api.CreateContact(ctx, contact.CreateContactRequest{FirstName: "Bob", LastName: "Stone", CompanyID: shared.SomeID(acme.ID)})
	require.NoError(t, err)
	_, err = api.CreateDeal(ctx, deal.CreateDealRequest{Name: "Anvils", Value: 500, ContactID: shared.SomeID(bob.ID)})
	require.NoError(t, err)
	return srv, api
}

func TestStats(t *testing.T) {
	srv, _ := seed(t)

	out, err := run(t, "--server", srv.URL, "stats")
	require.NoError(t, err)
	assert.Regexp(t, `Companies\s+1`, out)
	assert.Regexp(t, `Contacts\s+1`, out)
	assert.Regexp(t, `Deals\s+1`, out)
	assert.Regexp(t, `Pipeline value\s+\$500\.00`, out)
}

func TestListUsesFlagsAndFilters(t *testing.T) {
	srv, api := seed(t)
	_, err := api.CreateDeal(context.Background(), deal.CreateDealRequest{Name: "Rockets", Value: 100, Stage: "won"})
	require.NoError(t, err)

	out, err := run(t, "--server", srv.URL, "list", "deals", "--sort", "value", "--order", "asc")
	require.NoError(t, err)
	assert.Less(t, bytes.Index([]byte(out), []byte("Rockets")), bytes.Index([]byte(out), []byte("Anvils")))
	assert.Contains(t, out, "Bob Stone")
	assert.Contains(t, out, "Page 1 of 1, 2 total")
	assert.Contains(t, out, "Total value: $600.00")

	out, err = run(t, "--server", srv.URL, "list", "deals", "--filter", "stage=won")
	require.NoError(t, err)
	assert.Contains(t, out, "Rockets")
	assert.NotContains(t, out, "Anvils")

	out, err = run(t, "--server", srv.URL, "list", "contacts", "--search", "sto")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "lead")

	out, err = run(t, "--server", srv.URL, "list", "companies")
	require.NoError(t, err)
	assert.Regexp(t, `Acme\s+-\s+Tools\s+1`, out)

	_, err = run(t, "--server", srv.URL, "list", "widgets")
	assert.EqualError(t, err, `unknown entity "widgets" (valid: companies, contacts, deals)`)
}

func TestBoardAndMove(t *testing.T) {
	srv, api := seed(t)
	deals, err := api.Board(context.Background())
	require.NoError(t, err)
	require.Len(t, deals, 1)
	id := deals[0].ID

	out, err := run(t, "--server", srv.URL, "board")
	require.NoError(t, err)
	assert.Regexp(t, `PROSPECT \(1\)\s+\$500\.00`, out)
	assert.Regexp(t, `LOST \(0\)`, out)

	out, err = run(t, "--server", srv.URL, "move", "1", "Won")
	require.NoError(t, err)
	assert.Equal(t, "Moved deal 1 to Won\n", out)

	d, err := api.Board(context.Background())
	require.NoError(t, err)
	assert.Equal(t, id, d[0].ID)
	assert.Equal(t, deal.StageWon, d[0].Stage)

	_, err = run(t, "--server", srv.URL, "move", "1", "limbo")
	assert.ErrorContains(t, err, "unknown stage")

	_, err = run(t, "--server", srv.URL, "move", "abc", "won")
	assert.EqualError(t, err, `invalid deal ID "abc"`)

	_, err = run(t, "--server", srv.URL, "move", "99", "won")
	assert.EqualError(t, err, "Deal not found")
}

func TestAddDeal(t *testing.T) {
	srv, _ := seed(t)

	out, err := run(t, "--server", srv.URL, "add-deal", "--name", "Springs", "--value", "-5", "--contact-id", "1", "--stage", "proposal")
	require.NoError(t, err)
	assert.Contains(t, out, "Deal created: Springs (ID: 2)")
	assert.Contains(t, out, "Value: $0.00")
	assert.Contains(t, out, "Stage: Proposal")
	assert.Contains(t, out, "Contact: Bob Stone")

	_, err = run(t, "--server", srv.URL, "add-deal")
	assert.EqualError(t, err, "Name is required")
}

func TestConfigPrecedence(t *testing.T) {
	srv, _ := seed(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "crmctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: http://127.0.0.1:1\ntimeout: 2s\n"), 0o644))

	// The file alone points at a dead port.
	t.Setenv("CRM_SERVER", "")
	_, err := run(t, "--config", path, "stats")
	require.Error(t, err)

	// Environment beats the file.
	t.Setenv("CRM_SERVER", srv.URL)
	_, err = run(t, "--config", path, "stats")
	require.NoError(t, err)

	// The flag beats both.
	t.Setenv("CRM_SERVER", "http://127.0.0.1:1")
	_, err = run(t, "--config", path, "--server", srv.URL, "stats")
	require.NoError(t, err)

	_, err = run(t, "--config", filepath.Join(dir, "missing.yaml"), "stats")
	assert.ErrorContains(t, err, "read config")
}
