package contact

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"crm-service/internal/db"
	"crm-service/internal/domain/company"
	"crm-service/internal/domain/contact"
	"crm-service/internal/domain/listing"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/repository/sqlstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newService(t *testing.T) (*ContactService, *sqlstore.DB) {
	t.Helper()
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "crm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.Migrate(context.Background(), conn, db.SQLite))

	store := sqlstore.NewDB(conn, db.SQLite)
	return NewContactService(sqlstore.NewContactRepository(store), zaptest.NewLogger(t)), store
}

func decode[T any](t *testing.T, raw string) *T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return &v
}

func TestCreateContactDefaultsStatus(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.CreateContact(ctx, decode[contact.CreateContactRequest](t, `{"first_name":"  "}`))
	assert.EqualError(t, err, "First name is required")

	c, err := svc.CreateContact(ctx, decode[contact.CreateContactRequest](t, `{"first_name":"Ann","status":"vip"}`))
	require.NoError(t, err)
	assert.Equal(t, contact.StatusLead, c.Status)
	assert.Nil(t, c.CompanyID)

	c, err = svc.CreateContact(ctx, decode[contact.CreateContactRequest](t, `{"first_name":"Bob","status":"churned","company_id":null}`))
	require.NoError(t, err)
	assert.Equal(t, contact.StatusChurned, c.Status)
}

func TestCreateContactWithMissingCompanyConflicts(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.CreateContact(context.Background(), decode[contact.CreateContactRequest](t, `{"first_name":"Ann","company_id":77}`))
	assert.ErrorIs(t, err, xerrors.ErrConflict)
}

func TestUpdateContactValidation(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	acme, err := sqlstore.NewCompanyRepository(store).Create(ctx, company.CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)
	c, err := svc.CreateContact(ctx, decode[contact.CreateContactRequest](t, `{"first_name":"Ann"}`))
	require.NoError(t, err)

	_, err = svc.UpdateContact(ctx, c.ID, decode[contact.UpdateContactRequest](t, `{}`))
	assert.EqualError(t, err, "No fields to update")

	_, err = svc.UpdateContact(ctx, c.ID, decode[contact.UpdateContactRequest](t, `{"status":"vip"}`))
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)

	_, err = svc.UpdateContact(ctx, c.ID, decode[contact.UpdateContactRequest](t, `{"first_name":""}`))
	assert.EqualError(t, err, "First name is required")

	_, err = svc.UpdateContact(ctx, 999, decode[contact.UpdateContactRequest](t, `{"title":"CTO"}`))
	assert.EqualError(t, err, "Contact not found")

	updated, err := svc.UpdateContact(ctx, c.ID, decode[contact.UpdateContactRequest](t, `{"status":"active","company_id":"`+itoa(acme.ID)+`"}`))
	require.NoError(t, err)
	assert.Equal(t, contact.StatusActive, updated.Status)
	require.NotNil(t, updated.CompanyName)
	assert.Equal(t, "Acme", *updated.CompanyName)
}

func TestListContactsIgnoresMalformedCompanyFilter(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	for _, name := range []string{"Ann", "Bob"} {
		_, err := svc.CreateContact(ctx, &contact.CreateContactRequest{FirstName: name})
		require.NoError(t, err)
	}

	res, err := svc.ListContacts(ctx, &contact.ContactListFilters{CompanyID: "abc"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
	assert.Equal(t, listing.DefaultLimit, res.Limit)

	res, err = svc.ListContacts(ctx, &contact.ContactListFilters{Status: "active"})
	require.NoError(t, err)
	assert.Zero(t, res.Total)
	assert.NotNil(t, res.Contacts)

	res, err = svc.ListContacts(ctx, &contact.ContactListFilters{Status: " lead "})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
}

func itoa(id int64) string {
	out, _ := json.Marshal(id)
	return string(out)
}
