package sqlstore

import (
	"strings"
	"testing"

	"crm-service/internal/db"
	"crm-service/internal/domain/listing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSource = ListSource{
	Table:      "deals d",
	Alias:      "d",
	Select:     "d.id, d.name",
	Joins:      " LEFT JOIN contacts ct ON d.contact_id = ct.id",
	Sortable:   []string{"id", "name", "value"},
	Searchable: []string{"name", "notes"},
	SumColumn:  "value",
}

func TestSortColumnFallsBackToID(t *testing.T) {
	assert.Equal(t, "name", SortColumn(testSource.Sortable, "name"))
	assert.Equal(t, "id", SortColumn(testSource.Sortable, "password"))
	assert.Equal(t, "id", SortColumn(testSource.Sortable, "name; DROP TABLE deals"))
	assert.Equal(t, "id", SortColumn(testSource.Sortable, ""))
}

func TestBuildListPostgres(t *testing.T) {
	params := listing.Params{Page: 3, Limit: 10, Sort: "value", Order: listing.Asc, Search: "acme"}
	plan := BuildList(db.Postgres, testSource, params, Filter{Column: "stage", Value: "won"})

	assert.Equal(t,
		`SELECT d.id, d.name FROM deals d LEFT JOIN contacts ct ON d.contact_id = ct.id`+
			` WHERE (d.name ILIKE $1 OR d.notes ILIKE $2) AND d.stage = $3`+
			` ORDER BY d."value" ASC, d.id ASC LIMIT $4 OFFSET $5`,
		plan.Rows.SQL)
	assert.Equal(t, []any{"%acme%", "%acme%", "won", 10, 20}, plan.Rows.Args)

	assert.Equal(t, `SELECT COUNT(*) FROM deals d WHERE (d.name ILIKE $1 OR d.notes ILIKE $2) AND d.stage = $3`, plan.Count.SQL)
	assert.Equal(t, []any{"%acme%", "%acme%", "won"}, plan.Count.Args)

	require.NotNil(t, plan.Sum)
	assert.Equal(t, `SELECT COALESCE(SUM(d.value), 0) FROM deals d WHERE (d.name ILIKE $1 OR d.notes ILIKE $2) AND d.stage = $3`, plan.Sum.SQL)
	assert.Equal(t, plan.Count.Args, plan.Sum.Args)
}

func TestBuildListSQLiteDefaults(t *testing.T) {
	params := listing.Request{}.Params()
	src := testSource
	src.SumColumn = ""

	plan := BuildList(db.SQLite, src, params)

	assert.Equal(t,
		`SELECT d.id, d.name FROM deals d LEFT JOIN contacts ct ON d.contact_id = ct.id ORDER BY d."id" DESC LIMIT ? OFFSET ?`,
		plan.Rows.SQL)
	assert.Equal(t, []any{25, 0}, plan.Rows.Args)
	assert.Equal(t, `SELECT COUNT(*) FROM deals d`, plan.Count.SQL)
	assert.Empty(t, plan.Count.Args)
	assert.Nil(t, plan.Sum)
}

func TestBuildListNeverSplicesUserInput(t *testing.T) {
	hostile := "x' OR '1'='1"
	params := listing.Params{Page: 1, Limit: 5, Sort: "name\" DESC; --", Order: listing.Desc, Search: hostile}

	plan := BuildList(db.SQLite, testSource, params)

	assert.False(t, strings.Contains(plan.Rows.SQL, hostile))
	assert.Contains(t, plan.Rows.SQL, `ORDER BY d."id" DESC`)
	assert.Equal(t, "%"+hostile+"%", plan.Rows.Args[0])
}

func TestUpdateSQL(t *testing.T) {
	query, args := updateSQL(db.Postgres, "deals", nil, now(), 7)
	assert.Equal(t, "UPDATE deals SET updated_at = $1 WHERE id = $2", query)
	assert.Len(t, args, 2)
	assert.Equal(t, int64(7), args[1])

	assert.Equal(t, "INSERT INTO deals (name, value) VALUES (?, ?) RETURNING id", insertSQL(db.SQLite, "deals", []string{"name", "value"}))
}
