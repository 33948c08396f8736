// Package apptest runs the full API over a throwaway SQLite database for
// tests of HTTP consumers.
package apptest

import (
	"context"
	"database/sql"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"crm-service/internal/app"
	"crm-service/internal/config"
	"crm-service/internal/db"
	"crm-service/internal/repository/sqlstore"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Server is a running API plus direct access to its database.
type Server struct {
	*httptest.Server
	DB *sql.DB
}

// NewServer starts the API on a random port. Both are closed when the test
// ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "crm.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background(), conn, db.SQLite))

	engine := app.NewEngine(config.AppConfig{CORSOrigins: []string{"*"}}, zap.NewNop(), sqlstore.NewDB(conn, db.SQLite))
	srv := httptest.NewServer(engine)

	t.Cleanup(func() {
		srv.Close()
		conn.Close()
	})
	return &Server{Server: srv, DB: conn}
}
