// internal/app/server.go
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"crm-service/internal/config"
	"crm-service/internal/db"
	companyHandler "crm-service/internal/handlers/company"
	contactHandler "crm-service/internal/handlers/contact"
	dealHandler "crm-service/internal/handlers/deal"
	statsHandler "crm-service/internal/handlers/stats"
	"crm-service/internal/middleware"
	"crm-service/internal/repository/sqlstore"
	companysvc "crm-service/internal/service/company"
	contactsvc "crm-service/internal/service/contact"
	dealsvc "crm-service/internal/service/deal"
	statssvc "crm-service/internal/service/stats"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	logger *zap.Logger

	mu         sync.Mutex
	closed     bool
	conn       *sql.DB
	httpServer *http.Server
}

func NewServer(cfg config.AppConfig, logger *zap.Logger) *Server {
	return &Server{cfg: cfg, logger: logger}
}

// Start connects the store, wires the API and serves until Shutdown is
// called.
func (s *Server) Start(ctx context.Context) error {
	// ----- Store -----
	conn, dialect, err := db.Connect(ctx, s.cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", s.cfg.DB.Driver, err)
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close()
		return nil
	}
	s.conn = conn
	s.mu.Unlock()
	s.logger.Info("database connected", zap.String("dialect", string(dialect)))

	if !s.cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// ----- Router -----
	engine := NewEngine(s.cfg, s.logger, sqlstore.NewDB(conn, dialect))

	// ----- Start HTTP -----
	httpServer := &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: engine,
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.httpServer = httpServer
	s.mu.Unlock()
	s.logger.Info("server listening", zap.String("addr", s.cfg.HTTPAddr))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and closes the store.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true

	var errs []error
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
	}
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}

// NewEngine builds repositories, services and handlers over store and
// returns the configured gin engine.
func NewEngine(cfg config.AppConfig, logger *zap.Logger, store *sqlstore.DB) *gin.Engine {
	// ----- Repositories -----
	companyRepo := sqlstore.NewCompanyRepository(store)
	contactRepo := sqlstore.NewContactRepository(store)
	dealRepo := sqlstore.NewDealRepository(store)
	statsRepo := sqlstore.NewStatsRepository(store)

	// ----- Services -----
	companyService := companysvc.NewCompanyService(companyRepo, logger)
	contactService := contactsvc.NewContactService(contactRepo, logger)
	dealService := dealsvc.NewDealService(dealRepo, logger)
	statsService := statssvc.NewStatsService(statsRepo, logger)

	// ----- Handlers -----
	handlers := &Handlers{
		CompanyHandler: companyHandler.NewCompanyHandler(companyService),
		ContactHandler: contactHandler.NewContactHandler(contactService),
		DealHandler:    dealHandler.NewDealHandler(dealService),
		StatsHandler:   statsHandler.NewStatsHandler(statsService),
		Metrics:        middleware.NewMetrics(),
		Store:          store,
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(logger),
		middleware.RecoveryMiddleware(logger),
		middleware.CORSMiddleware(cfg.CORSOrigins),
		handlers.Metrics.Middleware(),
	)

	SetupRouter(engine, logger, handlers)
	return engine
}
