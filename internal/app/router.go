// internal/app/router.go
package app

import (
	"context"
	"net/http"
	"time"

	companyHandler "crm-service/internal/handlers/company"
	contactHandler "crm-service/internal/handlers/contact"
	dealHandler "crm-service/internal/handlers/deal"
	statsHandler "crm-service/internal/handlers/stats"
	"crm-service/internal/middleware"
	"crm-service/internal/pkg/response"
	"crm-service/internal/repository/sqlstore"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handlers struct {
	CompanyHandler *companyHandler.CompanyHandler
	ContactHandler *contactHandler.ContactHandler
	DealHandler    *dealHandler.DealHandler
	StatsHandler   *statsHandler.StatsHandler
	Metrics        *middleware.Metrics
	Store          *sqlstore.DB
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Not found")
	})

	// ==================== Metrics ====================
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.Metrics.Registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.Store.Conn().PingContext(ctx); err != nil {
			logger.Warn("health check failed", zap.Error(err))
			response.Error(c, http.StatusServiceUnavailable, err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dialect": h.Store.Dialect()})
	})

	// ==================== Stats ====================
	api.GET("/stats", h.StatsHandler.GetStats)

	// ==================== Companies ====================
	companies := api.Group("/companies")
	{
		companies.GET("", h.CompanyHandler.ListCompanies)
		companies.GET("/all", h.CompanyHandler.Lookup)
		companies.GET("/:id", h.CompanyHandler.GetCompany)
		companies.POST("", h.CompanyHandler.CreateCompany)
		companies.PUT("/:id", h.CompanyHandler.UpdateCompany)
		companies.DELETE("/:id", h.CompanyHandler.DeleteCompany)
	}

	// ==================== Contacts ====================
	contacts := api.Group("/contacts")
	{
		contacts.GET("", h.ContactHandler.ListContacts)
		contacts.GET("/all", h.ContactHandler.Lookup)
		contacts.GET("/:id", h.ContactHandler.GetContact)
		contacts.POST("", h.ContactHandler.CreateContact)
		contacts.PUT("/:id", h.ContactHandler.UpdateContact)
		contacts.DELETE("/:id", h.ContactHandler.DeleteContact)
	}

	// ==================== Deals ====================
	deals := api.Group("/deals")
	{
		deals.GET("", h.DealHandler.ListDeals)
		deals.GET("/board", h.DealHandler.Board)
		deals.GET("/:id", h.DealHandler.GetDeal)
		deals.POST("", h.DealHandler.CreateDeal)
		deals.PUT("/:id", h.DealHandler.UpdateDeal)
		deals.DELETE("/:id", h.DealHandler.DeleteDeal)
	}
}
