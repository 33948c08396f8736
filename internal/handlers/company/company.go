// internal/handlers/company/company.go
package company

import (
	"net/http"

	"crm-service/internal/domain/company"
	"crm-service/internal/handlers"
	"crm-service/internal/pkg/response"
	service "crm-service/internal/service/company"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companyService *service.CompanyService
}

func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
	}
}

// ListCompanies returns one page of companies
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	var filters company.CompanyListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "Invalid query parameters")
		return
	}

	result, err := h.companyService.ListCompanies(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Lookup returns every company's id and name for selectors
func (h *CompanyHandler) Lookup(c *gin.Context) {
	result, err := h.companyService.Lookup(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, company.LookupResponse{Companies: result})
}

func (h *CompanyHandler) GetCompany(c *gin.Context) {
	id, ok := handlers.ParseID(c)
	if !ok {
		return
	}

	result, err := h.companyService.GetCompany(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, company.CompanyResponse{Company: result})
}

// CreateCompany creates a new company
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req company.CreateCompanyRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	result, err := h.companyService.CreateCompany(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, company.CompanyResponse{Company: result})
}

// UpdateCompany changes only the fields present in the body
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	id, ok := handlers.ParseID(c)
	if !ok {
		return
	}

	var req company.UpdateCompanyRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	result, err := h.companyService.UpdateCompany(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, company.CompanyResponse{Company: result})
}

func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	id, ok := handlers.ParseID(c)
	if !ok {
		return
	}

	if err := h.companyService.DeleteCompany(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	handlers.Deleted(c)
}
