// internal/handlers/deal/deal.go
package deal

import (
	"net/http"

	"crm-service/internal/domain/deal"
	"crm-service/internal/handlers"
	"crm-service/internal/pkg/response"
	service "crm-service/internal/service/deal"

	"github.com/gin-gonic/gin"
)

type DealHandler struct {
	dealService *service.DealService
}

func NewDealHandler(dealService *service.DealService) *DealHandler {
	return &DealHandler{
		dealService: dealService,
	}
}

// ListDeals returns one page of deals and the filtered value total
func (h *DealHandler) ListDeals(c *gin.Context) {
	var filters deal.DealListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "Invalid query parameters")
		return
	}

	result, err := h.dealService.ListDeals(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Board returns every deal for the pipeline view
func (h *DealHandler) Board(c *gin.Context) {
	result, err := h.dealService.Pipeline(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, deal.BoardResponse{Deals: result})
}

func (h *DealHandler) GetDeal(c *gin.Context) {
	id, ok := handlers.ParseID(c)
	if !ok {
		return
	}

	result, err := h.dealService.GetDeal(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, deal.DealResponse{Deal: result})
}

func (h *DealHandler) CreateDeal(c *gin.Context) {
	var req deal.CreateDealRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	result, err := h.dealService.CreateDeal(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, deal.DealResponse{Deal: result})
}

// UpdateDeal applies a partial update; the board's stage moves land here
func (h *DealHandler) UpdateDeal(c *gin.Context) {
	id, ok := handlers.ParseID(c)
	if !ok {
		return
	}

	var req deal.UpdateDealRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	result, err := h.dealService.UpdateDeal(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, deal.DealResponse{Deal: result})
}

func (h *DealHandler) DeleteDeal(c *gin.Context) {
	id, ok := handlers.ParseID(c)
	if !ok {
		return
	}

	if err := h.dealService.DeleteDeal(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	handlers.Deleted(c)
}
