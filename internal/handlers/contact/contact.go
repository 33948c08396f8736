// internal/handlers/contact/contact.go
package contact

import (
	"net/http"

	"crm-service/internal/domain/contact"
	"crm-service/internal/handlers"
	"crm-service/internal/pkg/response"
	service "crm-service/internal/service/contact"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// ListContacts returns one page of contacts joined with their company
func (h *ContactHandler) ListContacts(c *gin.Context) {
	var filters contact.ContactListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "Invalid query parameters")
		return
	}

	result, err := h.contactService.ListContacts(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *ContactHandler) Lookup(c *gin.Context) {
	result, err := h.contactService.Lookup(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, contact.LookupResponse{Contacts: result})
}

func (h *ContactHandler) GetContact(c *gin.Context) {
	id, ok := handlers.ParseID(c)
	if !ok {
		return
	}

	result, err := h.contactService.GetContact(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, contact.ContactResponse{Contact: result})
}

func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req contact.CreateContactRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	result, err := h.contactService.CreateContact(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, contact.ContactResponse{Contact: result})
}

func (h *ContactHandler) UpdateContact(c *gin.Context) {
	id, ok := handlers.ParseID(c)
	if !ok {
		return
	}

	var req contact.UpdateContactRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	result, err := h.contactService.UpdateContact(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, contact.ContactResponse{Contact: result})
}

func (h *ContactHandler) DeleteContact(c *gin.Context) {
	id, ok := handlers.ParseID(c)
	if !ok {
		return
	}

	if err := h.contactService.DeleteContact(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	handlers.Deleted(c)
}
