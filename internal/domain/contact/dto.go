// internal/domain/contact/dto.go
package contact

import (
	"strings"

	"crm-service/internal/domain/listing"
	"crm-service/internal/domain/shared"
)

var (
	SortColumns   = []string{"id", "first_name", "last_name", "email", "status", "company_id", "created_at"}
	SearchColumns = []string{"first_name", "last_name", "email", "title"}
)

type CreateContactRequest struct {
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	CompanyID shared.OptionalID `json:"company_id,omitzero"`
	Title     string            `json:"title"`
	Status    string            `json:"status,omitempty"`
}

// Trim strips surrounding whitespace from every text field.
func (r *CreateContactRequest) Trim() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Title = strings.TrimSpace(r.Title)
	r.Status = strings.TrimSpace(r.Status)
}

type UpdateContactRequest struct {
	FirstName *string           `json:"first_name,omitempty"`
	LastName  *string           `json:"last_name,omitempty"`
	Email     *string           `json:"email,omitempty"`
	Phone     *string           `json:"phone,omitempty"`
	Title     *string           `json:"title,omitempty"`
	Status    *string           `json:"status,omitempty"`
	CompanyID shared.OptionalID `json:"company_id,omitzero"`
}

func (r UpdateContactRequest) Fields() []shared.Field {
	var fields []shared.Field
	add := func(column string, v *string) {
		if v = shared.TrimPtr(v); v != nil {
			fields = append(fields, shared.Field{Column: column, Value: *v})
		}
	}
	add("first_name", r.FirstName)
	add("last_name", r.LastName)
	add("email", r.Email)
	add("phone", r.Phone)
	add("title", r.Title)
	add("status", r.Status)
	if r.CompanyID.Set {
		fields = append(fields, shared.Field{Column: "company_id", Value: r.CompanyID.Value()})
	}
	return fields
}

type ContactListFilters struct {
	listing.Request
	Status    string `form:"status"`
	CompanyID string `form:"company_id"`
}

type ContactListResponse struct {
	Contacts []Contact `json:"contacts"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}

type ContactResponse struct {
	Contact *Contact `json:"contact"`
}

type LookupResponse struct {
	Contacts []Lookup `json:"contacts"`
}
