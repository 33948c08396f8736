// internal/domain/company/dto.go
package company

import (
	"strings"

	"crm-service/internal/domain/listing"
	"crm-service/internal/domain/shared"
)

// Columns the list endpoint may sort by and search over.
var (
	SortColumns   = []string{"id", "name", "domain", "industry", "created_at"}
	SearchColumns = []string{"name", "domain", "email"}
)

type CreateCompanyRequest struct {
	Name     string `json:"name"`
	Domain   string `json:"domain"`
	Industry string `json:"industry"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Notes    string `json:"notes"`
}

// Trim strips surrounding whitespace from every field.
func (r *CreateCompanyRequest) Trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Domain = strings.TrimSpace(r.Domain)
	r.Industry = strings.TrimSpace(r.Industry)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Email = strings.TrimSpace(r.Email)
	r.Notes = strings.TrimSpace(r.Notes)
}

type UpdateCompanyRequest struct {
	Name     *string `json:"name,omitempty"`
	Domain   *string `json:"domain,omitempty"`
	Industry *string `json:"industry,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// Fields returns the trimmed assignments for every field present in the
// payload, in column order.
func (r UpdateCompanyRequest) Fields() []shared.Field {
	var fields []shared.Field
	add := func(column string, v *string) {
		if v = shared.TrimPtr(v); v != nil {
			fields = append(fields, shared.Field{Column: column, Value: *v})
		}
	}
	add("name", r.Name)
	add("domain", r.Domain)
	add("industry", r.Industry)
	add("phone", r.Phone)
	add("email", r.Email)
	add("notes", r.Notes)
	return fields
}

type CompanyListFilters struct {
	listing.Request
	Industry string `form:"industry"`
}

type CompanyListResponse struct {
	Companies []Company `json:"companies"`
	Total     int64     `json:"total"`
	Page      int       `json:"page"`
	Limit     int       `json:"limit"`
}

type CompanyResponse struct {
	Company *Company `json:"company"`
}

type LookupResponse struct {
	Companies []Lookup `json:"companies"`
}
