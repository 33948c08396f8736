// internal/domain/deal/dto.go
package deal

import (
	"strings"

	"crm-service/internal/domain/listing"
	"crm-service/internal/domain/shared"
)

var (
	SortColumns   = []string{"id", "name", "value", "stage", "close_date", "created_at"}
	SearchColumns = []string{"name", "notes"}
)

type CreateDealRequest struct {
	Name      string            `json:"name"`
	ContactID shared.OptionalID `json:"contact_id,omitzero"`
	Value     shared.Amount     `json:"value"`
	Stage     string            `json:"stage,omitempty"`
	CloseDate string            `json:"close_date"`
	Notes     string            `json:"notes"`
}

func (r *CreateDealRequest) Trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Stage = strings.TrimSpace(r.Stage)
	r.CloseDate = strings.TrimSpace(r.CloseDate)
	r.Notes = strings.TrimSpace(r.Notes)
}

type UpdateDealRequest struct {
	Name      *string           `json:"name,omitempty"`
	Stage     *string           `json:"stage,omitempty"`
	CloseDate *string           `json:"close_date,omitempty"`
	Notes     *string           `json:"notes,omitempty"`
	Value     *shared.Amount    `json:"value,omitempty"`
	ContactID shared.OptionalID `json:"contact_id,omitzero"`
}

// StageChange is the single-field update issued by board transitions.
func StageChange(stage Stage) UpdateDealRequest {
	s := string(stage)
	return UpdateDealRequest{Stage: &s}
}

func (r UpdateDealRequest) Fields() []shared.Field {
	var fields []shared.Field
	add := func(column string, v *string) {
		if v = shared.TrimPtr(v); v != nil {
			fields = append(fields, shared.Field{Column: column, Value: *v})
		}
	}
	add("name", r.Name)
	add("stage", r.Stage)
	add("close_date", r.CloseDate)
	add("notes", r.Notes)
	if r.Value != nil {
		fields = append(fields, shared.Field{Column: "value", Value: float64(*r.Value)})
	}
	if r.ContactID.Set {
		fields = append(fields, shared.Field{Column: "contact_id", Value: r.ContactID.Value()})
	}
	return fields
}

type DealListFilters struct {
	listing.Request
	Stage     string `form:"stage"`
	ContactID string `form:"contact_id"`
}

type DealListResponse struct {
	Deals      []Deal  `json:"deals"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalValue float64 `json:"totalValue"`
}

type DealResponse struct {
	Deal *Deal `json:"deal"`
}

type BoardResponse struct {
	Deals []Deal `json:"deals"`
}
