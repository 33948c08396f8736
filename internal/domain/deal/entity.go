// internal/domain/deal/entity.go
package deal

import (
	"strings"
	"time"
)

type Deal struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	ContactID *int64  `json:"contact_id"`
	Value     float64 `json:"value"`
	Stage     Stage   `json:"stage"`
	CloseDate string  `json:"close_date"`
	Notes     string  `json:"notes"`

	// Joined through contacts and companies on every read.
	ContactFirstName *string `json:"contact_first_name,omitempty"`
	ContactLastName  *string `json:"contact_last_name,omitempty"`
	CompanyName      *string `json:"company_name,omitempty"`
	CompanyDomain    *string `json:"company_domain,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactName is the joined contact's display name, empty without a contact.
func (d Deal) ContactName() string {
	if d.ContactFirstName == nil {
		return ""
	}
	last := ""
	if d.ContactLastName != nil {
		last = *d.ContactLastName
	}
	return strings.TrimSpace(*d.ContactFirstName + " " + last)
}
