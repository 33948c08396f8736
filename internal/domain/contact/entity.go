// internal/domain/contact/entity.go
package contact

import (
	"strings"
	"time"
)

// Status is a contact's lifecycle position. Values outside the known set
// may exist in stored data and are read back unchanged.
type Status string

const (
	StatusLead     Status = "lead"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusChurned  Status = "churned"
)

// Statuses lists the known statuses in display order.
var Statuses = []Status{StatusLead, StatusActive, StatusInactive, StatusChurned}

// Known reports whether s is one of Statuses.
func (s Status) Known() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// StatusOrDefault returns the trimmed raw status when known, otherwise lead.
func StatusOrDefault(raw string) Status {
	s := Status(strings.TrimSpace(raw))
	if s.Known() {
		return s
	}
	return StatusLead
}

type Contact struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	CompanyID *int64 `json:"company_id"`
	Title     string `json:"title"`
	Status    Status `json:"status"`

	// Joined from companies on every read.
	CompanyName   *string `json:"company_name,omitempty"`
	CompanyDomain *string `json:"company_domain,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName joins first and last name, dropping a missing last name.
func (c Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Lookup is the id + display projection used by contact selectors.
type Lookup struct {
	ID            int64   `json:"id"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	CompanyName   *string `json:"company_name,omitempty"`
	CompanyDomain *string `json:"company_domain,omitempty"`
}
