// internal/domain/stats/entity.go
package stats

// Stats are the global record counts, recomputed on every request.
type Stats struct {
	Contacts  int64   `json:"contacts"`
	Companies int64   `json:"companies"`
	Deals     int64   `json:"deals"`
	DealValue float64 `json:"dealValue"`
}
