// Package crmstate owns the client-side view state: one ListState per
// entity and a Coordinator that keeps them, the pipeline board, the stats
// and the lookups in step with the API.
package crmstate

import (
	"context"
	"errors"
	"maps"
	"strings"
	"sync"

	"crm-service/internal/client"
	"crm-service/internal/domain/listing"
)

// Page is what one list fetch returns.
type Page[R any] struct {
	Rows       []R
	Total      int64
	TotalValue float64
}

// Fetcher loads one page for the given query.
type Fetcher[R any] func(ctx context.Context, q client.ListQuery) (Page[R], error)

// Snapshot is a copy of a ListState at one instant.
type Snapshot[R any] struct {
	Page    int
	Limit   int
	Sort    string
	Order   listing.Order
	Search  string
	Filters map[string]string

	Total      int64
	TotalValue float64
	Rows       []R
}

// TotalPages is never less than 1.
func (s Snapshot[R]) TotalPages() int {
	return listing.TotalPages(s.Total, s.Limit)
}

// ListState holds one entity's paging, sort and search parameters and the
// rows last fetched for them. Every fetch carries a token; a response whose
// token is no longer the latest is dropped.
type ListState[R any] struct {
	fetch Fetcher[R]

	// onChange runs once after every effective parameter change.
	onChange func(ctx context.Context) error
	onError  func(err error)

	mu      sync.Mutex
	params  listing.Params
	filters map[string]string
	total   int64
	value   float64
	rows    []R
	issued  uint64
}

// NewListState starts at page 1, 25 rows, newest first.
func NewListState[R any](fetch Fetcher[R]) *ListState[R] {
	return &ListState[R]{
		fetch:   fetch,
		params:  listing.Request{}.Params(),
		filters: map[string]string{},
	}
}

// Snapshot copies the current state.
func (s *ListState[R]) Snapshot() Snapshot[R] {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot[R]{
		Page:       s.params.Page,
		Limit:      s.params.Limit,
		Sort:       s.params.Sort,
		Order:      s.params.Order,
		Search:     s.params.Search,
		Filters:    maps.Clone(s.filters),
		Total:      s.total,
		TotalValue: s.value,
		Rows:       append([]R(nil), s.rows...),
	}
}

// SetPage moves to page n (clamped to [1, listing.MaxPage]).
func (s *ListState[R]) SetPage(ctx context.Context, n int) error {
	n = min(max(n, 1), listing.MaxPage)
	return s.update(ctx, func(p *listing.Params, _ map[string]string) {
		p.Page = n
	})
}

// SetLimit changes the page size (clamped to [1, 100]) and returns to page 1.
func (s *ListState[R]) SetLimit(ctx context.Context, limit int) error {
	switch {
	case limit < 1:
		limit = listing.DefaultLimit
	case limit > listing.MaxLimit:
		limit = listing.MaxLimit
	}
	return s.update(ctx, func(p *listing.Params, _ map[string]string) {
		if p.Limit != limit {
			p.Limit = limit
			p.Page = 1
		}
	})
}

// SetSort sorts by col. Picking the current column flips the direction;
// a new column starts ascending. Either way the page resets to 1.
func (s *ListState[R]) SetSort(ctx context.Context, col string) error {
	return s.update(ctx, func(p *listing.Params, _ map[string]string) {
		if p.Sort == col {
			p.Order = p.Order.Reverse()
		} else {
			p.Sort = col
			p.Order = listing.Asc
		}
		p.Page = 1
	})
}

// SetSearch replaces the search text and resets to page 1.
func (s *ListState[R]) SetSearch(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	return s.update(ctx, func(p *listing.Params, _ map[string]string) {
		if p.Search != text {
			p.Search = text
			p.Page = 1
		}
	})
}

// SetFilter sets (or with an empty value clears) an entity filter such as
// stage or company_id and resets to page 1.
func (s *ListState[R]) SetFilter(ctx context.Context, key, value string) error {
	value = strings.TrimSpace(value)
	return s.update(ctx, func(_ *listing.Params, f map[string]string) {
		if f[key] == value {
			return
		}
		if value == "" {
			delete(f, key)
		} else {
			f[key] = value
		}
	})
}

// SetParams replaces paging, sort, search and filters in one step and
// fetches, even when nothing changed. Blank filter values are dropped.
func (s *ListState[R]) SetParams(ctx context.Context, p listing.Params, filters map[string]string) error {
	s.mu.Lock()
	s.params = p
	clear(s.filters)
	for k, v := range filters {
		if v = strings.TrimSpace(v); v != "" {
			s.filters[k] = v
		}
	}
	s.mu.Unlock()

	return s.Refresh(ctx)
}

// update applies mutate and, only when something actually changed, fetches
// the new page and then fires onChange.
func (s *ListState[R]) update(ctx context.Context, mutate func(p *listing.Params, f map[string]string)) error {
	s.mu.Lock()
	before := s.params
	beforeFilters := maps.Clone(s.filters)
	mutate(&s.params, s.filters)
	changed := s.params != before || !maps.Equal(s.filters, beforeFilters)
	if changed && s.params == before {
		// Filter-only change.
		s.params.Page = 1
	}
	s.mu.Unlock()

	if !changed {
		return nil
	}

	err := s.Refresh(ctx)
	if s.onChange != nil {
		if cerr := s.onChange(ctx); cerr != nil {
			s.report(cerr)
			err = errors.Join(err, cerr)
		}
	}
	return err
}

// Refresh fetches the page for the current parameters. A response that has
// been overtaken by a newer Refresh is discarded.
func (s *ListState[R]) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.issued++
	token := s.issued
	q := client.ListQuery{Params: s.params, Filters: maps.Clone(s.filters)}
	s.mu.Unlock()

	page, err := s.fetch(ctx, q)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.issued {
		return nil
	}
	if err != nil {
		s.report(err)
		return err
	}

	s.rows = page.Rows
	s.total = page.Total
	s.value = page.TotalValue
	return nil
}

func (s *ListState[R]) report(err error) {
	if s.onError != nil {
		s.onError(err)
	}
}
