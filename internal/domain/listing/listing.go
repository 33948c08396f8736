// Package listing normalizes the paging, sorting and search parameters shared
// by every list endpoint. Bad values are clamped, never rejected.
package listing

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 25
	MaxLimit     = 100
	DefaultSort  = "id"

	// MaxPage keeps (page-1)*limit inside an int for every allowed limit.
	MaxPage = math.MaxInt/MaxLimit + 1
)

type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// ParseOrder accepts asc/desc in any case and falls back to desc.
func ParseOrder(raw string) Order {
	switch Order(strings.ToLower(strings.TrimSpace(raw))) {
	case Asc:
		return Asc
	default:
		return Desc
	}
}

// Reverse returns the opposite direction.
func (o Order) Reverse() Order {
	if o == Asc {
		return Desc
	}
	return Asc
}

// Request is the raw query string as bound by gin.
type Request struct {
	Page   string `form:"page"`
	Limit  string `form:"limit"`
	Sort   string `form:"sort"`
	Order  string `form:"order"`
	Search string `form:"search"`
}

// Params is a Request after clamping. Sort is not yet checked against an
// entity allow-list; the query builder does that.
type Params struct {
	Page   int
	Limit  int
	Sort   string
	Order  Order
	Search string
}

// Params clamps page to [1, MaxPage] and limit to [1, 100], defaulting to 25 when
// the limit is missing or not a positive number.
func (r Request) Params() Params {
	page, err := strconv.Atoi(strings.TrimSpace(r.Page))
	switch {
	case err != nil && !isOverflow(err), page < 1:
		page = DefaultPage
	case err != nil, page > MaxPage:
		page = MaxPage
	}

	limit, err := strconv.Atoi(strings.TrimSpace(r.Limit))
	switch {
	case err != nil || limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	sort := strings.TrimSpace(r.Sort)
	if sort == "" {
		sort = DefaultSort
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Sort:   sort,
		Order:  ParseOrder(r.Order),
		Search: strings.TrimSpace(r.Search),
	}
}

// Offset is the number of rows skipped before this page. It saturates
// instead of overflowing.
func (p Params) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

func isOverflow(err error) bool {
	var numErr *strconv.NumError
	return errors.As(err, &numErr) && numErr.Err == strconv.ErrRange
}

// ParseID parses an optional numeric filter such as company_id. Blank or
// malformed values mean "no filter".
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// PageLen is how many rows a page holds given the filtered total.
func PageLen(total int64, page, limit int) int {
	remaining := total - int64(page-1)*int64(limit)
	if remaining <= 0 {
		return 0
	}
	if remaining > int64(limit) {
		return limit
	}
	return int(remaining)
}

// TotalPages is never less than 1 so an empty list still shows "page 1 of 1".
func TotalPages(total int64, limit int) int {
	if limit < 1 || total <= 0 {
		return 1
	}
	pages := int(total / int64(limit))
	if total%int64(limit) > 0 {
		pages++
	}
	return pages
}
