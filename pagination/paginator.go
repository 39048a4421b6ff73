// Package pagination splits a counted result set into pages. The last page
// absorbs up to Orphans trailing items instead of leaving a near-empty page.
package pagination

import (
	"strconv"
	"strings"
)

// Paginator holds the page size and orphan threshold for one listing
type Paginator struct {
	PerPage int
	Orphans int
}

// Page is one window over a result set of Count items
type Page struct {
	Number   int   `json:"number"`
	NumPages int   `json:"numPages"`
	Count    int64 `json:"count"`
	PerPage  int   `json:"perPage"`

	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`

	offset int
	limit  int
}

// New returns a paginator; orphans is clamped to [0, perPage)
func New(perPage, orphans int) Paginator {
	if perPage < 1 {
		perPage = 1
	}
	if orphans < 0 {
		orphans = 0
	}
	if orphans >= perPage {
		orphans = perPage - 1
	}
	return Paginator{PerPage: perPage, Orphans: orphans}
}

// NumPages is the number of pages for count items; an empty set has one page
func (p Paginator) NumPages(count int64) int {
	if count <= 0 {
		return 1
	}
	hits := count - int64(p.Orphans)
	if hits < 1 {
		hits = 1
	}
	return int((hits + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// GetPage resolves a raw page parameter. Anything that is not an integer
// yields page 1, a number past either end yields the nearest valid page.
func (p Paginator) GetPage(count int64, raw string) Page {
	number, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		number = 1
	}
	return p.Page(count, number)
}

// Page returns page number, clamped to the valid range
func (p Paginator) Page(count int64, number int) Page {
	numPages := p.NumPages(count)
	if number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	bottom := (number - 1) * p.PerPage
	top := bottom + p.PerPage
	if int64(top+p.Orphans) >= count {
		top = int(count)
	}
	if top < bottom {
		top = bottom
	}

	return Page{
		Number:   number,
		NumPages: numPages,
		Count:    count,
		PerPage:  p.PerPage,

		HasNext:     number < numPages,
		HasPrevious: number > 1,

		offset: bottom,
		limit:  top - bottom,
	}
}

// Offset is the index of the first item on the page
func (pg Page) Offset() int { return pg.offset }

// Limit is the number of items on the page
func (pg Page) Limit() int { return pg.limit }

// IsPaginated reports whether the result spans more than one page
func (pg Page) IsPaginated() bool { return pg.NumPages > 1 }
