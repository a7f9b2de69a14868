// Package cursor tracks the search filter, sort order and page offset
// and derives the catalog search request from them.
package cursor

import (
	"github.com/thesavant42/pawsome/internal/models"
)

// DefaultPageSize matches the page size of the adoption web app
const DefaultPageSize = 12

// Cursor is the single writer of search paging and filter state.
// Offset is always a multiple of the page size.
type Cursor struct {
	breed    string
	offset   int
	pageSize int
	sort     models.SortDirection
}

// New creates a cursor at the first page, all breeds, ascending
func New(pageSize int) *Cursor {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Cursor{
		pageSize: pageSize,
		sort:     models.SortAsc,
	}
}

// SetFilter replaces the breed filter and returns to the first page.
// An empty breed means all breeds.
func (c *Cursor) SetFilter(breed string) {
	c.breed = breed
	c.offset = 0
}

// SetSort replaces the sort direction; the offset is kept.
// Unknown directions are ignored.
func (c *Cursor) SetSort(dir models.SortDirection) {
	if !dir.Valid() {
		return
	}
	c.sort = dir
}

// ToggleSort flips between ascending and descending
func (c *Cursor) ToggleSort() {
	c.sort = c.sort.Flip()
}

// NextPage advances by one page. Callers check CanAdvance first.
func (c *Cursor) NextPage() {
	c.offset += c.pageSize
}

// PrevPage goes back one page, never below the first
func (c *Cursor) PrevPage() {
	c.offset -= c.pageSize
	if c.offset < 0 {
		c.offset = 0
	}
}

// CanAdvance reports whether a fetch that returned lastCount ids leaves
// room for another page. A short page marks the end of the results.
func (c *Cursor) CanAdvance(lastCount int) bool {
	return lastCount >= c.pageSize
}

// CanRetreat reports whether there is a previous page
func (c *Cursor) CanRetreat() bool {
	return c.offset > 0
}

// Position is a saved filter, sort and offset
type Position struct {
	Breed  string
	Offset int
	Sort   models.SortDirection
}

// Position returns the current position
func (c *Cursor) Position() Position {
	return Position{Breed: c.breed, Offset: c.offset, Sort: c.sort}
}

// Seek returns to a saved position. The offset is snapped down to a page
// boundary and an invalid sort is ignored.
func (c *Cursor) Seek(p Position) {
	c.breed = p.Breed
	c.offset = 0
	if p.Offset > 0 {
		c.offset = p.Offset - p.Offset%c.pageSize
	}
	c.SetSort(p.Sort)
}

// Breed returns the current filter ("" = all breeds)
func (c *Cursor) Breed() string { return c.breed }

// Offset returns the current page offset
func (c *Cursor) Offset() int { return c.offset }

// PageSize returns the fixed page size
func (c *Cursor) PageSize() int { return c.pageSize }

// Sort returns the current sort direction
func (c *Cursor) Sort() models.SortDirection { return c.sort }

// Page returns the 1-based page number
func (c *Cursor) Page() int {
	return c.offset/c.pageSize + 1
}

// Query derives the search request. This is the only place the request
// shape is built, so filter, sort and paging always agree.
func (c *Cursor) Query() models.SearchQuery {
	q := models.SearchQuery{
		Size: c.pageSize,
		From: c.offset,
		Sort: "breed:" + string(c.sort),
	}
	if c.breed != "" {
		q.Breeds = []string{c.breed}
	}
	return q
}
