package models

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Dog represents a single adoptable dog returned by the catalog
type Dog struct {
	ID      string `json:"id"`
	Img     string `json:"img"`
	Name    string `json:"name"`
	Age     int    `json:"age"`
	ZipCode string `json:"zip_code"`
	Breed   string `json:"breed"`
}

// SortDirection is the breed sort order used by the search endpoint
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Valid reports whether d is one of the known directions
func (d SortDirection) Valid() bool {
	return d == SortAsc || d == SortDesc
}

// Flip returns the opposite direction
func (d SortDirection) Flip() SortDirection {
	if d == SortDesc {
		return SortAsc
	}
	return SortDesc
}

// SearchQuery holds the parameters sent to GET /dogs/search
type SearchQuery struct {
	Breeds []string // nil = all breeds (parameter omitted)
	Size   int
	From   int
	Sort   string // e.g. "breed:asc"
}

// Values renders the query as URL parameters.
// Breeds are repeated per value and omitted entirely when empty.
func (q SearchQuery) Values() url.Values {
	v := url.Values{}
	for _, b := range q.Breeds {
		v.Add("breeds", b)
	}
	v.Set("size", strconv.Itoa(q.Size))
	v.Set("from", strconv.Itoa(q.From))
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	return v
}

// SearchResult is the response of GET /dogs/search
type SearchResult struct {
	ResultIDs []string `json:"resultIds"`
	Total     int      `json:"total"`
	Next      string   `json:"next,omitempty"`
	Prev      string   `json:"prev,omitempty"`
}

// MatchResult is a resolved match: the id chosen by the remote service
// and the record it was hydrated into
type MatchResult struct {
	ID  string
	Dog Dog
}

// MatchRecord is a row of the local match history
type MatchRecord struct {
	DogID     string
	Name      string
	Breed     string
	MatchedAt time.Time
}

// Describe returns a one-line summary used in lists and status messages
func (d Dog) Describe() string {
	var b strings.Builder
	b.WriteString(d.Name)
	if d.Breed != "" {
		b.WriteString(" (")
		b.WriteString(d.Breed)
		b.WriteString(")")
	}
	return b.String()
}
