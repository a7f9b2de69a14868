// Package sharelink maps a favorites snapshot to and from the shareable
// favorites link: <base>/favorites?ids=a,b,c
package sharelink

import (
	"net/url"
	"strings"

	"github.com/thesavant42/pawsome/internal/selection"
)

const (
	// Param is the query parameter that carries the encoded ids
	Param = "ids"
	// Delimiter separates ids inside the parameter value
	Delimiter = ","
	// Path is the favorites page path of a share link
	Path = "/favorites"
)

// Encode joins the snapshot ids with the delimiter.
// ok is false for an empty snapshot: the parameter must be omitted
// rather than sent empty so that links stay canonical.
func Encode(s selection.Snapshot) (value string, ok bool) {
	if len(s) == 0 {
		return "", false
	}
	return strings.Join(s, Delimiter), true
}

// Decode splits an encoded value back into a snapshot. Empty tokens
// (trailing or doubled delimiters) are dropped and first-occurrence order
// is kept. Decode never fails.
func Decode(value string) selection.Snapshot {
	if value == "" {
		return selection.Snapshot{}
	}
	return selection.Normalize(strings.Split(value, Delimiter))
}

// BuildQuery returns the raw query string for the snapshot, WITHOUT the
// leading '?'. Each id is escaped on its own; the delimiter must stay
// literal (not %2C) so the link matches what the web app produces.
// Returns "" for an empty snapshot.
func BuildQuery(s selection.Snapshot) string {
	if len(s) == 0 {
		return ""
	}
	escaped := make([]string, len(s))
	for i, id := range s {
		escaped[i] = url.QueryEscape(id)
	}
	return Param + "=" + strings.Join(escaped, Delimiter)
}

// Link builds the full share link under baseURL
func Link(baseURL string, s selection.Snapshot) string {
	link := strings.TrimRight(baseURL, "/") + Path
	if q := BuildQuery(s); q != "" {
		link += "?" + q
	}
	return link
}

// FromURL extracts the snapshot from a share link, a path with a query,
// or a bare query string ("ids=a,b"). Anything unparsable yields an
// empty snapshot.
func FromURL(raw string) selection.Snapshot {
	s, _ := Lookup(raw)
	return s
}

// Lookup is FromURL that also reports whether the link carried the ids
// parameter at all. Callers use found to tell "shared an empty list"
// apart from "no selection in this link".
func Lookup(raw string) (s selection.Snapshot, found bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return selection.Snapshot{}, false
	}

	query := raw
	if i := strings.Index(raw, "?"); i >= 0 {
		query = raw[i+1:]
	} else if strings.Contains(raw, "://") || strings.HasPrefix(raw, "/") {
		return selection.Snapshot{}, false
	}
	if i := strings.Index(query, "#"); i >= 0 {
		query = query[:i]
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return selection.Snapshot{}, false
	}
	if _, ok := values[Param]; !ok {
		return selection.Snapshot{}, false
	}
	return Decode(values.Get(Param)), true
}
