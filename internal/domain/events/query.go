package events

import (
	"net/url"

	"github.com/cluelogs/server/internal/sanitize"
)

// DefaultLimit caps a list response when the caller supplies no LIMIT.
const DefaultLimit = 50

type Sort int

const (
	// SortInsertion returns records in insertion order.
	SortInsertion Sort = iota
	SortDateAsc
	SortDateDesc
)

// Query is a sanitized list query: filter by date upper bound, sort, skip,
// limit. Where holds a canonical ISO-8601 date or is empty.
type Query struct {
	Limit  int
	Offset int
	Where  string
	Sort   Sort
}

// ParseQuery builds a Query from the raw LIMIT, OFFSET, WHERE and SORT
// parameters. Each one is independently sanitized; anything the sanitizers
// reject falls back to its default, so ParseQuery cannot fail.
func ParseQuery(values url.Values) Query {
	query := Query{Limit: DefaultLimit}

	if limit, ok := sanitize.Int(values.Get("LIMIT")); ok {
		query.Limit = limit
	}
	if offset, ok := sanitize.Int(values.Get("OFFSET")); ok {
		query.Offset = offset
	}
	if where, ok := sanitize.DateString(values.Get("WHERE")); ok {
		query.Where = where
	}

	// Date is the only sortable field; unknown slugs keep insertion order.
	switch sanitize.Slug(values.Get("SORT")) {
	case "date":
		query.Sort = SortDateAsc
	case "-date":
		query.Sort = SortDateDesc
	}
	return query
}
