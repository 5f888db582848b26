// Package query defines the typed description of which articles are being
// viewed, and its encoding to and from address query strings.
//
// The same parameter names are used by the navigable address and by the
// content API, so an encoded Query can be passed through verbatim.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 6
	MaxLimit     = 100

	// All is the selector value meaning "no filter".
	All = "all"
)

// Parameter names shared by the address and the API.
const (
	ParamPage       = "page"
	ParamLimit      = "limit"
	ParamSearch     = "search"
	ParamYear       = "year"
	ParamMonth      = "month"
	ParamCategoryID = "categoryId"
	ParamTagID      = "tagId"
)

// FilterParams are the parameters whose change resets pagination.
var FilterParams = []string{ParamSearch, ParamYear, ParamMonth, ParamCategoryID, ParamTagID}

// Query is the resolved filter and pagination state. Zero values of the
// optional filters mean "unset".
type Query struct {
	Page       int
	Limit      int
	Search     string
	Year       int
	Month      int
	CategoryID int
	TagID      int
}

// Default returns the query for an address without parameters.
func Default() Query {
	return Query{Page: DefaultPage, Limit: DefaultLimit}
}

// Parse builds a Query from address parameters. Unknown keys are ignored and
// malformed values fall back to their defaults; Parse never fails.
func Parse(v url.Values) Query {
	return Query{
		Page:       ParsePage(v.Get(ParamPage)),
		Limit:      ParseLimit(v.Get(ParamLimit)),
		Search:     ParseSearch(v.Get(ParamSearch)),
		Year:       ParseYear(v.Get(ParamYear)),
		Month:      ParseMonth(v.Get(ParamMonth)),
		CategoryID: ParseID(v.Get(ParamCategoryID)),
		TagID:      ParseID(v.Get(ParamTagID)),
	}
}

// ParseString is Parse over a raw query string. An unparsable string yields
// the default query.
func ParseString(raw string) Query {
	v, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return Default()
	}
	return Parse(v)
}

// Encode returns the minimal parameter set for q: values equal to their
// default, or unset, are omitted.
func (q Query) Encode() url.Values {
	q = q.Normalize()
	v := url.Values{}
	if q.Page != DefaultPage {
		v.Set(ParamPage, strconv.Itoa(q.Page))
	}
	if q.Limit != DefaultLimit {
		v.Set(ParamLimit, strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		v.Set(ParamSearch, q.Search)
	}
	if q.Year != 0 {
		v.Set(ParamYear, strconv.Itoa(q.Year))
	}
	if q.Month != 0 {
		v.Set(ParamMonth, strconv.Itoa(q.Month))
	}
	if q.CategoryID != 0 {
		v.Set(ParamCategoryID, strconv.Itoa(q.CategoryID))
	}
	if q.TagID != 0 {
		v.Set(ParamTagID, strconv.Itoa(q.TagID))
	}
	return v
}

// String returns the encoded query string with sorted keys. Queries with the
// same resolved values produce the same string, so it doubles as a cache and
// de-duplication key.
func (q Query) String() string {
	return q.Encode().Encode()
}

// Normalize clamps every field to its valid range, the same way Parse would.
func (q Query) Normalize() Query {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 || q.Limit > MaxLimit {
		q.Limit = DefaultLimit
	}
	q.Search = strings.TrimSpace(q.Search)
	if q.Year < 0 {
		q.Year = 0
	}
	if q.Month < 0 || q.Month > 12 {
		q.Month = 0
	}
	if q.CategoryID < 0 {
		q.CategoryID = 0
	}
	if q.TagID < 0 {
		q.TagID = 0
	}
	return q
}

// Equal reports whether both queries resolve to the same values.
func (q Query) Equal(other Query) bool {
	return q.Normalize() == other.Normalize()
}

// WithPage returns a copy of q on page n.
func (q Query) WithPage(n int) Query {
	q.Page = n
	return q.Normalize()
}

// Filtered reports whether any filter other than pagination is active.
func (q Query) Filtered() bool {
	return q.Search != "" || q.Year != 0 || q.Month != 0 || q.CategoryID != 0 || q.TagID != 0
}

// ParsePage parses a page number; anything below 1 or non-numeric yields 1.
func ParsePage(s string) int {
	n, ok := parsePositive(s)
	if !ok {
		return DefaultPage
	}
	return n
}

// ParseLimit parses a page size in 1..MaxLimit, defaulting to DefaultLimit.
func ParseLimit(s string) int {
	n, ok := parsePositive(s)
	if !ok || n > MaxLimit {
		return DefaultLimit
	}
	return n
}

// ParseSearch trims the search text.
func ParseSearch(s string) string {
	return strings.TrimSpace(s)
}

// ParseYear parses a year; 0 means unset.
func ParseYear(s string) int {
	n, _ := parsePositive(s)
	return n
}

// ParseMonth parses a month in 1..12; 0 means unset.
func ParseMonth(s string) int {
	n, ok := parsePositive(s)
	if !ok || n > 12 {
		return 0
	}
	return n
}

// ParseID parses a category or tag id; 0 means unset.
func ParseID(s string) int {
	n, _ := parsePositive(s)
	return n
}

func parsePositive(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == All {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
