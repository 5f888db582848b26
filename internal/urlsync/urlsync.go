// Package urlsync keeps the navigable address in step with the listing
// query: the query string is the only persisted form of the list state.
package urlsync

import (
	"net/url"
	"strconv"

	"blogfront/internal/listing"
	"blogfront/internal/query"
)

var defaults = map[string]string{
	query.ParamPage:  strconv.Itoa(query.DefaultPage),
	query.ParamLimit: strconv.Itoa(query.DefaultLimit),
}

// Update returns a copy of prev with updates applied. A value of "" or "all",
// or one equal to the parameter's default, deletes the key. When any filter
// is among the updates the page is dropped as well.
func Update(prev url.Values, updates map[string]string) url.Values {
	next := make(url.Values, len(prev)+len(updates))
	for k, vs := range prev {
		next[k] = append([]string(nil), vs...)
	}

	for key, value := range updates {
		if value == "" || value == query.All || defaults[key] == value {
			next.Del(key)
			continue
		}
		next.Set(key, value)
	}

	for _, key := range query.FilterParams {
		if _, ok := updates[key]; ok {
			next.Del(query.ParamPage)
			break
		}
	}
	return next
}

// Href joins path and the encoded values. Keys are sorted so equal states
// produce equal addresses.
func Href(path string, v url.Values) string {
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}

// FromQuery returns the minimal address parameters for q.
func FromQuery(q query.Query) url.Values {
	return q.Encode()
}

// ToQuery resolves address parameters into a query.
func ToQuery(v url.Values) query.Query {
	return query.Parse(v)
}

// ForChange expresses a listing change as an address update on prev.
func ForChange(prev url.Values, ch listing.Change) url.Values {
	value := ch.Value
	if ch.Field == listing.FieldSearch {
		value = query.ParseSearch(value)
	}
	next := Update(prev, map[string]string{ch.Field.Param(): value})
	if ch.Field.ResetsPage() {
		next.Del(query.ParamPage)
	}
	return next
}

// PageHref returns the address of page n under the filters of q.
func PageHref(path string, q query.Query, n int) string {
	return Href(path, FromQuery(q.WithPage(n)))
}
