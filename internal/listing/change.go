// Package listing holds the filter and pagination state of the article list
// and sequences its fetches so that only the latest query's result is kept.
package listing

import (
	"strconv"

	"blogfront/internal/query"
)

// Field identifies one part of the listing query.
type Field int

const (
	FieldSearch Field = iota
	FieldYear
	FieldMonth
	FieldCategory
	FieldTag
	FieldPage
	FieldLimit
)

var fieldParams = map[Field]string{
	FieldSearch:   query.ParamSearch,
	FieldYear:     query.ParamYear,
	FieldMonth:    query.ParamMonth,
	FieldCategory: query.ParamCategoryID,
	FieldTag:      query.ParamTagID,
	FieldPage:     query.ParamPage,
	FieldLimit:    query.ParamLimit,
}

// Param returns the address parameter name of the field.
func (f Field) Param() string {
	return fieldParams[f]
}

func (f Field) String() string {
	if p, ok := fieldParams[f]; ok {
		return p
	}
	return "Field(" + strconv.Itoa(int(f)) + ")"
}

// ResetsPage reports whether changing the field sends the list back to page 1.
func (f Field) ResetsPage() bool {
	return f != FieldPage
}

// Change is a single user edit to the listing query. Value uses the address
// encoding: "" or "all" clears a filter.
type Change struct {
	Field Field
	Value string
}

func SetSearch(text string) Change { return Change{Field: FieldSearch, Value: text} }
func SetYear(year string) Change { return Change{Field: FieldYear, Value: year} }
func SetMonth(month string) Change { return Change{Field: FieldMonth, Value: month} }
func SetCategory(id string) Change { return Change{Field: FieldCategory, Value: id} }
func SetTag(id string) Change { return Change{Field: FieldTag, Value: id} }
func SetPage(page int) Change { return Change{Field: FieldPage, Value: strconv.Itoa(page)} }
func SetLimit(limit int) Change { return Change{Field: FieldLimit, Value: strconv.Itoa(limit)} }

// Next applies ch to q. Any change other than a page change also resets the
// page to 1; a page change leaves every other field untouched.
func Next(q query.Query, ch Change) query.Query {
	q = q.Normalize()
	switch ch.Field {
	case FieldSearch:
		q.Search = query.ParseSearch(ch.Value)
	case FieldYear:
		q.Year = query.ParseYear(ch.Value)
	case FieldMonth:
		q.Month = query.ParseMonth(ch.Value)
	case FieldCategory:
		q.CategoryID = query.ParseID(ch.Value)
	case FieldTag:
		q.TagID = query.ParseID(ch.Value)
	case FieldLimit:
		q.Limit = query.ParseLimit(ch.Value)
	case FieldPage:
		q.Page = query.ParsePage(ch.Value)
		return q
	default:
		return q
	}
	q.Page = query.DefaultPage
	return q
}
