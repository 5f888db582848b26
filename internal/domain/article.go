package domain

import (
	"fmt"
	"sort"
	"time"
)

// Category groups articles. Every article belongs to exactly one.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Tag is a free-form label; articles carry any number of them.
type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Article represents a blog post as served by the content API.
type Article struct {
	// ID is the opaque identifier used in /posts/{id} lookups.
	ID string `json:"id"`

	Title string `json:"title"`

	// Slug is the URL fragment of the canonical path /posts/{id}/{slug}.
	Slug string `json:"slug"`

	Excerpt string `json:"excerpt"`

	// Content is the full article markup. The listing endpoint usually omits it.
	Content string `json:"content,omitempty"`

	// ReadTime is the estimated reading time in minutes.
	ReadTime int `json:"readTime"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`

	CategoryID *int     `json:"categoryId,omitempty"`
	Category   Category `json:"category"`
	Tags       []Tag    `json:"tags"`
}

// Path returns the canonical path of the article.
func (a Article) Path() string {
	return fmt.Sprintf("/posts/%s/%s", a.ID, a.Slug)
}

// Year returns the creation year (UTC).
func (a Article) Year() int {
	return a.CreatedAt.UTC().Year()
}

// Month returns the creation month (UTC) as 1..12.
func (a Article) Month() int {
	return int(a.CreatedAt.UTC().Month())
}

// HasTag reports whether the article carries the tag with the given id.
func (a Article) HasTag(id int) bool {
	for _, t := range a.Tags {
		if t.ID == id {
			return true
		}
	}
	return false
}

// AvailableYears returns the distinct creation years of the articles, newest first.
func AvailableYears(articles []Article) []int {
	seen := make(map[int]struct{}, len(articles))
	years := make([]int, 0, len(articles))
	for _, a := range articles {
		y := a.Year()
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
