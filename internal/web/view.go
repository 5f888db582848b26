package web

import (
	"html/template"
	"net/url"
	"slices"
	"strconv"

	"blogfront/internal/domain"
	"blogfront/internal/query"
	"blogfront/internal/urlsync"
)

const postsPath = "/posts"

// link is an anchor in a filter bar or on a card.
type link struct {
	Label  string
	Href   string
	Active bool
}

type articleCard struct {
	Title    string
	Href     string
	Excerpt  string
	Date     string
	ReadTime string
	Category link
	Tags     []link
}

type pageLink struct {
	Number  int
	Href    string
	Current bool
}

type paginationView struct {
	PrevHref string // empty when there is no previous page
	NextHref string // empty when there is no next page
	Pages    []pageLink
}

type postsView struct {
	Title string

	Search       string
	SearchAction string
	// Hidden carries the other active parameters through the search form.
	Hidden map[string]string

	Years  []link
	Months []link

	Articles []articleCard
	Shown    int
	Total    int
	Empty    bool

	// Pagination is nil when a single page holds every article.
	Pagination *paginationView
}

type homeView struct {
	Title    string
	Articles []articleCard
	AllHref  string
}

type articleView struct {
	Title    string
	Date     string
	ReadTime string
	Category link
	Tags     []link
	Content  template.HTML
	BackHref string
}

type errorView struct {
	Title     string
	Message   string
	RetryHref string
}

// buildPostsView derives every link of the listing page from the current
// address parameters, so each one carries the other active filters.
func buildPostsView(params url.Values, q query.Query, page domain.PageResult) postsView {
	v := postsView{
		Title:        "All Articles",
		Search:       q.Search,
		SearchAction: postsPath + "/search",
		Hidden:       make(map[string]string),
		Years:        yearLinks(params, q, page.Articles),
		Months:       monthLinks(params, q),
		Articles:     cards(params, page.Articles),
		Shown:        len(page.Articles),
		Total:        page.Pagination.Total,
		Empty:        page.Empty(),
	}

	for key := range params {
		if key == query.ParamSearch || key == query.ParamPage {
			continue
		}
		v.Hidden[key] = params.Get(key)
	}

	if page.ShowPagination() {
		v.Pagination = buildPagination(params, page.Pagination)
	}
	return v
}

func buildPagination(params url.Values, meta domain.PaginationMeta) *paginationView {
	pv := &paginationView{}
	if meta.HasPrev {
		pv.PrevHref = pageHref(params, meta.Page-1)
	}
	if meta.HasNext {
		pv.NextHref = pageHref(params, meta.Page+1)
	}
	for n := 1; n <= meta.TotalPages; n++ {
		pv.Pages = append(pv.Pages, pageLink{
			Number:  n,
			Href:    pageHref(params, n),
			Current: n == meta.Page,
		})
	}
	return pv
}

func pageHref(params url.Values, n int) string {
	return urlsync.Href(postsPath, urlsync.Update(params, map[string]string{
		query.ParamPage: strconv.Itoa(n),
	}))
}

func filterHref(params url.Values, key, value string) string {
	return urlsync.Href(postsPath, urlsync.Update(params, map[string]string{key: value}))
}

func yearLinks(params url.Values, q query.Query, articles []domain.Article) []link {
	years := domain.AvailableYears(articles)
	if q.Year != 0 && !slices.Contains(years, q.Year) {
		years = append([]int{q.Year}, years...)
	}

	links := []link{{
		Label:  "All Years",
		Href:   filterHref(params, query.ParamYear, query.All),
		Active: q.Year == 0,
	}}
	for _, y := range years {
		links = append(links, link{
			Label:  strconv.Itoa(y),
			Href:   filterHref(params, query.ParamYear, strconv.Itoa(y)),
			Active: q.Year == y,
		})
	}
	return links
}

func monthLinks(params url.Values, q query.Query) []link {
	links := []link{{
		Label:  "All Months",
		Href:   filterHref(params, query.ParamMonth, query.All),
		Active: q.Month == 0,
	}}
	for _, m := range domain.Months {
		links = append(links, link{
			Label:  m.Label,
			Href:   filterHref(params, query.ParamMonth, strconv.Itoa(m.Value)),
			Active: q.Month == m.Value,
		})
	}
	return links
}

func cards(params url.Values, articles []domain.Article) []articleCard {
	out := make([]articleCard, 0, len(articles))
	for _, a := range articles {
		out = append(out, articleCard{
			Title:    a.Title,
			Href:     a.Path(),
			Excerpt:  a.Excerpt,
			Date:     domain.FormatDate(a.CreatedAt),
			ReadTime: domain.FormatReadTime(a.ReadTime),
			Category: categoryLink(params, a.Category),
			Tags:     tagLinks(params, a.Tags),
		})
	}
	return out
}

// categoryLink links to the category filter. An article without a category
// gets a plain label.
func categoryLink(params url.Values, c domain.Category) link {
	if c.ID == 0 {
		return link{Label: c.Name}
	}
	return link{
		Label: c.Name,
		Href:  filterHref(params, query.ParamCategoryID, strconv.Itoa(c.ID)),
	}
}

func tagLinks(params url.Values, tags []domain.Tag) []link {
	links := make([]link, 0, len(tags))
	for _, t := range tags {
		links = append(links, link{
			Label: t.Name,
			Href:  filterHref(params, query.ParamTagID, strconv.Itoa(t.ID)),
		})
	}
	return links
}
