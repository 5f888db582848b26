package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"blogfront/internal/api"
	"blogfront/internal/domain"
	"blogfront/internal/query"
)

// Static serves a fixed list of articles, filtering and paginating locally
// with the same semantics as the content API.
type Static struct {
	articles []domain.Article
}

// NewStatic returns a source over a copy of articles, ordered newest first.
func NewStatic(articles []domain.Article) *Static {
	sorted := make([]domain.Article, len(articles))
	copy(sorted, articles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return &Static{articles: sorted}
}

// LoadStatic reads a JSON array of articles from path.
func LoadStatic(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read static articles: %w", err)
	}
	var articles []domain.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("parse static articles %s: %w", path, err)
	}
	return NewStatic(articles), nil
}

// Len returns the number of articles.
func (s *Static) Len() int {
	return len(s.articles)
}

// FetchPage filters the list by q and returns the requested page. Pages past
// the end are empty but carry correct metadata.
func (s *Static) FetchPage(ctx context.Context, q query.Query) (domain.PageResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.PageResult{}, &api.ClientError{Message: api.GenericMessage, Err: err}
	}

	q = q.Normalize()
	matched := make([]domain.Article, 0, len(s.articles))
	for _, a := range s.articles {
		if matches(a, q) {
			matched = append(matched, a)
		}
	}

	page := domain.PageResult{
		Articles:   []domain.Article{},
		Pagination: domain.NewPagination(q.Page, q.Limit, len(matched)),
	}
	if q.Page > page.Pagination.TotalPages {
		return page, nil
	}
	start := (q.Page - 1) * q.Limit
	end := min(start+q.Limit, len(matched))
	page.Articles = append(page.Articles, matched[start:end]...)
	return page, nil
}

// FetchArticle returns the article with the given id.
func (s *Static) FetchArticle(ctx context.Context, id string) (domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return domain.Article{}, &api.ClientError{Message: api.GenericMessage, Err: err}
	}
	for _, a := range s.articles {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.Article{}, api.NewNotFound()
}

// FetchArticleBySlug returns the article whose slug matches exactly.
func (s *Static) FetchArticleBySlug(ctx context.Context, slug string) (domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return domain.Article{}, &api.ClientError{Message: api.GenericMessage, Err: err}
	}
	for _, a := range s.articles {
		if a.Slug == slug {
			return a, nil
		}
	}
	return domain.Article{}, api.NewNotFound()
}

func matches(a domain.Article, q query.Query) bool {
	if q.Search != "" {
		term := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(a.Title), term) &&
			!strings.Contains(strings.ToLower(a.Excerpt), term) &&
			!strings.Contains(strings.ToLower(a.Category.Name), term) {
			return false
		}
	}
	if q.Year != 0 && a.Year() != q.Year {
		return false
	}
	if q.Month != 0 && a.Month() != q.Month {
		return false
	}
	if q.CategoryID != 0 && a.Category.ID != q.CategoryID {
		return false
	}
	if q.TagID != 0 && !a.HasTag(q.TagID) {
		return false
	}
	return true
}
