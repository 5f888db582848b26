package source

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogfront/internal/api"
	"blogfront/internal/domain"
	"blogfront/internal/query"
)

func ids(articles []domain.Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.ID
	}
	return out
}

func TestStatic_FetchPage(t *testing.T) {
	src := NewStatic(DefaultArticles())
	ctx := context.Background()

	tests := []struct {
		name     string
		q        query.Query
		wantIDs  []string
		wantMeta domain.PaginationMeta
	}{
		{
			name:    "first page",
			q:       query.Query{Page: 1, Limit: 5},
			wantIDs: []string{"1", "2", "3", "4", "5"},
			wantMeta: domain.PaginationMeta{
				Page: 1, Limit: 5, Total: 10, TotalPages: 2, HasNext: true, HasPrev: false,
			},
		},
		{
			name:    "second page",
			q:       query.Query{Page: 2, Limit: 5},
			wantIDs: []string{"6", "7", "8", "9", "10"},
			wantMeta: domain.PaginationMeta{
				Page: 2, Limit: 5, Total: 10, TotalPages: 2, HasNext: false, HasPrev: true,
			},
		},
		{
			name:    "search is case-insensitive over title excerpt and category",
			q:       query.Query{Search: "css"},
			wantIDs: []string{"4", "9"},
			wantMeta: domain.PaginationMeta{
				Page: 1, Limit: 6, Total: 2, TotalPages: 1,
			},
		},
		{
			name:    "category name matches",
			q:       query.Query{Search: "BACKEND"},
			wantIDs: []string{"3", "8", "10"},
			wantMeta: domain.PaginationMeta{
				Page: 1, Limit: 6, Total: 3, TotalPages: 1,
			},
		},
		{
			name:    "year and month",
			q:       query.Query{Year: 2024, Month: 11},
			wantIDs: []string{"5", "6", "7"},
			wantMeta: domain.PaginationMeta{
				Page: 1, Limit: 6, Total: 3, TotalPages: 1,
			},
		},
		{
			name:    "category and tag",
			q:       query.Query{CategoryID: 3, TagID: 4},
			wantIDs: []string{"8", "10"},
			wantMeta: domain.PaginationMeta{
				Page: 1, Limit: 6, Total: 2, TotalPages: 1,
			},
		},
		{
			name:    "no matches",
			q:       query.Query{Year: 2019},
			wantIDs: []string{},
			wantMeta: domain.PaginationMeta{
				Page: 1, Limit: 6, Total: 0, TotalPages: 0,
			},
		},
		{
			name:    "page past the end",
			q:       query.Query{Page: 7, Limit: 6},
			wantIDs: []string{},
			wantMeta: domain.PaginationMeta{
				Page: 7, Limit: 6, Total: 10, TotalPages: 2, HasPrev: true,
			},
		},
		{
			name:    "first page past the end",
			q:       query.Query{Page: 3, Limit: 5},
			wantIDs: []string{},
			wantMeta: domain.PaginationMeta{
				Page: 3, Limit: 5, Total: 10, TotalPages: 2, HasPrev: true,
			},
		},
		{
			name:    "huge page",
			q:       query.Query{Page: math.MaxInt64, Limit: 6},
			wantIDs: []string{},
			wantMeta: domain.PaginationMeta{
				Page: math.MaxInt64, Limit: 6, Total: 10, TotalPages: 2, HasPrev: true,
			},
		},
		{
			name:    "parsed page that overflows the offset",
			q:       query.Parse(url.Values{query.ParamPage: {"2000000000000000000"}}),
			wantIDs: []string{},
			wantMeta: domain.PaginationMeta{
				Page: 2000000000000000000, Limit: 6, Total: 10, TotalPages: 2, HasPrev: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := src.FetchPage(ctx, tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, ids(page.Articles))
			assert.Equal(t, tt.wantMeta, page.Pagination)
		})
	}
}

func TestStatic_FetchArticle(t *testing.T) {
	src := NewStatic(DefaultArticles())
	ctx := context.Background()

	a, err := src.FetchArticle(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "advanced-react-hooks-patterns", a.Slug)

	a, err = src.FetchArticleBySlug(ctx, "api-security-best-practices")
	require.NoError(t, err)
	assert.Equal(t, "10", a.ID)

	_, err = src.FetchArticle(ctx, "99")
	assert.True(t, api.IsNotFound(err))

	_, err = src.FetchArticleBySlug(ctx, "API-security-best-practices")
	assert.True(t, api.IsNotFound(err), "slug match is exact")
}

func TestStatic_CancelledContext(t *testing.T) {
	src := NewStatic(DefaultArticles())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.FetchPage(ctx, query.Default())
	require.Error(t, err)
	ce, ok := api.AsClientError(err)
	require.True(t, ok)
	assert.Equal(t, 0, ce.Status)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ce.Retryable())
}

func TestNewStatic_SortsNewestFirst(t *testing.T) {
	articles := DefaultArticles()
	articles[0], articles[9] = articles[9], articles[0]

	page, err := NewStatic(articles).FetchPage(context.Background(), query.Query{Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, ids(page.Articles))
	assert.Equal(t, "10", articles[0].ID, "input slice is not reordered")
}

func TestLoadStatic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.json")
	data, err := json.Marshal(DefaultArticles()[:3])
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	src, err := LoadStatic(path)
	require.NoError(t, err)
	assert.Equal(t, 3, src.Len())

	_, err = LoadStatic(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = LoadStatic(bad)
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	client := api.New(api.Options{BaseURL: "http://127.0.0.1:1/api"}, nil, logger)

	src, err := New(Options{Kind: KindRemote}, client, logger)
	require.NoError(t, err)
	assert.Same(t, client, src)

	src, err = New(Options{Kind: KindStatic}, nil, logger)
	require.NoError(t, err)
	assert.Equal(t, 10, src.(*Static).Len())

	_, err = New(Options{Kind: KindRemote}, nil, logger)
	assert.Error(t, err)

	_, err = New(Options{Kind: "graphql"}, client, logger)
	assert.Error(t, err)
}
