package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogfront/internal/api"
	"blogfront/internal/source"
)

const emptyPage = `{"data": [], "pagination": {"page":1,"limit":6,"total":0,"totalPages":0,"hasNext":false,"hasPrev":false}}`

const threeArticles = `{
	"data": [
		{"id": "1", "title": "One", "slug": "one", "excerpt": "first", "readTime": 5,
		 "createdAt": "2024-12-15T00:00:00Z", "category": {"id": 1, "name": "Development"}, "tags": [{"id": 3, "name": "go"}]},
		{"id": "2", "title": "Two", "slug": "two", "excerpt": "second", "readTime": 8,
		 "createdAt": "2024-11-01T00:00:00Z", "category": {"id": 2, "name": "CSS"}, "tags": []},
		{"id": "3", "title": "Three", "slug": "three", "excerpt": "third", "readTime": 3,
		 "createdAt": "2023-01-05T00:00:00Z", "category": {"id": 1, "name": "Development"}, "tags": []}
	],
	"pagination": {"page": 1, "limit": 6, "total": 3, "totalPages": 1, "hasNext": false, "hasPrev": false}
}`

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// apiRecorder is a mock content API that remembers the query strings it saw.
type apiRecorder struct {
	mu      sync.Mutex
	queries []string
}

func (a *apiRecorder) record(r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.queries = append(a.queries, r.URL.RawQuery)
}

func (a *apiRecorder) seen() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.queries...)
}

// setupTestServer wires a web server to an api.Client pointed at handler.
func setupTestServer(t *testing.T, handler http.HandlerFunc) *Server {
	t.Helper()
	backend := httptest.NewServer(handler)
	t.Cleanup(backend.Close)

	client := api.New(api.Options{BaseURL: backend.URL + "/api", Timeout: 2 * time.Second}, nil, testLogger())
	srv, err := NewServer(Options{FetchTimeout: 2 * time.Second}, client, testLogger())
	require.NoError(t, err)
	return srv
}

func get(t *testing.T, srv http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestPosts_EmptyState(t *testing.T) {
	srv := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, emptyPage)
	})

	rec := get(t, srv, "/posts?search=nothing")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "No articles found")
	assert.NotContains(t, body, `aria-label="Pagination"`)
	assert.NotContains(t, body, "Previous")
	assert.NotContains(t, body, "Next")
}

func TestPosts_UncategorizedArticleHasNoCategoryLink(t *testing.T) {
	srv := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{
			"data": [
				{"id": "1", "title": "Loose", "slug": "loose", "excerpt": "none", "readTime": 2,
				 "createdAt": "2024-12-15T00:00:00Z", "category": {"id": 0, "name": ""}, "tags": []},
				{"id": "2", "title": "Filed", "slug": "filed", "excerpt": "some", "readTime": 2,
				 "createdAt": "2024-12-14T00:00:00Z", "category": {"id": 4, "name": "CSS"}, "tags": []}
			],
			"pagination": {"page":1,"limit":6,"total":2,"totalPages":1,"hasNext":false,"hasPrev":false}
		}`)
	})

	rec := get(t, srv, "/posts")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.NotContains(t, body, "categoryId=0")
	assert.Contains(t, body, `<a class="badge" href="/posts?categoryId=4">CSS</a>`)
	assert.Equal(t, 1, strings.Count(body, `class="badge"`))
}

func TestPosts_SinglePageHasNoPaginationControls(t *testing.T) {
	srv := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, threeArticles)
	})

	rec := get(t, srv, "/posts")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Showing 3 of 3 articles")
	assert.Contains(t, body, `href="/posts/2/two"`)
	assert.NotContains(t, body, "Previous")
	assert.NotContains(t, body, "Next")
	assert.NotContains(t, body, "No articles found")

	// Year filter offers the years present on the page.
	assert.Contains(t, body, `href="/posts?year=2024"`)
	assert.Contains(t, body, `href="/posts?year=2023"`)
	assert.Contains(t, body, `href="/posts?tagId=3"`)
}

func TestPosts_PaginationLinksKeepFilters(t *testing.T) {
	srv := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data": [{"id": "7", "title": "Seven", "slug": "seven", "createdAt": "2024-03-01T00:00:00Z",
			"category": {"id": 1, "name": "Development"}, "tags": []}],
			"pagination": {"page": 2, "limit": 6, "total": 13, "totalPages": 3, "hasNext": true, "hasPrev": true}}`)
	})

	rec := get(t, srv, "/posts?page=2&year=2024")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `<a rel="prev" href="/posts?year=2024">Previous</a>`)
	assert.Contains(t, body, `<a rel="next" href="/posts?page=3&amp;year=2024">Next</a>`)
	assert.Contains(t, body, `<span class="current">2</span>`)

	// Changing a filter from page 2 links back to page 1.
	assert.Contains(t, body, `href="/posts?month=3&amp;year=2024"`)
	assert.Contains(t, body, `href="/posts?categoryId=1&amp;year=2024"`)
}

func TestPosts_ForwardsQueryToAPI(t *testing.T) {
	rec := &apiRecorder{}
	srv := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		_, _ = io.WriteString(w, emptyPage)
	})

	resp := get(t, srv, "/posts?page=2&search=go&year=abc&month=13&limit=6&tagId=all")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, []string{"page=2&search=go"}, rec.seen(), "malformed and default values are dropped")
}

func TestPosts_TransportErrorOffersRetry(t *testing.T) {
	rec := &apiRecorder{}
	var failing atomic.Bool
	failing.Store(true)

	srv := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		if failing.Load() {
			conn, _, err := w.(http.Hijacker).Hijack()
			if err == nil {
				_ = conn.Close()
			}
			return
		}
		_, _ = io.WriteString(w, threeArticles)
	})

	target := "/posts?page=2&search=go"
	resp := get(t, srv, target)
	require.Equal(t, http.StatusBadGateway, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, api.GenericMessage)
	assert.Contains(t, body, `<a class="retry" href="/posts?page=2&amp;search=go">Try Again</a>`)

	// Following the retry link re-issues the identical query.
	failing.Store(false)
	resp = get(t, srv, target)
	require.Equal(t, http.StatusOK, resp.Code)

	seen := rec.seen()
	require.GreaterOrEqual(t, len(seen), 2)
	assert.Equal(t, "page=2&search=go", seen[0])
	assert.Equal(t, seen[0], seen[len(seen)-1])
}

func TestPosts_ErrorMessageFromAPI(t *testing.T) {
	srv := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"message": "Database unavailable"}`)
	})

	resp := get(t, srv, "/posts")
	require.Equal(t, http.StatusBadGateway, resp.Code)
	assert.Contains(t, resp.Body.String(), "Database unavailable")
	assert.Contains(t, resp.Body.String(), `href="/posts">Try Again</a>`)
}

func TestSearch_RedirectsWithPageReset(t *testing.T) {
	srv := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("search redirect must not call the API")
	})

	tests := []struct {
		target string
		want   string
	}{
		{"/posts/search?search=+go+&page=3&year=2024", "/posts?search=go&year=2024"},
		{"/posts/search?search=&page=2&month=5", "/posts?month=5"},
		{"/posts/search?search=css", "/posts?search=css"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			resp := get(t, srv, tt.target)
			assert.Equal(t, http.StatusSeeOther, resp.Code)
			assert.Equal(t, tt.want, resp.Header().Get("Location"))
		})
	}
}

func TestArticle(t *testing.T) {
	srv := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/posts/42":
			_, _ = io.WriteString(w, `{"data": {"id": "42", "title": "Answer", "slug": "correct",
				"content": "<p>hi</p><script>alert(1)</script>", "readTime": 4,
				"createdAt": "2024-05-01T00:00:00Z", "category": {"id": 1, "name": "Dev"},
				"tags": [{"id": 9, "name": "go"}]}}`)
		case "/api/posts/500":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	t.Run("canonical path renders", func(t *testing.T) {
		resp := get(t, srv, "/posts/42/correct")
		require.Equal(t, http.StatusOK, resp.Code)
		body := resp.Body.String()
		assert.Contains(t, body, "<h1>Answer</h1>")
		assert.Contains(t, body, "<p>hi</p>")
		assert.NotContains(t, body, "<script>alert")
		assert.Contains(t, body, "May 1, 2024")
		assert.Contains(t, body, "4 min read")
		assert.Contains(t, body, `href="/posts?tagId=9"`)
	})

	t.Run("slug mismatch redirects", func(t *testing.T) {
		resp := get(t, srv, "/posts/42/wrong")
		assert.Equal(t, http.StatusPermanentRedirect, resp.Code)
		assert.Equal(t, "/posts/42/correct", resp.Header().Get("Location"))
	})

	t.Run("not found redirects to listing", func(t *testing.T) {
		resp := get(t, srv, "/posts/999/anything")
		assert.Equal(t, http.StatusSeeOther, resp.Code)
		assert.Equal(t, "/posts", resp.Header().Get("Location"))
	})

	t.Run("server error shows retry", func(t *testing.T) {
		resp := get(t, srv, "/posts/500/anything")
		assert.Equal(t, http.StatusBadGateway, resp.Code)
		assert.Contains(t, resp.Body.String(), `href="/posts/500/anything">Try Again</a>`)
	})
}

func TestLegacySlug(t *testing.T) {
	srv := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, threeArticles)
	})

	resp := get(t, srv, "/posts/two")
	assert.Equal(t, http.StatusPermanentRedirect, resp.Code)
	assert.Equal(t, "/posts/2/two", resp.Header().Get("Location"))

	resp = get(t, srv, "/posts/missing-slug")
	assert.Equal(t, http.StatusSeeOther, resp.Code)
	assert.Equal(t, "/posts", resp.Header().Get("Location"))
}

func TestHome(t *testing.T) {
	srv := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "", r.URL.RawQuery)
		_, _ = io.WriteString(w, threeArticles)
	})

	resp := get(t, srv, "/")
	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, "Latest Articles")
	assert.Contains(t, body, `href="/posts/1/one"`)
	assert.Contains(t, body, "View All Articles")
}

func TestStaticSource(t *testing.T) {
	srv, err := NewServer(Options{PageSize: 5}, source.NewStatic(source.DefaultArticles()), testLogger())
	require.NoError(t, err)

	resp := get(t, srv, "/posts?page=2")
	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, "Showing 5 of 10 articles")
	assert.Contains(t, body, "Introduction to Web3 Development")
	assert.NotContains(t, body, "Building Scalable React Applications")
	assert.Contains(t, body, `<a rel="prev" href="/posts">Previous</a>`)
	assert.Contains(t, body, `<span class="disabled">Next</span>`)

	resp = get(t, srv, "/posts/1/building-scalable-react-applications-with-typescript")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "<h2>Why TypeScript for React?</h2>")
}

func TestStaticSource_PagePastTheEnd(t *testing.T) {
	srv, err := NewServer(Options{PageSize: 5}, source.NewStatic(source.DefaultArticles()), testLogger())
	require.NoError(t, err)

	for _, page := range []string{"3", "2000000000000000000", "9223372036854775807"} {
		t.Run(page, func(t *testing.T) {
			resp := get(t, srv, "/posts?page="+page)
			require.Equal(t, http.StatusOK, resp.Code)
			body := resp.Body.String()
			assert.Contains(t, body, "No articles found")
			assert.Contains(t, body, `<a rel="prev" href="/posts?page=`)
			assert.Contains(t, body, `<span class="disabled">Next</span>`)
		})
	}
}

func TestHealthAndMetrics(t *testing.T) {
	srv, err := NewServer(Options{}, source.NewStatic(nil), testLogger())
	require.NoError(t, err)

	resp := get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "ok", resp.Body.String())

	_ = get(t, srv, "/posts")
	resp = get(t, srv, "/metrics")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, strings.Contains(resp.Body.String(), "blogfront_page_renders_total"))
}

func TestStart_ShutsDownOnCancel(t *testing.T) {
	srv, err := NewServer(Options{Addr: "127.0.0.1:0"}, source.NewStatic(nil), testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
