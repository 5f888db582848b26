package tui

import (
	"context"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogfront/internal/api"
	"blogfront/internal/domain"
	"blogfront/internal/listing"
	"blogfront/internal/query"
	"blogfront/internal/source"
)

// flakySource fails page fetches while failing is set and records queries.
type flakySource struct {
	*source.Static
	failing atomic.Bool

	mu      sync.Mutex
	queries []query.Query
}

func (f *flakySource) FetchPage(ctx context.Context, q query.Query) (domain.PageResult, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.failing.Load() {
		return domain.PageResult{}, &api.ClientError{Status: http.StatusServiceUnavailable, Message: "Service unavailable"}
	}
	return f.Static.FetchPage(ctx, q)
}

func (f *flakySource) seen() []query.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]query.Query(nil), f.queries...)
}

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestModel(t *testing.T, src source.ArticleSource) Model {
	t.Helper()
	ctrl := listing.NewController(src, testLogger())
	t.Cleanup(ctrl.Close)
	return NewModel(ctrl, src, time.Second)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and feeds each resulting message back into the model.
func run(m Model, cmd tea.Cmd) Model {
	for cmd != nil {
		next, nextCmd := m.Update(cmd())
		m = next.(Model)
		cmd = nextCmd
	}
	return m
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, cmd := m.Update(key(k))
		m = run(next.(Model), cmd)
	}
	return m
}

func loaded(t *testing.T, src source.ArticleSource) Model {
	t.Helper()
	m := newTestModel(t, src)
	return run(m, m.Init())
}

func TestModel_InitialLoad(t *testing.T) {
	m := newTestModel(t, source.NewStatic(source.DefaultArticles()))
	assert.Contains(t, m.View(), TextLoading)

	m = run(m, m.Init())
	view := m.View()
	assert.Contains(t, view, "Building Scalable React Applications with TypeScript")
	assert.Contains(t, view, "Showing 6 of 10 articles")
	assert.Contains(t, view, "Page 1 of 2")
	assert.Contains(t, view, "Next →")
	assert.NotContains(t, view, "← Previous")
	assert.Equal(t, query.Default(), m.State().Query)
}

func TestModel_PagingAndFilterReset(t *testing.T) {
	m := loaded(t, source.NewStatic(source.DefaultArticles()))

	m = press(m, "l")
	assert.Equal(t, 2, m.State().Query.Page)
	assert.Contains(t, m.View(), "Advanced React Hooks Patterns")
	assert.Contains(t, m.View(), "/posts?page=2")

	// No page 3.
	m = press(m, "right")
	assert.Equal(t, 2, m.State().Query.Page)

	m = press(m, "m")
	assert.Equal(t, query.Query{Page: 1, Limit: 6, Month: 1}, m.State().Query)
	assert.Contains(t, m.View(), TextEmpty)
	assert.NotContains(t, m.View(), "Page 1 of")

	m = press(m, "M", "h")
	assert.Equal(t, query.Default(), m.State().Query)
}

func TestModel_YearCycle(t *testing.T) {
	m := loaded(t, source.NewStatic(source.DefaultArticles()))

	m = press(m, "l")
	m = press(m, "y")
	assert.Equal(t, query.Query{Page: 1, Limit: 6, Year: 2024}, m.State().Query)
	assert.Contains(t, m.View(), "Year: 2024")

	m = press(m, "y")
	assert.Equal(t, 0, m.State().Query.Year)
	m = press(m, "Y")
	assert.Equal(t, 2024, m.State().Query.Year)
}

func TestModel_Search(t *testing.T) {
	m := loaded(t, source.NewStatic(source.DefaultArticles()))

	m = press(m, "/")
	require.Equal(t, ModeSearch, m.Mode())
	m = press(m, "c", "s", "x", "backspace", "s", "enter")

	require.Equal(t, ModeList, m.Mode())
	assert.Equal(t, "css", m.State().Query.Search)
	view := m.View()
	assert.Contains(t, view, "/posts?search=css")
	assert.Contains(t, view, "Showing 2 of 2 articles")

	m = press(m, "/", "esc")
	assert.Equal(t, ModeList, m.Mode())
	assert.Equal(t, "css", m.State().Query.Search, "cancelled edit keeps the query")
}

func TestModel_DropsStaleResults(t *testing.T) {
	m := loaded(t, source.NewStatic(source.DefaultArticles()))

	next, olderCmd := m.Update(key("l"))
	m = next.(Model)
	next, newerCmd := m.Update(key("y"))
	m = next.(Model)

	newer := newerCmd()
	older := olderCmd()

	next, _ = m.Update(newer)
	m = next.(Model)
	next, _ = m.Update(older)
	m = next.(Model)

	assert.Equal(t, query.Query{Page: 1, Limit: 6, Year: 2024}, m.State().Query)
	assert.Equal(t, m.State().Query, m.State().Result.Query)
}

func TestModel_Retry(t *testing.T) {
	src := &flakySource{Static: source.NewStatic(source.DefaultArticles())}
	src.failing.Store(true)

	m := newTestModel(t, src)
	m = run(m, m.Init())
	m = press(m, "m", "m")

	view := m.View()
	assert.Contains(t, view, "Service unavailable")
	assert.Contains(t, view, TextRetryHint)

	src.failing.Store(false)
	m = press(m, "r")
	assert.True(t, m.State().Result.OK())

	seen := src.seen()
	require.GreaterOrEqual(t, len(seen), 2)
	assert.Equal(t, seen[len(seen)-2], seen[len(seen)-1], "retry re-issues the identical query")
	assert.Equal(t, query.Query{Page: 1, Limit: 6, Month: 2}, seen[len(seen)-1])
}

func TestModel_OpenArticle(t *testing.T) {
	m := loaded(t, source.NewStatic(source.DefaultArticles()))

	m = press(m, "enter")
	require.Equal(t, ModeArticle, m.Mode())
	view := m.View()
	assert.Contains(t, view, "Why TypeScript for React?")
	assert.Contains(t, view, "Type Safety:")
	assert.NotContains(t, view, "<h2>")

	m = press(m, "esc", "down", "enter")
	require.Equal(t, ModeArticle, m.Mode())
	assert.Contains(t, m.View(), "Exploring the evolution of remote work culture")

	m = press(m, "esc")
	assert.Equal(t, ModeList, m.Mode())
}

func TestModel_Quit(t *testing.T) {
	m := loaded(t, source.NewStatic(source.DefaultArticles()))

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
