// Package tui is a terminal browser for the article listing. It drives the
// same listing controller as the web front-end.
package tui

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"blogfront/internal/domain"
	"blogfront/internal/listing"
	"blogfront/internal/source"
)

// Mode is the active screen.
type Mode int

const (
	ModeList Mode = iota
	ModeSearch
	ModeArticle
)

// Model is the bubbletea model of the browser.
type Model struct {
	ctrl    *listing.Controller
	src     source.ArticleSource
	timeout time.Duration

	mode    Mode
	state   listing.State
	loading bool
	cursor  int
	input   string

	// years seen in any loaded page, newest first
	years []int

	articleID      string
	article        *domain.Article
	markdown       string
	articleErr     error
	articleLoading bool

	width int
}

// NewModel returns a browser over ctrl. src resolves single articles.
func NewModel(ctrl *listing.Controller, src source.ArticleSource, timeout time.Duration) Model {
	if timeout <= 0 {
		timeout = listing.DefaultTimeout
	}
	return Model{
		ctrl:    ctrl,
		src:     src,
		timeout: timeout,
		mode:    ModeList,
		state:   ctrl.State(),
		loading: true,
	}
}

// Init loads the controller's initial query.
func (m Model) Init() tea.Cmd {
	return fetchPage(m.ctrl, m.ctrl.BeginRetry())
}

// Mode returns the active screen.
func (m Model) Mode() Mode {
	return m.mode
}

// State returns the listing state the view is showing.
func (m Model) State() listing.State {
	return m.state
}

func (m Model) selected() (domain.Article, bool) {
	articles := m.state.Result.Page.Articles
	if m.cursor < 0 || m.cursor >= len(articles) {
		return domain.Article{}, false
	}
	return articles[m.cursor], true
}

// mergeYears adds the years of the loaded page to the selectable set.
func (m Model) mergeYears(articles []domain.Article) Model {
	seen := make(map[int]struct{}, len(m.years))
	for _, y := range m.years {
		seen[y] = struct{}{}
	}
	years := append([]int(nil), m.years...)
	for _, y := range domain.AvailableYears(articles) {
		if _, ok := seen[y]; !ok {
			years = append(years, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	m.years = years
	return m
}

// yearOptions is "all" followed by the known years, newest first.
func (m Model) yearOptions() []int {
	opts := []int{0}
	current := m.state.Query.Year
	found := current == 0
	for _, y := range m.years {
		opts = append(opts, y)
		if y == current {
			found = true
		}
	}
	if !found {
		opts = append(opts, current)
	}
	return opts
}
