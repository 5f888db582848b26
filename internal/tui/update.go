package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"blogfront/internal/listing"
	"blogfront/internal/query"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case pageLoadedMsg:
		return m.handlePageLoaded(msg)
	case articleLoadedMsg:
		return m.handleArticleLoaded(msg)
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.ctrl.Close()
		return m, tea.Quit
	}

	switch m.mode {
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeArticle:
		return m.handleArticleKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	q := m.state.Query
	meta := m.state.Result.Page.Pagination

	switch msg.String() {
	case "q":
		m.ctrl.Close()
		return m, tea.Quit
	case "/":
		m.mode = ModeSearch
		m.input = q.Search
		return m, nil
	case "y":
		return m.dispatch(listing.SetYear(cycleValue(m.yearOptions(), q.Year, 1)))
	case "Y":
		return m.dispatch(listing.SetYear(cycleValue(m.yearOptions(), q.Year, -1)))
	case "m":
		return m.dispatch(listing.SetMonth(cycleValue(monthOptions(), q.Month, 1)))
	case "M":
		return m.dispatch(listing.SetMonth(cycleValue(monthOptions(), q.Month, -1)))
	case "left", "h":
		if q.Page > 1 {
			return m.dispatch(listing.SetPage(q.Page - 1))
		}
	case "right", "l":
		if meta.HasNext {
			return m.dispatch(listing.SetPage(q.Page + 1))
		}
	case "r":
		if m.state.Result.Err != nil && m.state.Result.Retryable() {
			return m.dispatchTicket(m.ctrl.BeginRetry())
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.state.Result.Page.Articles)-1 {
			m.cursor++
		}
	case "enter":
		if a, ok := m.selected(); ok {
			m.mode = ModeArticle
			m.articleID = a.ID
			m.article = nil
			m.markdown = ""
			m.articleErr = nil
			m.articleLoading = true
			return m, fetchArticle(m.src, a.ID, m.timeout)
		}
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = ModeList
		return m.dispatch(listing.SetSearch(m.input))
	case tea.KeyEsc:
		m.mode = ModeList
		m.input = ""
		return m, nil
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
		return m, nil
	case tea.KeySpace:
		m.input += " "
		return m, nil
	case tea.KeyRunes:
		m.input += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

func (m Model) handleArticleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.ctrl.Close()
		return m, tea.Quit
	case "esc", "backspace", "b":
		m.mode = ModeList
		m.articleID = ""
		m.articleLoading = false
	}
	return m, nil
}

func (m Model) dispatch(ch listing.Change) (tea.Model, tea.Cmd) {
	return m.dispatchTicket(m.ctrl.Begin(ch))
}

func (m Model) dispatchTicket(t listing.Ticket) (tea.Model, tea.Cmd) {
	m.state.Query = t.Query
	m.loading = true
	m.cursor = 0
	return m, fetchPage(m.ctrl, t)
}

func (m Model) handlePageLoaded(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.ctrl.Complete(msg.Ticket, msg.Result) {
		return m, nil
	}
	m.state = m.ctrl.State()
	m.loading = false
	if msg.Result.OK() {
		m = m.mergeYears(msg.Result.Page.Articles)
	}
	if m.cursor >= len(m.state.Result.Page.Articles) {
		m.cursor = 0
	}
	return m, nil
}

func (m Model) handleArticleLoaded(msg articleLoadedMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeArticle || msg.ID != m.articleID {
		return m, nil
	}
	m.articleLoading = false
	m.articleErr = msg.Err
	if msg.Err == nil {
		a := msg.Article
		m.article = &a
		m.markdown = msg.Markdown
	}
	return m, nil
}

// cycleValue steps through opts from current and returns the address value
// of the result, with 0 meaning "all".
func cycleValue(opts []int, current, step int) string {
	idx := 0
	for i, v := range opts {
		if v == current {
			idx = i
			break
		}
	}
	next := opts[(idx+step+len(opts))%len(opts)]
	if next == 0 {
		return query.All
	}
	return strconv.Itoa(next)
}

func monthOptions() []int {
	opts := make([]int, 13)
	for i := range opts {
		opts[i] = i
	}
	return opts
}
