package tui

import (
	"fmt"
	"strconv"
	"strings"

	"blogfront/internal/api"
	"blogfront/internal/domain"
	"blogfront/internal/urlsync"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.mode == ModeArticle {
		return m.articleView()
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("All Articles"))
	b.WriteString("\n")
	b.WriteString(AddressStyle.Render(urlsync.Href("/posts", urlsync.FromQuery(m.state.Query))))
	b.WriteString("\n")
	b.WriteString(m.filterLine())
	b.WriteString("\n\n")

	if m.mode == ModeSearch {
		b.WriteString(TextSearchPrompt + m.input + "█")
		b.WriteString("\n\n")
	}

	b.WriteString(m.listBody())

	b.WriteString("\n")
	if m.mode == ModeSearch {
		b.WriteString(InfoStyle.Render(TextFooterSearch))
	} else {
		b.WriteString(InfoStyle.Render(TextFooterList))
	}
	return b.String()
}

func (m Model) filterLine() string {
	q := m.state.Query
	search, year, month := "-", "All Years", "All Months"
	if q.Search != "" {
		search = strconv.Quote(q.Search)
	}
	if q.Year != 0 {
		year = strconv.Itoa(q.Year)
	}
	if q.Month != 0 {
		month = domain.MonthName(q.Month)
	}
	return FilterStyle.Render(fmt.Sprintf("Search: %s  Year: %s  Month: %s", search, year, month))
}

func (m Model) listBody() string {
	if m.loading {
		return InfoStyle.Render(TextLoading) + "\n"
	}

	res := m.state.Result
	if res.Err != nil {
		msg := ErrorStyle.Render("Error: " + res.Message())
		if res.Retryable() {
			msg += "\n" + InfoStyle.Render(TextRetryHint)
		}
		return msg + "\n"
	}
	if res.Empty() {
		return InfoStyle.Render(TextEmpty) + "\n"
	}

	var b strings.Builder
	meta := res.Page.Pagination
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Showing %d of %d articles", len(res.Page.Articles), meta.Total)))
	b.WriteString("\n\n")

	for i, a := range res.Page.Articles {
		title := a.Title
		if i == m.cursor {
			title = SelectedStyle.Render(title)
		} else {
			title = ArticleTitleStyle.Render(title)
		}
		b.WriteString(title)
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(fmt.Sprintf("  %s · %s · %s",
			domain.FormatDate(a.CreatedAt), domain.FormatReadTime(a.ReadTime), a.Category.Name)))
		b.WriteString("\n")
	}

	if res.Page.ShowPagination() {
		b.WriteString("\n")
		b.WriteString(paginationLine(meta))
		b.WriteString("\n")
	}
	return b.String()
}

func paginationLine(meta domain.PaginationMeta) string {
	parts := make([]string, 0, 3)
	if meta.HasPrev {
		parts = append(parts, "← Previous")
	}
	parts = append(parts, fmt.Sprintf("Page %d of %d", meta.Page, meta.TotalPages))
	if meta.HasNext {
		parts = append(parts, "Next →")
	}
	return InfoStyle.Render(strings.Join(parts, "  "))
}

func (m Model) articleView() string {
	var body string
	switch {
	case m.articleLoading:
		body = InfoStyle.Render(TextLoadingPost)
	case m.articleErr != nil:
		body = ErrorStyle.Render("Error: " + errorText(m.articleErr))
	case m.article != nil:
		a := m.article
		var b strings.Builder
		b.WriteString(TitleStyle.Render(a.Title))
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(fmt.Sprintf("%s · %s · %s",
			domain.FormatDate(a.CreatedAt), domain.FormatReadTime(a.ReadTime), a.Category.Name)))
		b.WriteString("\n\n")
		b.WriteString(m.markdown)
		body = b.String()
	}

	box := BoxStyle
	if m.width > 4 {
		box = box.Width(m.width - 4)
	}
	return box.Render(body) + "\n" + InfoStyle.Render(TextFooterArticle)
}

func errorText(err error) string {
	if ce, ok := api.AsClientError(err); ok && ce.Message != "" {
		return ce.Message
	}
	return err.Error()
}
