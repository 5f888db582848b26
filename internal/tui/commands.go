package tui

import (
	"context"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	tea "github.com/charmbracelet/bubbletea"

	"blogfront/internal/listing"
	"blogfront/internal/source"
)

// fetchPage runs the fetch for t off the update loop.
func fetchPage(ctrl *listing.Controller, t listing.Ticket) tea.Cmd {
	return func() tea.Msg {
		return pageLoadedMsg{
			Ticket: t,
			Result: ctrl.Fetch(context.Background(), t),
		}
	}
}

// fetchArticle loads one article and converts its markup for the terminal.
func fetchArticle(src source.ArticleSource, id string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		article, err := src.FetchArticle(ctx, id)
		if err != nil {
			return articleLoadedMsg{ID: id, Err: err}
		}

		markdown := article.Excerpt
		if article.Content != "" {
			converted, err := htmltomarkdown.ConvertString(article.Content)
			if err != nil {
				return articleLoadedMsg{ID: id, Article: article, Err: err}
			}
			markdown = converted
		}
		return articleLoadedMsg{ID: id, Article: article, Markdown: markdown}
	}
}
