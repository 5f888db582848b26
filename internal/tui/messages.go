package tui

import (
	"blogfront/internal/domain"
	"blogfront/internal/listing"
)

// pageLoadedMsg carries a finished listing fetch and the ticket it was
// dispatched under.
type pageLoadedMsg struct {
	Ticket listing.Ticket
	Result listing.Result
}

// articleLoadedMsg carries a fetched article rendered as Markdown.
type articleLoadedMsg struct {
	ID       string
	Article  domain.Article
	Markdown string
	Err      error
}
