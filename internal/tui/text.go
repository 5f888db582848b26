package tui

const (
	TextLoading      = "Loading articles..."
	TextEmpty        = "No articles found"
	TextRetryHint    = "press r to retry"
	TextLoadingPost  = "Loading article..."
	TextSearchPrompt = "Search: "

	TextFooterList    = "/ search | y/Y year | m/M month | ←/→ page | ↑/↓ select | enter open | r retry | q quit"
	TextFooterSearch  = "enter apply | esc cancel"
	TextFooterArticle = "esc back | q quit"
)
