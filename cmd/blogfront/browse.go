package main

import (
	"fmt"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"blogfront/internal/listing"
	"blogfront/internal/query"
	"blogfront/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse [query]",
	Short: "Browse articles in the terminal",
	Long: `Browse articles in the terminal.

The optional argument seeds the listing with an address query string,
for example: blogfront browse "search=react&year=2024".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	out, closeOut, err := browseLogOutput()
	if err != nil {
		return err
	}
	defer closeOut()

	log, err := newLogger(out, &logrus.TextFormatter{DisableColors: true})
	if err != nil {
		return err
	}

	a, err := newApp(cfg, log)
	if err != nil {
		log.WithError(err).Error("Failed to initialize components")
		return err
	}
	defer a.Close(log)

	initial := initialQuery(args, cfg.Listing.PageSize)

	ctrl := listing.NewController(a.src, log,
		listing.WithInitialQuery(initial),
		listing.WithTimeout(cfg.API.Timeout),
	)
	defer ctrl.Close()

	p := tea.NewProgram(tui.NewModel(ctrl, a.src, cfg.API.Timeout), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal browser: %w", err)
	}
	return nil
}

// initialQuery seeds the listing from an optional address query string.
// The configured page size applies unless the string sets a limit.
func initialQuery(args []string, pageSize int) query.Query {
	if len(args) == 0 {
		q := query.Default()
		q.Limit = pageSize
		return q.Normalize()
	}
	params, err := url.ParseQuery(strings.TrimPrefix(args[0], "?"))
	if err != nil {
		params = url.Values{}
	}
	q := query.Parse(params)
	if !params.Has(query.ParamLimit) {
		q.Limit = pageSize
	}
	return q.Normalize()
}
