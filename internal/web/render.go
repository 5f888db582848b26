package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"blogfront/internal/domain"
	"blogfront/internal/metrics"
)

//go:embed templates/*.html
var templates embed.FS

const (
	pageHome    = "home"
	pagePosts   = "posts"
	pageArticle = "article"
	pageError   = "error"
)

var templateFuncs = template.FuncMap{
	"formatDate": domain.FormatDate,
	"readTime":   domain.FormatReadTime,
	"monthName":  domain.MonthName,
}

// pageSet holds one template per page, each combined with the shared layout.
type pageSet struct {
	pages map[string]*template.Template
}

func parsePages() (*pageSet, error) {
	ps := &pageSet{pages: make(map[string]*template.Template)}
	for _, name := range []string{pageHome, pagePosts, pageArticle, pageError} {
		t, err := template.New(name).Funcs(templateFuncs).ParseFS(templates,
			"templates/base.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		ps.pages[name] = t
	}
	return ps, nil
}

// render executes the named page into a buffer first so that a template
// failure never leaves a half-written response.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	t, ok := s.pages.pages[name]
	if !ok {
		s.log.WithField("page", name).Error("Unknown page template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		s.log.WithError(err).WithField("page", name).Error("Failed to execute page template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.log.WithError(err).WithField("page", name).Debug("Failed to write response")
	}
}

// renderError shows the failure panel with a link that re-requests the
// identical address.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, route, message string) {
	metrics.RecordRender(route, "error")
	s.render(w, http.StatusBadGateway, pageError, errorView{
		Title:     "Something went wrong",
		Message:   message,
		RetryHref: r.URL.RequestURI(),
	})
}

// sanitize makes article markup safe to embed.
func (s *Server) sanitize(content string) template.HTML {
	return template.HTML(s.policy.Sanitize(content))
}
