package web

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"blogfront/internal/api"
	"blogfront/internal/domain"
	"blogfront/internal/listing"
	"blogfront/internal/metrics"
	"blogfront/internal/query"
	"blogfront/internal/urlsync"
)

const (
	routeHome    = "home"
	routePosts   = "posts"
	routeArticle = "article"
	routeLegacy  = "legacy_slug"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) fetchContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.fetchTimeout)
}

// loadPage fetches one listing page through a request-scoped controller.
func (s *Server) loadPage(r *http.Request, q query.Query) listing.Result {
	ctrl := listing.NewController(s.src, s.log,
		listing.WithInitialQuery(q),
		listing.WithTimeout(s.fetchTimeout),
	)
	defer ctrl.Close()
	return ctrl.Load(r.Context(), q)
}

// handleHome renders the landing page with the latest articles.
// GET /
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	q := query.Default()
	q.Limit = s.pageSize

	res := s.loadPage(r, q)
	if !res.OK() {
		s.renderError(w, r, routeHome, res.Message())
		return
	}

	metrics.RecordRender(routeHome, "ok")
	s.render(w, http.StatusOK, pageHome, homeView{
		Title:    "Latest Articles",
		Articles: cards(nil, res.Page.Articles),
		AllHref:  postsPath,
	})
}

// handlePosts renders the filtered, paginated listing. The address is the
// sole source of the query.
// GET /posts
func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := urlsync.ToQuery(params)
	if !params.Has(query.ParamLimit) {
		q.Limit = s.pageSize
	}

	res := s.loadPage(r, q)
	if !res.OK() {
		s.renderError(w, r, routePosts, res.Message())
		return
	}

	outcome := "ok"
	if res.Empty() {
		outcome = "empty"
	}
	metrics.RecordRender(routePosts, outcome)
	s.render(w, http.StatusOK, pagePosts, buildPostsView(params, res.Query, res.Page))
}

// handleSearch applies a committed search to the current address and
// redirects to the resulting listing.
// GET /posts/search
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	search := query.ParseSearch(params.Get(query.ParamSearch))
	params.Del(query.ParamSearch)

	next := urlsync.Update(params, map[string]string{query.ParamSearch: search})
	http.Redirect(w, r, urlsync.Href(postsPath, next), http.StatusSeeOther)
}

// handleArticle renders one article. A wrong slug redirects to the canonical
// path; a missing article redirects to the listing.
// GET /posts/{id}/{slug}
func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	slug := chi.URLParam(r, "slug")
	log := s.log.WithFields(logrus.Fields{
		"id":   id,
		"slug": slug,
	})

	ctx, cancel := s.fetchContext(r)
	defer cancel()

	article, err := s.src.FetchArticle(ctx, id)
	if err != nil {
		if api.IsNotFound(err) {
			log.Info("Article not found, redirecting to listing")
			metrics.RecordRender(routeArticle, "not_found")
			http.Redirect(w, r, postsPath, http.StatusSeeOther)
			return
		}
		log.WithError(err).Warn("Failed to fetch article")
		s.renderError(w, r, routeArticle, errorMessage(err))
		return
	}

	if article.Slug != slug {
		log.WithField("canonical", article.Path()).Debug("Redirecting to canonical path")
		metrics.RecordRender(routeArticle, "redirect")
		http.Redirect(w, r, article.Path(), http.StatusPermanentRedirect)
		return
	}

	metrics.RecordRender(routeArticle, "ok")
	s.render(w, http.StatusOK, pageArticle, s.buildArticleView(article))
}

// handleLegacySlug resolves the old slug-only address through the search
// fallback and redirects to the canonical path.
// GET /posts/{slug}
func (s *Server) handleLegacySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	ctx, cancel := s.fetchContext(r)
	defer cancel()

	article, err := s.src.FetchArticleBySlug(ctx, slug)
	if err != nil {
		if api.IsNotFound(err) {
			metrics.RecordRender(routeLegacy, "not_found")
			http.Redirect(w, r, postsPath, http.StatusSeeOther)
			return
		}
		s.log.WithError(err).WithField("slug", slug).Warn("Failed to resolve slug")
		s.renderError(w, r, routeLegacy, errorMessage(err))
		return
	}

	metrics.RecordRender(routeLegacy, "redirect")
	http.Redirect(w, r, article.Path(), http.StatusPermanentRedirect)
}

func (s *Server) buildArticleView(a domain.Article) articleView {
	return articleView{
		Title:    a.Title,
		Date:     domain.FormatDate(a.CreatedAt),
		ReadTime: domain.FormatReadTime(a.ReadTime),
		Category: categoryLink(nil, a.Category),
		Tags:     tagLinks(nil, a.Tags),
		Content:  s.sanitize(a.Content),
		BackHref: postsPath,
	}
}

func errorMessage(err error) string {
	if ce, ok := api.AsClientError(err); ok && ce.Message != "" {
		return ce.Message
	}
	return api.GenericMessage
}
