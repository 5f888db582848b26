// Package web serves the blog front-end: the article listing with its
// filters and pagination, the article pages and the landing page.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/microcosm-cc/bluemonday"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"blogfront/internal/query"
	"blogfront/internal/source"
)

const (
	DefaultAddr         = ":8080"
	DefaultFetchTimeout = 15 * time.Second

	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	Addr string

	// PageSize is the listing limit used when the address has none.
	PageSize int

	FetchTimeout time.Duration
}

// Server renders pages from an article source.
type Server struct {
	router       chi.Router
	src          source.ArticleSource
	pages        *pageSet
	policy       *bluemonday.Policy
	addr         string
	pageSize     int
	fetchTimeout time.Duration
	log          logrus.FieldLogger
}

// NewServer builds the router and parses the page templates.
func NewServer(opts Options, src source.ArticleSource, logger logrus.FieldLogger) (*Server, error) {
	log := logger.WithField("component", "web")

	pages, err := parsePages()
	if err != nil {
		log.WithError(err).Error("Failed to parse page templates")
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.PageSize < 1 || opts.PageSize > query.MaxLimit {
		opts.PageSize = query.DefaultLimit
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}

	s := &Server{
		router:       chi.NewRouter(),
		src:          src,
		pages:        pages,
		policy:       bluemonday.UGCPolicy(),
		addr:         opts.Addr,
		pageSize:     opts.PageSize,
		fetchTimeout: opts.FetchTimeout,
		log:          log,
	}
	s.setupMiddleware()
	s.setupRoutes()

	log.Info("Web server initialized")
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.log))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(requestTimeout))
	s.router.Use(middleware.RedirectSlashes)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Get("/", s.handleHome)
	s.router.Route("/posts", func(r chi.Router) {
		r.Get("/", s.handlePosts)
		r.Get("/search", s.handleSearch)
		r.Get("/{slug}", s.handleLegacySlug)
		r.Get("/{id}/{slug}", s.handleArticle)
	})
}

// Start serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      requestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.addr).Info("Starting HTTP server...")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.log.WithError(err).Error("HTTP server failed")
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.WithError(err).Error("HTTP server shutdown failed")
		return fmt.Errorf("http server shutdown: %w", err)
	}
	s.log.Info("HTTP server stopped.")
	return nil
}
