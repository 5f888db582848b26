// Package source abstracts where articles come from: the remote content API
// or a fixed in-memory list.
package source

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"blogfront/internal/api"
	"blogfront/internal/domain"
	"blogfront/internal/query"
)

// ArticleSource yields pages of articles and resolves single articles.
// Errors are *api.ClientError values.
type ArticleSource interface {
	// FetchPage returns one page of articles matching q.
	FetchPage(ctx context.Context, q query.Query) (domain.PageResult, error)

	// FetchArticle returns the article with the given id.
	FetchArticle(ctx context.Context, id string) (domain.Article, error)

	// FetchArticleBySlug returns the article whose slug matches exactly.
	FetchArticleBySlug(ctx context.Context, slug string) (domain.Article, error)
}

var (
	_ ArticleSource = (*api.Client)(nil)
	_ ArticleSource = (*Static)(nil)
)

// Source kinds accepted by New.
const (
	KindRemote = "remote"
	KindStatic = "static"
)

// Options selects the article source.
type Options struct {
	Kind string

	// StaticPath is a JSON file of articles for the static kind. Empty
	// selects the built-in sample articles.
	StaticPath string
}

// New returns the source described by opts. client backs the remote kind.
func New(opts Options, client *api.Client, logger logrus.FieldLogger) (ArticleSource, error) {
	log := logger.WithField("component", "source")

	switch opts.Kind {
	case KindRemote, "":
		if client == nil {
			return nil, fmt.Errorf("remote source requires an API client")
		}
		log.Info("Using remote content API")
		return client, nil
	case KindStatic:
		if opts.StaticPath == "" {
			log.Info("Using built-in sample articles")
			return NewStatic(DefaultArticles()), nil
		}
		s, err := LoadStatic(opts.StaticPath)
		if err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{
			"path":     opts.StaticPath,
			"articles": s.Len(),
		}).Info("Loaded static articles")
		return s, nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", opts.Kind)
	}
}
