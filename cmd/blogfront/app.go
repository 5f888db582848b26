package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"blogfront/internal/api"
	"blogfront/internal/config"
	"blogfront/internal/source"
	"blogfront/internal/storage"
)

// app holds the components shared by every command.
type app struct {
	cache  storage.Cache
	client *api.Client
	src    source.ArticleSource
}

// newApp initializes the cache, the API client and the article source.
func newApp(cfg config.Config, log logrus.FieldLogger) (*app, error) {
	log.Info("Initializing components...")

	cache, err := storage.Open(storage.Options{
		Kind:       cfg.Cache.Kind,
		TTL:        cfg.Cache.TTL,
		Size:       cfg.Cache.Size,
		BadgerPath: cfg.Cache.BadgerPath,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	client := api.New(api.Options{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		CacheTTL:  cfg.Cache.TTL,
		RateLimit: cfg.API.RateLimit,
		Burst:     cfg.API.Burst,
		UserAgent: cfg.API.UserAgent,
	}, cache, log)

	src, err := source.New(source.Options{
		Kind:       cfg.Source.Kind,
		StaticPath: cfg.Source.StaticPath,
	}, client, log)
	if err != nil {
		_ = cache.Close()
		return nil, fmt.Errorf("failed to create article source: %w", err)
	}

	return &app{cache: cache, client: client, src: src}, nil
}

func (a *app) Close(log logrus.FieldLogger) {
	log.Info("Closing response cache...")
	if err := a.cache.Close(); err != nil {
		log.WithError(err).Error("Error closing response cache")
	}
}
