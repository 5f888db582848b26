package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"blogfront/internal/storage"
	"blogfront/internal/web"
)

const badgerGCInterval = 10 * time.Minute

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web front-end",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	log, err := newLogger(os.Stdout, &logrus.JSONFormatter{})
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"api_base_url": cfg.API.BaseURL,
		"cache_kind":   cfg.Cache.Kind,
		"source_kind":  cfg.Source.Kind,
		"addr":         cfg.Server.Addr,
	}).Info("Configuration loaded successfully")

	a, err := newApp(cfg, log)
	if err != nil {
		log.WithError(err).Error("Failed to initialize components")
		return err
	}
	defer a.Close(log)

	srv, err := web.NewServer(web.Options{
		Addr:         cfg.Server.Addr,
		PageSize:     cfg.Listing.PageSize,
		FetchTimeout: cfg.API.Timeout,
	}, a.src, log)
	if err != nil {
		return err
	}

	log.Info("Starting blogfront...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if bc, ok := a.cache.(*storage.BadgerCache); ok {
		go bc.RunGC(ctx, badgerGCInterval)
	}

	if err := srv.Start(ctx); err != nil {
		return err
	}

	log.Info("blogfront shut down gracefully.")
	return nil
}
