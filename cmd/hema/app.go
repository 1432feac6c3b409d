package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mmcdole/hema/internal/api"
	"github.com/mmcdole/hema/internal/config"
	"github.com/mmcdole/hema/internal/fakeapi"
	"github.com/mmcdole/hema/internal/log"
	"github.com/mmcdole/hema/internal/player"
	"github.com/mmcdole/hema/internal/query"
	"github.com/mmcdole/hema/internal/service"
)

// app is the wired service graph shared by the TUI and the subcommands
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	content  *service.ContentService
	playback *service.PlaybackService

	closers []io.Closer
}

func newApp(opts *options) (*app, error) {
	// Load configuration
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.env != "" {
		cfg.Server.Environment = config.Environment(opts.env)
	}
	if opts.apiURL != "" {
		cfg.Server.URL = opts.apiURL
	}

	a := &app{cfg: cfg}

	// Setup logger
	logger, closer, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	} else {
		a.closers = append(a.closers, closer)
	}
	slog.SetDefault(logger)
	a.logger = logger

	if opts.demo {
		srv := fakeapi.New(fakeapi.Sample()).Start()
		a.closers = append(a.closers, closerFunc(srv.Close))
		cfg.Server.URL = srv.URL
		logger.Info("serving demo catalogue", "url", srv.URL)
	}

	if err := cfg.Validate(); err != nil {
		a.Close()
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client := api.NewClient(cfg.Server.BaseURL(), cfg.Server.Timeout, logger)
	content := api.NewContent(client)
	queries := query.NewClient(
		query.WithStaleTime(cfg.Cache.StaleTime),
		query.WithGCTime(cfg.Cache.GCTime),
		query.WithRetry(cfg.Cache.Retry),
		query.WithLogger(logger),
	)
	launcher := player.NewLauncher(cfg.Player.Command, cfg.Player.Args, logger)

	a.content = service.NewContentService(content, content, queries, cfg.UI.PageSize, logger)
	a.playback = service.NewPlaybackService(launcher, logger)
	return a, nil
}

// Close releases the log file and the demo server, newest first
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && a.logger != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
	a.closers = nil
}

type closerFunc func()

func (f closerFunc) Close() error {
	f()
	return nil
}
