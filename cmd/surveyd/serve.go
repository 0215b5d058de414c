package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	api "github.com/mind-engage/mindengage-survey/internal/api/http"
	"github.com/mind-engage/mindengage-survey/internal/config"
	"github.com/mind-engage/mindengage-survey/internal/metrics"
	"github.com/mind-engage/mindengage-survey/internal/pages"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveTitle string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the survey over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveTitle, "title", "Survey", "Page title")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	set, err := loadPages(cfg)
	if err != nil {
		return err
	}
	if cfg.PagesWatch && cfg.PagesDir != "" {
		w := pages.NewWatcher(set, cfg.PagesDir, pages.WithLogger(logger))
		if err := w.Start(); err != nil {
			return err
		}
		defer w.Stop()
	}

	var mc *metrics.Collector
	if cfg.MetricsEnabled {
		mc = metrics.New()
	}

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	sink, closeSink, err := buildSink(openCtx, cfg, mc)
	cancel()
	if err != nil {
		return err
	}
	defer closeSink()

	r := api.NewRouter(api.SurveyDeps{
		Title:       serveTitle,
		Pages:       set,
		Sink:        sink,
		SavePartial: cfg.SavePartial,
		MaxSkips:    cfg.MaxSkips,
		Logger:      logger,
		Metrics:     mc,
	}, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	logger.Info("listening",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("results", cfg.ResultsPath),
		zap.Bool("save_partial", cfg.SavePartial),
		zap.Int("pages", set.Len()),
		zap.String("db", cfg.DBDriver))

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
