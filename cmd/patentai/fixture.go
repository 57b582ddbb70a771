package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/csheth/patentai/internal/fixtureserver"
	"github.com/csheth/patentai/internal/logging"
)

func newFixtureServerCmd(opts *globalOptions) *cobra.Command {
	var (
		addr     string
		dataPath string
		minScore float64
		limit    int
		metrics  bool
		watch    bool
	)
	cmd := &cobra.Command{
		Use:   "fixture-server",
		Short: "Serve the find-similar API over a local JSON corpus",
		Long: `Runs a small stand-in for the patent search service. It answers
POST /api/find-similar from a JSON list of patents (a built-in sample corpus
unless --data is given), which is handy for demos and tests. A --data file is
watched and reloaded when it changes. Prometheus metrics are served on
GET /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := opts.logLevel
			if level == "" {
				level = "info"
			}
			logger, err := logging.Initialize(logging.Options{Level: level, File: opts.logFile})
			if err != nil {
				return err
			}
			defer logging.Sync()

			records, err := fixtureserver.LoadCorpus(dataPath)
			if err != nil {
				return err
			}
			serverOpts := fixtureserver.Options{
				Limit:    limit,
				MinScore: minScore,
				Logger:   logging.Named("fixture"),
			}
			if metrics {
				serverOpts.Metrics = fixtureserver.NewMetrics()
			}
			server := fixtureserver.New(records, serverOpts)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if watch && dataPath != "" {
				if err := server.WatchCorpus(ctx, dataPath, 0); err != nil {
					return err
				}
				logger.Info("watching corpus", zap.String("path", dataPath))
			}
			return serve(ctx, logger, addr, server.Handler(), server.Size())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8000", "listen address")
	cmd.Flags().StringVar(&dataPath, "data", "", "JSON file with the patent corpus")
	cmd.Flags().Float64Var(&minScore, "min-score", fixtureserver.DefaultMinScore, "minimum relevance for a match")
	cmd.Flags().IntVar(&limit, "limit", fixtureserver.DefaultLimit, "maximum number of matches returned")
	cmd.Flags().BoolVar(&metrics, "metrics", true, "serve Prometheus metrics on /metrics")
	cmd.Flags().BoolVar(&watch, "watch", true, "reload the --data file when it changes")
	return cmd
}

func serve(ctx context.Context, logger *zap.Logger, addr string, handler http.Handler, corpusSize int) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("fixture server listening", zap.String("addr", addr), zap.Int("patents", corpusSize))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("fixture server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("shutting down fixture server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("fixture server shutdown: %w", err)
	}
	return nil
}
