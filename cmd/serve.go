package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/lineup/internal/server"
	"github.com/desertthunder/lineup/internal/shared"
	"github.com/desertthunder/lineup/internal/web"
	"github.com/urfave/cli/v3"
)

// shutdownTimeout bounds how long in-flight requests may run after SIGINT.
const shutdownTimeout = 10 * time.Second

// Serve starts the extraction HTTP server and blocks until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.config
	if configPath := cmd.String("config"); configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			loaded, err := shared.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			loaded.ApplyEnv()
			config = loaded
		}
	}

	host := config.Server.Host
	if flagHost := cmd.String("host"); flagHost != "" {
		host = flagHost
	}
	port := config.Server.Port
	if flagPort := cmd.Int("port"); flagPort != 0 {
		port = flagPort
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	engine := r.engine
	artists := r.artists
	if config != r.config {
		_, artists, engine = r.rebuildDeps(config)
	}

	logger := shared.WithLogger(r.logger, "component", "http")

	router := server.NewBasicRouter()
	router.Use(server.Recover(logger), server.RequestLogger(logger))
	router.Handler(server.NewIndexHandler(renderer, config.Uploads.CDNBaseURL, logger))
	router.Handler(server.NewUploadsHandler(config.Uploads.Dir, logger))
	router.Handle(http.MethodPost, "/extract", server.NewExtractHandler(engine, logger))

	addr := fmt.Sprintf("%s:%d", host, port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	notifyCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "uploads", config.Uploads.Dir, "registry", artists.Enabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-notifyCtx.Done():
	}

	r.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
