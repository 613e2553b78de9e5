package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"stockhawk/internal/app/di"
	"stockhawk/internal/app/router"
	"stockhawk/internal/platform/config"
	"stockhawk/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	logCloser := logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File})
	defer logCloser.Close()

	if !cfg.Auth.Enabled() {
		slog.Warn("JWT_SECRET is not set; API routes are unauthenticated")
	}
	if cfg.Quotes.APIKey == "" {
		slog.Warn("TWELVE_DATA_API_KEY is not set; quote requests will fail")
	}

	c, err := di.Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			slog.Error("failed to close stores", "error", err)
		}
	}()

	if _, err := c.Preference.SeedDefaults(ctx, cfg.Sync.DefaultSymbols); err != nil {
		slog.Warn("failed to seed default symbols", "error", err)
	}

	// 同期ジョブ
	go c.Scheduler.Run(ctx)

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.NewRouter(c.Handlers(), cfg.Auth.JWTSecret),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
