// Package server serves the dashboard over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/iwvelando/debt-dashboard/internal/config"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Run serves the dashboard on the configured address until ctx is cancelled,
// then shuts down gracefully within the configured timeout.
func Run(ctx context.Context, logger *zap.Logger, cfg *config.Configuration, version string) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.Default()
	}

	listener, err := net.Listen("tcp", cfg.Server.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Server.Address, err)
	}
	return Serve(ctx, listener, logger, cfg, version)
}

// Serve is Run on an existing listener. The listener is closed on return.
func Serve(ctx context.Context, listener net.Listener, logger *zap.Logger, cfg *config.Configuration, version string) error {
	handler, err := NewHandler(logger, cfg, version)
	if err != nil {
		_ = listener.Close()
		return err
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          zap.NewStdLog(logger),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("dashboard listening",
			zap.String("op", "server.Serve"),
			zap.String("address", listener.Addr().String()),
			zap.String("version", version),
		)
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx := context.Background()
		if cfg.Server.ShutdownTimeout > 0 {
			var cancel context.CancelFunc
			shutdownCtx, cancel = context.WithTimeout(shutdownCtx, cfg.Server.ShutdownTimeout)
			defer cancel()
		}

		logger.Info("dashboard shutting down", zap.String("op", "server.Serve"))
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}
