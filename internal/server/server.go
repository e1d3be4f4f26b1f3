// Package server provides the shared HTTP plumbing: middleware chain and
// server lifecycle with graceful shutdown.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
)

// Server runs an http.Handler behind the standard middleware chain.
type Server struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
}

// New wraps the handler with recovery, request ID, and request logging
// middleware and prepares the server with the configured timeouts.
func New(cfg Config, handler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	wrapped := Chain(handler,
		Recovery(logger),
		RequestID(),
		RequestLogging(logger),
	)

	return &Server{
		cfg:    cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      wrapped,
			ReadTimeout:  cfg.HTTPReadTimeout,
			WriteTimeout: cfg.HTTPWriteTimeout,
			IdleTimeout:  cfg.HTTPIdleTimeout,
		},
	}
}

// Run serves until the context is canceled, then shuts down gracefully
// within the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
