// Package httpserver exposes the backend REST API and, in dev mode, the
// built-in identity provider endpoints.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mkravets/linkjournal/internal/logging"
	"github.com/mkravets/linkjournal/internal/server/config"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	http   *http.Server
	logger logging.Logger
}

func New(cfg *config.Config, logger logging.Logger, handler http.Handler) *Server {
	s := &http.Server{
		Addr:              cfg.EndpointAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return &Server{http: s, logger: logger}
}

// Run blocks until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info(context.Background(), "http server listening", "addr", s.http.Addr)
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "http server shutting down")
	return s.http.Shutdown(ctx)
}
