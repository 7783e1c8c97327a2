// Package server provides the HTTP server for the reconciliation API.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jayjaychukwu/reconcilation/internal/store"
	"github.com/jayjaychukwu/reconcilation/internal/worker"
	"github.com/jayjaychukwu/reconcilation/pkg/constants"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	store  *store.Store
	files  *store.Files
	pool   *worker.Pool
	logger *zerolog.Logger
	config Config
	http   *http.Server
}

// New creates a new server instance with the given configuration.
func New(s *store.Store, files *store.Files, pool *worker.Pool, logger *zerolog.Logger, cfg Config) *Server {
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = DefaultConfig().PathPrefix
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultConfig().Port
	}

	srv := &Server{
		store:  s,
		files:  files,
		pool:   pool,
		logger: logger,
		config: cfg,
	}

	srv.http = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      srv.setupRouter(),
		ReadTimeout:  constants.ServerReadTimeout,
		WriteTimeout: constants.ServerWriteTimeout,
	}
	return srv
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.http.Addr
}

// ListenAndServe starts serving; it blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info().
		Str("addr", s.http.Addr).
		Str("prefix", s.config.PathPrefix).
		Msg("HTTP server listening")
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("HTTP server shutting down")
	return s.http.Shutdown(ctx)
}
