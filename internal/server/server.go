// Package server wires the HTTP surface: routes, middleware and lifecycle.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docling/internal/common"
	"github.com/ternarybob/docling/internal/handlers"
	"github.com/ternarybob/docling/internal/queue"
)

// Server manages the HTTP server and routes
type Server struct {
	config *common.Config
	logger arbor.ILogger

	apiHandler     *handlers.APIHandler
	processHandler *handlers.ProcessHandler
	jobHandler     *handlers.JobHandler

	router *http.ServeMux
	server *http.Server
}

// New creates the HTTP server bound to the orchestrator
func New(config *common.Config, orchestrator *queue.Orchestrator, logger arbor.ILogger) *Server {
	s := &Server{
		config:         config,
		logger:         logger,
		apiHandler:     handlers.NewAPIHandler(orchestrator, config, logger),
		processHandler: handlers.NewProcessHandler(orchestrator, logger),
		jobHandler:     handlers.NewJobHandler(orchestrator, logger),
	}

	s.router = s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.withMiddleware(s.router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start runs the HTTP server until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info().
		Str("address", s.server.Addr).
		Msg("http_server_starting")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("http_server_stopping")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info().Msg("http_server_stopped")
	return nil
}
