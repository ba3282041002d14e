package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mutugading/goapps-backend/services/catalog/internal/infrastructure/config"
)

// Server represents the HTTP server.
type Server struct {
	server *http.Server
	config *config.ServerConfig
}

// NewServer creates a new HTTP server serving handler.
func NewServer(cfg *config.ServerConfig, handler http.Handler) *Server {
	return &Server{
		config: cfg,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Start starts the HTTP server. It returns nil once the server is shut down.
func (s *Server) Start() error {
	log.Info().
		Int("port", s.config.HTTPPort).
		Msg("HTTP server starting")

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Stop stops the HTTP server gracefully.
func (s *Server) Stop(ctx context.Context) error {
	log.Info().Msg("HTTP server stopping...")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	log.Info().Msg("HTTP server stopped")
	return nil
}
