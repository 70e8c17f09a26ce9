// Package server hosts the callback trampoline over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/authtemplate/authshell/internal/config"
	"github.com/authtemplate/authshell/internal/logger"
	"github.com/authtemplate/authshell/internal/trampoline"
	"github.com/authtemplate/authshell/internal/utils"
	"go.uber.org/zap"
)

const (
	// shutdownTimeout is the maximum time to wait for server shutdown
	shutdownTimeout = 5 * time.Second
)

// Server serves the OAuth callback trampoline.
type Server struct {
	config     *config.ServerConfig
	trampoline *trampoline.Handler
}

// NewServer creates a new trampoline server instance.
func NewServer(cfg *config.ServerConfig, h *trampoline.Handler) *Server {
	if cfg == nil {
		logger.Fatal("Config cannot be nil")
	}
	if h == nil {
		logger.Fatal("Trampoline handler cannot be nil")
	}

	return &Server{
		config:     cfg,
		trampoline: h,
	}
}

// Handler builds the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.trampoline.RegisterRoutes(mux)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, map[string]string{"status": "ok"})
	})
	return mux
}

// Start runs the server until the context is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	// Channel for server errors
	errChan := make(chan error, 1)

	go func() {
		logger.Info("Starting callback server", zap.String("address", addr))

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server", zap.Duration("timeout", shutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil

	case err := <-errChan:
		return err
	}
}
