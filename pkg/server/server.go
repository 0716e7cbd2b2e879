package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/arch-stack/pkg/detector"
	"github.com/NVIDIA/arch-stack/pkg/march"
)

// Server exposes the microarchitecture graph over HTTP.
type Server struct {
	config   *Config
	graph    *march.Graph
	detector *detector.Detector
	limiter  *rate.Limiter

	httpServer *http.Server

	mu    sync.RWMutex
	ready bool
}

// New creates a server around a validated graph. A nil config uses
// DefaultConfig.
func New(cfg *Config, g *march.Graph) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Server{
		config:   cfg,
		graph:    g,
		detector: detector.New(g),
		limiter:  rate.NewLimiter(cfg.RateLimit, cfg.RateLimitBurst),
	}
}

// Run starts the server and blocks until the context is canceled or the
// listener fails. Shutdown is graceful within ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Address, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.setupRoutes(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	s.setReady(true)
	slog.Info("server listening",
		slog.String("addr", addr),
		slog.Int("targets", s.graph.Len()),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.setReady(false)
	slog.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) setReady(ready bool) {
	s.mu.Lock()
	s.ready = ready
	s.mu.Unlock()
}
