// Package server exposes the analysis service as a JSON API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/logiclue/logiclue/internal/analysis"
)

// Service is the part of analysis.Service the handlers call.
type Service interface {
	Analyze(ctx context.Context, req *analysis.Request) (*analysis.Result, error)
	Extract(ctx context.Context, req *analysis.ExtractRequest) (*analysis.Extraction, error)
	RecordAttempt(ctx context.Context, req *analysis.AttemptRequest) (string, error)
	Stats(ctx context.Context, userID string) (*analysis.Stats, error)
	Health(ctx context.Context) analysis.Health
}

// Config holds HTTP listener settings.
type Config struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	CORSOrigins     []string      `mapstructure:"cors_origins" yaml:"cors_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// DefaultConfig listens on :8080. The write timeout leaves room for a slow
// model call.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		CORSOrigins:     []string{"*"},
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    150 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server serves the API.
type Server struct {
	cfg     Config
	svc     Service
	logger  *slog.Logger
	handler http.Handler
}

// New builds the router and middleware stack.
func New(cfg Config, svc Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:    cfg,
		svc:    svc,
		logger: logger.With("component", "server"),
	}

	mux := http.NewServeMux()
	register(mux, s.routes()...)

	stack := newStack()
	stack.Use(requestLogger(s.logger))
	stack.Use(recoverer(s.logger))
	stack.Use(corsHandler(cfg.CORSOrigins))
	s.handler = stack.Apply(mux)
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Run listens on cfg.Addr until ctx is cancelled, then shuts down.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("server shutdown complete")
	return nil
}
