package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"demo-app/internal/config"
	"demo-app/internal/logging"
	"demo-app/internal/version"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Server represents the HTTP server
type Server struct {
	config     *config.Config
	version    version.Info
	handler    http.Handler
	httpServer *http.Server
	stdout     io.Writer

	mu       sync.Mutex
	listener net.Listener
	ready    chan struct{}
}

// New creates a new server instance. No socket is opened until Start.
func New(cfg *config.Config, versionInfo version.Info) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := &Server{
		config:  cfg,
		version: versionInfo,
		stdout:  os.Stdout,
		ready:   make(chan struct{}),
	}

	s.handler = s.routes()
	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// routes builds the mux and wraps it in the middleware chain
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Exact match on "/"; anything else falls through to the mux's 404/405.
	mux.HandleFunc("GET /{$}", s.handleRoot)

	var h http.Handler = mux
	h = s.AccessLogMiddleware(h)
	h = s.RequestIDMiddleware(h)
	h = otelhttp.NewHandler(h, "demo-app")

	// HTTP/1.1 plus cleartext HTTP/2 for clients that speak it.
	return h2c.NewHandler(h, &http2.Server{})
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// SetOutput changes where the startup line is written. Defaults to stdout.
func (s *Server) SetOutput(w io.Writer) {
	s.stdout = w
}

// Ready is closed once Start has bound its listener
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the bound listener address, or "" before Start binds
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Start binds the configured port and serves until Shutdown. A bind
// failure is returned as is and never retried.
func (s *Server) Start() error {
	addr := s.config.ListenAddr()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logging.Error("Failed to listen on %s: %v", addr, err)
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	port := ln.Addr().(*net.TCPAddr).Port
	fmt.Fprintf(s.stdout, "✅ Server running at http://localhost:%d\n", port)
	logging.Info("Listening on %s (version %s)", ln.Addr(), s.version.Version)
	close(s.ready)

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	logging.Info("Server stopped")
	return nil
}
