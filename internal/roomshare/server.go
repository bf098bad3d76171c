// Package roomshare is an importable stand-in for the rental application the
// e2e suite exercises. It serves the search page, the real pagination
// continuation, the search API, and JWT session auth, so tests have a real
// network for non-mocked traffic to reach.
//
// The server is deliberately small but wire-faithful: its continuation
// replies use the same two-row action framing the browser client parses, and
// its cursors use a format the harness's cursor codec rejects.
package roomshare

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/roomshare/e2e/pkg/searchmock"
)

// Config holds server configuration options.
type Config struct {
	Addr          string        // Listen address (":0" for a random port)
	PageSize      int           // Listings per page
	TotalListings int           // Catalog size
	JWTSecret     string        // HS256 signing secret for session cookies
	ReadTimeout   time.Duration // HTTP read timeout
	WriteTimeout  time.Duration // HTTP write timeout
	Logger        *zap.Logger   // Nil means no logging
}

// DefaultConfig returns a configuration suitable for testing.
// Uses ":0" to bind to a random available port.
func DefaultConfig() Config {
	return Config{
		Addr:          ":0",
		PageSize:      12,
		TotalListings: 48,
		JWTSecret:     "roomshare-dev-secret",
		ReadTimeout:   30 * time.Second,
		WriteTimeout:  30 * time.Second,
	}
}

// Stats counts the requests the fixture actually served. Pass-through
// assertions read these: a mocked continuation must never show up in
// ContinuationHits.
type Stats struct {
	SearchPageHits   int
	ContinuationHits int
	SearchAPIHits    int
}

// Server is the importable fixture app. Create with NewServer, run with
// Start, stop with Shutdown.
type Server struct {
	cfg        Config
	log        *zap.Logger
	listings   []searchmock.Listing
	httpServer *http.Server

	mu       sync.Mutex
	listener net.Listener
	addr     string
	running  bool
	stats    Stats
}

// NewServer creates a new server with the given configuration.
// The server is not started until Start() is called.
func NewServer(cfg Config) (*Server, error) {
	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", cfg.PageSize)
	}
	if cfg.TotalListings < 0 {
		return nil, fmt.Errorf("total listings must be non-negative, got %d", cfg.TotalListings)
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		cfg:      cfg,
		log:      log,
		listings: catalogListings(cfg.TotalListings),
	}

	r := chi.NewRouter()
	r.Get("/", s.handleSearchPage)
	r.Get("/search", s.handleSearchPage)
	r.Post("/search", s.handleContinuation)
	r.Get("/api/search", s.handleSearchAPI)
	r.Post("/api/auth/login", s.handleLogin)
	r.Get("/api/auth/me", s.handleMe)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s, nil
}

// Handler exposes the router, mostly for httptest.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening and serving HTTP requests in the background.
// Returns the actual address the server is listening on (useful when the
// configured port is 0).
func (s *Server) Start() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return s.addr, nil
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen: %w", err)
	}
	s.listener = ln
	s.addr = ln.Addr().String()
	s.running = true

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error("fixture server stopped", zap.Error(err))
		}
	}()

	s.log.Info("roomshare fixture listening", zap.String("addr", s.addr))
	return s.addr, nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the listen address once Start has succeeded.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Stats returns a copy of the request counters.
func (s *Server) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Server) count(f func(*Stats)) {
	s.mu.Lock()
	f(&s.stats)
	s.mu.Unlock()
}
