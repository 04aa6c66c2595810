package api

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/SimoKiihamaki/cdaportal/internal/catalog"
)

// DefaultAPIAddr is the default address the API server binds to.
const DefaultAPIAddr = ":8080"

// Config controls the HTTP server behaviour.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// CatalogSource yields the catalog to serve for each request.
type CatalogSource interface {
	Catalog() *catalog.Catalog
}

// CatalogStore is a CatalogSource whose catalog can be replaced while the
// server is running, e.g. when the catalog file is edited.
type CatalogStore struct {
	mu  sync.RWMutex
	cat *catalog.Catalog
}

func NewCatalogStore(c *catalog.Catalog) *CatalogStore {
	return &CatalogStore{cat: c}
}

func (s *CatalogStore) Catalog() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cat
}

// Swap installs c; nil is ignored so a failed reload keeps the last good catalog.
func (s *CatalogStore) Swap(c *catalog.Catalog) {
	if c == nil {
		return
	}
	s.mu.Lock()
	s.cat = c
	s.mu.Unlock()
}

// Dependencies enumerates the collaborators required by the router.
type Dependencies struct {
	Catalog     CatalogSource
	RateLimiter *RateLimiter
}

// Server wraps the configured HTTP server instance.
type Server struct {
	cfg        Config
	httpServer *http.Server
}

// NewServer constructs a server using the supplied configuration and dependencies.
func NewServer(cfg Config, deps Dependencies) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAPIAddr
	}

	handler := newRouter(deps)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  chooseDuration(cfg.ReadTimeout, 5*time.Second),
		WriteTimeout: chooseDuration(cfg.WriteTimeout, 5*time.Second),
		IdleTimeout:  chooseDuration(cfg.IdleTimeout, 60*time.Second),
	}

	return &Server{cfg: cfg, httpServer: srv}
}

// Start launches the HTTP server using ListenAndServe.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// StartListener serves HTTP traffic on an explicit listener.
func (s *Server) StartListener(l net.Listener) error {
	return s.httpServer.Serve(l)
}

// Shutdown gracefully terminates the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the configured bind address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Handler exposes the underlying router for testing.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func chooseDuration(candidate, fallback time.Duration) time.Duration {
	if candidate <= 0 {
		return fallback
	}
	return candidate
}
