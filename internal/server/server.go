// Package server exposes the index over HTTP. This is host-application
// surface: the core tree only ever sees the context, point, and byte
// stream each handler hands it.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nvandessel/kdindex/internal/kdtree"
	"github.com/nvandessel/kdindex/internal/store"
)

// Options configures a Server.
type Options struct {
	// Tree is the shared index handle. Required.
	Tree *kdtree.Tree

	// Catalog receives inserted points so the index can be rebuilt.
	// Optional; without it inserts only touch the in-memory tree.
	Catalog store.PointStore

	// IndexPath is where POST /v1/save writes the snapshot.
	IndexPath string

	// Addr is the listen address, e.g. ":7312".
	Addr string

	// Log receives request and error logs. Defaults to slog.Default().
	Log *slog.Logger
}

// Server is the HTTP host around one shared tree.
type Server struct {
	tree      *kdtree.Tree
	catalog   store.PointStore
	indexPath string
	log       *slog.Logger

	httpServer *http.Server
}

// New builds a Server from opts.
func New(opts Options) *Server {
	logger := opts.Log
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		tree:      opts.Tree,
		catalog:   opts.Catalog,
		indexPath: opts.IndexPath,
		log:       logger,
	}
	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the full route table wrapped in the recovery and
// logging middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/search", s.handleSearch)
	mux.HandleFunc("POST /v1/points", s.handleInsert)
	mux.HandleFunc("POST /v1/save", s.handleSave)
	mux.HandleFunc("GET /v1/stats", s.handleStats)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s.recoveryMiddleware(s.loggingMiddleware(mux))
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.log.Info("kdx http server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
