// Package mcp runs kdx as a Model Context Protocol server over stdio,
// so agent tooling can query and extend the index without shelling out
// to the CLI.
package mcp

import (
	"context"
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nvandessel/kdindex/internal/index"
	"github.com/nvandessel/kdindex/internal/kdtree"
	"github.com/nvandessel/kdindex/internal/store"
)

// Config holds MCP server configuration.
type Config struct {
	// Name and Version identify the server to MCP clients.
	Name    string
	Version string

	// IndexPath is the serialized tree; loaded at startup when
	// present, written by the kd_save tool.
	IndexPath string

	// CatalogPath optionally opens the SQLite point catalog so
	// kd_insert keeps it in sync. Empty disables cataloging.
	CatalogPath string

	// Dims fixes the dimensionality of a fresh index. 0 lets the
	// first insertion decide.
	Dims int
}

// Server wraps an MCP server around one shared tree.
type Server struct {
	server    *mcp.Server
	tree      *kdtree.Tree
	catalog   store.PointStore
	indexPath string

	closeOnce sync.Once
	closeErr  error
}

// NewServer loads (or creates) the index and registers the kd_* tools.
func NewServer(cfg *Config) (*Server, error) {
	tree := kdtree.NewEmpty(cfg.Dims)
	if cfg.IndexPath != "" {
		loaded, err := index.LoadFile(cfg.IndexPath, cfg.Dims)
		if err != nil {
			return nil, err
		}
		tree = loaded
	}

	s := &Server{
		tree:      tree,
		indexPath: cfg.IndexPath,
	}

	if cfg.CatalogPath != "" {
		catalog, err := store.NewSQLitePointStore(cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("opening catalog: %w", err)
		}
		s.catalog = catalog
	}

	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "kd_search",
		Description: "Find the stored point nearest to a query point (exact, not approximate).",
	}, s.Search)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "kd_insert",
		Description: "Insert a new point into the index. The id is generated when omitted.",
	}, s.Insert)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "kd_save",
		Description: "Persist the current index snapshot to disk.",
	}, s.Save)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "kd_stats",
		Description: "Report index size, height, and dimensionality.",
	}, s.Stats)

	return s, nil
}

// Run serves MCP over stdio until the client disconnects or ctx ends.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Close releases the catalog. Safe to call more than once.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		if s.catalog != nil {
			s.closeErr = s.catalog.Close()
		}
	})
	return s.closeErr
}
