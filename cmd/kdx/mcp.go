package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvandessel/kdindex/internal/mcp"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Run kdx as an MCP (Model Context Protocol) server",
		Long: `Start an MCP server that exposes the index over stdio.

Tools:

  • kd_search  - Exact nearest-neighbor query
  • kd_insert  - Insert a point
  • kd_save    - Persist the current snapshot
  • kd_stats   - Index statistics

The server communicates via JSON-RPC 2.0 over stdin/stdout, following
the Model Context Protocol specification.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.EnsureDataDir(); err != nil {
				return err
			}

			server, err := mcp.NewServer(&mcp.Config{
				Name:        "kdx",
				Version:     version,
				IndexPath:   cfg.IndexPath,
				CatalogPath: cfg.CatalogPath,
				Dims:        cfg.Dims,
			})
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}
			defer server.Close()

			if err := server.Run(cmd.Context()); err != nil {
				return fmt.Errorf("MCP server error: %w", err)
			}
			return nil
		},
	}
}
