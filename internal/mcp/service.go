package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nvandessel/kdindex/internal/index"
	"github.com/nvandessel/kdindex/internal/store"
)

// --- Tool Handlers ---

func (s *Server) Search(ctx context.Context, req *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, SearchResult, error) {
	res, err := s.tree.Nearest(ctx, args.Point)
	if err != nil {
		return nil, SearchResult{}, fmt.Errorf("search failed: %w", err)
	}
	return nil, SearchResult{ID: res.ID, Point: res.Point, Distance: res.Distance}, nil
}

func (s *Server) Insert(ctx context.Context, req *mcp.CallToolRequest, args InsertArgs) (*mcp.CallToolResult, InsertResult, error) {
	id := args.ID
	if id == "" {
		id = uuid.NewString()
	}
	if err := s.tree.Insert(ctx, id, args.Point); err != nil {
		return nil, InsertResult{}, fmt.Errorf("insert failed: %w", err)
	}
	if s.catalog != nil {
		if err := s.catalog.Put(ctx, store.Point{ID: id, Vec: args.Point}); err != nil {
			return nil, InsertResult{}, fmt.Errorf("cataloging point: %w", err)
		}
	}
	return nil, InsertResult{ID: id, Points: s.tree.Len()}, nil
}

func (s *Server) Save(ctx context.Context, req *mcp.CallToolRequest, args SaveArgs) (*mcp.CallToolResult, SaveResult, error) {
	if s.indexPath == "" {
		return nil, SaveResult{}, errors.New("no index path configured")
	}
	if err := index.SaveFile(ctx, s.tree, s.indexPath); err != nil {
		return nil, SaveResult{}, err
	}
	return nil, SaveResult{Path: s.indexPath, Points: s.tree.Len()}, nil
}

func (s *Server) Stats(ctx context.Context, req *mcp.CallToolRequest, args StatsArgs) (*mcp.CallToolResult, StatsResult, error) {
	return nil, StatsResult{
		Points: s.tree.Len(),
		Height: s.tree.Height(),
		Dims:   s.tree.Dims(),
	}, nil
}
