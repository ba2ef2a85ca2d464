package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nvandessel/kdindex/internal/kdtree"
)

func writeIndexFixture(t *testing.T, dir string) string {
	t.Helper()
	tree, err := kdtree.Build(
		[]string{"a", "b", "c", "d", "e"},
		[][]float32{{1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 5}},
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	path := filepath.Join(dir, "index.json")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	defer f.Close()
	if err := tree.Save(context.Background(), f); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	return path
}

func TestNewServer_LoadsExistingIndex(t *testing.T) {
	path := writeIndexFixture(t, t.TempDir())

	server, err := NewServer(&Config{
		Name:      "test-server",
		Version:   "v1.0.0",
		IndexPath: path,
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	defer server.Close()

	if server.server == nil {
		t.Error("Server.server is nil")
	}
	if got := server.tree.Len(); got != 5 {
		t.Errorf("tree.Len() = %d, want 5", got)
	}
}

func TestNewServer_FreshIndex(t *testing.T) {
	server, err := NewServer(&Config{
		Name:      "test-server",
		Version:   "v1.0.0",
		IndexPath: filepath.Join(t.TempDir(), "index.json"),
		Dims:      2,
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	defer server.Close()

	if got := server.tree.Len(); got != 0 {
		t.Errorf("tree.Len() = %d, want 0", got)
	}
}

func TestSearchTool(t *testing.T) {
	path := writeIndexFixture(t, t.TempDir())
	server, err := NewServer(&Config{Name: "t", Version: "v", IndexPath: path})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	defer server.Close()

	_, res, err := server.Search(context.Background(), nil, SearchArgs{Point: []float32{4.2, 4.2}})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if res.ID != "d" {
		t.Errorf("Search() id = %q, want %q", res.ID, "d")
	}
	if res.Distance >= 1.0 {
		t.Errorf("Search() distance = %v, want < 1.0", res.Distance)
	}

	if _, _, err := server.Search(context.Background(), nil, SearchArgs{Point: []float32{1}}); err == nil {
		t.Error("Search() with wrong dimensionality expected an error")
	}
}

func TestInsertTool(t *testing.T) {
	dir := t.TempDir()
	path := writeIndexFixture(t, dir)
	server, err := NewServer(&Config{
		Name:        "t",
		Version:     "v",
		IndexPath:   path,
		CatalogPath: filepath.Join(dir, "catalog.db"),
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	defer server.Close()
	ctx := context.Background()

	_, ins, err := server.Insert(ctx, nil, InsertArgs{ID: "f", Point: []float32{6, 6}})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if ins.Points != 6 {
		t.Errorf("Insert() points = %d, want 6", ins.Points)
	}

	_, res, err := server.Search(ctx, nil, SearchArgs{Point: []float32{5.5, 5.5}})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if res.ID != "f" {
		t.Errorf("Search() after insert id = %q, want %q", res.ID, "f")
	}

	// Omitted id gets generated.
	_, gen, err := server.Insert(ctx, nil, InsertArgs{Point: []float32{0, 0}})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if gen.ID == "" {
		t.Error("Insert() without id expected a generated one")
	}
}

func TestSaveTool(t *testing.T) {
	dir := t.TempDir()
	path := writeIndexFixture(t, dir)
	server, err := NewServer(&Config{Name: "t", Version: "v", IndexPath: path})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	defer server.Close()
	ctx := context.Background()

	if _, _, err := server.Insert(ctx, nil, InsertArgs{ID: "f", Point: []float32{6, 6}}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	_, saved, err := server.Save(ctx, nil, SaveArgs{})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.Points != 6 {
		t.Errorf("Save() points = %d, want 6", saved.Points)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening saved index: %v", err)
	}
	defer f.Close()
	loaded, err := kdtree.Load(f)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Len() != 6 {
		t.Errorf("reloaded Len() = %d, want 6", loaded.Len())
	}
}

func TestStatsTool(t *testing.T) {
	path := writeIndexFixture(t, t.TempDir())
	server, err := NewServer(&Config{Name: "t", Version: "v", IndexPath: path})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	defer server.Close()

	_, stats, err := server.Stats(context.Background(), nil, StatsArgs{})
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Points != 5 || stats.Dims != 2 {
		t.Errorf("Stats() = %+v, want 5 points, 2 dims", stats)
	}
}

func TestClose_Idempotent(t *testing.T) {
	dir := t.TempDir()
	server, err := NewServer(&Config{
		Name:        "t",
		Version:     "v",
		IndexPath:   filepath.Join(dir, "index.json"),
		CatalogPath: filepath.Join(dir, "catalog.db"),
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	if err := server.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := server.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
