package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nvandessel/kdindex/internal/kdtree"
	"github.com/nvandessel/kdindex/internal/store"
)

func newTestServer(t *testing.T) (*Server, *store.SQLitePointStore, string) {
	t.Helper()
	dir := t.TempDir()

	tree, err := kdtree.Build(
		[]string{"a", "b", "c", "d", "e"},
		[][]float32{{1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 5}},
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	catalog, err := store.NewSQLitePointStore(filepath.Join(dir, "catalog.db"))
	if err != nil {
		t.Fatalf("NewSQLitePointStore() error = %v", err)
	}
	t.Cleanup(func() { catalog.Close() })

	indexPath := filepath.Join(dir, "index.json")
	srv := New(Options{
		Tree:      tree,
		Catalog:   catalog,
		IndexPath: indexPath,
		Log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return srv, catalog, indexPath
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("response %q is not json: %v", rec.Body.String(), err)
		}
	}
	return rec, decoded
}

func TestHandleSearch(t *testing.T) {
	srv, _, _ := newTestServer(t)
	h := srv.Handler()

	rec, body := doJSON(t, h, http.MethodPost, "/v1/search", `{"point":[4.2,4.2]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body)
	}
	if body["id"] != "d" {
		t.Errorf("id = %v, want d", body["id"])
	}
	if dist := body["distance"].(float64); dist >= 1.0 {
		t.Errorf("distance = %v, want < 1.0", dist)
	}
}

func TestHandleSearch_Errors(t *testing.T) {
	srv, _, _ := newTestServer(t)
	h := srv.Handler()

	tests := []struct {
		name string
		body string
		want int
	}{
		{"wrong dimensions", `{"point":[1,2,3]}`, http.StatusBadRequest},
		{"broken body", `{"point":`, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := doJSON(t, h, http.MethodPost, "/v1/search", tc.body)
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestHandleSearch_EmptyIndex(t *testing.T) {
	srv := New(Options{
		Tree: kdtree.NewEmpty(2),
		Log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	rec, _ := doJSON(t, srv.Handler(), http.MethodPost, "/v1/search", `{"point":[1,2]}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleInsert(t *testing.T) {
	srv, catalog, _ := newTestServer(t)
	h := srv.Handler()

	rec, body := doJSON(t, h, http.MethodPost, "/v1/points", `{"id":"f","point":[6,6]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body)
	}
	if body["id"] != "f" {
		t.Errorf("id = %v, want f", body["id"])
	}

	// The new point is immediately searchable.
	rec, body = doJSON(t, h, http.MethodPost, "/v1/search", `{"point":[5.5,5.5]}`)
	if rec.Code != http.StatusOK || body["id"] != "f" {
		t.Errorf("search after insert: status %d, id %v, want 200 and f", rec.Code, body["id"])
	}

	// And it reached the catalog.
	p, err := catalog.Get(context.Background(), "f")
	if err != nil || p == nil {
		t.Fatalf("catalog.Get(f) = %v, %v", p, err)
	}
}

func TestHandleInsert_GeneratesID(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec, body := doJSON(t, srv.Handler(), http.MethodPost, "/v1/points", `{"point":[7,7]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if id, _ := body["id"].(string); id == "" {
		t.Error("expected a generated id")
	}
}

func TestHandleSave(t *testing.T) {
	srv, _, indexPath := newTestServer(t)

	rec, _ := doJSON(t, srv.Handler(), http.MethodPost, "/v1/save", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body)
	}

	f, err := os.Open(indexPath)
	if err != nil {
		t.Fatalf("opening saved index: %v", err)
	}
	defer f.Close()
	loaded, err := kdtree.Load(f)
	if err != nil {
		t.Fatalf("Load() of saved index error = %v", err)
	}
	if loaded.Len() != 5 {
		t.Errorf("loaded Len() = %d, want 5", loaded.Len())
	}
}

func TestHandleStats(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec, body := doJSON(t, srv.Handler(), http.MethodGet, "/v1/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body["points"].(float64) != 5 {
		t.Errorf("points = %v, want 5", body["points"])
	}
	if body["dims"].(float64) != 2 {
		t.Errorf("dims = %v, want 2", body["dims"])
	}
}

func TestHandleHealthz(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec, body := doJSON(t, srv.Handler(), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || body["status"] != "ok" {
		t.Errorf("healthz = %d %v, want 200 ok", rec.Code, body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("go_goroutines")) {
		t.Error("expected default runtime metrics in /metrics output")
	}
}
