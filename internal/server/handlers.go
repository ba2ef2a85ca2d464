package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/nvandessel/kdindex/internal/index"
	"github.com/nvandessel/kdindex/internal/kdtree"
	"github.com/nvandessel/kdindex/internal/store"
	"github.com/nvandessel/kdindex/pkg/metrics"
)

type searchRequest struct {
	Point []float32 `json:"point"`
}

type insertRequest struct {
	ID    string    `json:"id"`
	Point []float32 `json:"point"`
}

type statsResponse struct {
	Points int `json:"points"`
	Height int `json:"height"`
	Dims   int `json:"dims"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	start := time.Now()
	res, err := s.tree.Nearest(r.Context(), req.Point)
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		switch {
		case errors.Is(err, kdtree.ErrEmptyTree):
			s.writeError(w, http.StatusNotFound, "index is empty")
		case errors.Is(err, kdtree.ErrDimensionMismatch):
			s.writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	metrics.SearchesTotal.WithLabelValues("hit").Inc()
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	var req insertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	if err := s.tree.Insert(r.Context(), req.ID, req.Point); err != nil {
		metrics.InsertsTotal.WithLabelValues("error").Inc()
		if errors.Is(err, kdtree.ErrDimensionMismatch) {
			s.writeError(w, http.StatusBadRequest, err.Error())
		} else {
			s.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	// Catalog after the tree accepted the point, so a catalog row
	// always describes a point the index has seen.
	if s.catalog != nil {
		if err := s.catalog.Put(r.Context(), store.Point{ID: req.ID, Vec: req.Point}); err != nil {
			s.log.Error("cataloging inserted point", "id", req.ID, "error", err)
		}
	}

	metrics.InsertsTotal.WithLabelValues("ok").Inc()
	metrics.IndexedPoints.Set(float64(s.tree.Len()))
	s.writeJSON(w, http.StatusCreated, map[string]string{"id": req.ID})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if s.indexPath == "" {
		s.writeError(w, http.StatusConflict, "no index path configured")
		return
	}
	if err := index.SaveFile(r.Context(), s.tree, s.indexPath); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "saved", "path": s.indexPath})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, statsResponse{
		Points: s.tree.Len(),
		Height: s.tree.Height(),
		Dims:   s.tree.Dims(),
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("writing response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
