package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/danquah/gridpoint/internal/core"
	"github.com/danquah/gridpoint/internal/crs"
)

// handleIndex serves the embedded map page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCRSInfo returns the descriptors of all supported systems.
func (s *Server) handleCRSInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, crs.Info())
}

// handleAccuracyInfo returns the transformation accuracy table.
func (s *Server) handleAccuracyInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, crs.AccuracyTable())
}

// handleTransform converts a single point between two systems.
func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	var req core.TransformRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	result, err := s.service.Transform(req)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// validateRequest is the body of the coordinate validation operation.
type validateRequest struct {
	CRS string   `json:"crs"`
	X   *float64 `json:"x"`
	Y   *float64 `json:"y"`
}

// handleValidate checks coordinate plausibility for a given system.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	if _, ok := crs.Lookup(req.CRS); !ok {
		s.respondError(w, r, core.ErrUnknownCRS, http.StatusBadRequest)
		return
	}
	if req.X == nil || req.Y == nil {
		s.respondError(w, r, core.ErrMissingCoordinates, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, crs.Validate(req.CRS, *req.X, *req.Y))
}

// handleHistory lists recent batch job summaries.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.service.History().RecentJobs(r.Context(), s.cfg.Batch.HistoryLimit)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, core.ErrHistoryDisabled) {
			status = http.StatusNotFound
		}
		s.respondError(w, r, err, status)
		return
	}
	if jobs == nil {
		jobs = []core.JobRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// decodeJSON decodes a request body, mapping syntax and type errors to
// the coordinate domain errors so they carry stable codes.
func decodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return core.ErrNotNumeric
		}
		return core.ErrInvalidJSON
	}
	return nil
}
