package web

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/danquah/gridpoint/internal/core"
	"github.com/danquah/gridpoint/internal/logging"
)

// handleTransformBatch processes a multipart CSV upload, transforming
// every row from source_crs to target_crs. The file is streamed through
// the service; per-row failures end up in the errors list, not in the
// response status.
//
// The default response is JSON; ?format=csv downloads the transformed
// rows as a CSV file instead.
func (s *Server) handleTransformBatch(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Batch.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %v", core.ErrNoFile, err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, core.ErrNoFile, http.StatusBadRequest)
		return
	}
	defer file.Close()

	sourceCRS := r.FormValue("source_crs")
	targetCRS := r.FormValue("target_crs")
	if sourceCRS == "" || targetCRS == "" {
		s.respondError(w, r, core.ErrUnknownCRS, http.StatusBadRequest)
		return
	}

	outcome, err := s.service.TransformBatch(r.Context(), sourceCRS, targetCRS, header.Filename, file)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, core.ErrTooManyJobs) {
			status = http.StatusTooManyRequests
		}
		s.respondError(w, r, err, status)
		return
	}

	logging.FromContext(r.Context()).Info("batch transform complete",
		"job_id", outcome.JobID,
		"file", header.Filename,
		"source_crs", sourceCRS,
		"target_crs", targetCRS,
		"processed", outcome.Result.TotalProcessed,
		"failed", len(outcome.Result.Errors),
	)

	if r.URL.Query().Get("format") == "csv" {
		s.writeBatchCSV(w, r, outcome)
		return
	}
	writeJSON(w, http.StatusOK, outcome.Result)
}

// writeBatchCSV renders the transformed rows as a CSV download,
// preserving the input column order.
func (s *Server) writeBatchCSV(w http.ResponseWriter, r *http.Request, outcome *core.BatchOutcome) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "transformed_"+outcome.JobID.String()+".csv"))

	cw := csv.NewWriter(w)
	if err := cw.Write(outcome.Columns); err != nil {
		logging.FromContext(r.Context()).Error("csv write error", "error", err)
		return
	}
	record := make([]string, len(outcome.Columns))
	for _, row := range outcome.Result.Data {
		for i, col := range outcome.Columns {
			record[i] = formatCell(row[col])
		}
		if err := cw.Write(record); err != nil {
			logging.FromContext(r.Context()).Error("csv write error", "error", err)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		logging.FromContext(r.Context()).Error("csv flush error", "error", err)
	}
}

// formatCell renders a batch cell for CSV output. Transformed values
// are float64, originals stay strings.
func formatCell(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return trimFloat(val)
	default:
		return fmt.Sprint(val)
	}
}

// trimFloat formats without trailing zeros or exponent notation.
func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
