package core

// batch.go applies the point transformation row-wise to CSV input. The
// file is streamed, never buffered whole; per-row failures are collected
// and reported alongside the successful rows, so one bad row never
// aborts a batch.

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/danquah/gridpoint/internal/crs"
	"github.com/google/uuid"
)

// Column name candidates, checked in order and case-insensitively.
// Matches the conventions of common GIS and survey exports.
var (
	lonColumns      = []string{"lon", "longitude", "x"}
	latColumns      = []string{"lat", "latitude", "y"}
	eastingColumns  = []string{"x", "easting"}
	northingColumns = []string{"y", "northing"}
)

// Output columns appended to every transformed row.
const (
	colTransformedX = "transformed_x"
	colTransformedY = "transformed_y"
	colTargetCRS    = "target_crs"
)

// RowError describes one failed CSV row. Row numbers are 1-based over
// the data rows, excluding the header.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// BatchResult is the JSON shape of a completed batch job.
type BatchResult struct {
	Success        bool             `json:"success"`
	TotalProcessed int              `json:"total_processed"`
	Errors         []RowError       `json:"errors"`
	Data           []map[string]any `json:"data"`
}

// BatchOutcome pairs the wire result with the ordered output columns,
// which the CSV renderer needs and JSON maps cannot preserve.
type BatchOutcome struct {
	JobID   uuid.UUID
	Result  BatchResult
	Columns []string
}

// TransformBatch streams CSV rows from r, transforming each point from
// sourceCRS to targetCRS. The header row is required; coordinate
// columns are detected per system convention (lon/lat for geographic,
// x/y or easting/northing for projected). Original columns are kept and
// transformed_x, transformed_y, target_crs appended.
//
// The job summary is recorded in the history store on success; filename
// is only used for that record.
func (s *Service) TransformBatch(ctx context.Context, sourceCRS, targetCRS, filename string, r io.Reader) (*BatchOutcome, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	source, ok := crs.Lookup(sourceCRS)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCRS, sourceCRS)
	}
	target, autoZone, err := resolveBatchTarget(targetCRS)
	if err != nil {
		return nil, err
	}

	started := time.Now()

	reader := csv.NewReader(newBOMSkippingReader(r))
	reader.FieldsPerRecord = -1 // ragged rows become row errors, not batch errors
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCSV
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	xIdx, yIdx, err := locateCoordinateColumns(source, header)
	if err != nil {
		return nil, err
	}

	outcome := &BatchOutcome{
		JobID:   uuid.New(),
		Columns: append(append([]string{}, header...), colTransformedX, colTransformedY, colTargetCRS),
		Result: BatchResult{
			Success: true,
			Errors:  []RowError{},
			Data:    []map[string]any{},
		},
	}

	rowNum := 0
	for {
		// A cancelled upload should stop chewing through the file.
		if rowNum%100 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			outcome.Result.Errors = append(outcome.Result.Errors, RowError{Row: rowNum, Error: err.Error()})
			continue
		}

		row, rowErr := s.transformRow(source, target, autoZone, header, record, xIdx, yIdx)
		if rowErr != nil {
			outcome.Result.Errors = append(outcome.Result.Errors, RowError{Row: rowNum, Error: rowErr.Error()})
			continue
		}
		outcome.Result.Data = append(outcome.Result.Data, row)
	}

	if rowNum == 0 {
		return nil, ErrEmptyCSV
	}
	outcome.Result.TotalProcessed = len(outcome.Result.Data)

	s.recordJob(ctx, outcome, source.Key, targetCRS, filename, time.Since(started))
	return outcome, nil
}

// resolveBatchTarget resolves the target key, allowing UTM_AUTO to stay
// unresolved so each row can pick its own zone.
func resolveBatchTarget(targetCRS string) (crs.System, bool, error) {
	if targetCRS == crs.AutoUTM {
		return crs.System{}, true, nil
	}
	target, ok := crs.Lookup(targetCRS)
	if !ok {
		return crs.System{}, false, fmt.Errorf("%w: %q", ErrUnknownCRS, targetCRS)
	}
	return target, false, nil
}

// transformRow converts a single record and returns the output row with
// original columns preserved.
func (s *Service) transformRow(source, target crs.System, autoZone bool, header, record []string, xIdx, yIdx int) (map[string]any, error) {
	if xIdx >= len(record) || yIdx >= len(record) {
		return nil, ErrMissingCoordinates
	}

	x, err := parseCoordinate(record[xIdx])
	if err != nil {
		return nil, err
	}
	y, err := parseCoordinate(record[yIdx])
	if err != nil {
		return nil, err
	}

	if autoZone {
		lon, _ := source.ToWGS84(x, y)
		zone, ok := crs.Lookup(crs.AutoZone(lon))
		if !ok {
			return nil, ErrUnknownCRS
		}
		target = zone
	}

	tx, ty := crs.Transform(source, target, x, y)

	row := make(map[string]any, len(header)+3)
	for i, name := range header {
		if i < len(record) {
			row[name] = record[i]
		} else {
			row[name] = ""
		}
	}
	row[colTransformedX] = round(tx, 6)
	row[colTransformedY] = round(ty, 6)
	row[colTargetCRS] = target.Key
	return row, nil
}

// locateCoordinateColumns finds the x and y column indexes for the
// source system's convention.
func locateCoordinateColumns(source crs.System, header []string) (int, int, error) {
	var xCandidates, yCandidates []string
	if source.Geographic() {
		xCandidates, yCandidates = lonColumns, latColumns
	} else {
		xCandidates, yCandidates = eastingColumns, northingColumns
	}

	xIdx := findColumn(header, xCandidates)
	yIdx := findColumn(header, yCandidates)
	if xIdx < 0 || yIdx < 0 {
		return 0, 0, fmt.Errorf("%w: no coordinate columns in header %v", ErrInvalidCSV, header)
	}
	return xIdx, yIdx, nil
}

// findColumn returns the index of the first header cell matching any
// candidate, comparing case-insensitively.
func findColumn(header []string, candidates []string) int {
	for _, want := range candidates {
		for i, got := range header {
			if strings.EqualFold(got, want) {
				return i
			}
		}
	}
	return -1
}

// parseCoordinate parses a CSV cell as a float, mapping failures to the
// domain error so they get a stable code.
func parseCoordinate(cell string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, cell)
	}
	return v, nil
}

// recordJob writes the job summary to the history store. History is
// best effort: a storage failure never fails the batch.
func (s *Service) recordJob(ctx context.Context, outcome *BatchOutcome, sourceKey, targetKey, filename string, elapsed time.Duration) {
	if !s.history.Enabled() {
		return
	}
	rec := JobRecord{
		ID:         outcome.JobID,
		Filename:   filename,
		SourceCRS:  sourceKey,
		TargetCRS:  targetKey,
		Processed:  outcome.Result.TotalProcessed,
		Failed:     len(outcome.Result.Errors),
		DurationMS: elapsed.Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.history.RecordJob(ctx, rec); err != nil {
		logJobHistoryFailure(ctx, rec, err)
	}
}
