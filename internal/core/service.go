// Package core implements the coordinate transformation service:
// single-point conversion, row-wise batch conversion of CSV input, and
// an optional history of batch jobs.
//
// The service is stateless with respect to coordinate data. Every
// request is computed independently from the static CRS registry; only
// batch job summaries are ever written anywhere, and only when a
// database is configured.
package core

import (
	"fmt"
	"math"

	"github.com/danquah/gridpoint/internal/config"
	"github.com/danquah/gridpoint/internal/crs"
)

// Service owns the transformation operations and their collaborators.
type Service struct {
	cfg     *config.Config
	limiter *BatchLimiter
	history HistoryStore
}

// NewService wires a service from configuration. history may be nil, in
// which case job summaries are discarded.
func NewService(cfg *config.Config, history HistoryStore) *Service {
	if history == nil {
		history = NoopHistory{}
	}
	return &Service{
		cfg:     cfg,
		limiter: NewBatchLimiter(cfg.Batch.MaxConcurrent, cfg.Batch.MaxWaitTime),
		history: history,
	}
}

// History exposes the job history store.
func (s *Service) History() HistoryStore { return s.history }

// Limiter exposes the batch limiter, used by main for graceful shutdown.
func (s *Service) Limiter() *BatchLimiter { return s.limiter }

// Coordinates is the wire format of an input point. Geographic systems
// use lon/lat, projected systems x/y; pointers distinguish absent
// fields from zero values.
type Coordinates struct {
	Lon *float64 `json:"lon,omitempty"`
	Lat *float64 `json:"lat,omitempty"`
	X   *float64 `json:"x,omitempty"`
	Y   *float64 `json:"y,omitempty"`
}

// TransformRequest is the body of the single-point transform operation.
type TransformRequest struct {
	SourceCRS   string      `json:"source_crs"`
	TargetCRS   string      `json:"target_crs"`
	Coordinates Coordinates `json:"coordinates"`
}

// Point is one endpoint of a transformation result.
type Point struct {
	CRS string  `json:"crs"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
}

// TransformResult is the full response of a single-point transformation.
type TransformResult struct {
	Source   Point         `json:"source"`
	Target   Point         `json:"target"`
	Accuracy crs.Accuracy  `json:"accuracy"`
	Metadata *crs.Metadata `json:"metadata,omitempty"`
}

// Transform converts one point between two named systems. The target
// may be the UTM_AUTO pseudo-key, which resolves to the zone covering
// the point's longitude.
func (s *Service) Transform(req TransformRequest) (*TransformResult, error) {
	source, ok := crs.Lookup(req.SourceCRS)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCRS, req.SourceCRS)
	}

	x, y, err := pickCoordinates(source, req.Coordinates)
	if err != nil {
		return nil, err
	}

	// Resolve pseudo and named targets. Auto selection and zone metadata
	// both need the point's WGS84 position.
	lon, lat := source.ToWGS84(x, y)

	targetKey := req.TargetCRS
	if targetKey == crs.AutoUTM {
		targetKey = crs.AutoZone(lon)
	}
	target, ok := crs.Lookup(targetKey)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCRS, req.TargetCRS)
	}

	tx, ty := crs.Transform(source, target, x, y)

	result := &TransformResult{
		Source:   Point{CRS: source.Key, X: x, Y: y},
		Target:   Point{CRS: target.Key, X: round(tx, 6), Y: round(ty, 6)},
		Accuracy: crs.AccuracyFor(source.Key, target.Key),
	}

	if md, ok := crs.ZoneMetadata(target.Key, lon, lat); ok {
		md.Convergence = round(md.Convergence, 6)
		md.ScaleFactor = round(md.ScaleFactor, 8)
		result.Metadata = &md
	}

	return result, nil
}

// pickCoordinates extracts the coordinate pair matching the source
// system's convention, accepting x/y as a fallback for geographic input.
func pickCoordinates(source crs.System, c Coordinates) (float64, float64, error) {
	if source.Geographic() && c.Lon != nil && c.Lat != nil {
		return *c.Lon, *c.Lat, nil
	}
	if c.X != nil && c.Y != nil {
		return *c.X, *c.Y, nil
	}
	return 0, 0, ErrMissingCoordinates
}

// round rounds v to the given number of decimal places, matching the
// precision the service reports on the wire.
func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
