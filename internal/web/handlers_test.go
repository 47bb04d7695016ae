package web

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danquah/gridpoint/internal/config"
	"github.com/danquah/gridpoint/internal/core"
	"github.com/danquah/gridpoint/internal/crs"
)

// ============================================================================
// Test helpers
// ============================================================================

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			RequestTimeout: 5 * time.Second,
		},
		Batch: config.BatchConfig{
			MaxFileSize:   1 << 20,
			MaxConcurrent: 2,
			MaxWaitTime:   200 * time.Millisecond,
			HistoryLimit:  20,
		},
		Rate: config.RateLimitConfig{Enabled: false},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

func newTestServer(history core.HistoryStore) *Server {
	cfg := testConfig()
	return NewServer(core.NewService(cfg, history), cfg)
}

func doRequest(s *Server, method, path, contentType, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
}

// memoryHistory is an in-memory HistoryStore for handler tests.
type memoryHistory struct {
	jobs []core.JobRecord
}

func (m *memoryHistory) Enabled() bool { return true }

func (m *memoryHistory) RecordJob(_ context.Context, rec core.JobRecord) error {
	m.jobs = append(m.jobs, rec)
	return nil
}

func (m *memoryHistory) RecentJobs(_ context.Context, limit int) ([]core.JobRecord, error) {
	if limit > 0 && limit < len(m.jobs) {
		return m.jobs[:limit], nil
	}
	return m.jobs, nil
}

// ============================================================================
// Basic endpoints
// ============================================================================

func TestHealthz(t *testing.T) {
	s := newTestServer(nil)
	rec := doRequest(s, http.MethodGet, "/healthz", "", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	decodeBody(t, rec, &body)
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want %q", body["status"], "ok")
	}
}

func TestIndexPage(t *testing.T) {
	s := newTestServer(nil)
	rec := doRequest(s, http.MethodGet, "/", "", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if !strings.Contains(rec.Body.String(), "leaflet") {
		t.Error("index page does not reference the map library")
	}
}

func TestSecurityHeaders(t *testing.T) {
	s := newTestServer(nil)
	rec := doRequest(s, http.MethodGet, "/healthz", "", "")

	headers := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for name, want := range headers {
		if got := rec.Header().Get(name); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
}

func TestCRSInfo(t *testing.T) {
	s := newTestServer(nil)
	rec := doRequest(s, http.MethodGet, "/api/crs-info", "", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var info map[string]crs.Descriptor
	decodeBody(t, rec, &info)

	for _, key := range []string{"WGS84", "UTM_30N", "UTM_31N", "GHANA_GRID", "WEB_MERCATOR"} {
		desc, ok := info[key]
		if !ok {
			t.Errorf("missing system %q", key)
			continue
		}
		if desc.Name == "" || desc.Units == "" {
			t.Errorf("system %q has incomplete descriptor: %+v", key, desc)
		}
	}
}

func TestAccuracyInfo(t *testing.T) {
	s := newTestServer(nil)
	rec := doRequest(s, http.MethodGet, "/api/accuracy-info", "", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var table map[string]crs.Accuracy
	decodeBody(t, rec, &table)

	entry, ok := table["WGS84_to_UTM"]
	if !ok {
		t.Fatalf("missing WGS84_to_UTM entry, got keys %v", table)
	}
	if entry.Accuracy == "" || entry.UseCase == "" {
		t.Errorf("incomplete accuracy entry: %+v", entry)
	}
}

// ============================================================================
// POST /api/transform
// ============================================================================

func TestTransform(t *testing.T) {
	s := newTestServer(nil)
	body := `{
		"source_crs": "WGS84",
		"target_crs": "UTM_30N",
		"coordinates": {"lon": -0.1870, "lat": 5.6037}
	}`
	rec := doRequest(s, http.MethodPost, "/api/transform", "application/json", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var result core.TransformResult
	decodeBody(t, rec, &result)

	if result.Source.CRS != "WGS84" || result.Target.CRS != "UTM_30N" {
		t.Errorf("CRS pair = %s -> %s", result.Source.CRS, result.Target.CRS)
	}
	if math.Abs(result.Target.X-811654.205308) > 1e-3 {
		t.Errorf("target x = %f, want 811654.205308", result.Target.X)
	}
	if math.Abs(result.Target.Y-620144.518038) > 1e-3 {
		t.Errorf("target y = %f, want 620144.518038", result.Target.Y)
	}
	if result.Accuracy.Accuracy == "" {
		t.Error("accuracy missing from response")
	}
	if result.Metadata == nil {
		t.Fatal("metadata missing for UTM target")
	}
	if result.Metadata.Zone != "UTM_30N" {
		t.Errorf("zone = %q, want UTM_30N", result.Metadata.Zone)
	}
}

func TestTransformAutoZone(t *testing.T) {
	s := newTestServer(nil)
	body := `{
		"source_crs": "WGS84",
		"target_crs": "UTM_AUTO",
		"coordinates": {"lon": 1.5, "lat": 7.0}
	}`
	rec := doRequest(s, http.MethodPost, "/api/transform", "application/json", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var result core.TransformResult
	decodeBody(t, rec, &result)
	if result.Target.CRS != "UTM_31N" {
		t.Errorf("resolved zone = %q, want UTM_31N", result.Target.CRS)
	}
}

func TestTransformErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "unknown source",
			body:       `{"source_crs":"EPSG:9999","target_crs":"WGS84","coordinates":{"x":1,"y":2}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "CRS001",
		},
		{
			name:       "unknown target",
			body:       `{"source_crs":"WGS84","target_crs":"MARS_GRID","coordinates":{"lon":0,"lat":5}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "CRS001",
		},
		{
			name:       "missing coordinates",
			body:       `{"source_crs":"WGS84","target_crs":"UTM_30N","coordinates":{}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "CRS002",
		},
		{
			name:       "non-numeric coordinate",
			body:       `{"source_crs":"WGS84","target_crs":"UTM_30N","coordinates":{"lon":"abc","lat":5.6}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "CRS003",
		},
		{
			name:       "malformed json",
			body:       `{"source_crs":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "REQ001",
		},
	}

	s := newTestServer(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(s, http.MethodPost, "/api/transform", "application/json", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			var resp ErrorResponse
			decodeBody(t, rec, &resp)
			if resp.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Code, tt.wantCode)
			}
			if resp.Error == "" {
				t.Error("error message is empty")
			}
		})
	}
}

// ============================================================================
// POST /api/validate
// ============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantValid    bool
		wantWarnings int
		wantErrors   int
	}{
		{
			name:      "point in Ghana",
			body:      `{"crs":"WGS84","x":-0.1870,"y":5.6037}`,
			wantValid: true,
		},
		{
			name:       "latitude out of range",
			body:       `{"crs":"WGS84","x":0,"y":95}`,
			wantValid:  false,
			wantErrors: 1,
			// 95 is also outside the Ghana latitude band
			wantWarnings: 1,
		},
		{
			name:         "outside Ghana bounds",
			body:         `{"crs":"WGS84","x":10,"y":5}`,
			wantValid:    true,
			wantWarnings: 1,
		},
		{
			name:         "implausible easting",
			body:         `{"crs":"UTM_30N","x":100,"y":620000}`,
			wantValid:    true,
			wantWarnings: 1,
		},
	}

	s := newTestServer(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(s, http.MethodPost, "/api/validate", "application/json", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
			}
			var v crs.Validation
			decodeBody(t, rec, &v)
			if v.Valid != tt.wantValid {
				t.Errorf("valid = %v, want %v", v.Valid, tt.wantValid)
			}
			if len(v.Warnings) != tt.wantWarnings {
				t.Errorf("warnings = %v, want %d", v.Warnings, tt.wantWarnings)
			}
			if len(v.Errors) != tt.wantErrors {
				t.Errorf("errors = %v, want %d", v.Errors, tt.wantErrors)
			}
		})
	}
}

func TestValidateRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"unknown crs", `{"crs":"NAD83","x":1,"y":2}`, "CRS001"},
		{"missing coordinates", `{"crs":"WGS84"}`, "CRS002"},
	}

	s := newTestServer(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(s, http.MethodPost, "/api/validate", "application/json", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var resp ErrorResponse
			decodeBody(t, rec, &resp)
			if resp.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Code, tt.wantCode)
			}
		})
	}
}

// ============================================================================
// GET /api/history
// ============================================================================

func TestHistoryWithoutDatabase(t *testing.T) {
	s := newTestServer(nil)
	rec := doRequest(s, http.MethodGet, "/api/history", "", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	if resp.Code != "JOB002" {
		t.Errorf("code = %q, want JOB002", resp.Code)
	}
}

func TestHistoryListsJobs(t *testing.T) {
	history := &memoryHistory{}
	s := newTestServer(history)

	rec := doRequest(s, http.MethodGet, "/api/history", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var body struct {
		Jobs []core.JobRecord `json:"jobs"`
	}
	decodeBody(t, rec, &body)
	if body.Jobs == nil {
		t.Fatal("jobs field must be an array, not null")
	}
	if len(body.Jobs) != 0 {
		t.Errorf("jobs = %v, want empty", body.Jobs)
	}
}
