package core

// history.go records batch job summaries. Only summaries are stored:
// file names, CRS pair, row counts, timing. Coordinate data never
// touches the database.

import (
	"context"
	"fmt"
	"time"

	"github.com/danquah/gridpoint/internal/logging"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// JobRecord is one batch job summary.
type JobRecord struct {
	ID         uuid.UUID `json:"id"`
	Filename   string    `json:"filename"`
	SourceCRS  string    `json:"source_crs"`
	TargetCRS  string    `json:"target_crs"`
	Processed  int       `json:"processed"`
	Failed     int       `json:"failed"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// HistoryStore persists and lists batch job summaries.
type HistoryStore interface {
	// Enabled reports whether summaries are actually stored.
	Enabled() bool

	// RecordJob writes one summary.
	RecordJob(ctx context.Context, rec JobRecord) error

	// RecentJobs returns up to limit summaries, newest first.
	RecentJobs(ctx context.Context, limit int) ([]JobRecord, error)
}

// NoopHistory discards summaries; used when no database is configured.
type NoopHistory struct{}

func (NoopHistory) Enabled() bool                              { return false }
func (NoopHistory) RecordJob(context.Context, JobRecord) error { return nil }
func (NoopHistory) RecentJobs(context.Context, int) ([]JobRecord, error) {
	return nil, ErrHistoryDisabled
}

// PGHistory stores job summaries in Postgres.
type PGHistory struct {
	pool *pgxpool.Pool
}

// NewPGHistory creates the backing table if needed and returns the store.
func NewPGHistory(ctx context.Context, pool *pgxpool.Pool) (*PGHistory, error) {
	const ddl = `
		CREATE TABLE IF NOT EXISTS batch_jobs (
			id          UUID PRIMARY KEY,
			filename    TEXT NOT NULL,
			source_crs  TEXT NOT NULL,
			target_crs  TEXT NOT NULL,
			processed   INTEGER NOT NULL,
			failed      INTEGER NOT NULL,
			duration_ms BIGINT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return nil, fmt.Errorf("create batch_jobs table: %w", err)
	}
	return &PGHistory{pool: pool}, nil
}

func (h *PGHistory) Enabled() bool { return true }

func (h *PGHistory) RecordJob(ctx context.Context, rec JobRecord) error {
	const insert = `
		INSERT INTO batch_jobs (id, filename, source_crs, target_crs, processed, failed, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := h.pool.Exec(ctx, insert,
		rec.ID, rec.Filename, rec.SourceCRS, rec.TargetCRS,
		rec.Processed, rec.Failed, rec.DurationMS, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert batch job: %w", err)
	}
	return nil
}

func (h *PGHistory) RecentJobs(ctx context.Context, limit int) ([]JobRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	const query = `
		SELECT id, filename, source_crs, target_crs, processed, failed, duration_ms, created_at
		FROM batch_jobs
		ORDER BY created_at DESC
		LIMIT $1`
	rows, err := h.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query batch jobs: %w", err)
	}
	defer rows.Close()

	var jobs []JobRecord
	for rows.Next() {
		var rec JobRecord
		if err := rows.Scan(&rec.ID, &rec.Filename, &rec.SourceCRS, &rec.TargetCRS,
			&rec.Processed, &rec.Failed, &rec.DurationMS, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan batch job: %w", err)
		}
		jobs = append(jobs, rec)
	}
	return jobs, rows.Err()
}

// logJobHistoryFailure notes a failed summary write without failing the
// batch itself.
func logJobHistoryFailure(ctx context.Context, rec JobRecord, err error) {
	logging.FromContext(ctx).Warn("failed to record batch job",
		"job_id", rec.ID,
		"source_crs", rec.SourceCRS,
		"target_crs", rec.TargetCRS,
		"error", err,
	)
}
