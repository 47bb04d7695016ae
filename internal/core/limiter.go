package core

// limiter.go bounds concurrent batch jobs with a semaphore. A batch can
// chew through tens of thousands of rows; letting an unbounded number
// run in parallel would let a handful of clients exhaust the process.

import (
	"context"
	"sync"
	"time"
)

// DefaultMaxConcurrentJobs is the fallback limit for parallel batch jobs.
const DefaultMaxConcurrentJobs = 5

// DefaultMaxWaitTime is how long a request waits for a slot before
// being rejected with ErrTooManyJobs.
const DefaultMaxWaitTime = 10 * time.Second

// BatchLimiter restricts how many batch jobs run at the same time.
type BatchLimiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.RWMutex
	active int
}

// NewBatchLimiter creates a limiter allowing at most maxConcurrent
// simultaneous jobs. Non-positive arguments fall back to the defaults.
func NewBatchLimiter(maxConcurrent int, maxWait time.Duration) *BatchLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentJobs
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}
	return &BatchLimiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// Acquire blocks until a slot is free, the wait budget is spent, or ctx
// is cancelled. On success the caller must Release exactly once.
func (l *BatchLimiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil
	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManyJobs
	}
}

// Release frees a slot acquired with Acquire.
func (l *BatchLimiter) Release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()
	<-l.semaphore
}

// Active returns the number of jobs currently holding a slot.
func (l *BatchLimiter) Active() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// WaitForDrain blocks until no jobs are active or ctx expires. Used
// during graceful shutdown.
func (l *BatchLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		if l.Active() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
