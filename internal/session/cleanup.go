// Package session holds the setup-session store and its cleanup sweep.
package session

import (
	"context"
	"log"
	"time"

	"water-abstraction-admin/internal/metrics"
)

// Sweeper is the minimal repository surface the cleanup sweep needs.
type Sweeper interface {
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Cleaner deletes sessions older than the retention window. A failed run is
// not retried; the rows are picked up on the next scheduled run.
type Cleaner struct {
	repo      Sweeper
	retention time.Duration
}

// NewCleaner returns a Cleaner that deletes sessions older than retention.
func NewCleaner(repo Sweeper, retention time.Duration) *Cleaner {
	return &Cleaner{repo: repo, retention: retention}
}

// Run performs one sweep and logs the deleted row count and elapsed time.
func (c *Cleaner) Run(ctx context.Context) error {
	start := time.Now()
	cutoff := start.UTC().Add(-c.retention)

	count, err := c.repo.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		log.Printf("session cleanup failed: %v", err)
		return err
	}

	metrics.RecordSessionsCleaned(count)
	log.Printf("session cleanup deleted %d sessions in %s", count, time.Since(start).Round(time.Millisecond))
	return nil
}
