package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type memSweeper struct {
	mu      sync.Mutex
	created map[string]time.Time
	failErr error
}

func (m *memSweeper) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return 0, m.failErr
	}
	var n int64
	for id, at := range m.created {
		if at.Before(cutoff) {
			delete(m.created, id)
			n++
		}
	}
	return n, nil
}

func TestCleaner_DeletesOnlyExpired(t *testing.T) {
	now := time.Now().UTC()
	repo := &memSweeper{created: map[string]time.Time{
		"old-1": now.Add(-48 * time.Hour),
		"old-2": now.Add(-25 * time.Hour),
		"fresh": now.Add(-time.Hour),
	}}

	c := NewCleaner(repo, 24*time.Hour)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, ok := repo.created["fresh"]; !ok {
		t.Error("session created within retention should survive the sweep")
	}
	if len(repo.created) != 1 {
		t.Errorf("remaining sessions = %d, want 1", len(repo.created))
	}
}

func TestCleaner_RunErrorIsReturned(t *testing.T) {
	repo := &memSweeper{failErr: errors.New("boom")}
	c := NewCleaner(repo, 24*time.Hour)
	if err := c.Run(context.Background()); err == nil {
		t.Fatal("Run should return the repository error")
	}
}
