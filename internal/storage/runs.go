// Package storage defines the best-run persistence boundary the engine
// writes to when a run ends, plus an in-memory implementation.
package storage

import (
	"context"
	"sort"
	"sync"
	"time"
)

// DefaultRunLimit is how many best runs are retained.
const DefaultRunLimit = 10

// RunSummary is one completed run's record.
type RunSummary struct {
	Class           string
	RoundsSurvived  int
	EnemiesDefeated int
	DamageDealt     int
	GoldEarned      int
	RecordedAt      time.Time
}

// Store persists the best-runs list. The engine treats load-then-save as a
// single logical transaction; implementations must not interleave writers.
type Store interface {
	// Load returns the stored runs sorted descending by rounds survived.
	Load(ctx context.Context) ([]RunSummary, error)
	// Save replaces the stored runs with the given list.
	Save(ctx context.Context, runs []RunSummary) error
}

// SortAndTruncate orders runs descending by rounds survived (ties broken by
// most recent first) and keeps at most limit entries.
//
// Postcondition: The returned slice is a new allocation of length <= limit.
func SortAndTruncate(runs []RunSummary, limit int) []RunSummary {
	out := make([]RunSummary, len(runs))
	copy(out, runs)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RoundsSurvived != out[j].RoundsSurvived {
			return out[i].RoundsSurvived > out[j].RoundsSurvived
		}
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// MemoryStore is a Store kept in process memory, for tests and runs without
// a database. Safe for concurrent use.
type MemoryStore struct {
	mu   sync.Mutex
	runs []RunSummary
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the stored runs.
func (s *MemoryStore) Load(ctx context.Context) ([]RunSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RunSummary, len(s.runs))
	copy(out, s.runs)
	return out, nil
}

// Save replaces the stored runs.
func (s *MemoryStore) Save(ctx context.Context, runs []RunSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = make([]RunSummary, len(runs))
	copy(s.runs, runs)
	return nil
}
