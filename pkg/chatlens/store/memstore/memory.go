package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/cognicore/chatlens/pkg/chatlens/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu       sync.RWMutex
	messages map[string][]store.Message
	runs     map[string]store.Run
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		messages: make(map[string][]store.Message),
		runs:     make(map[string]store.Run),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveMessages replaces the stored corpus for a source.
func (s *Store) SaveMessages(ctx context.Context, source string, messages []store.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]store.Message, len(messages))
	copy(copied, messages)
	s.messages[source] = copied
	return nil
}

// GetMessages returns the stored corpus for a source in insertion order.
func (s *Store) GetMessages(ctx context.Context, source string) ([]store.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs, ok := s.messages[source]
	if !ok {
		return nil, nil
	}
	copied := make([]store.Message, len(msgs))
	copy(copied, msgs)
	return copied, nil
}

// SaveRun inserts or updates a run, keyed by ID.
func (s *Store) SaveRun(ctx context.Context, run store.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.ID] = copyRun(run)
	return nil
}

// GetRun returns a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if run, ok := s.runs[id]; ok {
		return copyRun(run), true, nil
	}
	return store.Run{}, false, nil
}

// ListRuns returns the most recent runs, newest first. ULIDs sort
// lexicographically by creation time, so the ID ordering is temporal.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]store.Run, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, copyRun(run))
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].ID > runs[j].ID
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func copyRun(r store.Run) store.Run {
	args := make([]string, len(r.Args))
	copy(args, r.Args)
	r.Args = args
	return r
}
