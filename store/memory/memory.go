/*
Package memory provides the in-memory ScheduleStore.

Used by tests and as the server's store when no database path is
configured. The document is kept as serialized JSON so Load always hands
back an independent value; callers can mutate what they receive without
corrupting the stored copy.
*/
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/warp/schedule-engine/schedule"
	"github.com/warp/schedule-engine/store"
)

// Store is a thread-safe single-document in-memory store.
type Store struct {
	mu       sync.RWMutex
	document []byte
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

// Load returns the stored schedule, or store.ErrNotFound.
func (s *Store) Load(ctx context.Context) (schedule.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.document == nil {
		return schedule.Schedule{}, store.ErrNotFound
	}
	var out schedule.Schedule
	if err := json.Unmarshal(s.document, &out); err != nil {
		return schedule.Schedule{}, err
	}
	return out, nil
}

// Save replaces the stored schedule.
func (s *Store) Save(ctx context.Context, sched schedule.Schedule) error {
	data, err := json.Marshal(sched)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.document = data
	return nil
}
