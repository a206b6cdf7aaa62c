package mastery

import (
	"slices"
	"sync"
)

// Store is the process-wide table of learner mastery records.
//
// Records are created on first reference and kept for the lifetime of the
// process. Nothing is persisted: a restart loses all mastery history.
// Updates for the same learner are serialized; different learners proceed
// in parallel.
type Store struct {
	mu       sync.Mutex
	learners map[string]*entry
}

type entry struct {
	mu    sync.Mutex
	model *Model
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{learners: make(map[string]*entry)}
}

func (s *Store) entry(learnerID string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.learners[learnerID]
	if !ok {
		e = &entry{model: newModel(learnerID)}
		s.learners[learnerID] = e
	}
	return e
}

// Update runs fn with exclusive access to the learner's record.
// The record is created with all-zero scores if it doesn't exist yet.
// fn's error is returned unchanged; any mutation fn made before failing stays.
func (s *Store) Update(learnerID string, fn func(*Model) error) error {
	e := s.entry(learnerID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.model)
}

// Snapshot returns a copy of the learner's record, creating it if needed.
func (s *Store) Snapshot(learnerID string) Snapshot {
	e := s.entry(learnerID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.model.Snapshot()
}

// Learners returns the known learner IDs in sorted order.
func (s *Store) Learners() []string {
	s.mu.Lock()
	ids := make([]string, 0, len(s.learners))
	for id := range s.learners {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	slices.Sort(ids)
	return ids
}

// Len returns the number of learner records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.learners)
}
