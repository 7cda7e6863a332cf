package process

import (
	"fmt"
	"sync"
	"time"

	"github.com/asterion-dev/pipekit/data"
)

// Store is the catalogue of every process instance in a run. It is safe for
// concurrent use; instances are copied on the way in and out. Insertion
// order is preserved.
type Store struct {
	mu   sync.RWMutex
	byID map[string]int
	list []Instance
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{byID: make(map[string]int)}
}

// Add inserts an instance. A duplicate id is an error.
func (s *Store) Add(in Instance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[in.ID]; ok {
		return fmt.Errorf("process: duplicate instance id %q", in.ID)
	}
	s.byID[in.ID] = len(s.list)
	s.list = append(s.list, in.clone())
	return nil
}

// Get retrieves an instance by id.
func (s *Store) Get(id string) (Instance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return Instance{}, false
	}
	return s.list[i].clone(), true
}

// Len returns the number of instances.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.list)
}

// All returns every instance in insertion order.
func (s *Store) All() []Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Instance, len(s.list))
	for i := range s.list {
		out[i] = s.list[i].clone()
	}
	return out
}

// ByStatus returns every instance currently in the given status, in
// insertion order.
func (s *Store) ByStatus(st Status) []Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Instance
	for i := range s.list {
		if s.list[i].Status == st {
			out = append(out, s.list[i].clone())
		}
	}
	return out
}

// SetStatus transitions an instance, validating the state machine and
// appending to its history. Illegal transitions and unknown ids are errors.
func (s *Store) SetStatus(id string, to Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setStatusLocked(id, to)
}

// Complete transitions an instance from running to completed.
func (s *Store) Complete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setStatusLocked(id, StatusCompleted)
}

// Fail transitions an instance from running to failed, recording the reason.
func (s *Store) Fail(id, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.setStatusLocked(id, StatusFailed); err != nil {
		return err
	}
	s.list[s.byID[id]].FailureReason = reason
	return nil
}

func (s *Store) setStatusLocked(id string, to Status) error {
	i, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("process: unknown instance %q", id)
	}
	in := &s.list[i]
	if !in.Status.CanTransition(to) {
		return fmt.Errorf("process: illegal transition %s -> %s for instance %s (step %s)",
			in.Status, to, id, in.StepID)
	}
	in.History = append(in.History, StatusChange{From: in.Status, To: to, At: time.Now()})
	in.Status = to
	return nil
}

// ReadyPending returns every pending instance, not listed in exclude, whose
// input links all resolve to instantiated records in the data store. The
// result is recomputed from scratch on every call; records only ever gain
// payloads, so a reported instance stays ready until it is started.
func (s *Store) ReadyPending(ds *data.Store, exclude map[string]bool) []Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ready []Instance
	for i := range s.list {
		in := &s.list[i]
		if in.Status != StatusPending || exclude[in.ID] {
			continue
		}
		satisfied := true
		for _, l := range in.Inputs {
			rec, ok := ds.FindByLink(l)
			if !ok || !rec.Instantiated {
				satisfied = false
				break
			}
		}
		if satisfied {
			ready = append(ready, in.clone())
		}
	}
	return ready
}
