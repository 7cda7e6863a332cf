package data

import (
	"fmt"
	"sync"
)

// Store is the single source of truth for every record in a run. It is safe
// for concurrent use; records are copied on the way in and out so callers
// never alias internal state. Insertion order is preserved.
type Store struct {
	mu   sync.RWMutex
	byID map[string]int
	recs []Record
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{byID: make(map[string]int)}
}

// Add inserts a record. A duplicate id is an error.
func (s *Store) Add(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[rec.ID]; ok {
		return fmt.Errorf("data: duplicate record id %q", rec.ID)
	}
	s.byID[rec.ID] = len(s.recs)
	s.recs = append(s.recs, rec.clone())
	return nil
}

// Get retrieves a record by id.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return Record{}, false
	}
	return s.recs[i].clone(), true
}

// Contains reports whether a record with the given id exists.
func (s *Store) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byID[id]
	return ok
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recs)
}

// All returns every record in insertion order.
func (s *Store) All() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.recs))
	for i := range s.recs {
		out[i] = s.recs[i].clone()
	}
	return out
}

// Update replaces the stored record with the same id. It reports false when
// no such record exists. Concurrent mutators must use Instantiate or
// AttachInput instead; a read-modify-Update cycle can lose a write that
// lands between the read and the write-back.
func (s *Store) Update(rec Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.byID[rec.ID]
	if !ok {
		return false
	}
	s.recs[i] = rec.clone()
	return true
}

// Instantiate attaches the payload to the stored record in place, under the
// store's lock. A missing id or a second instantiation is an error.
func (s *Store) Instantiate(id string, payload any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("data: no record %q to instantiate", id)
	}
	return s.recs[i].Instantiate(payload)
}

// AttachInput registers a consumer link on the stored record in place, under
// the store's lock. It reports false when no such record exists.
func (s *Store) AttachInput(id string, l Link) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.byID[id]
	if !ok {
		return false
	}
	s.recs[i].AttachInput(l)
	return true
}

// FindByLink resolves a link to the record it refers to.
//
// An output link matches the record whose OutputLink carries the same port
// identity. An input link first matches any record that already lists it as
// a consumer; failing that it falls back to the record whose OutputLink
// agrees on Type and LinkID, since the consumer's own owner and port name
// are irrelevant to what it is wired to. A miss returns false, never an
// error: unresolvable links are the normal state of not-yet-produced data.
func (s *Store) FindByLink(l Link) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !l.IsInput {
		for i := range s.recs {
			if s.recs[i].OutputLink.Matches(l) {
				return s.recs[i].clone(), true
			}
		}
		return Record{}, false
	}

	for i := range s.recs {
		for _, in := range s.recs[i].InputLinks {
			if in.Matches(l) {
				return s.recs[i].clone(), true
			}
		}
	}
	for i := range s.recs {
		out := s.recs[i].OutputLink
		if out.Type == l.Type && out.LinkID == l.LinkID {
			return s.recs[i].clone(), true
		}
	}
	return Record{}, false
}
