package records

import (
	"encoding/json"
	"sync"
)

// Set holds the record set pushed by the realtime store. The store is the
// sole source of truth: every push replaces the set wholesale, and the
// revision lets clients tell snapshots apart.
type Set struct {
	mu       sync.RWMutex
	records  []Record
	revision int64
}

func NewSet() *Set {
	return &Set{}
}

// Replace swaps in a new snapshot and returns the number of records kept.
// Entries that fail to decode are dropped; a partial record is never an
// error.
func (s *Set) Replace(snapshot map[string]json.RawMessage) int {
	recs := make([]Record, 0, len(snapshot))
	for id, raw := range snapshot {
		rec, err := Decode(id, raw)
		if err != nil {
			continue
		}
		recs = append(recs, rec)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = recs
	s.revision++
	return len(recs)
}

// Snapshot returns a copy of the current records and the revision they
// belong to. Order is unspecified; display ordering is the view model's
// concern.
func (s *Set) Snapshot() ([]Record, int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out, s.revision
}

// Revision returns the current snapshot revision.
func (s *Set) Revision() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Len returns the current record count.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
