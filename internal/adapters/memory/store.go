package memory

import (
	"context"
	"sync"

	"github.com/openqs/heom/pkg/ports"
)

// Store implements ports.ResultStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*ports.SimulationRecord
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*ports.SimulationRecord),
	}
}

// Save persists the record in memory.
func (s *Store) Save(ctx context.Context, id string, rec *ports.SimulationRecord) error {
	cp := cloneRecord(rec)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = cp
	return nil
}

// Load retrieves the record from memory.
func (s *Store) Load(ctx context.Context, id string) (*ports.SimulationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[id]
	if !ok {
		return nil, ports.ErrSimulationNotFound
	}
	// Copy on read so callers can't mutate store state through the pointer.
	return cloneRecord(rec), nil
}

// Delete removes the record.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored simulation IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}

func cloneRecord(rec *ports.SimulationRecord) *ports.SimulationRecord {
	cp := *rec
	cp.Times = append([]float64(nil), rec.Times...)
	if rec.Expect != nil {
		cp.Expect = make(map[string][]float64, len(rec.Expect))
		for k, v := range rec.Expect {
			cp.Expect[k] = append([]float64(nil), v...)
		}
	}
	return &cp
}
