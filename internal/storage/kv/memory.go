package kv

import (
	"context"
	"sync"

	"pawledger/pkg/platform/sentinel"
	txcontext "pawledger/pkg/platform/tx"
)

// Memory keeps records in a map. It favors clarity over performance and backs
// the unit tests and the dev server. Writes issued under a MutexBoundary are
// buffered in the stage carried by ctx and land only when the unit of work
// commits; reads consult the stage first so a unit observes its own writes.
type Memory struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte)}
}

func (s *Memory) Get(ctx context.Context, key Key) ([]byte, error) {
	if stage, ok := txcontext.StageFrom(ctx); ok {
		if value, ok := stage.Lookup(key.String()); ok {
			out := make([]byte, len(value))
			copy(out, value)
			return out, nil
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.records[key.String()]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *Memory) Set(ctx context.Context, key Key, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	if stage, ok := txcontext.StageFrom(ctx); ok {
		stage.Buffer(s, key.String(), stored)
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key.String()] = stored
	return nil
}

func (s *Memory) Has(ctx context.Context, key Key) (bool, error) {
	if stage, ok := txcontext.StageFrom(ctx); ok {
		if _, ok := stage.Lookup(key.String()); ok {
			return true, nil
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[key.String()]
	return ok, nil
}

// ApplyStaged commits a flushed stage under one lock acquisition.
func (s *Memory) ApplyStaged(_ context.Context, writes []txcontext.StagedWrite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range writes {
		s.records[w.Key] = w.Value
	}
	return nil
}

// Len reports the number of stored records. Test helper.
func (s *Memory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
