// Package storage layers typed entity accessors over the generic kv store.
// Services read and write exclusively through this package; records are
// serialized as JSON.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"pawledger/internal/storage/kv"
)

type Store struct {
	kv kv.Store
}

// New wraps a kv backend (memory, postgres, redis) with typed accessors.
func New(backend kv.Store) *Store {
	return &Store{kv: backend}
}

func getRecord[T any](ctx context.Context, s *Store, key kv.Key) (*T, error) {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var rec T
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return &rec, nil
}

func putRecord(ctx context.Context, s *Store, key kv.Key, rec any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.kv.Set(ctx, key, data)
}
