// Package allocator issues monotonically increasing identifiers per entity
// category. Pure counter logic over durable storage; serialization comes from
// the enclosing transaction boundary.
package allocator

import (
	"context"
	"fmt"
)

// CounterStore is the slice of the entity store the allocator needs.
type CounterStore interface {
	Counter(ctx context.Context, category string) (uint64, error)
	SetCounter(ctx context.Context, category string, value uint64) error
}

type Allocator struct {
	counters CounterStore
}

func New(counters CounterStore) *Allocator {
	return &Allocator{counters: counters}
}

// NextID increments the category counter and returns it. Identifiers are
// strictly increasing and gap-free within a category as long as calls are
// serialized; 0 is never returned, it is the reserved "no entity" sentinel.
func (a *Allocator) NextID(ctx context.Context, category string) (uint64, error) {
	current, err := a.counters.Counter(ctx, category)
	if err != nil {
		return 0, fmt.Errorf("read %s counter: %w", category, err)
	}
	next := current + 1
	if err := a.counters.SetCounter(ctx, category, next); err != nil {
		return 0, fmt.Errorf("advance %s counter: %w", category, err)
	}
	return next, nil
}
