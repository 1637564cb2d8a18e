// Package kv defines the entity store: a durable, read-after-write consistent
// mapping from a typed key (entity kind plus id, or a singleton name) to a
// serialized record. Every other component persists exclusively through this
// abstraction, so backends can be swapped without rewiring business code.
package kv

import (
	"context"
	"strconv"
)

// Kind is the entity category half of a key.
type Kind string

const (
	KindFeeder    Kind = "feeder"
	KindDog       Kind = "dog"
	KindDonation  Kind = "donation"
	KindExpense   Kind = "expense"
	KindTreatment Kind = "treatment"
	KindStats     Kind = "stats"

	// KindCounter holds the per-category next-identifier counters.
	KindCounter Kind = "counter"
	// KindSingleton holds the admin and transfer-service addresses.
	KindSingleton Kind = "singleton"
	// KindWalletIndex is the secondary index wallet address -> feeder id,
	// maintained transactionally with feeder creation.
	KindWalletIndex Kind = "wallet_index"
)

// Key addresses one record in the store.
type Key struct {
	Kind Kind
	Ref  string
}

// NumericKey builds a key for an id-addressed entity.
func NumericKey(kind Kind, id uint64) Key {
	return Key{Kind: kind, Ref: strconv.FormatUint(id, 10)}
}

// RefKey builds a key for a name-addressed record (singletons, counters,
// wallet index entries).
func RefKey(kind Kind, ref string) Key {
	return Key{Kind: kind, Ref: ref}
}

func (k Key) String() string {
	return string(k.Kind) + "/" + k.Ref
}

// Store is the persistence contract. Get returns sentinel.ErrNotFound for an
// absent key; callers that document default-zero semantics (the counters)
// handle that themselves. Implementations must be read-after-write consistent
// and must honor a transaction carried in ctx where the backend supports one.
type Store interface {
	Get(ctx context.Context, key Key) ([]byte, error)
	Set(ctx context.Context, key Key, value []byte) error
	Has(ctx context.Context, key Key) (bool, error)
}
