// Package tx provides the transaction boundary every engine operation runs
// under. A single logical action fans out into multiple dependent writes
// (record + running total + statistic); the boundary guarantees they commit or
// abort as a unit.
package tx

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Boundary runs fn as one atomic unit of work. Implementations may wrap a
// database transaction or, in-memory, a coarse lock plus staged writes.
type Boundary interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type ctxKey struct{}

var txKey = ctxKey{}

// WithTx stores a pgx transaction in context for downstream store usage.
func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts a pgx transaction from context if present.
func From(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey).(pgx.Tx)
	return tx, ok
}

// PgxBoundary runs each unit of work inside a serializable pgx transaction.
// Stores find the transaction via From and route their statements through it.
type PgxBoundary struct {
	pool *pgxpool.Pool
}

func NewPgxBoundary(pool *pgxpool.Pool) *PgxBoundary {
	return &PgxBoundary{pool: pool}
}

func (b *PgxBoundary) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.Serializable}
	dbtx, err := b.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = dbtx.Rollback(ctx)
	}()

	if err := fn(WithTx(ctx, dbtx)); err != nil {
		return err
	}
	if err := dbtx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type stageKeyType struct{}

var stageKey = stageKeyType{}

// WithStage stores a write stage in context for downstream store usage.
func WithStage(ctx context.Context, stage *Stage) context.Context {
	if stage == nil {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFrom extracts a write stage from context if present.
func StageFrom(ctx context.Context) (*Stage, bool) {
	stage, ok := ctx.Value(stageKey).(*Stage)
	return stage, ok
}

// StagedWrite is one buffered key/value pair awaiting commit.
type StagedWrite struct {
	Key   string
	Value []byte
}

// StageApplier commits a batch of staged writes as a single unit. Backends
// without native transactions implement this with whatever multi-write
// primitive they have (a map under one lock, a redis MULTI/EXEC pipeline).
type StageApplier interface {
	ApplyStaged(ctx context.Context, writes []StagedWrite) error
}

// Stage buffers the writes issued inside one MutexBoundary unit of work.
// Stores route Set through Buffer and consult Lookup on reads so the unit
// observes its own writes; nothing reaches the backend until the unit
// succeeds and the stage is flushed.
type Stage struct {
	mu      sync.Mutex
	applier StageApplier
	order   []string
	values  map[string][]byte
}

func newStage() *Stage {
	return &Stage{values: make(map[string][]byte)}
}

// Buffer records a pending write. A later write to the same key replaces the
// buffered value but keeps its original position in the flush order.
func (s *Stage) Buffer(applier StageApplier, key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applier = applier
	if _, ok := s.values[key]; !ok {
		s.order = append(s.order, key)
	}
	s.values[key] = value
}

// Lookup returns the buffered value for key, if any.
func (s *Stage) Lookup(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	return value, ok
}

func (s *Stage) flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.applier == nil || len(s.order) == 0 {
		return nil
	}
	writes := make([]StagedWrite, 0, len(s.order))
	for _, key := range s.order {
		writes = append(writes, StagedWrite{Key: key, Value: s.values[key]})
	}
	return s.applier.ApplyStaged(ctx, writes)
}

// MutexBoundary serializes units of work under one lock and stages their
// writes. Stores buffer every Set into the stage carried by ctx; only when fn
// returns nil does the stage flush to the backend in one batch, so a failure
// mid-unit leaves the backend exactly as it was. This gives the in-memory and
// redis backends the same all-or-nothing composition PgxBoundary gets from
// the database.
type MutexBoundary struct {
	mu sync.Mutex
}

func NewMutexBoundary() *MutexBoundary {
	return &MutexBoundary{}
}

func (b *MutexBoundary) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	stage := newStage()
	if err := fn(WithStage(ctx, stage)); err != nil {
		return err
	}
	if err := stage.flush(ctx); err != nil {
		return fmt.Errorf("commit staged writes: %w", err)
	}
	return nil
}
