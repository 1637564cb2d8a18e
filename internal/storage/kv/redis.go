package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"pawledger/pkg/platform/sentinel"
	txcontext "pawledger/pkg/platform/tx"
)

// keyPrefix namespaces engine records within a shared redis instance.
const keyPrefix = "pawledger:"

// Redis persists records as plain string values with no expiry; the core
// scope has no implicit expiry semantics. Writes issued under a MutexBoundary
// are buffered in the stage carried by ctx and committed through a MULTI/EXEC
// pipeline, so the dependent writes of one unit of work land or abort
// together.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (s *Redis) Get(ctx context.Context, key Key) ([]byte, error) {
	if stage, ok := txcontext.StageFrom(ctx); ok {
		if value, ok := stage.Lookup(keyPrefix + key.String()); ok {
			return value, nil
		}
	}
	value, err := s.client.Get(ctx, keyPrefix+key.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (s *Redis) Set(ctx context.Context, key Key, value []byte) error {
	if stage, ok := txcontext.StageFrom(ctx); ok {
		stage.Buffer(s, keyPrefix+key.String(), value)
		return nil
	}
	if err := s.client.Set(ctx, keyPrefix+key.String(), value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *Redis) Has(ctx context.Context, key Key) (bool, error) {
	if stage, ok := txcontext.StageFrom(ctx); ok {
		if _, ok := stage.Lookup(keyPrefix + key.String()); ok {
			return true, nil
		}
	}
	n, err := s.client.Exists(ctx, keyPrefix+key.String()).Result()
	if err != nil {
		return false, fmt.Errorf("has %s: %w", key, err)
	}
	return n > 0, nil
}

// ApplyStaged commits a flushed stage atomically via MULTI/EXEC.
func (s *Redis) ApplyStaged(ctx context.Context, writes []txcontext.StagedWrite) error {
	pipe := s.client.TxPipeline()
	for _, w := range writes {
		pipe.Set(ctx, w.Key, w.Value, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("exec staged pipeline: %w", err)
	}
	return nil
}
