package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pawledger/pkg/platform/sentinel"
	txcontext "pawledger/pkg/platform/tx"
)

// Postgres persists records in a single two-column-keyed table. Writes issued
// inside a transaction boundary are routed through the pgx.Tx carried in ctx,
// so a multi-write operation commits or aborts as a unit.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate creates the records table if it does not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS records (
			kind       TEXT        NOT NULL,
			ref        TEXT        NOT NULL,
			data       BYTEA       NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (kind, ref)
		)
	`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create records table: %w", err)
	}
	return nil
}

func (s *Postgres) Get(ctx context.Context, key Key) ([]byte, error) {
	const query = `SELECT data FROM records WHERE kind = $1 AND ref = $2`

	var data []byte
	var err error
	if dbtx, ok := txcontext.From(ctx); ok {
		err = dbtx.QueryRow(ctx, query, string(key.Kind), key.Ref).Scan(&data)
	} else {
		err = s.pool.QueryRow(ctx, query, string(key.Kind), key.Ref).Scan(&data)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return data, nil
}

func (s *Postgres) Set(ctx context.Context, key Key, value []byte) error {
	const query = `
		INSERT INTO records (kind, ref, data, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (kind, ref) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`

	var err error
	if dbtx, ok := txcontext.From(ctx); ok {
		_, err = dbtx.Exec(ctx, query, string(key.Kind), key.Ref, value)
	} else {
		_, err = s.pool.Exec(ctx, query, string(key.Kind), key.Ref, value)
	}
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *Postgres) Has(ctx context.Context, key Key) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM records WHERE kind = $1 AND ref = $2)`

	var exists bool
	var err error
	if dbtx, ok := txcontext.From(ctx); ok {
		err = dbtx.QueryRow(ctx, query, string(key.Kind), key.Ref).Scan(&exists)
	} else {
		err = s.pool.QueryRow(ctx, query, string(key.Kind), key.Ref).Scan(&exists)
	}
	if err != nil {
		return false, fmt.Errorf("has %s: %w", key, err)
	}
	return exists, nil
}
