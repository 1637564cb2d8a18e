//go:build integration

package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"pawledger/pkg/platform/sentinel"
	"pawledger/pkg/platform/tx"
	"pawledger/pkg/testutil/containers"
)

func TestPostgresIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	pg := containers.NewPostgresContainer(t)
	require.NoError(t, Migrate(ctx, pg.Pool))
	store := NewPostgres(pg.Pool)

	t.Run("round trip and overwrite", func(t *testing.T) {
		key := NumericKey(KindFeeder, 1)
		require.NoError(t, store.Set(ctx, key, []byte(`{"name":"Street Paws"}`)))

		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		require.JSONEq(t, `{"name":"Street Paws"}`, string(got))

		require.NoError(t, store.Set(ctx, key, []byte(`{"name":"Updated"}`)))
		got, err = store.Get(ctx, key)
		require.NoError(t, err)
		require.JSONEq(t, `{"name":"Updated"}`, string(got))
	})

	t.Run("missing key is not found", func(t *testing.T) {
		_, err := store.Get(ctx, NumericKey(KindDog, 404))
		require.ErrorIs(t, err, sentinel.ErrNotFound)

		ok, err := store.Has(ctx, NumericKey(KindDog, 404))
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("writes inside an aborted transaction do not land", func(t *testing.T) {
		boundary := tx.NewPgxBoundary(pg.Pool)
		key := NumericKey(KindDonation, 1)

		err := boundary.RunInTx(ctx, func(ctx context.Context) error {
			if err := store.Set(ctx, key, []byte(`{"amount":"100"}`)); err != nil {
				return err
			}
			return context.Canceled
		})
		require.Error(t, err)

		_, err = store.Get(ctx, key)
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("writes inside a committed transaction land", func(t *testing.T) {
		boundary := tx.NewPgxBoundary(pg.Pool)
		key := NumericKey(KindDonation, 2)

		err := boundary.RunInTx(ctx, func(ctx context.Context) error {
			return store.Set(ctx, key, []byte(`{"amount":"200"}`))
		})
		require.NoError(t, err)

		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		require.JSONEq(t, `{"amount":"200"}`, string(got))
	})
}
