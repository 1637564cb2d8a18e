//go:build integration

package kv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"pawledger/pkg/platform/sentinel"
	txcontext "pawledger/pkg/platform/tx"
	"pawledger/pkg/testutil/containers"
)

func TestRedisIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	rc := containers.NewRedisContainer(t)
	store := NewRedis(rc.Client)

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		key := NumericKey(KindFeeder, 1)
		require.NoError(t, store.Set(ctx, key, []byte(`{"name":"Street Paws"}`)))

		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		require.JSONEq(t, `{"name":"Street Paws"}`, string(got))
	})

	t.Run("missing key is not found", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		_, err := store.Get(ctx, NumericKey(KindDog, 404))
		require.ErrorIs(t, err, sentinel.ErrNotFound)

		ok, err := store.Has(ctx, NumericKey(KindDog, 404))
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("aborted unit of work lands no writes", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		boundary := txcontext.NewMutexBoundary()

		err := boundary.RunInTx(ctx, func(ctx context.Context) error {
			require.NoError(t, store.Set(ctx, NumericKey(KindDonation, 1), []byte(`{"amount":"500"}`)))
			require.NoError(t, store.Set(ctx, RefKey(KindCounter, "donations"), []byte(`1`)))
			return errors.New("later write rejected")
		})
		require.Error(t, err)

		_, err = store.Get(ctx, NumericKey(KindDonation, 1))
		require.ErrorIs(t, err, sentinel.ErrNotFound)
		_, err = store.Get(ctx, RefKey(KindCounter, "donations"))
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("committed unit of work lands every write", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		boundary := txcontext.NewMutexBoundary()

		err := boundary.RunInTx(ctx, func(ctx context.Context) error {
			if err := store.Set(ctx, NumericKey(KindDonation, 1), []byte(`{"amount":"500"}`)); err != nil {
				return err
			}
			return store.Set(ctx, RefKey(KindCounter, "donations"), []byte(`1`))
		})
		require.NoError(t, err)

		got, err := store.Get(ctx, NumericKey(KindDonation, 1))
		require.NoError(t, err)
		require.JSONEq(t, `{"amount":"500"}`, string(got))
		count, err := store.Get(ctx, RefKey(KindCounter, "donations"))
		require.NoError(t, err)
		require.Equal(t, []byte(`1`), count)
	})

	t.Run("records persist without expiry", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		key := RefKey(KindCounter, "feeders")
		require.NoError(t, store.Set(ctx, key, []byte(`5`)))

		ttl, err := rc.Client.TTL(ctx, "pawledger:counter/feeders").Result()
		require.NoError(t, err)
		require.Negative(t, ttl)
	})
}
