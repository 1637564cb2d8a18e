package kv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"pawledger/pkg/platform/sentinel"
	txcontext "pawledger/pkg/platform/tx"
)

// failingCommitMemory buffers writes like Memory but refuses to commit them,
// standing in for a backend that goes away between the unit of work and its
// flush.
type failingCommitMemory struct {
	*Memory
}

func (s *failingCommitMemory) Set(ctx context.Context, key Key, value []byte) error {
	if stage, ok := txcontext.StageFrom(ctx); ok {
		stage.Buffer(s, key.String(), value)
		return nil
	}
	return s.Memory.Set(ctx, key, value)
}

func (s *failingCommitMemory) ApplyStaged(context.Context, []txcontext.StagedWrite) error {
	return errors.New("backend unreachable")
}

func TestStagedWrites(t *testing.T) {
	ctx := context.Background()
	recordKey := NumericKey(KindDonation, 1)
	counterKey := RefKey(KindCounter, "donations")

	t.Run("failed unit of work leaves the backend untouched", func(t *testing.T) {
		store := NewMemory()
		boundary := txcontext.NewMutexBoundary()

		err := boundary.RunInTx(ctx, func(ctx context.Context) error {
			require.NoError(t, store.Set(ctx, recordKey, []byte(`{"amount":"7500"}`)))
			require.NoError(t, store.Set(ctx, counterKey, []byte(`1`)))
			return errors.New("later write rejected")
		})
		require.Error(t, err)

		_, err = store.Get(ctx, recordKey)
		require.ErrorIs(t, err, sentinel.ErrNotFound)
		require.Zero(t, store.Len())
	})

	t.Run("successful unit of work commits every write", func(t *testing.T) {
		store := NewMemory()
		boundary := txcontext.NewMutexBoundary()

		err := boundary.RunInTx(ctx, func(ctx context.Context) error {
			if err := store.Set(ctx, recordKey, []byte(`{"amount":"7500"}`)); err != nil {
				return err
			}
			return store.Set(ctx, counterKey, []byte(`1`))
		})
		require.NoError(t, err)

		got, err := store.Get(ctx, recordKey)
		require.NoError(t, err)
		require.JSONEq(t, `{"amount":"7500"}`, string(got))
		count, err := store.Get(ctx, counterKey)
		require.NoError(t, err)
		require.Equal(t, []byte(`1`), count)
	})

	t.Run("unit of work observes its own staged writes", func(t *testing.T) {
		store := NewMemory()
		boundary := txcontext.NewMutexBoundary()

		err := boundary.RunInTx(ctx, func(ctx context.Context) error {
			require.NoError(t, store.Set(ctx, counterKey, []byte(`5`)))

			got, err := store.Get(ctx, counterKey)
			require.NoError(t, err)
			require.Equal(t, []byte(`5`), got)
			ok, err := store.Has(ctx, counterKey)
			require.NoError(t, err)
			require.True(t, ok)

			// Nothing lands before the flush.
			require.Zero(t, store.Len())
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("later writes to the same key win", func(t *testing.T) {
		store := NewMemory()
		boundary := txcontext.NewMutexBoundary()

		err := boundary.RunInTx(ctx, func(ctx context.Context) error {
			require.NoError(t, store.Set(ctx, counterKey, []byte(`1`)))
			require.NoError(t, store.Set(ctx, counterKey, []byte(`2`)))
			return nil
		})
		require.NoError(t, err)

		got, err := store.Get(ctx, counterKey)
		require.NoError(t, err)
		require.Equal(t, []byte(`2`), got)
	})

	t.Run("failed commit leaves the backend untouched", func(t *testing.T) {
		store := &failingCommitMemory{Memory: NewMemory()}
		boundary := txcontext.NewMutexBoundary()

		err := boundary.RunInTx(ctx, func(ctx context.Context) error {
			require.NoError(t, store.Set(ctx, recordKey, []byte(`{"amount":"7500"}`)))
			return store.Set(ctx, counterKey, []byte(`1`))
		})
		require.ErrorContains(t, err, "commit staged writes")
		require.Zero(t, store.Memory.Len())
	})
}
