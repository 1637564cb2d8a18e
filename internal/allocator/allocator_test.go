package allocator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"pawledger/internal/storage"
	"pawledger/internal/storage/kv"
)

func TestNextID(t *testing.T) {
	ctx := context.Background()
	alloc := New(storage.New(kv.NewMemory()))

	t.Run("starts at 1 and increases gap-free", func(t *testing.T) {
		for want := uint64(1); want <= 5; want++ {
			got, err := alloc.NextID(ctx, storage.CounterFeeders)
			require.NoError(t, err)
			require.Equal(t, want, got)
		}
	})

	t.Run("categories advance independently", func(t *testing.T) {
		got, err := alloc.NextID(ctx, storage.CounterDogs)
		require.NoError(t, err)
		require.Equal(t, uint64(1), got)

		got, err = alloc.NextID(ctx, storage.CounterFeeders)
		require.NoError(t, err)
		require.Equal(t, uint64(6), got)
	})
}
