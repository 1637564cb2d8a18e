package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	statsmodels "pawledger/internal/stats/models"
	"pawledger/internal/storage"
	"pawledger/internal/storage/kv"
	dErrors "pawledger/pkg/domain-errors"
	id "pawledger/pkg/domain"
	"pawledger/pkg/requestcontext"
)

func TestAggregator(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	feederID := id.FeederID(1)

	setup := func(t *testing.T) (*Aggregator, *storage.Store) {
		store := storage.New(kv.NewMemory())
		require.NoError(t, store.PutStats(ctx, statsmodels.NewActivityStats(feederID, now.Add(-time.Hour))))
		return NewAggregator(store), store
	}

	t.Run("increments only the targeted counter", func(t *testing.T) {
		agg, _ := setup(t)
		require.NoError(t, agg.Increment(ctx, feederID, id.StatFed, 2))
		require.NoError(t, agg.Increment(ctx, feederID, id.StatVaccinated, 1))

		got, err := agg.StatsFor(ctx, feederID)
		require.NoError(t, err)
		require.Equal(t, uint64(2), got.DogsFed)
		require.Equal(t, uint64(1), got.DogsVaccinated)
		require.Zero(t, got.DogsTreated)
		require.Equal(t, now, got.LastUpdated)
	})

	t.Run("unknown tag is an invariant violation", func(t *testing.T) {
		agg, store := setup(t)
		err := agg.Increment(ctx, feederID, id.StatTag("petted"), 1)
		require.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

		got, err := store.StatsByFeeder(ctx, feederID)
		require.NoError(t, err)
		require.False(t, got.LastUpdated.Equal(now))
	})

	t.Run("missing row is an invariant violation", func(t *testing.T) {
		agg := NewAggregator(storage.New(kv.NewMemory()))
		err := agg.Increment(ctx, feederID, id.StatFed, 1)
		require.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("stats for unknown feeder is not found", func(t *testing.T) {
		agg := NewAggregator(storage.New(kv.NewMemory()))
		_, err := agg.StatsFor(ctx, id.FeederID(99))
		require.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
