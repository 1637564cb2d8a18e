package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	id "pawledger/pkg/domain"
)

func TestMemorySink(t *testing.T) {
	ctx := context.Background()
	sink := NewMemorySink()

	t.Run("captures events in order", func(t *testing.T) {
		require.NoError(t, sink.Emit(ctx, Event{Action: ActionFeederRegistered, FeederID: id.FeederID(1)}))
		require.NoError(t, sink.Emit(ctx, Event{Action: ActionDogRegistered, FeederID: id.FeederID(1), DogID: id.DogID(1)}))

		events := sink.Events()
		require.Len(t, events, 2)
		require.Equal(t, ActionFeederRegistered, events[0].Action)
		require.Equal(t, ActionDogRegistered, events[1].Action)
	})

	t.Run("stamps missing timestamps", func(t *testing.T) {
		require.NoError(t, sink.Emit(ctx, Event{Action: ActionFeederVerified}))
		events := sink.ByAction(ActionFeederVerified)
		require.Len(t, events, 1)
		require.WithinDuration(t, time.Now(), events[0].Timestamp, time.Minute)
	})

	t.Run("filters by action", func(t *testing.T) {
		require.Len(t, sink.ByAction(ActionDogRegistered), 1)
		require.Empty(t, sink.ByAction(ActionTreatmentRecorded))
	})
}
