// Package stats maintains per-feeder activity counters. A stats row is
// created the moment a feeder registers, so by the time any ledger activity
// lands the row must exist; its absence is data corruption, not a user error.
package stats

import (
	"context"
	"errors"
	"fmt"

	statsmodels "pawledger/internal/stats/models"
	dErrors "pawledger/pkg/domain-errors"
	id "pawledger/pkg/domain"
	"pawledger/pkg/platform/sentinel"
	"pawledger/pkg/requestcontext"
)

type StatsStore interface {
	StatsByFeeder(ctx context.Context, feederID id.FeederID) (*statsmodels.ActivityStats, error)
	PutStats(ctx context.Context, stats *statsmodels.ActivityStats) error
}

type Aggregator struct {
	store StatsStore
}

func NewAggregator(store StatsStore) *Aggregator {
	return &Aggregator{store: store}
}

// Increment bumps one counter for the feeder by count. A count of 0 is a
// no-op that still validates the row exists.
func (a *Aggregator) Increment(ctx context.Context, feederID id.FeederID, tag id.StatTag, count uint64) error {
	if !tag.IsValid() {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "unknown stat tag %q", tag)
	}
	current, err := a.store.StatsByFeeder(ctx, feederID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Newf(dErrors.CodeInvariantViolation, "no activity stats for feeder %d", feederID)
		}
		return fmt.Errorf("load stats for feeder %d: %w", feederID, err)
	}
	if err := current.Apply(tag, count, requestcontext.Now(ctx)); err != nil {
		return err
	}
	return a.store.PutStats(ctx, current)
}

// StatsFor returns the activity counters for a feeder.
func (a *Aggregator) StatsFor(ctx context.Context, feederID id.FeederID) (*statsmodels.ActivityStats, error) {
	current, err := a.store.StatsByFeeder(ctx, feederID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "feeder %d has no activity stats", feederID)
		}
		return nil, fmt.Errorf("load stats for feeder %d: %w", feederID, err)
	}
	return current, nil
}
