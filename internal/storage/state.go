package storage

import (
	"context"
	"errors"

	"pawledger/internal/storage/kv"
	id "pawledger/pkg/domain"
	"pawledger/pkg/platform/sentinel"
)

// Singleton refs. The admin record doubles as the initialization marker.
const (
	refAdmin           = "admin"
	refTransferService = "transfer_service"
)

// Counter categories. Counters are the next-identifier source and double as
// the read-only aggregate totals.
const (
	CounterFeeders    = "feeders"
	CounterDogs       = "dogs"
	CounterDonations  = "donations"
	CounterExpenses   = "expenses"
	CounterTreatments = "treatments"
)

// Singletons -----------------------------------------------------------------

func (s *Store) SetAdmin(ctx context.Context, admin id.WalletAddress) error {
	return putRecord(ctx, s, kv.RefKey(kv.KindSingleton, refAdmin), admin)
}

// Admin returns the administrator principal; sentinel.ErrNotFound means the
// engine was never initialized.
func (s *Store) Admin(ctx context.Context) (id.WalletAddress, error) {
	admin, err := getRecord[id.WalletAddress](ctx, s, kv.RefKey(kv.KindSingleton, refAdmin))
	if err != nil {
		return "", err
	}
	return *admin, nil
}

func (s *Store) SetTransferService(ctx context.Context, service id.WalletAddress) error {
	return putRecord(ctx, s, kv.RefKey(kv.KindSingleton, refTransferService), service)
}

func (s *Store) TransferService(ctx context.Context) (id.WalletAddress, error) {
	service, err := getRecord[id.WalletAddress](ctx, s, kv.RefKey(kv.KindSingleton, refTransferService))
	if err != nil {
		return "", err
	}
	return *service, nil
}

// Initialized reports whether one-time setup has run.
func (s *Store) Initialized(ctx context.Context) (bool, error) {
	return s.kv.Has(ctx, kv.RefKey(kv.KindSingleton, refAdmin))
}

// Counters -------------------------------------------------------------------

// Counter reads a category counter, defaulting to 0 when absent. This is the
// one documented place where a missing key is not an error.
func (s *Store) Counter(ctx context.Context, category string) (uint64, error) {
	value, err := getRecord[uint64](ctx, s, kv.RefKey(kv.KindCounter, category))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return *value, nil
}

func (s *Store) SetCounter(ctx context.Context, category string, value uint64) error {
	return putRecord(ctx, s, kv.RefKey(kv.KindCounter, category), value)
}

// Wallet index ---------------------------------------------------------------

// ClaimWallet records wallet -> feederID in the secondary index. A wallet is
// claimed at most once; a repeat claim returns sentinel.ErrConflict and the
// index keeps the first feeder, preserving first-match-by-id-order resolution
// when two feeders share a wallet.
func (s *Store) ClaimWallet(ctx context.Context, wallet id.WalletAddress, feederID id.FeederID) error {
	key := kv.RefKey(kv.KindWalletIndex, wallet.String())
	claimed, err := s.kv.Has(ctx, key)
	if err != nil {
		return err
	}
	if claimed {
		return sentinel.ErrConflict
	}
	return putRecord(ctx, s, key, feederID)
}

// FeederIDByWallet resolves an authenticated wallet to its feeder id.
// Returns the sentinel 0 (and no error) when the wallet backs no feeder;
// callers treat that as "not a registered feeder".
func (s *Store) FeederIDByWallet(ctx context.Context, wallet id.WalletAddress) (id.FeederID, error) {
	feederID, err := getRecord[id.FeederID](ctx, s, kv.RefKey(kv.KindWalletIndex, wallet.String()))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return *feederID, nil
}
