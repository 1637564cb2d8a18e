package storage

import (
	"context"

	ledgermodels "pawledger/internal/ledger/models"
	registrymodels "pawledger/internal/registry/models"
	statsmodels "pawledger/internal/stats/models"
	"pawledger/internal/storage/kv"
	id "pawledger/pkg/domain"
)

// Feeders --------------------------------------------------------------------

func (s *Store) PutFeeder(ctx context.Context, feeder *registrymodels.Feeder) error {
	return putRecord(ctx, s, kv.NumericKey(kv.KindFeeder, uint64(feeder.ID)), feeder)
}

func (s *Store) FeederByID(ctx context.Context, feederID id.FeederID) (*registrymodels.Feeder, error) {
	return getRecord[registrymodels.Feeder](ctx, s, kv.NumericKey(kv.KindFeeder, uint64(feederID)))
}

// Dogs -----------------------------------------------------------------------

func (s *Store) PutDog(ctx context.Context, dog *registrymodels.Dog) error {
	return putRecord(ctx, s, kv.NumericKey(kv.KindDog, uint64(dog.ID)), dog)
}

func (s *Store) DogByID(ctx context.Context, dogID id.DogID) (*registrymodels.Dog, error) {
	return getRecord[registrymodels.Dog](ctx, s, kv.NumericKey(kv.KindDog, uint64(dogID)))
}

// Ledger records -------------------------------------------------------------

func (s *Store) PutDonation(ctx context.Context, donation *ledgermodels.Donation) error {
	return putRecord(ctx, s, kv.NumericKey(kv.KindDonation, uint64(donation.ID)), donation)
}

func (s *Store) DonationByID(ctx context.Context, donationID id.DonationID) (*ledgermodels.Donation, error) {
	return getRecord[ledgermodels.Donation](ctx, s, kv.NumericKey(kv.KindDonation, uint64(donationID)))
}

func (s *Store) PutExpense(ctx context.Context, expense *ledgermodels.Expense) error {
	return putRecord(ctx, s, kv.NumericKey(kv.KindExpense, uint64(expense.ID)), expense)
}

func (s *Store) ExpenseByID(ctx context.Context, expenseID id.ExpenseID) (*ledgermodels.Expense, error) {
	return getRecord[ledgermodels.Expense](ctx, s, kv.NumericKey(kv.KindExpense, uint64(expenseID)))
}

func (s *Store) PutTreatment(ctx context.Context, treatment *ledgermodels.Treatment) error {
	return putRecord(ctx, s, kv.NumericKey(kv.KindTreatment, uint64(treatment.ID)), treatment)
}

func (s *Store) TreatmentByID(ctx context.Context, treatmentID id.TreatmentID) (*ledgermodels.Treatment, error) {
	return getRecord[ledgermodels.Treatment](ctx, s, kv.NumericKey(kv.KindTreatment, uint64(treatmentID)))
}

// Activity statistics --------------------------------------------------------

func (s *Store) PutStats(ctx context.Context, stats *statsmodels.ActivityStats) error {
	return putRecord(ctx, s, kv.NumericKey(kv.KindStats, uint64(stats.FeederID)), stats)
}

func (s *Store) StatsByFeeder(ctx context.Context, feederID id.FeederID) (*statsmodels.ActivityStats, error) {
	return getRecord[statsmodels.ActivityStats](ctx, s, kv.NumericKey(kv.KindStats, uint64(feederID)))
}
