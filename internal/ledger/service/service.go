// Package service orchestrates the financial ledger: donations, expenses and
// treatments, together with the running totals and statistics they maintain.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pawledger/internal/allocator"
	"pawledger/internal/ledger/models"
	"pawledger/internal/platform/metrics"
	registrymodels "pawledger/internal/registry/models"
	"pawledger/internal/stats"
	"pawledger/internal/storage"
	"pawledger/internal/transfer"
	dErrors "pawledger/pkg/domain-errors"
	id "pawledger/pkg/domain"
	"pawledger/pkg/platform/audit"
	"pawledger/pkg/platform/sentinel"
	"pawledger/pkg/platform/tx"
	"pawledger/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,Verifier,AuditPublisher

// Store is the slice of the entity store the ledger needs.
type Store interface {
	TransferService(ctx context.Context) (id.WalletAddress, error)
	FeederByID(ctx context.Context, feederID id.FeederID) (*registrymodels.Feeder, error)
	PutFeeder(ctx context.Context, feeder *registrymodels.Feeder) error
	FeederIDByWallet(ctx context.Context, wallet id.WalletAddress) (id.FeederID, error)

	PutDonation(ctx context.Context, donation *models.Donation) error
	DonationByID(ctx context.Context, donationID id.DonationID) (*models.Donation, error)
	PutExpense(ctx context.Context, expense *models.Expense) error
	ExpenseByID(ctx context.Context, expenseID id.ExpenseID) (*models.Expense, error)
	PutTreatment(ctx context.Context, treatment *models.Treatment) error
	TreatmentByID(ctx context.Context, treatmentID id.TreatmentID) (*models.Treatment, error)

	Counter(ctx context.Context, category string) (uint64, error)
}

// Verifier checks that the caller controls the wallet it acts for.
type Verifier interface {
	RequireControl(ctx context.Context, principal id.WalletAddress) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service owns all ledger writes. A donation settles its transfer before any
// record is written; every mutation runs inside the transaction boundary so a
// record and the totals it maintains land or abort together.
type Service struct {
	store          Store
	ids            *allocator.Allocator
	verifier       Verifier
	boundary       tx.Boundary
	aggregator     *stats.Aggregator
	transfers      transfer.Service
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(store Store, ids *allocator.Allocator, verifier Verifier, boundary tx.Boundary, aggregator *stats.Aggregator, transfers transfer.Service, opts ...Option) *Service {
	s := &Service{
		store:      store,
		ids:        ids,
		verifier:   verifier,
		boundary:   boundary,
		aggregator: aggregator,
		transfers:  transfers,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Donate settles a token transfer from the donor to the feeder's wallet and
// records it. The transfer runs first; when it fails nothing is persisted and
// the donor's funds are untouched.
func (s *Service) Donate(ctx context.Context, donor id.WalletAddress, params models.DonateParams) (*models.Donation, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := s.verifier.RequireControl(ctx, donor); err != nil {
		return nil, err
	}

	var donation *models.Donation
	err := s.boundary.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.ensureInitialized(ctx); err != nil {
			return err
		}
		feeder, err := s.store.FeederByID(ctx, params.FeederID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.Newf(dErrors.CodeNotFound, "feeder %d not found", params.FeederID)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load feeder")
		}

		ref, err := s.transfers.Transfer(ctx, donor, feeder.Wallet, params.Amount)
		if err != nil {
			if s.metrics != nil {
				s.metrics.TransferFailures.Inc()
			}
			return dErrors.Wrap(err, dErrors.CodeTransferFailed, "donation transfer failed")
		}

		next, err := s.ids.NextID(ctx, storage.CounterDonations)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to allocate donation id")
		}
		donation = &models.Donation{
			ID:          id.DonationID(next),
			Donor:       donor,
			FeederID:    feeder.ID,
			Amount:      params.Amount,
			Timestamp:   requestcontext.Now(ctx),
			Purpose:     params.Purpose,
			DogID:       params.DogID,
			TransferRef: ref,
		}
		if err := s.store.PutDonation(ctx, donation); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store donation")
		}
		feeder.ApplyDonation(params.Amount)
		if err := s.store.PutFeeder(ctx, feeder); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update feeder totals")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.Event{
		Action:   audit.ActionDonationRecorded,
		Actor:    donor,
		FeederID: donation.FeederID,
		RecordID: uint64(donation.ID),
		Amount:   donation.Amount.String(),
	})
	if s.metrics != nil {
		s.metrics.DonationsRecorded.Inc()
		s.metrics.DonationVolume.Add(donation.Amount.InexactFloat64())
	}
	return donation, nil
}

// RecordExpense logs spending by the feeder behind the calling wallet,
// updates its running total and, for care categories, bumps the matching
// statistic by the number of dogs affected.
func (s *Service) RecordExpense(ctx context.Context, feederWallet id.WalletAddress, params models.RecordExpenseParams) (*models.Expense, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := s.verifier.RequireControl(ctx, feederWallet); err != nil {
		return nil, err
	}

	var expense *models.Expense
	err := s.boundary.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.ensureInitialized(ctx); err != nil {
			return err
		}
		feederID, err := s.resolveFeeder(ctx, feederWallet)
		if err != nil {
			return err
		}
		next, err := s.ids.NextID(ctx, storage.CounterExpenses)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to allocate expense id")
		}
		category := id.ParseExpenseCategory(params.Category)
		expense = &models.Expense{
			ID:          id.ExpenseID(next),
			FeederID:    feederID,
			Amount:      params.Amount,
			Category:    category,
			Description: params.Description,
			Timestamp:   requestcontext.Now(ctx),
			ReceiptHash: params.ReceiptHash,
			DogIDs:      params.DogIDs,
		}
		if err := s.store.PutExpense(ctx, expense); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store expense")
		}

		feeder, err := s.store.FeederByID(ctx, feederID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load feeder")
		}
		feeder.ApplyExpense(params.Amount)
		if err := s.store.PutFeeder(ctx, feeder); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update feeder totals")
		}

		if tag, ok := category.StatTag(); ok {
			if err := s.aggregator.Increment(ctx, feederID, tag, uint64(len(params.DogIDs))); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.Event{
		Action:   audit.ActionExpenseRecorded,
		Actor:    feederWallet,
		FeederID: expense.FeederID,
		RecordID: uint64(expense.ID),
		Amount:   expense.Amount.String(),
		Detail:   string(expense.Category),
	})
	if s.metrics != nil {
		s.metrics.ExpensesRecorded.Inc()
	}
	return expense, nil
}

// RecordTreatment logs medical care given to a dog and counts it as treated
// for the calling feeder. The dog does not have to belong to the caller;
// emergency care by another feeder is a supported case.
func (s *Service) RecordTreatment(ctx context.Context, feederWallet id.WalletAddress, params models.RecordTreatmentParams) (*models.Treatment, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := s.verifier.RequireControl(ctx, feederWallet); err != nil {
		return nil, err
	}

	var treatment *models.Treatment
	err := s.boundary.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.ensureInitialized(ctx); err != nil {
			return err
		}
		feederID, err := s.resolveFeeder(ctx, feederWallet)
		if err != nil {
			return err
		}
		next, err := s.ids.NextID(ctx, storage.CounterTreatments)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to allocate treatment id")
		}
		treatment = &models.Treatment{
			ID:            id.TreatmentID(next),
			DogID:         params.DogID,
			FeederID:      feederID,
			TreatmentType: params.TreatmentType,
			Description:   params.Description,
			Cost:          params.Cost,
			Date:          requestcontext.Now(ctx),
			Veterinarian:  params.Veterinarian,
			Outcome:       params.Outcome,
		}
		if err := s.store.PutTreatment(ctx, treatment); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store treatment")
		}
		if err := s.aggregator.Increment(ctx, feederID, id.StatTreated, 1); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.Event{
		Action:   audit.ActionTreatmentRecorded,
		Actor:    feederWallet,
		FeederID: treatment.FeederID,
		DogID:    treatment.DogID,
		RecordID: uint64(treatment.ID),
		Detail:   treatment.TreatmentType,
	})
	if s.metrics != nil {
		s.metrics.TreatmentsRecorded.Inc()
	}
	return treatment, nil
}

// GetDonation returns a donation by id.
func (s *Service) GetDonation(ctx context.Context, donationID id.DonationID) (*models.Donation, error) {
	donation, err := s.store.DonationByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "donation %d not found", donationID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load donation")
	}
	return donation, nil
}

// GetExpense returns an expense by id.
func (s *Service) GetExpense(ctx context.Context, expenseID id.ExpenseID) (*models.Expense, error) {
	expense, err := s.store.ExpenseByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "expense %d not found", expenseID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load expense")
	}
	return expense, nil
}

// GetTreatment returns a treatment by id.
func (s *Service) GetTreatment(ctx context.Context, treatmentID id.TreatmentID) (*models.Treatment, error) {
	treatment, err := s.store.TreatmentByID(ctx, treatmentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "treatment %d not found", treatmentID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load treatment")
	}
	return treatment, nil
}

// TotalDonations returns how many donations have ever been recorded.
func (s *Service) TotalDonations(ctx context.Context) (uint64, error) {
	return s.total(ctx, storage.CounterDonations)
}

// TotalExpenses returns how many expenses have ever been recorded.
func (s *Service) TotalExpenses(ctx context.Context) (uint64, error) {
	return s.total(ctx, storage.CounterExpenses)
}

// TotalTreatments returns how many treatments have ever been recorded.
func (s *Service) TotalTreatments(ctx context.Context) (uint64, error) {
	return s.total(ctx, storage.CounterTreatments)
}

func (s *Service) total(ctx context.Context, category string) (uint64, error) {
	count, err := s.store.Counter(ctx, category)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("failed to read %s counter", category))
	}
	return count, nil
}

// ensureInitialized rejects ledger writes until one-time setup has stored the
// transfer service principal they depend on. Reads stay open; the totals
// legitimately report 0 pre-initialization.
func (s *Service) ensureInitialized(ctx context.Context) error {
	if _, err := s.store.TransferService(ctx); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeUnauthorized, "engine is not initialized")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check initialization")
	}
	return nil
}

func (s *Service) resolveFeeder(ctx context.Context, wallet id.WalletAddress) (id.FeederID, error) {
	feederID, err := s.store.FeederIDByWallet(ctx, wallet)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve feeder wallet")
	}
	if feederID.IsZero() {
		return 0, dErrors.Newf(dErrors.CodeFeederNotRegistered, "wallet %s is not a registered feeder", wallet)
	}
	return feederID, nil
}

func (s *Service) logAudit(ctx context.Context, event audit.Event) {
	event.Timestamp = requestcontext.Now(ctx)
	event.RequestID = requestcontext.RequestID(ctx)
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event.Action),
			"feeder_id", event.FeederID, "record_id", event.RecordID, "log_type", "audit")
	}
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", event.Action, "error", err)
	}
}
