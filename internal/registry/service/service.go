// Package service orchestrates the care network registry: one-time engine
// initialization, feeder onboarding and verification, and the dog roster.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pawledger/internal/allocator"
	"pawledger/internal/platform/metrics"
	"pawledger/internal/registry/models"
	"pawledger/internal/stats"
	statsmodels "pawledger/internal/stats/models"
	"pawledger/internal/storage"
	dErrors "pawledger/pkg/domain-errors"
	id "pawledger/pkg/domain"
	"pawledger/pkg/platform/audit"
	"pawledger/pkg/platform/sentinel"
	"pawledger/pkg/platform/tx"
	"pawledger/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,Verifier,AuditPublisher

// Store is the slice of the entity store the registry needs.
type Store interface {
	Initialized(ctx context.Context) (bool, error)
	SetAdmin(ctx context.Context, admin id.WalletAddress) error
	Admin(ctx context.Context) (id.WalletAddress, error)
	SetTransferService(ctx context.Context, service id.WalletAddress) error
	SetCounter(ctx context.Context, category string, value uint64) error
	Counter(ctx context.Context, category string) (uint64, error)

	PutFeeder(ctx context.Context, feeder *models.Feeder) error
	FeederByID(ctx context.Context, feederID id.FeederID) (*models.Feeder, error)
	PutDog(ctx context.Context, dog *models.Dog) error
	DogByID(ctx context.Context, dogID id.DogID) (*models.Dog, error)
	PutStats(ctx context.Context, stats *statsmodels.ActivityStats) error

	ClaimWallet(ctx context.Context, wallet id.WalletAddress, feederID id.FeederID) error
	FeederIDByWallet(ctx context.Context, wallet id.WalletAddress) (id.FeederID, error)
}

// Verifier checks that the caller controls the wallet it acts for.
type Verifier interface {
	RequireControl(ctx context.Context, principal id.WalletAddress) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service owns all registry writes. Every mutation runs inside the
// transaction boundary so dependent writes (feeder + stats row, counter
// advances) land or abort together.
type Service struct {
	store          Store
	ids            *allocator.Allocator
	verifier       Verifier
	boundary       tx.Boundary
	aggregator     *stats.Aggregator
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
func New(store Store, ids *allocator.Allocator, verifier Verifier, boundary tx.Boundary, aggregator *stats.Aggregator, opts ...Option) *Service {
	s := &Service{
		store:      store,
		ids:        ids,
		verifier:   verifier,
		boundary:   boundary,
		aggregator: aggregator,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize performs one-time engine setup: records the administrator and
// the transfer service principal and seeds the identifier counters. A second
// call fails with CodeAlreadyInitialized regardless of arguments.
func (s *Service) Initialize(ctx context.Context, admin, transferService id.WalletAddress) error {
	if admin.IsNil() || transferService.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "admin and transfer service wallets are required")
	}
	if err := s.verifier.RequireControl(ctx, admin); err != nil {
		return err
	}

	err := s.boundary.RunInTx(ctx, func(ctx context.Context) error {
		initialized, err := s.store.Initialized(ctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check initialization")
		}
		if initialized {
			return dErrors.New(dErrors.CodeAlreadyInitialized, "engine is already initialized")
		}
		if err := s.store.SetAdmin(ctx, admin); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store admin")
		}
		if err := s.store.SetTransferService(ctx, transferService); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store transfer service")
		}
		for _, category := range []string{
			storage.CounterFeeders,
			storage.CounterDogs,
			storage.CounterDonations,
			storage.CounterExpenses,
			storage.CounterTreatments,
		} {
			if err := s.store.SetCounter(ctx, category, 0); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to seed counters")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logAudit(ctx, audit.Event{Action: audit.ActionEngineInitialized, Actor: admin})
	return nil
}

// RegisterFeeder onboards a caregiver and creates its activity statistics
// row in the same unit of work.
func (s *Service) RegisterFeeder(ctx context.Context, params models.RegisterFeederParams) (*models.Feeder, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := s.verifier.RequireControl(ctx, params.Wallet); err != nil {
		return nil, err
	}

	var feeder *models.Feeder
	err := s.boundary.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.ensureInitialized(ctx); err != nil {
			return err
		}
		next, err := s.ids.NextID(ctx, storage.CounterFeeders)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to allocate feeder id")
		}
		now := requestcontext.Now(ctx)
		feeder = models.NewFeeder(id.FeederID(next), params, now)
		if err := s.store.PutFeeder(ctx, feeder); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store feeder")
		}
		if err := s.store.PutStats(ctx, statsmodels.NewActivityStats(feeder.ID, now)); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create activity stats")
		}
		// A conflict means the wallet already backs an earlier feeder; the
		// first claim stands and resolution stays first-match-by-id-order.
		if err := s.store.ClaimWallet(ctx, feeder.Wallet, feeder.ID); err != nil && !errors.Is(err, sentinel.ErrConflict) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to index feeder wallet")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.Event{
		Action:   audit.ActionFeederRegistered,
		Actor:    feeder.Wallet,
		FeederID: feeder.ID,
		Detail:   feeder.Name,
	})
	if s.metrics != nil {
		s.metrics.FeedersRegistered.Inc()
	}
	return feeder, nil
}

// VerifyFeeder marks a feeder as vetted. Administrator only; verifying an
// already-verified feeder is a no-op that still succeeds.
func (s *Service) VerifyFeeder(ctx context.Context, feederID id.FeederID) error {
	var feeder *models.Feeder
	err := s.boundary.RunInTx(ctx, func(ctx context.Context) error {
		admin, err := s.store.Admin(ctx)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeUnauthorized, "engine is not initialized")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load admin")
		}
		if err := s.verifier.RequireControl(ctx, admin); err != nil {
			return err
		}

		feeder, err = s.store.FeederByID(ctx, feederID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.Newf(dErrors.CodeNotFound, "feeder %d not found", feederID)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load feeder")
		}
		feeder.Verified = true
		if err := s.store.PutFeeder(ctx, feeder); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store feeder")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logAudit(ctx, audit.Event{
		Action:   audit.ActionFeederVerified,
		FeederID: feederID,
	})
	if s.metrics != nil {
		s.metrics.FeedersVerified.Inc()
	}
	return nil
}

// RegisterDog adds a dog to the roster of the feeder behind the calling
// wallet and counts it as rescued.
func (s *Service) RegisterDog(ctx context.Context, feederWallet id.WalletAddress, params models.RegisterDogParams) (*models.Dog, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := s.verifier.RequireControl(ctx, feederWallet); err != nil {
		return nil, err
	}

	var dog *models.Dog
	err := s.boundary.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.ensureInitialized(ctx); err != nil {
			return err
		}
		feederID, err := s.resolveFeeder(ctx, feederWallet)
		if err != nil {
			return err
		}
		next, err := s.ids.NextID(ctx, storage.CounterDogs)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to allocate dog id")
		}
		dog = models.NewDog(id.DogID(next), feederID, params, requestcontext.Now(ctx))
		if err := s.store.PutDog(ctx, dog); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store dog")
		}
		if err := s.aggregator.Increment(ctx, feederID, id.StatRescued, 1); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.Event{
		Action:   audit.ActionDogRegistered,
		Actor:    feederWallet,
		FeederID: dog.FeederID,
		DogID:    dog.ID,
		Detail:   dog.Name,
	})
	if s.metrics != nil {
		s.metrics.DogsRegistered.Inc()
	}
	return dog, nil
}

// UpdateDogHealth changes a dog's health record. Only the feeder that
// registered the dog may update it.
func (s *Service) UpdateDogHealth(ctx context.Context, feederWallet id.WalletAddress, dogID id.DogID, healthStatus, sickness string) (*models.Dog, error) {
	if healthStatus == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "health status is required")
	}
	if err := s.verifier.RequireControl(ctx, feederWallet); err != nil {
		return nil, err
	}

	var dog *models.Dog
	err := s.boundary.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.ensureInitialized(ctx); err != nil {
			return err
		}
		var err error
		dog, err = s.store.DogByID(ctx, dogID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.Newf(dErrors.CodeNotFound, "dog %d not found", dogID)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load dog")
		}
		feederID, err := s.resolveFeeder(ctx, feederWallet)
		if err != nil {
			return err
		}
		if dog.FeederID != feederID {
			return dErrors.Newf(dErrors.CodeUnauthorized, "dog %d is not registered by feeder %d", dogID, feederID)
		}
		dog.ApplyHealthUpdate(healthStatus, sickness, requestcontext.Now(ctx))
		if err := s.store.PutDog(ctx, dog); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store dog")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.Event{
		Action:   audit.ActionDogHealthUpdated,
		Actor:    feederWallet,
		FeederID: dog.FeederID,
		DogID:    dog.ID,
		Detail:   healthStatus,
	})
	if s.metrics != nil {
		s.metrics.DogHealthUpdates.Inc()
	}
	return dog, nil
}

// GetFeeder returns a feeder by id.
func (s *Service) GetFeeder(ctx context.Context, feederID id.FeederID) (*models.Feeder, error) {
	feeder, err := s.store.FeederByID(ctx, feederID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "feeder %d not found", feederID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load feeder")
	}
	return feeder, nil
}

// GetDog returns a dog by id.
func (s *Service) GetDog(ctx context.Context, dogID id.DogID) (*models.Dog, error) {
	dog, err := s.store.DogByID(ctx, dogID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "dog %d not found", dogID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load dog")
	}
	return dog, nil
}

// GetFeederStats returns the activity counters for a feeder.
func (s *Service) GetFeederStats(ctx context.Context, feederID id.FeederID) (*statsmodels.ActivityStats, error) {
	return s.aggregator.StatsFor(ctx, feederID)
}

// TotalFeeders returns how many feeders have ever been registered.
func (s *Service) TotalFeeders(ctx context.Context) (uint64, error) {
	return s.total(ctx, storage.CounterFeeders)
}

// TotalDogs returns how many dogs have ever been registered.
func (s *Service) TotalDogs(ctx context.Context) (uint64, error) {
	return s.total(ctx, storage.CounterDogs)
}

func (s *Service) total(ctx context.Context, category string) (uint64, error) {
	count, err := s.store.Counter(ctx, category)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("failed to read %s counter", category))
	}
	return count, nil
}

// ensureInitialized rejects mutating calls before one-time setup has run.
// Reads stay open; the totals legitimately report 0 pre-initialization.
func (s *Service) ensureInitialized(ctx context.Context) error {
	initialized, err := s.store.Initialized(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check initialization")
	}
	if !initialized {
		return dErrors.New(dErrors.CodeUnauthorized, "engine is not initialized")
	}
	return nil
}

// resolveFeeder maps an authenticated wallet to its feeder id.
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
			"feeder_id", event.FeederID, "dog_id", event.DogID, "log_type", "audit")
	}
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", event.Action, "error", err)
	}
}
