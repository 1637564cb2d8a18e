package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"pawledger/internal/allocator"
	"pawledger/internal/identity"
	"pawledger/internal/registry/models"
	"pawledger/internal/stats"
	"pawledger/internal/storage"
	"pawledger/internal/storage/kv"
	dErrors "pawledger/pkg/domain-errors"
	id "pawledger/pkg/domain"
	"pawledger/pkg/platform/audit"
	"pawledger/pkg/platform/tx"
	"pawledger/pkg/requestcontext"
)

const (
	adminWallet   = id.WalletAddress("GADMIN")
	serviceWallet = id.WalletAddress("GSERVICE")
	feederWallet  = id.WalletAddress("GFEEDER1")
	otherWallet   = id.WalletAddress("GFEEDER2")
)

type RegistryServiceSuite struct {
	suite.Suite
	store   *storage.Store
	sink    *audit.MemorySink
	service *Service
	now     time.Time
}

func TestRegistryServiceSuite(t *testing.T) {
	suite.Run(t, new(RegistryServiceSuite))
}

func (s *RegistryServiceSuite) SetupTest() {
	s.store = storage.New(kv.NewMemory())
	s.sink = audit.NewMemorySink()
	s.now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	s.service = New(
		s.store,
		allocator.New(s.store),
		identity.NewContextVerifier(),
		tx.NewMutexBoundary(),
		stats.NewAggregator(s.store),
		WithAuditPublisher(s.sink),
	)
}

// ctxAs builds a request context authenticated as the given wallet.
func (s *RegistryServiceSuite) ctxAs(wallet id.WalletAddress) context.Context {
	ctx := requestcontext.WithWallet(context.Background(), wallet)
	return requestcontext.WithTime(ctx, s.now)
}

func (s *RegistryServiceSuite) initialize() {
	s.Require().NoError(s.service.Initialize(s.ctxAs(adminWallet), adminWallet, serviceWallet))
}

func (s *RegistryServiceSuite) registerFeeder(wallet id.WalletAddress) *models.Feeder {
	feeder, err := s.service.RegisterFeeder(s.ctxAs(wallet), models.RegisterFeederParams{
		Name:             "Street Paws",
		OrganizationType: "ngo",
		Location:         "Istanbul",
		Wallet:           wallet,
	})
	s.Require().NoError(err)
	return feeder
}

func (s *RegistryServiceSuite) TestInitialize() {
	s.Run("succeeds once", func() {
		s.SetupTest()
		s.Require().NoError(s.service.Initialize(s.ctxAs(adminWallet), adminWallet, serviceWallet))

		admin, err := s.store.Admin(s.ctxAs(adminWallet))
		s.Require().NoError(err)
		s.Equal(adminWallet, admin)
		s.Len(s.sink.ByAction(audit.ActionEngineInitialized), 1)
	})

	s.Run("second call fails regardless of arguments", func() {
		s.SetupTest()
		s.initialize()
		err := s.service.Initialize(s.ctxAs(otherWallet), otherWallet, serviceWallet)
		s.True(dErrors.HasCode(err, dErrors.CodeAlreadyInitialized))
	})

	s.Run("requires caller to control the admin wallet", func() {
		s.SetupTest()
		err := s.service.Initialize(s.ctxAs(otherWallet), adminWallet, serviceWallet)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func (s *RegistryServiceSuite) TestRegisterFeeder() {
	s.Run("assigns sequential ids starting at 1", func() {
		s.SetupTest()
		s.initialize()

		first := s.registerFeeder(feederWallet)
		second := s.registerFeeder(otherWallet)
		s.Equal(id.FeederID(1), first.ID)
		s.Equal(id.FeederID(2), second.ID)
		s.False(first.Verified)
		s.True(first.TotalReceived.IsZero())
	})

	s.Run("creates the activity stats row atomically", func() {
		s.SetupTest()
		s.initialize()
		feeder := s.registerFeeder(feederWallet)

		got, err := s.service.GetFeederStats(s.ctxAs(feederWallet), feeder.ID)
		s.Require().NoError(err)
		s.Zero(got.DogsFed)
		s.Zero(got.DogsRescued)
	})

	s.Run("first registration wins the wallet index", func() {
		s.SetupTest()
		s.initialize()
		first := s.registerFeeder(feederWallet)
		s.registerFeeder(feederWallet)

		resolved, err := s.store.FeederIDByWallet(s.ctxAs(feederWallet), feederWallet)
		s.Require().NoError(err)
		s.Equal(first.ID, resolved)
	})

	s.Run("rejects missing name", func() {
		s.SetupTest()
		s.initialize()
		_, err := s.service.RegisterFeeder(s.ctxAs(feederWallet), models.RegisterFeederParams{
			Wallet: feederWallet,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("rejected before engine initialization", func() {
		s.SetupTest()
		_, err := s.service.RegisterFeeder(s.ctxAs(feederWallet), models.RegisterFeederParams{
			Name:   "Street Paws",
			Wallet: feederWallet,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func (s *RegistryServiceSuite) TestVerifyFeeder() {
	s.Run("admin verifies a feeder", func() {
		s.SetupTest()
		s.initialize()
		feeder := s.registerFeeder(feederWallet)

		s.Require().NoError(s.service.VerifyFeeder(s.ctxAs(adminWallet), feeder.ID))
		got, err := s.service.GetFeeder(s.ctxAs(adminWallet), feeder.ID)
		s.Require().NoError(err)
		s.True(got.Verified)
	})

	s.Run("is idempotent", func() {
		s.SetupTest()
		s.initialize()
		feeder := s.registerFeeder(feederWallet)

		s.Require().NoError(s.service.VerifyFeeder(s.ctxAs(adminWallet), feeder.ID))
		s.Require().NoError(s.service.VerifyFeeder(s.ctxAs(adminWallet), feeder.ID))
		got, err := s.service.GetFeeder(s.ctxAs(adminWallet), feeder.ID)
		s.Require().NoError(err)
		s.True(got.Verified)
	})

	s.Run("non-admin is rejected", func() {
		s.SetupTest()
		s.initialize()
		feeder := s.registerFeeder(feederWallet)

		err := s.service.VerifyFeeder(s.ctxAs(feederWallet), feeder.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("unknown feeder is not found", func() {
		s.SetupTest()
		s.initialize()
		err := s.service.VerifyFeeder(s.ctxAs(adminWallet), id.FeederID(42))
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *RegistryServiceSuite) TestRegisterDog() {
	params := models.RegisterDogParams{
		Name:         "Boncuk",
		Age:          3,
		Breed:        "mixed",
		Location:     "Kadikoy",
		HealthStatus: "healthy",
	}

	s.Run("registers under the calling feeder and counts a rescue", func() {
		s.SetupTest()
		s.initialize()
		feeder := s.registerFeeder(feederWallet)

		dog, err := s.service.RegisterDog(s.ctxAs(feederWallet), feederWallet, params)
		s.Require().NoError(err)
		s.Equal(id.DogID(1), dog.ID)
		s.Equal(feeder.ID, dog.FeederID)
		s.True(dog.Active)

		got, err := s.service.GetFeederStats(s.ctxAs(feederWallet), feeder.ID)
		s.Require().NoError(err)
		s.Equal(uint64(1), got.DogsRescued)
	})

	s.Run("unregistered wallet is rejected", func() {
		s.SetupTest()
		s.initialize()
		_, err := s.service.RegisterDog(s.ctxAs(otherWallet), otherWallet, params)
		s.True(dErrors.HasCode(err, dErrors.CodeFeederNotRegistered))
	})

	s.Run("dog ids are independent of feeder ids", func() {
		s.SetupTest()
		s.initialize()
		s.registerFeeder(feederWallet)
		s.registerFeeder(otherWallet)

		dog, err := s.service.RegisterDog(s.ctxAs(otherWallet), otherWallet, params)
		s.Require().NoError(err)
		s.Equal(id.DogID(1), dog.ID)
	})
}

func (s *RegistryServiceSuite) TestUpdateDogHealth() {
	params := models.RegisterDogParams{Name: "Boncuk", HealthStatus: "healthy"}

	s.Run("owner updates health fields", func() {
		s.SetupTest()
		s.initialize()
		s.registerFeeder(feederWallet)
		dog, err := s.service.RegisterDog(s.ctxAs(feederWallet), feederWallet, params)
		s.Require().NoError(err)

		updated, err := s.service.UpdateDogHealth(s.ctxAs(feederWallet), feederWallet, dog.ID, "recovering", "mange")
		s.Require().NoError(err)
		s.Equal("recovering", updated.HealthStatus)
		s.Equal("mange", updated.Sickness)
		s.Equal(dog.RegisteredAt, updated.RegisteredAt)
	})

	s.Run("another feeder cannot update", func() {
		s.SetupTest()
		s.initialize()
		s.registerFeeder(feederWallet)
		s.registerFeeder(otherWallet)
		dog, err := s.service.RegisterDog(s.ctxAs(feederWallet), feederWallet, params)
		s.Require().NoError(err)

		_, err = s.service.UpdateDogHealth(s.ctxAs(otherWallet), otherWallet, dog.ID, "sick", "")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("unknown dog is not found", func() {
		s.SetupTest()
		s.initialize()
		s.registerFeeder(feederWallet)
		_, err := s.service.UpdateDogHealth(s.ctxAs(feederWallet), feederWallet, id.DogID(9), "sick", "")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *RegistryServiceSuite) TestTotals() {
	s.SetupTest()
	s.initialize()

	total, err := s.service.TotalFeeders(s.ctxAs(adminWallet))
	s.Require().NoError(err)
	s.Zero(total)

	s.registerFeeder(feederWallet)
	s.registerFeeder(otherWallet)

	total, err = s.service.TotalFeeders(s.ctxAs(adminWallet))
	s.Require().NoError(err)
	s.Equal(uint64(2), total)

	dogs, err := s.service.TotalDogs(s.ctxAs(adminWallet))
	s.Require().NoError(err)
	s.Zero(dogs)
}
