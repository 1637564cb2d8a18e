package models

import (
	"time"

	dErrors "pawledger/pkg/domain-errors"

	id "pawledger/pkg/domain"
)

// ActivityStats is the materialized per-feeder outcome aggregate. It is
// created atomically with its owning feeder, incrementally maintained by
// stat-bearing operations, and never independently settable.
type ActivityStats struct {
	FeederID       id.FeederID `json:"feeder_id"`
	DogsFed        uint64      `json:"dogs_fed"`
	DogsVaccinated uint64      `json:"dogs_vaccinated"`
	DogsSpayed     uint64      `json:"dogs_spayed"`
	DogsNeutered   uint64      `json:"dogs_neutered"`
	DogsTreated    uint64      `json:"dogs_treated"`
	DogsRescued    uint64      `json:"dogs_rescued"`
	DogsAdopted    uint64      `json:"dogs_adopted"`
	LastUpdated    time.Time   `json:"last_updated"`
}

// NewActivityStats constructs the zero-valued aggregate for a new feeder.
func NewActivityStats(feederID id.FeederID, now time.Time) *ActivityStats {
	return &ActivityStats{FeederID: feederID, LastUpdated: now}
}

// Apply adds count to the counter selected by tag and bumps LastUpdated.
// Counters are monotonic; there is no corrective path.
func (s *ActivityStats) Apply(tag id.StatTag, count uint64, now time.Time) error {
	switch tag {
	case id.StatFed:
		s.DogsFed += count
	case id.StatVaccinated:
		s.DogsVaccinated += count
	case id.StatSpayed:
		s.DogsSpayed += count
	case id.StatNeutered:
		s.DogsNeutered += count
	case id.StatTreated:
		s.DogsTreated += count
	case id.StatRescued:
		s.DogsRescued += count
	case id.StatAdopted:
		s.DogsAdopted += count
	default:
		return dErrors.Newf(dErrors.CodeInvariantViolation, "unknown stat tag %q", tag)
	}
	s.LastUpdated = now
	return nil
}
