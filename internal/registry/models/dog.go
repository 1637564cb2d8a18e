package models

import (
	"time"

	id "pawledger/pkg/domain"
)

// Dog is an animal under a feeder's care.
//
// Invariants:
//   - FeederID references a previously registered feeder and is immutable
//   - Active is soft-delete state; no hard delete operation exists
type Dog struct {
	ID           id.DogID    `json:"id"`
	Name         string      `json:"name"`
	Age          uint32      `json:"age"`
	Breed        string      `json:"breed"`
	Location     string      `json:"location"`
	HealthStatus string      `json:"health_status"`
	Sickness     string      `json:"sickness"`
	FeederID     id.FeederID `json:"feeder_id"`
	RegisteredAt time.Time   `json:"registered_at"`
	LastUpdated  time.Time   `json:"last_updated"`
	Active       bool        `json:"active"`
}

// NewDog constructs an active dog with both timestamps set to now.
func NewDog(dogID id.DogID, feederID id.FeederID, params RegisterDogParams, now time.Time) *Dog {
	return &Dog{
		ID:           dogID,
		Name:         params.Name,
		Age:          params.Age,
		Breed:        params.Breed,
		Location:     params.Location,
		HealthStatus: params.HealthStatus,
		Sickness:     params.Sickness,
		FeederID:     feederID,
		RegisteredAt: now,
		LastUpdated:  now,
		Active:       true,
	}
}

// ApplyHealthUpdate overwrites the health fields and bumps LastUpdated;
// everything else is untouched.
func (d *Dog) ApplyHealthUpdate(healthStatus, sickness string, now time.Time) {
	d.HealthStatus = healthStatus
	d.Sickness = sickness
	d.LastUpdated = now
}
