// Package audit captures the engine's activity trail. Every state-changing
// operation emits one event after its writes commit; sinks fan the events out
// to memory (tests), a postgres outbox, or Kafka.
package audit

import (
	"time"

	id "pawledger/pkg/domain"
)

type Action string

const (
	ActionEngineInitialized Action = "engine_initialized"
	ActionFeederRegistered  Action = "feeder_registered"
	ActionFeederVerified    Action = "feeder_verified"
	ActionDogRegistered     Action = "dog_registered"
	ActionDogHealthUpdated  Action = "dog_health_updated"
	ActionDonationRecorded  Action = "donation_recorded"
	ActionExpenseRecorded   Action = "expense_recorded"
	ActionTreatmentRecorded Action = "treatment_recorded"
)

// Event is one entry in the activity trail. Keep it transport-agnostic so
// sinks can fan out.
type Event struct {
	Timestamp time.Time        `json:"timestamp"`
	Action    Action           `json:"action"`
	Actor     id.WalletAddress `json:"actor,omitempty"`
	FeederID  id.FeederID      `json:"feeder_id,omitempty"`
	DogID     id.DogID         `json:"dog_id,omitempty"`
	RecordID  uint64           `json:"record_id,omitempty"`
	Amount    string           `json:"amount,omitempty"`
	Detail    string           `json:"detail,omitempty"`
	RequestID string           `json:"request_id,omitempty"`
}
