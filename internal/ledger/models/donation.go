package models

import (
	"time"

	"github.com/shopspring/decimal"

	id "pawledger/pkg/domain"
)

// Donation is an immutable financial transfer record, created exactly once
// per successful donate call and never mutated afterwards.
//
// DogID optionally earmarks the donation for a specific dog; the engine does
// not cross-check that the dog belongs to the receiving feeder.
type Donation struct {
	ID          id.DonationID    `json:"id"`
	Donor       id.WalletAddress `json:"donor"`
	FeederID    id.FeederID      `json:"feeder_id"`
	Amount      decimal.Decimal  `json:"amount"`
	Timestamp   time.Time        `json:"timestamp"`
	Purpose     string           `json:"purpose"`
	DogID       *id.DogID        `json:"dog_id,omitempty"`
	TransferRef string           `json:"transfer_ref"`
}
