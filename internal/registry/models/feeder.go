package models

import (
	"time"

	"github.com/shopspring/decimal"

	id "pawledger/pkg/domain"
)

// Feeder is the identity record for a rescue organization or individual
// caretaker, the primary mutating principal of the engine.
//
// Invariants:
//   - ID is allocator-assigned and never 0
//   - TotalReceived equals the sum of all Donation amounts referencing this feeder
//   - TotalSpent equals the sum of all Expense amounts referencing this feeder
//   - Verified is administrator-controlled and never self-set
//
// A wallet is expected to back at most one feeder, but the engine does not
// enforce uniqueness; resolution returns the first registration by id order.
type Feeder struct {
	ID                 id.FeederID      `json:"id"`
	Name               string           `json:"name"`
	OrganizationType   string           `json:"organization_type"`
	Location           string           `json:"location"`
	Wallet             id.WalletAddress `json:"wallet"`
	RegistrationNumber string           `json:"registration_number"`
	ContactInfo        string           `json:"contact_info"`
	RegisteredAt       time.Time        `json:"registered_at"`
	Verified           bool             `json:"verified"`
	TotalReceived      decimal.Decimal  `json:"total_received"`
	TotalSpent         decimal.Decimal  `json:"total_spent"`
}

// NewFeeder constructs an unverified feeder with zero running totals.
func NewFeeder(feederID id.FeederID, params RegisterFeederParams, now time.Time) *Feeder {
	return &Feeder{
		ID:                 feederID,
		Name:               params.Name,
		OrganizationType:   params.OrganizationType,
		Location:           params.Location,
		Wallet:             params.Wallet,
		RegistrationNumber: params.RegistrationNumber,
		ContactInfo:        params.ContactInfo,
		RegisteredAt:       now,
		Verified:           false,
		TotalReceived:      decimal.Zero,
		TotalSpent:         decimal.Zero,
	}
}

// ApplyDonation adds a received amount to the running total.
func (f *Feeder) ApplyDonation(amount decimal.Decimal) {
	f.TotalReceived = f.TotalReceived.Add(amount)
}

// ApplyExpense adds a spent amount to the running total.
func (f *Feeder) ApplyExpense(amount decimal.Decimal) {
	f.TotalSpent = f.TotalSpent.Add(amount)
}
