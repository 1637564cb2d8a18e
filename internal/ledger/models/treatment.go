package models

import (
	"time"

	"github.com/shopspring/decimal"

	id "pawledger/pkg/domain"
)

// Treatment is an immutable medical-care record tied to one dog and one
// feeder.
type Treatment struct {
	ID            id.TreatmentID  `json:"id"`
	DogID         id.DogID        `json:"dog_id"`
	FeederID      id.FeederID     `json:"feeder_id"`
	TreatmentType string          `json:"treatment_type"`
	Description   string          `json:"description"`
	Cost          decimal.Decimal `json:"cost"`
	Date          time.Time       `json:"date"`
	Veterinarian  string          `json:"veterinarian"`
	Outcome       string          `json:"outcome"`
}
