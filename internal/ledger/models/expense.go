package models

import (
	"time"

	"github.com/shopspring/decimal"

	id "pawledger/pkg/domain"
)

// Expense is an immutable spending record. Verified defaults to false; no
// operation currently flips it, the field is reserved for a future receipt
// audit flow.
type Expense struct {
	ID          id.ExpenseID       `json:"id"`
	FeederID    id.FeederID        `json:"feeder_id"`
	Amount      decimal.Decimal    `json:"amount"`
	Category    id.ExpenseCategory `json:"category"`
	Description string             `json:"description"`
	Timestamp   time.Time          `json:"timestamp"`
	ReceiptHash string             `json:"receipt_hash"`
	DogIDs      []id.DogID         `json:"dog_ids"`
	Verified    bool               `json:"verified"`
}
