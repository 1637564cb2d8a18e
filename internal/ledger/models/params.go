package models

import (
	"strings"

	"github.com/shopspring/decimal"

	dErrors "pawledger/pkg/domain-errors"
	id "pawledger/pkg/domain"
)

// DonateParams carries a donor's contribution to a feeder.
type DonateParams struct {
	FeederID id.FeederID     `json:"feeder_id"`
	Amount   decimal.Decimal `json:"amount"`
	Purpose  string          `json:"purpose"`
	DogID    *id.DogID       `json:"dog_id,omitempty"`
}

func (p DonateParams) Validate() error {
	if p.FeederID.IsZero() {
		return dErrors.New(dErrors.CodeBadRequest, "feeder id is required")
	}
	if !p.Amount.IsPositive() {
		return dErrors.New(dErrors.CodeBadRequest, "donation amount must be positive")
	}
	return nil
}

// RecordExpenseParams carries a feeder's spending record.
type RecordExpenseParams struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	ReceiptHash string          `json:"receipt_hash"`
	DogIDs      []id.DogID      `json:"dog_ids"`
}

func (p *RecordExpenseParams) Normalize() {
	p.Category = strings.TrimSpace(p.Category)
	p.Description = strings.TrimSpace(p.Description)
}

func (p RecordExpenseParams) Validate() error {
	if !p.Amount.IsPositive() {
		return dErrors.New(dErrors.CodeBadRequest, "expense amount must be positive")
	}
	if p.Category == "" {
		return dErrors.New(dErrors.CodeBadRequest, "expense category is required")
	}
	return nil
}

// RecordTreatmentParams carries a medical-care record.
type RecordTreatmentParams struct {
	DogID         id.DogID        `json:"dog_id"`
	TreatmentType string          `json:"treatment_type"`
	Description   string          `json:"description"`
	Cost          decimal.Decimal `json:"cost"`
	Veterinarian  string          `json:"veterinarian"`
	Outcome       string          `json:"outcome"`
}

func (p RecordTreatmentParams) Validate() error {
	if p.DogID.IsZero() {
		return dErrors.New(dErrors.CodeBadRequest, "dog id is required")
	}
	if p.TreatmentType == "" {
		return dErrors.New(dErrors.CodeBadRequest, "treatment type is required")
	}
	if p.Cost.IsNegative() {
		return dErrors.New(dErrors.CodeBadRequest, "treatment cost must not be negative")
	}
	return nil
}
