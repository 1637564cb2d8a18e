package models

import (
	"strings"

	dErrors "pawledger/pkg/domain-errors"
	id "pawledger/pkg/domain"
)

// RegisterFeederParams carries everything needed to onboard a feeder.
type RegisterFeederParams struct {
	Name               string           `json:"name"`
	OrganizationType   string           `json:"organization_type"`
	Location           string           `json:"location"`
	Wallet             id.WalletAddress `json:"wallet"`
	RegistrationNumber string           `json:"registration_number"`
	ContactInfo        string           `json:"contact_info"`
}

func (p *RegisterFeederParams) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.OrganizationType = strings.TrimSpace(p.OrganizationType)
	p.Location = strings.TrimSpace(p.Location)
}

func (p RegisterFeederParams) Validate() error {
	if p.Name == "" {
		return dErrors.New(dErrors.CodeBadRequest, "feeder name is required")
	}
	if p.Wallet.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "feeder wallet is required")
	}
	return nil
}

// RegisterDogParams carries everything needed to add a dog to the roster.
type RegisterDogParams struct {
	Name         string `json:"name"`
	Age          uint32 `json:"age"`
	Breed        string `json:"breed"`
	Location     string `json:"location"`
	HealthStatus string `json:"health_status"`
	Sickness     string `json:"sickness"`
}

func (p *RegisterDogParams) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Breed = strings.TrimSpace(p.Breed)
	p.Location = strings.TrimSpace(p.Location)
}

func (p RegisterDogParams) Validate() error {
	if p.Name == "" {
		return dErrors.New(dErrors.CodeBadRequest, "dog name is required")
	}
	return nil
}
