package domain

import (
	"strconv"

	dErrors "pawledger/pkg/domain-errors"
)

// Entity identifiers are allocator-assigned, monotonically increasing numbers.
// 0 is reserved as the sentinel meaning "no such entity" / "unresolved"; the
// allocator never issues it.
type (
	FeederID    uint64
	DogID       uint64
	DonationID  uint64
	ExpenseID   uint64
	TreatmentID uint64
)

// IsZero reports whether the id is the unresolved sentinel.
func (id FeederID) IsZero() bool    { return id == 0 }
func (id DogID) IsZero() bool       { return id == 0 }
func (id DonationID) IsZero() bool  { return id == 0 }
func (id ExpenseID) IsZero() bool   { return id == 0 }
func (id TreatmentID) IsZero() bool { return id == 0 }

func (id FeederID) String() string    { return strconv.FormatUint(uint64(id), 10) }
func (id DogID) String() string       { return strconv.FormatUint(uint64(id), 10) }
func (id DonationID) String() string  { return strconv.FormatUint(uint64(id), 10) }
func (id ExpenseID) String() string   { return strconv.FormatUint(uint64(id), 10) }
func (id TreatmentID) String() string { return strconv.FormatUint(uint64(id), 10) }

// parseID constructs a non-sentinel numeric id from external input.
//
// Usage: call from handlers/adapters when parsing requests; direct casting
// bypasses validation.
func parseID(s string) (uint64, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeBadRequest, "id cannot be empty")
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeBadRequest, "id must be a positive integer")
	}
	if v == 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "id 0 is reserved")
	}
	return v, nil
}

func ParseFeederID(s string) (FeederID, error) {
	v, err := parseID(s)
	return FeederID(v), err
}

func ParseDogID(s string) (DogID, error) {
	v, err := parseID(s)
	return DogID(v), err
}

func ParseDonationID(s string) (DonationID, error) {
	v, err := parseID(s)
	return DonationID(v), err
}

func ParseExpenseID(s string) (ExpenseID, error) {
	v, err := parseID(s)
	return ExpenseID(v), err
}

func ParseTreatmentID(s string) (TreatmentID, error) {
	v, err := parseID(s)
	return TreatmentID(v), err
}

// WalletAddress identifies an external principal that can prove control via
// signature. The engine never inspects the address format.
type WalletAddress string

func (w WalletAddress) IsNil() bool    { return w == "" }
func (w WalletAddress) String() string { return string(w) }
