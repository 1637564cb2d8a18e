// Package transfer moves donation funds between wallets. The ledger treats
// the implementation as an external collaborator: a transfer either fully
// settles before anything is recorded, or the whole operation aborts.
package transfer

import (
	"context"

	"github.com/shopspring/decimal"

	id "pawledger/pkg/domain"
)

//go:generate mockgen -source=transfer.go -destination=mocks/mocks.go -package=mocks

// Service settles a value transfer and returns an opaque settlement
// reference stored alongside the donation record.
type Service interface {
	Transfer(ctx context.Context, from, to id.WalletAddress, amount decimal.Decimal) (string, error)
}
