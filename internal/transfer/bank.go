package transfer

import (
	"context"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/sha3"

	id "pawledger/pkg/domain"
	"pawledger/pkg/platform/sentinel"
)

// Bank is an in-process token bank. It backs local and test deployments;
// production wires a custodial gateway behind the same interface.
type Bank struct {
	mu       sync.Mutex
	balances map[id.WalletAddress]decimal.Decimal
	seq      uint64
}

func NewBank() *Bank {
	return &Bank{balances: make(map[id.WalletAddress]decimal.Decimal)}
}

// Mint credits a wallet out of thin air. Test and bootstrap helper.
func (b *Bank) Mint(wallet id.WalletAddress, amount decimal.Decimal) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances[wallet] = b.balances[wallet].Add(amount)
}

func (b *Bank) Balance(wallet id.WalletAddress) decimal.Decimal {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[wallet]
}

// Transfer debits from and credits to atomically. The returned reference is
// a digest of the movement, unique per settlement.
func (b *Bank) Transfer(_ context.Context, from, to id.WalletAddress, amount decimal.Decimal) (string, error) {
	if !amount.IsPositive() {
		return "", fmt.Errorf("transfer amount %s is not positive", amount)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	balance := b.balances[from]
	if balance.LessThan(amount) {
		return "", fmt.Errorf("wallet %s holds %s, needs %s: %w", from, balance, amount, sentinel.ErrInsufficientFunds)
	}
	b.balances[from] = balance.Sub(amount)
	b.balances[to] = b.balances[to].Add(amount)
	b.seq++

	digest := sha3.Sum256(fmt.Appendf(nil, "%d|%s|%s|%s", b.seq, from, to, amount))
	return hex.EncodeToString(digest[:]), nil
}
