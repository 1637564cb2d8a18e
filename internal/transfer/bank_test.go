package transfer

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	id "pawledger/pkg/domain"
	"pawledger/pkg/platform/sentinel"
)

func TestBank(t *testing.T) {
	ctx := context.Background()
	donor := id.WalletAddress("GDONOR")
	feeder := id.WalletAddress("GFEEDER")

	t.Run("moves funds and returns a reference", func(t *testing.T) {
		bank := NewBank()
		bank.Mint(donor, decimal.NewFromInt(10000))

		ref, err := bank.Transfer(ctx, donor, feeder, decimal.NewFromInt(7500))
		require.NoError(t, err)
		require.Len(t, ref, 64)
		require.True(t, bank.Balance(donor).Equal(decimal.NewFromInt(2500)))
		require.True(t, bank.Balance(feeder).Equal(decimal.NewFromInt(7500)))
	})

	t.Run("references are unique per settlement", func(t *testing.T) {
		bank := NewBank()
		bank.Mint(donor, decimal.NewFromInt(200))

		first, err := bank.Transfer(ctx, donor, feeder, decimal.NewFromInt(100))
		require.NoError(t, err)
		second, err := bank.Transfer(ctx, donor, feeder, decimal.NewFromInt(100))
		require.NoError(t, err)
		require.NotEqual(t, first, second)
	})

	t.Run("insufficient funds leaves balances untouched", func(t *testing.T) {
		bank := NewBank()
		bank.Mint(donor, decimal.NewFromInt(50))

		_, err := bank.Transfer(ctx, donor, feeder, decimal.NewFromInt(100))
		require.ErrorIs(t, err, sentinel.ErrInsufficientFunds)
		require.True(t, bank.Balance(donor).Equal(decimal.NewFromInt(50)))
		require.True(t, bank.Balance(feeder).IsZero())
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		bank := NewBank()
		_, err := bank.Transfer(ctx, donor, feeder, decimal.Zero)
		require.Error(t, err)
		_, err = bank.Transfer(ctx, donor, feeder, decimal.NewFromInt(-5))
		require.Error(t, err)
	})
}
