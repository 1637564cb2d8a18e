package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	dErrors "pawledger/pkg/domain-errors"
)

func TestParseFeederID(t *testing.T) {
	t.Run("parses positive integers", func(t *testing.T) {
		got, err := ParseFeederID("42")
		require.NoError(t, err)
		require.Equal(t, FeederID(42), got)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		for _, input := range []string{"", "abc", "-1", "0", "1.5"} {
			_, err := ParseFeederID(input)
			require.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest), "input %q", input)
		}
	})
}

func TestIDSentinels(t *testing.T) {
	require.True(t, FeederID(0).IsZero())
	require.False(t, FeederID(1).IsZero())
	require.Equal(t, "7", DogID(7).String())
	require.True(t, WalletAddress("").IsNil())
	require.False(t, WalletAddress("GABC").IsNil())
}
