package quote

import (
	"testing"

	"github.com/stretchr/testify/require"

	"swapScope/internal/model"
)

func TestFindBestPool(t *testing.T) {
	pools := []model.Pool{
		{KeyHash: "a", Token0: ethAddress, Token1: usdcAddress, Liquidity: "100"},
		{KeyHash: "b", Token0: ethAddress, Token1: btcAddress, Liquidity: "999999"},
		{KeyHash: "c", Token0: "0x49d36570d4e46f48e99674bd3fcc84644ddd6b96f7c741b1562b82f9e004dc7", Token1: usdcAddress, Liquidity: "500"},
		{KeyHash: "d", Token0: ethAddress, Token1: usdcAddress, Liquidity: "500"},
	}

	best, err := FindBestPool(pools, ethAddress, usdcAddress)
	require.NoError(t, err)
	require.Equal(t, "c", best.KeyHash)

	reversed, err := FindBestPool(pools, "0x53B40A647CEDFCA6CA84F542A0FE36736031905A9639A7F19A3C1E66BFD5080", ethAddress)
	require.NoError(t, err)
	require.Equal(t, "c", reversed.KeyHash)
}

func TestFindBestPoolNoMatch(t *testing.T) {
	pools := []model.Pool{{Token0: ethAddress, Token1: usdcAddress, Liquidity: "1"}}

	_, err := FindBestPool(pools, btcAddress, usdcAddress)
	require.ErrorIs(t, err, ErrNoPoolFound)

	_, err = FindBestPool(nil, ethAddress, usdcAddress)
	require.ErrorIs(t, err, ErrNoPoolFound)
}
