package quote

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"swapScope/internal/amount"
	"swapScope/internal/model"
	"swapScope/internal/token"
)

type staticPools struct {
	pools []model.Pool
	err   error
}

func (s staticPools) Pools(context.Context) ([]model.Pool, error) {
	return s.pools, s.err
}

func TestQuoterQuoteBySymbol(t *testing.T) {
	q := NewQuoter(staticPools{pools: []model.Pool{ethUSDCPool()}}, nil, nil, nil)

	got, err := q.Quote(context.Background(), "ETH", "usdc", "1")
	require.NoError(t, err)
	require.Equal(t, "2063.215669", got.AmountOut)
	require.GreaterOrEqual(t, got.PriceImpact, 0.0)
	require.LessOrEqual(t, got.PriceImpact, 100.0)
}

func TestQuoterNoPool(t *testing.T) {
	q := NewQuoter(staticPools{pools: []model.Pool{ethUSDCPool()}}, nil, nil, nil)

	_, err := q.Quote(context.Background(), "ETH", "BTC", "1")
	require.ErrorIs(t, err, ErrNoPoolFound)
	require.Contains(t, err.Error(), "ETH -> BTC")
}

func TestQuoterUnknownSymbol(t *testing.T) {
	q := NewQuoter(staticPools{}, nil, nil, nil)

	_, err := q.Quote(context.Background(), "DOGE", "USDC", "1")
	require.ErrorIs(t, err, token.ErrUnknownToken)
}

func TestQuoterSourceError(t *testing.T) {
	boom := errors.New("api down")
	q := NewQuoter(staticPools{err: boom}, nil, nil, nil)

	_, err := q.Quote(context.Background(), "ETH", "USDC", "1")
	require.ErrorIs(t, err, boom)
}

func TestQuoterPoolKeyForSwap(t *testing.T) {
	q := NewQuoter(staticPools{pools: []model.Pool{ethUSDCPool()}}, nil, nil, nil)

	key, err := q.PoolKeyForSwap(context.Background(), "USDC", "ETH")
	require.NoError(t, err)
	require.Equal(t, ethUSDCPool().Key(), key)
}

func TestQuoterPoolKeyRejectsOversizedFee(t *testing.T) {
	pool := ethUSDCPool()
	pool.Fee = "0x1" + "00000000000000000000000000000000"
	q := NewQuoter(staticPools{pools: []model.Pool{pool}}, nil, nil, nil)

	_, err := q.PoolKeyForSwap(context.Background(), "ETH", "USDC")
	require.ErrorIs(t, err, amount.ErrExceedsI129Magnitude)
	require.Contains(t, err.Error(), "pool fee")
}
