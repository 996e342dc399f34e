package quote

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"swapScope/internal/amount"
	"swapScope/internal/model"
	"swapScope/internal/token"
)

// PoolSource provides the current pool set.
type PoolSource interface {
	Pools(ctx context.Context) ([]model.Pool, error)
}

// Quoter runs the full quote flow: token resolution, pool discovery, leg
// decimals, and the engine.
type Quoter struct {
	source   PoolSource
	resolver *token.Resolver
	engine   *Engine
	logger   *zap.Logger
}

func NewQuoter(source PoolSource, resolver *token.Resolver, engine *Engine, logger *zap.Logger) *Quoter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if resolver == nil {
		resolver = token.NewResolver(nil, nil, nil, logger)
	}
	if engine == nil {
		engine = NewEngine(DefaultFallbackPrice, logger)
	}
	return &Quoter{source: source, resolver: resolver, engine: engine, logger: logger}
}

// Quote prices amountIn of tokenIn in tokenOut. Tokens may be symbols or addresses.
func (q *Quoter) Quote(ctx context.Context, tokenIn, tokenOut, amountIn string) (model.Quote, error) {
	inAddr, outAddr, pool, err := q.bestPool(ctx, tokenIn, tokenOut)
	if err != nil {
		return model.Quote{}, err
	}

	d0, d1 := q.resolver.Decimals(ctx, pool)
	q.logger.Debug("quote pool selected",
		zap.String("pool", pool.KeyHash),
		zap.String("token0", pool.Token0),
		zap.String("token1", pool.Token1),
		zap.String("liquidity", pool.Liquidity),
		zap.Uint8("decimals0", d0),
		zap.Uint8("decimals1", d1),
	)

	result, err := q.engine.Quote(pool, inAddr, outAddr, amountIn, Legs{Decimals0: d0, Decimals1: d1})
	if err != nil {
		return model.Quote{}, fmt.Errorf("quote %s -> %s: %w", tokenIn, tokenOut, err)
	}
	return result, nil
}

// PoolKeyForSwap returns the key of the best pool for the pair. The fee must
// fit an i129 magnitude; there is no substitute fee.
func (q *Quoter) PoolKeyForSwap(ctx context.Context, tokenIn, tokenOut string) (model.PoolKey, error) {
	_, _, pool, err := q.bestPool(ctx, tokenIn, tokenOut)
	if err != nil {
		return model.PoolKey{}, err
	}

	key := pool.Key()
	fee, err := amount.ParseBaseUnits(key.Fee)
	if err != nil {
		return model.PoolKey{}, fmt.Errorf("pool %s fee: %w", pool.KeyHash, err)
	}
	if err := amount.ValidateI129(fee, "pool fee"); err != nil {
		return model.PoolKey{}, err
	}
	return key, nil
}

func (q *Quoter) bestPool(ctx context.Context, tokenIn, tokenOut string) (string, string, model.Pool, error) {
	registry := q.resolver.Registry()
	inAddr, err := registry.ResolveAddress(tokenIn)
	if err != nil {
		return "", "", model.Pool{}, err
	}
	outAddr, err := registry.ResolveAddress(tokenOut)
	if err != nil {
		return "", "", model.Pool{}, err
	}

	pools, err := q.source.Pools(ctx)
	if err != nil {
		return "", "", model.Pool{}, fmt.Errorf("fetch pools: %w", err)
	}

	pool, err := FindBestPool(pools, inAddr, outAddr)
	if err != nil {
		return "", "", model.Pool{}, fmt.Errorf("%s -> %s: %w", registry.Symbol(inAddr), registry.Symbol(outAddr), ErrNoPoolFound)
	}
	return inAddr, outAddr, pool, nil
}
