package model

import "math/big"

// Pool is a point-in-time pool snapshot as served by the pools API.
// Price fields describe token1 per token0.
type Pool struct {
	KeyHash     string      `json:"key_hash"`
	Token0      string      `json:"token0"`
	Token1      string      `json:"token1"`
	Fee         string      `json:"fee"`
	TickSpacing int64       `json:"tick_spacing"`
	Extension   string      `json:"extension"`
	SqrtRatio   string      `json:"sqrt_ratio"`
	Tick        int64       `json:"tick"`
	Liquidity   string      `json:"liquidity"`
	LastUpdate  *PoolUpdate `json:"lastUpdate,omitempty"`
}

// PoolUpdate references the event that last touched the pool.
type PoolUpdate struct {
	EventID string `json:"event_id"`
}

// PoolKey identifies a pool in contract calls.
type PoolKey struct {
	Token0      string `json:"token0"`
	Token1      string `json:"token1"`
	Fee         string `json:"fee"`
	TickSpacing int64  `json:"tick_spacing"`
	Extension   string `json:"extension"`
}

// Key returns the pool key used for swap calls.
func (p Pool) Key() PoolKey {
	return PoolKey{
		Token0:      p.Token0,
		Token1:      p.Token1,
		Fee:         p.Fee,
		TickSpacing: p.TickSpacing,
		Extension:   p.Extension,
	}
}

// LiquidityInt parses the liquidity field. Malformed or empty values count as zero.
func (p Pool) LiquidityInt() *big.Int {
	return parseInt(p.Liquidity)
}

// SqrtRatioInt parses the Q64.128 square-root price. The boolean is false when the field is malformed.
func (p Pool) SqrtRatioInt() (*big.Int, bool) {
	value, ok := ParseInteger(p.SqrtRatio)
	if !ok || value.Sign() < 0 {
		return nil, false
	}
	return value, true
}

func parseInt(input string) *big.Int {
	value, ok := ParseInteger(input)
	if !ok || value.Sign() < 0 {
		return new(big.Int)
	}
	return value
}
