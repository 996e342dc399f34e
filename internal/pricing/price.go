package pricing

import (
	"errors"
	"math"
	"math/big"
)

// MaxSafeTick is the largest tick magnitude for which 1.0001^tick is trusted in float64.
const MaxSafeTick = 1_000_000

// ErrPriceUnreliable means the tick path cannot produce a trustworthy price
// and the sqrt ratio path should be used.
var ErrPriceUnreliable = errors.New("price calculation unreliable")

// Direction is the swap direction relative to the pool's token order.
type Direction int

const (
	// ZeroForOne sells token0 for token1.
	ZeroForOne Direction = iota
	// OneForZero sells token1 for token0.
	OneForZero
)

func (d Direction) String() string {
	if d == OneForZero {
		return "token1->token0"
	}
	return "token0->token1"
}

// q128 is 2^128 as a float.
var q128 = new(big.Float).SetInt(new(big.Int).Lsh(big.NewInt(1), 128))

// PriceFromSqrtRatio converts a Q64.128 square-root price into a human-unit
// rate in the given direction. The float64 division loses precision for
// very large ratios; callers reject non-finite or epsilon-scale results.
func PriceFromSqrtRatio(sqrtRatio *big.Int, decimals0, decimals1 uint8, dir Direction) float64 {
	if sqrtRatio == nil {
		return math.NaN()
	}
	sqrtPrice, _ := new(big.Float).Quo(new(big.Float).SetInt(sqrtRatio), q128).Float64()
	return adjust(sqrtPrice*sqrtPrice, decimals0, decimals1, dir)
}

// PriceFromTick converts a tick into a human-unit rate. Ticks beyond
// MaxSafeTick and non-finite results return ErrPriceUnreliable.
func PriceFromTick(tick int64, decimals0, decimals1 uint8, dir Direction) (float64, error) {
	if tick > MaxSafeTick || tick < -MaxSafeTick {
		return 0, ErrPriceUnreliable
	}
	raw := math.Pow(1.0001, float64(tick))
	if math.IsInf(raw, 0) || math.IsNaN(raw) {
		return 0, ErrPriceUnreliable
	}
	price := adjust(raw, decimals0, decimals1, dir)
	if math.IsInf(price, 0) || math.IsNaN(price) {
		return 0, ErrPriceUnreliable
	}
	return price, nil
}

func adjust(raw float64, decimals0, decimals1 uint8, dir Direction) float64 {
	price := raw * math.Pow10(int(decimals0)-int(decimals1))
	if dir == OneForZero {
		price = 1 / price
	}
	return price
}

// Usable reports whether a computed price can be used for quoting.
func Usable(price float64) bool {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return false
	}
	return price >= epsilon
}

// epsilon is float64 machine epsilon.
const epsilon = 0x1p-52
