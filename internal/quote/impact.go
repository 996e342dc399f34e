package quote

import (
	"math/big"

	"swapScope/internal/amount"
)

// MaxImpact is the cap on price impact, in percent.
const MaxImpact = 100.0

// capRatio is MaxImpact expressed in the integer ratio's units.
var capRatio = big.NewInt(1_000_000)

// PriceImpact estimates the percentage of pool liquidity an input consumes:
// min(100, (amountIn_base*10000/liquidity)/100). Empty pools and inputs that
// cannot be encoded report the full 100%.
func PriceImpact(amountIn string, liquidity *big.Int, decimals uint8) float64 {
	if liquidity == nil || liquidity.Sign() <= 0 {
		return MaxImpact
	}
	encoded := amount.Encode(amountIn, decimals)
	if !encoded.Valid {
		return MaxImpact
	}
	base, ok := new(big.Int).SetString(encoded.Amount, 10)
	if !ok {
		return MaxImpact
	}

	ratio := new(big.Int).Mul(base, big.NewInt(10000))
	ratio.Quo(ratio, liquidity)
	if ratio.Cmp(capRatio) >= 0 {
		return MaxImpact
	}
	impact := float64(ratio.Int64()) / 100
	if impact > MaxImpact {
		return MaxImpact
	}
	return impact
}
