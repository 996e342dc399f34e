package quote

import (
	"fmt"
	"sort"

	"swapScope/internal/model"
	"swapScope/internal/token"
)

// FindBestPool returns the most liquid pool trading tokenIn against tokenOut
// in either order. Equal liquidity keeps the input order.
func FindBestPool(pools []model.Pool, tokenIn, tokenOut string) (model.Pool, error) {
	in, out := token.Canonical(tokenIn), token.Canonical(tokenOut)

	matches := make([]model.Pool, 0)
	for _, pool := range pools {
		t0, t1 := token.Canonical(pool.Token0), token.Canonical(pool.Token1)
		if (t0 == in && t1 == out) || (t0 == out && t1 == in) {
			matches = append(matches, pool)
		}
	}
	if len(matches) == 0 {
		return model.Pool{}, fmt.Errorf("%s -> %s: %w", tokenIn, tokenOut, ErrNoPoolFound)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].LiquidityInt().Cmp(matches[j].LiquidityInt()) > 0
	})
	return matches[0], nil
}
