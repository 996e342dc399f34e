package swap

import (
	"fmt"
	"math/big"

	"swapScope/internal/amount"
	"swapScope/internal/chain"
	"swapScope/internal/model"
)

// MaxReasonableAmount is 10^36, the sanity ceiling on call amounts.
var MaxReasonableAmount = new(big.Int).Exp(big.NewInt(10), big.NewInt(36), nil)

// Call is a swap_exact_input invocation.
type Call struct {
	Contract     string        `json:"contract"`
	PoolKey      model.PoolKey `json:"pool_key"`
	TokenIn      string        `json:"token_in"`
	TokenOut     string        `json:"token_out"`
	AmountIn     *big.Int      `json:"amount_in"`
	MinAmountOut *big.Int      `json:"min_amount_out"`
	Recipient    string        `json:"recipient"`
}

// WithMinimum returns a copy of the call with a different minimum output.
func (c Call) WithMinimum(minOut *big.Int) Call {
	c.MinAmountOut = new(big.Int).Set(minOut)
	return c
}

// Validate applies the sanity bounds and i129 magnitude checks required
// before the call is sent to the pool contract.
func (c Call) Validate() error {
	if c.AmountIn == nil || c.AmountIn.Sign() <= 0 {
		return fmt.Errorf("input amount must be greater than zero")
	}
	if c.MinAmountOut == nil || c.MinAmountOut.Sign() < 0 {
		return fmt.Errorf("minimum output amount cannot be negative")
	}
	if c.AmountIn.Cmp(MaxReasonableAmount) > 0 {
		return fmt.Errorf("input amount %s is unreasonably large", c.AmountIn)
	}
	if c.MinAmountOut.Cmp(MaxReasonableAmount) > 0 {
		return fmt.Errorf("minimum output amount %s is unreasonably large", c.MinAmountOut)
	}
	if err := amount.ValidateI129(c.AmountIn, "input amount"); err != nil {
		return err
	}
	if err := amount.ValidateI129(c.MinAmountOut, "minimum output amount"); err != nil {
		return err
	}
	fee, err := amount.ParseBaseUnits(c.PoolKey.Fee)
	if err != nil {
		return fmt.Errorf("pool fee: %w", err)
	}
	return amount.ValidateI129(fee, "pool fee")
}

// Calldata serializes the call as felts: pool key, token in, token out,
// amount in (u256), minimum out (u256), recipient.
func (c Call) Calldata() ([]string, error) {
	fee, err := amount.ParseBaseUnits(c.PoolKey.Fee)
	if err != nil {
		return nil, fmt.Errorf("pool fee: %w", err)
	}
	amountLow, amountHigh := chain.SplitU256(c.AmountIn)
	minLow, minHigh := chain.SplitU256(c.MinAmountOut)
	return []string{
		c.PoolKey.Token0,
		c.PoolKey.Token1,
		chain.Felt(fee),
		chain.Felt(big.NewInt(c.PoolKey.TickSpacing)),
		c.PoolKey.Extension,
		c.TokenIn,
		c.TokenOut,
		amountLow, amountHigh,
		minLow, minHigh,
		c.Recipient,
	}, nil
}
