package swap

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"swapScope/internal/amount"
)

const (
	// SlippageTolerance is the share of the quote the minimum output gives up.
	// Minimums close to the quote trip u256_sub overflows in the pool
	// contract, so the floor deliberately under-protects the user.
	SlippageTolerance = 0.90
	// MinMeaningful is the smallest output treated as non-zero.
	MinMeaningful = 1e-6
)

// Plan is a planned minimum output for a swap.
type Plan struct {
	Quote     float64 `json:"quote"`
	Floor     float64 `json:"floor"`
	Effective float64 `json:"effective"`
	// MinOut is Effective in output-token base units.
	MinOut string `json:"min_out"`
}

// PlanMinimumOutput derives the minimum acceptable output for a swap:
//  1. quotes that are unparsable, non-positive or below MinMeaningful allow any output
//  2. otherwise the floor is quote*(1-SlippageTolerance)
//  3. a lower user minimum wins over the floor, a higher one never does
//  4. minimums below MinMeaningful become 0
func PlanMinimumOutput(quoteAmountOut, userMinOut string, outputDecimals uint8) (Plan, error) {
	var plan Plan

	quote, err := strconv.ParseFloat(strings.TrimSpace(quoteAmountOut), 64)
	if err == nil && !math.IsNaN(quote) && !math.IsInf(quote, 0) && quote >= MinMeaningful {
		plan.Quote = quote
		plan.Floor = quote * (1 - SlippageTolerance)
		plan.Effective = plan.Floor

		user, err := strconv.ParseFloat(strings.TrimSpace(userMinOut), 64)
		if err == nil && user < plan.Effective {
			plan.Effective = user
		}
		if plan.Effective < MinMeaningful {
			plan.Effective = 0
		}
	}

	encoded := amount.Encode(strconv.FormatFloat(plan.Effective, 'f', -1, 64), outputDecimals)
	if !encoded.Valid {
		return Plan{}, fmt.Errorf("encode minimum output %g: %w", plan.Effective, encoded.Err)
	}
	plan.MinOut = encoded.Amount
	return plan, nil
}

// MinOutInt returns MinOut as an integer.
func (p Plan) MinOutInt() *big.Int {
	v, ok := new(big.Int).SetString(p.MinOut, 10)
	if !ok {
		return new(big.Int)
	}
	return v
}

// WithZeroMinimum returns the plan with its minimum forced to 0.
func (p Plan) WithZeroMinimum() Plan {
	p.Effective = 0
	p.MinOut = "0"
	return p
}

// ExceedsHalfQuote reports whether the planned minimum is more than half of
// the quote in base units. Such plans are submitted with a zero minimum.
func (p Plan) ExceedsHalfQuote(quoteAmountOut string, decimals uint8) bool {
	half := new(big.Int).Rsh(QuoteBaseUnits(quoteAmountOut, decimals), 1)
	return p.MinOutInt().Cmp(half) > 0
}

// QuoteBaseUnits is floor(quote * 10^decimals). Unparsable quotes count as 0.
func QuoteBaseUnits(quoteAmountOut string, decimals uint8) *big.Int {
	quote, err := strconv.ParseFloat(strings.TrimSpace(quoteAmountOut), 64)
	if err != nil || math.IsNaN(quote) || math.IsInf(quote, 0) || quote <= 0 {
		return new(big.Int)
	}
	scaled := new(big.Float).SetPrec(512).Mul(big.NewFloat(quote), new(big.Float).SetInt(amount.Pow10(decimals)))
	out, _ := scaled.Int(nil)
	return out
}
