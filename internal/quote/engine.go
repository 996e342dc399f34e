package quote

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"swapScope/internal/amount"
	"swapScope/internal/model"
	"swapScope/internal/pricing"
	"swapScope/internal/token"
)

// MinOutput is the smallest output treated as a real quote.
const MinOutput = 1e-6

// DefaultFallbackPrice is the degraded-mode rate, an ETH/USDC approximation.
const DefaultFallbackPrice = 1800.0

// Legs carries the resolved decimals of a pool's token0 and token1.
type Legs struct {
	Decimals0 uint8
	Decimals1 uint8
}

// Engine turns a pool snapshot and an input amount into a quote. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	fallbackPrice float64
	logger        *zap.Logger
}

// NewEngine creates an engine. fallbackPrice of zero disables degraded quotes.
func NewEngine(fallbackPrice float64, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{fallbackPrice: fallbackPrice, logger: logger}
}

// Quote prices amountIn of tokenIn against pool. amountIn must be a plain
// decimal that encodes at the input token's decimals.
func (e *Engine) Quote(pool model.Pool, tokenIn, tokenOut, amountIn string, legs Legs) (model.Quote, error) {
	var dir pricing.Direction
	switch {
	case token.SameAddress(tokenIn, pool.Token0):
		dir = pricing.ZeroForOne
	case token.SameAddress(tokenIn, pool.Token1):
		dir = pricing.OneForZero
	default:
		return model.Quote{}, fmt.Errorf("token %s in pool %s: %w", tokenIn, pool.KeyHash, ErrTokenNotInPool)
	}

	inDecimals, outDecimals := legs.Decimals0, legs.Decimals1
	if dir == pricing.OneForZero {
		inDecimals, outDecimals = legs.Decimals1, legs.Decimals0
	}

	if v := amount.Encode(amountIn, inDecimals); !v.Valid {
		return model.Quote{}, fmt.Errorf("amount %q: %w: %w", amountIn, ErrInvalidAmount, v.Err)
	}
	amountInF, err := strconv.ParseFloat(strings.TrimSpace(amountIn), 64)
	if err != nil {
		return model.Quote{}, fmt.Errorf("amount %q: %w", amountIn, ErrInvalidAmount)
	}

	sqrtRatio, _ := pool.SqrtRatioInt()
	outcome := pricing.Resolve(pricing.Input{
		Tick:         pool.Tick,
		SqrtRatio:    sqrtRatio,
		Decimals0:    legs.Decimals0,
		Decimals1:    legs.Decimals1,
		Direction:    dir,
		FallbackRate: e.fallbackPrice,
	})
	if outcome.Source == pricing.SourceSqrtRatio {
		e.logger.Debug("tick price unusable, using sqrt ratio",
			zap.String("pool", pool.KeyHash),
			zap.Int64("tick", pool.Tick),
			zap.String("reason", outcome.Reason),
		)
	}

	amountOut := amountInF * outcome.Price
	if outcome.OK() && amountOut < MinOutput {
		outcome = pricing.Degrade(e.fallbackPrice, fmt.Sprintf("output %g below %g", amountOut, MinOutput))
		amountOut = amountInF * outcome.Price
	}

	switch outcome.Status {
	case pricing.StatusUnavailable:
		return model.Quote{}, fmt.Errorf("price %s -> %s: %s: %w", tokenIn, tokenOut, outcome.Reason, ErrQuoteUnavailable)
	case pricing.StatusDegraded:
		e.logger.Error("degraded quote",
			zap.String("pool", pool.KeyHash),
			zap.String("token_in", tokenIn),
			zap.String("token_out", tokenOut),
			zap.Float64("fallback_price", outcome.Price),
			zap.String("reason", outcome.Reason),
		)
	}

	if math.IsInf(amountOut, 0) || math.IsNaN(amountOut) {
		return model.Quote{}, fmt.Errorf("output for %s %s is not finite: %w", amountIn, tokenIn, ErrQuoteUnavailable)
	}

	return model.Quote{
		AmountOut:        FormatAmount(amountOut, outDecimals),
		PriceImpact:      PriceImpact(amountIn, pool.LiquidityInt(), inDecimals),
		PoolKey:          pool.Key(),
		TokenInDecimals:  inDecimals,
		TokenOutDecimals: outDecimals,
		Price:            outcome.Price,
		PriceSource:      string(outcome.Source),
		Degraded:         outcome.Status == pricing.StatusDegraded,
		DegradedReason:   degradedReason(outcome),
	}, nil
}

// FormatAmount rounds an output to min(decimals, 6) places for tokens with at
// most 8 decimals and to 8 places otherwise, without trailing zeros.
func FormatAmount(value float64, decimals uint8) string {
	places := int32(8)
	if decimals <= 8 {
		places = int32(min(decimals, 6))
	}
	return decimal.NewFromFloat(value).Round(places).String()
}

func degradedReason(o pricing.Outcome) string {
	if o.Status != pricing.StatusDegraded {
		return ""
	}
	return o.Reason
}
