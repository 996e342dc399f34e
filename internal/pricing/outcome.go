package pricing

import (
	"fmt"
	"math/big"
)

// Status tags how a price was obtained.
type Status int

const (
	StatusOK Status = iota
	StatusDegraded
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDegraded:
		return "degraded"
	default:
		return "unavailable"
	}
}

// Source names the path that produced a price.
type Source string

const (
	SourceTick      Source = "tick"
	SourceSqrtRatio Source = "sqrt_ratio"
	SourceFallback  Source = "fallback"
	SourceNone      Source = ""
)

// Input carries everything Resolve needs from a pool snapshot.
type Input struct {
	Tick      int64
	SqrtRatio *big.Int
	Decimals0 uint8
	Decimals1 uint8
	Direction Direction
	// FallbackRate is the degraded-mode rate. Zero disables it.
	FallbackRate float64
}

// Outcome is the tagged result of price resolution.
type Outcome struct {
	Status Status
	Source Source
	Price  float64
	Reason string
}

// OK reports whether the price came from pool state.
func (o Outcome) OK() bool { return o.Status == StatusOK }

// Resolve prefers the tick price, falls back to the sqrt ratio, and as a last
// resort returns the configured fallback rate tagged as degraded.
func Resolve(in Input) Outcome {
	tickPrice, err := PriceFromTick(in.Tick, in.Decimals0, in.Decimals1, in.Direction)
	if err == nil && Usable(tickPrice) {
		return Outcome{Status: StatusOK, Source: SourceTick, Price: tickPrice}
	}

	sqrtPrice := PriceFromSqrtRatio(in.SqrtRatio, in.Decimals0, in.Decimals1, in.Direction)
	if Usable(sqrtPrice) {
		reason := ""
		if err != nil {
			reason = fmt.Sprintf("tick %d: %v", in.Tick, err)
		} else {
			reason = fmt.Sprintf("tick price %g unusable", tickPrice)
		}
		return Outcome{Status: StatusOK, Source: SourceSqrtRatio, Price: sqrtPrice, Reason: reason}
	}

	reason := fmt.Sprintf("tick %d and sqrt ratio %v produced no usable price", in.Tick, in.SqrtRatio)
	return Degrade(in.FallbackRate, reason)
}

// Degrade builds a degraded outcome from a fallback rate, or Unavailable when the rate is not usable.
func Degrade(rate float64, reason string) Outcome {
	if !Usable(rate) {
		return Outcome{Status: StatusUnavailable, Source: SourceNone, Reason: reason}
	}
	return Outcome{Status: StatusDegraded, Source: SourceFallback, Price: rate, Reason: reason}
}
