package quote

import "errors"

var (
	// ErrNoPoolFound means no pool in the set trades the requested pair.
	ErrNoPoolFound = errors.New("no pool found")
	// ErrQuoteUnavailable means neither price path nor the degraded rate produced a price.
	ErrQuoteUnavailable = errors.New("quote unavailable")
	ErrTokenNotInPool   = errors.New("token not in pool")
	ErrInvalidAmount    = errors.New("invalid input amount")
)
