package swap

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultMaxAttempts bounds swap submissions per request.
const DefaultMaxAttempts = 3

var (
	// ErrSubtractionOverflow is the pool contract's u256_sub overflow rejection.
	ErrSubtractionOverflow = errors.New("u256_sub Overflow")
	ErrRetriesExhausted    = errors.New("amount overflow: insufficient pool liquidity for this swap")
	ErrInsufficientFunds   = errors.New("insufficient balance or allowance for this swap")
	ErrSlippageExceeded    = errors.New("slippage tolerance exceeded")
	ErrExecution           = errors.New("contract execution failed")
)

// Kind is the outcome of one submission attempt.
type Kind int

const (
	Success Kind = iota
	OverflowRetry
	Fatal
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case OverflowRetry:
		return "overflow_retry"
	default:
		return "fatal"
	}
}

// Transition tells the submitter what to do after an attempt. For
// OverflowRetry, Attempt is the number of the next attempt, which must be
// made with a zero minimum output.
type Transition struct {
	Kind    Kind
	Attempt int
	Err     error
}

// Machine is the overflow retry policy.
type Machine struct {
	MaxAttempts int
}

// Next classifies the result of attempt (1-based).
func (m Machine) Next(attempt int, err error) Transition {
	if err == nil {
		return Transition{Kind: Success, Attempt: attempt}
	}

	limit := m.MaxAttempts
	if limit <= 0 {
		limit = DefaultMaxAttempts
	}

	switch {
	case IsOverflow(err):
		if attempt < limit {
			return Transition{Kind: OverflowRetry, Attempt: attempt + 1, Err: err}
		}
		return Transition{Kind: Fatal, Attempt: attempt, Err: fmt.Errorf("%w: %w", ErrRetriesExhausted, err)}
	case strings.Contains(err.Error(), "Insufficient"):
		return Transition{Kind: Fatal, Attempt: attempt, Err: fmt.Errorf("%w: %w", ErrInsufficientFunds, err)}
	case strings.Contains(err.Error(), "slippage"):
		return Transition{Kind: Fatal, Attempt: attempt, Err: fmt.Errorf("%w: %w", ErrSlippageExceeded, err)}
	default:
		return Transition{Kind: Fatal, Attempt: attempt, Err: fmt.Errorf("%w: %w", ErrExecution, err)}
	}
}

// IsOverflow reports whether err is the contract's subtraction overflow.
func IsOverflow(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrSubtractionOverflow) || strings.Contains(err.Error(), ErrSubtractionOverflow.Error())
}
