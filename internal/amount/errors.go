package amount

import "errors"

var (
	// ErrInvalidFormat marks a string that is not an unsigned decimal.
	ErrInvalidFormat = errors.New("invalid amount format")
	// ErrAmountTooLarge marks a whole part longer than MaxWholeDigits.
	ErrAmountTooLarge = errors.New("amount too large")
	ErrNegativeAmount = errors.New("negative amount")
	ErrExceedsU256Max = errors.New("amount exceeds u256 max")
	// ErrExceedsI129Magnitude marks a value that does not fit the 128-bit magnitude of an i129.
	ErrExceedsI129Magnitude = errors.New("amount exceeds i129 magnitude")
)
