package amount

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// MaxI129Magnitude is 2^128-1, the largest magnitude an i129 can carry.
var MaxI129Magnitude = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// ValidateU256 reports whether v fits an unsigned 256-bit word.
func ValidateU256(v *big.Int) error {
	if v == nil {
		return ErrInvalidFormat
	}
	if v.Sign() < 0 {
		return ErrNegativeAmount
	}
	if _, overflow := uint256.FromBig(v); overflow {
		return ErrExceedsU256Max
	}
	return nil
}

// ValidateI129 checks v against the i129 magnitude ceiling. label names the
// call field in the error so rejections can be traced to a payload slot.
func ValidateI129(v *big.Int, label string) error {
	if v == nil {
		return fmt.Errorf("%s: %w", label, ErrInvalidFormat)
	}
	if v.Sign() < 0 {
		return fmt.Errorf("%s %s: %w", label, v.String(), ErrNegativeAmount)
	}
	if v.BitLen() > 128 {
		return fmt.Errorf("%s value %s exceeds max %s: %w", label, v.String(), MaxI129Magnitude.String(), ErrExceedsI129Magnitude)
	}
	return nil
}
