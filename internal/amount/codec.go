package amount

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"swapScope/internal/model"
)

// MaxWholeDigits bounds the whole-number part before big integer conversion.
const MaxWholeDigits = 15

var decimalPattern = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)$`)

// Validation is the result of encoding a decimal string. Err holds one of
// the package sentinels when Valid is false.
type Validation struct {
	Valid  bool
	Amount string
	Err    error
}

// Encode converts a human decimal string into base units for the given precision.
// Fractional digits beyond decimals are dropped, not rounded.
func Encode(amount string, decimals uint8) Validation {
	input := strings.TrimSpace(amount)
	if input == "" || !decimalPattern.MatchString(input) {
		return invalid(ErrInvalidFormat)
	}

	whole, frac, _ := strings.Cut(input, ".")
	if whole == "" {
		whole = "0"
	}
	if len(whole) > MaxWholeDigits {
		return invalid(ErrAmountTooLarge)
	}

	width := int(decimals)
	if len(frac) > width {
		frac = frac[:width]
	} else {
		frac += strings.Repeat("0", width-len(frac))
	}

	value, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return invalid(ErrInvalidFormat)
	}
	if value.Sign() < 0 {
		return invalid(ErrNegativeAmount)
	}
	if err := ValidateU256(value); err != nil {
		return invalid(err)
	}

	return Validation{Valid: true, Amount: value.String()}
}

func invalid(err error) Validation {
	return Validation{Err: err}
}

// Decode renders base units as a decimal string with trailing fractional zeros trimmed.
func Decode(baseUnits *big.Int, decimals uint8) string {
	if baseUnits == nil {
		return "0"
	}

	sign := ""
	value := new(big.Int).Set(baseUnits)
	if value.Sign() < 0 {
		sign = "-"
		value.Neg(value)
	}

	divisor := Pow10(decimals)
	whole, rem := new(big.Int).QuoRem(value, divisor, new(big.Int))
	if rem.Sign() == 0 {
		return sign + whole.String()
	}

	frac := rem.String()
	if pad := int(decimals) - len(frac); pad > 0 {
		frac = strings.Repeat("0", pad) + frac
	}
	frac = strings.TrimRight(frac, "0")

	return sign + whole.String() + "." + frac
}

// DecodeString parses an integer string and decodes it.
func DecodeString(baseUnits string, decimals uint8) (string, error) {
	value, err := ParseBaseUnits(baseUnits)
	if err != nil {
		return "", err
	}
	return Decode(value, decimals), nil
}

// ParseBaseUnits accepts decimal or 0x-prefixed hex integers. Zero-padded
// input is read as decimal.
func ParseBaseUnits(s string) (*big.Int, error) {
	value, ok := model.ParseInteger(s)
	if !ok {
		return nil, fmt.Errorf("parse base units %q: %w", s, ErrInvalidFormat)
	}
	return value, nil
}

// Pow10 returns 10^decimals.
func Pow10(decimals uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
}
