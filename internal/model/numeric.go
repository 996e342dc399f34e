package model

import (
	"math/big"
	"strings"
)

// ParseInteger parses a 0x-prefixed hex or plain decimal integer. Leading
// zeros are decimal, not octal; underscores and other Go literal prefixes
// are rejected. Only decimal input may carry a leading minus sign.
func ParseInteger(s string) (*big.Int, bool) {
	input := strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(input, "0x") || strings.HasPrefix(input, "0X") {
		input = input[2:]
		base = 16
	} else if strings.HasPrefix(input, "-") {
		v, ok := parseDigits(input[1:], base)
		if !ok {
			return nil, false
		}
		return v.Neg(v), true
	}
	return parseDigits(input, base)
}

func parseDigits(digits string, base int) (*big.Int, bool) {
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return nil, false
	}
	return new(big.Int).SetString(digits, base)
}
