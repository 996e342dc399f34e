package fiat

import (
	"fmt"
	"math/big"

	"swapScope/internal/chain"
)

// MaxShortStringBytes is the number of bytes a felt252 short string can hold.
const MaxShortStringBytes = 31

// StringToFelt packs the first 31 bytes of s big-endian into a felt.
func StringToFelt(s string) string {
	b := []byte(s)
	if len(b) > MaxShortStringBytes {
		b = b[:MaxShortStringBytes]
	}
	return chain.Felt(new(big.Int).SetBytes(b))
}

// FeltToString unpacks a short-string felt.
func FeltToString(felt string) (string, error) {
	v, err := chain.ParseFelt(felt)
	if err != nil {
		return "", fmt.Errorf("decode short string: %w", err)
	}
	return string(v.Bytes()), nil
}
