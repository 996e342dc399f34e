package chain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"swapScope/internal/model"
)

var (
	mask128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	mask250 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 250), big.NewInt(1))
)

// Felt encodes a non-negative integer as a 0x hex field element.
func Felt(v *big.Int) string {
	if v == nil {
		return "0x0"
	}
	return hexutil.EncodeBig(v)
}

// ParseFelt parses a hex or decimal field element. Leading zeros are allowed.
func ParseFelt(s string) (*big.Int, error) {
	v, ok := model.ParseInteger(s)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("invalid felt %q", s)
	}
	return v, nil
}

// SplitU256 returns the low and high 128-bit limbs as felts, the Cairo u256 layout.
func SplitU256(v *big.Int) (string, string) {
	if v == nil {
		v = new(big.Int)
	}
	low := new(big.Int).And(v, mask128)
	high := new(big.Int).Rsh(v, 128)
	return Felt(low), Felt(high)
}

// JoinU256 rebuilds a u256 from its low and high limbs.
func JoinU256(low, high string) (*big.Int, error) {
	lo, err := ParseFelt(low)
	if err != nil {
		return nil, fmt.Errorf("u256 low: %w", err)
	}
	hi, err := ParseFelt(high)
	if err != nil {
		return nil, fmt.Errorf("u256 high: %w", err)
	}
	return new(big.Int).Add(lo, new(big.Int).Lsh(hi, 128)), nil
}

// Selector computes the Starknet entry point selector: keccak256 of the
// function name truncated to 250 bits.
func Selector(name string) string {
	digest := new(big.Int).SetBytes(crypto.Keccak256([]byte(name)))
	return Felt(digest.And(digest, mask250))
}
