package token

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"swapScope/internal/model"
)

// DefaultDecimals is assumed for tokens nothing else can describe.
const DefaultDecimals uint8 = 18

// ErrUnknownToken is returned when a symbol is not in the registry.
var ErrUnknownToken = errors.New("unknown token")

// Canonical normalizes an address for comparison: lowercase, no leading zero
// nibbles after the 0x prefix. "0x049d..." and "0x49d..." are the same token.
func Canonical(address string) string {
	addr := strings.ToLower(strings.TrimSpace(address))
	addr = strings.TrimPrefix(addr, "0x")
	addr = strings.TrimLeft(addr, "0")
	if addr == "" {
		return "0x0"
	}
	return "0x" + addr
}

// SameAddress reports whether two addresses refer to the same token.
func SameAddress(a, b string) bool {
	return Canonical(a) == Canonical(b)
}

// Registry is a static address to descriptor table keyed by canonical address.
type Registry struct {
	byAddress map[string]model.TokenMeta
	bySymbol  map[string]model.TokenMeta
	order     []string
}

// NewRegistry builds a registry. When two entries share a symbol the first
// one owns symbol lookups and later ones act as address aliases.
func NewRegistry(tokens ...model.TokenMeta) *Registry {
	r := &Registry{
		byAddress: make(map[string]model.TokenMeta, len(tokens)),
		bySymbol:  make(map[string]model.TokenMeta, len(tokens)),
	}
	for _, meta := range tokens {
		r.Add(meta)
	}
	return r
}

// Add registers a token. Existing addresses are overwritten.
func (r *Registry) Add(meta model.TokenMeta) {
	key := Canonical(meta.Address)
	if _, ok := r.byAddress[key]; !ok {
		r.order = append(r.order, key)
	}
	meta.Unknown = false
	r.byAddress[key] = meta

	symbol := strings.ToUpper(meta.Symbol)
	if _, ok := r.bySymbol[symbol]; !ok && symbol != "" {
		r.bySymbol[symbol] = meta
	}
}

// Lookup returns the registered descriptor for an address.
func (r *Registry) Lookup(address string) (model.TokenMeta, bool) {
	meta, ok := r.byAddress[Canonical(address)]
	return meta, ok
}

// Describe always returns a descriptor, synthesizing a placeholder for unregistered addresses.
func (r *Registry) Describe(address string) model.TokenMeta {
	if meta, ok := r.Lookup(address); ok {
		return meta
	}
	return Placeholder(address)
}

// Placeholder is the descriptor used for tokens no source could describe.
func Placeholder(address string) model.TokenMeta {
	canonical := strings.TrimPrefix(Canonical(address), "0x")
	suffix := canonical
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return model.TokenMeta{
		Address:  address,
		Symbol:   "T" + strings.ToUpper(suffix),
		Name:     "Unknown Token",
		Decimals: DefaultDecimals,
		Unknown:  true,
	}
}

// Known reports whether the address is registered.
func (r *Registry) Known(address string) bool {
	_, ok := r.Lookup(address)
	return ok
}

// ResolveAddress accepts a symbol or an address. Addresses pass through unchanged.
func (r *Registry) ResolveAddress(symbolOrAddress string) (string, error) {
	input := strings.TrimSpace(symbolOrAddress)
	if strings.HasPrefix(strings.ToLower(input), "0x") {
		return input, nil
	}
	meta, ok := r.bySymbol[strings.ToUpper(input)]
	if !ok {
		return "", fmt.Errorf("resolve %q: %w", symbolOrAddress, ErrUnknownToken)
	}
	return meta.Address, nil
}

// Symbol returns the registered symbol, or the address itself when unknown.
func (r *Registry) Symbol(address string) string {
	if meta, ok := r.Lookup(address); ok {
		return meta.Symbol
	}
	return address
}

// Tokens lists registered tokens, one per symbol, ordered by symbol.
func (r *Registry) Tokens() []model.TokenMeta {
	out := make([]model.TokenMeta, 0, len(r.bySymbol))
	for _, meta := range r.bySymbol {
		out = append(out, meta)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Starknet Sepolia tokens traded on the Ekubo pools API.
var sepoliaTokens = []model.TokenMeta{
	{
		Address:  "0x049d36570d4e46f48e99674bd3fcc84644ddd6b96f7c741b1562b82f9e004dc7",
		Symbol:   "ETH",
		Name:     "Ether",
		Decimals: 18,
		LogoURL:  "https://tokens.1inch.io/0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee.png",
	},
	{
		Address:  "0x04718f5a0fc34cc1af16a1cdee98ffb20c31f5cd61d6ab07201858f4287c938d",
		Symbol:   "STRK",
		Name:     "Starknet Token",
		Decimals: 18,
		LogoURL:  "https://assets.coingecko.com/coins/images/26433/large/starknet.png",
	},
	{
		Address:  "0x053b40a647cedfca6ca84f542a0fe36736031905a9639a7f19a3c1e66bfd5080",
		Symbol:   "USDC",
		Name:     "USD Coin",
		Decimals: 6,
		LogoURL:  "https://tokens.1inch.io/0xa0b86a33e6441e6c5d09464bb72e1d70b9a4d1c8.png",
	},
	// Mainnet USDC, occasionally listed on Sepolia.
	{
		Address:  "0x053c91253bc9682c04929ca02ed00b3e423f6710d2ee7e0d5ebb06f3ecf368a8",
		Symbol:   "USDC",
		Name:     "USD Coin",
		Decimals: 6,
		LogoURL:  "https://tokens.1inch.io/0xa0b86a33e6441e6c5d09464bb72e1d70b9a4d1c8.png",
	},
	{
		Address:  "0x2ab8758891e84b968ff11361789070c6b1af2df618d6d2f4a78b0757573c6eb",
		Symbol:   "USDT",
		Name:     "Tether USD",
		Decimals: 6,
		LogoURL:  "https://tokens.1inch.io/0xdac17f958d2ee523a2206206994597c13d831ec7.png",
	},
	{
		Address:  "0x68f5c6a61780768455de69077e07e89787839bf8166decfbf92b645209c0fb8",
		Symbol:   "BTC",
		Name:     "Bitcoin",
		Decimals: 8,
		LogoURL:  "https://tokens.1inch.io/0x2260fac5e5542a773aa44fbcfedf7c193bc2c599.png",
	},
}

// DefaultRegistry returns a fresh registry preloaded with the Sepolia token table.
func DefaultRegistry() *Registry {
	return NewRegistry(sepoliaTokens...)
}

// ParseEntry parses "address=SYMBOL:decimals" as used by the token config key.
func ParseEntry(entry string) (model.TokenMeta, error) {
	address, rest, ok := strings.Cut(strings.TrimSpace(entry), "=")
	if !ok || address == "" {
		return model.TokenMeta{}, fmt.Errorf("invalid token entry %q", entry)
	}
	symbol, decimalsStr, ok := strings.Cut(rest, ":")
	if !ok || symbol == "" {
		return model.TokenMeta{}, fmt.Errorf("invalid token entry %q", entry)
	}
	decimals, err := strconv.ParseUint(strings.TrimSpace(decimalsStr), 10, 8)
	if err != nil {
		return model.TokenMeta{}, fmt.Errorf("invalid token decimals %q: %w", decimalsStr, err)
	}
	return model.TokenMeta{
		Address:  strings.TrimSpace(address),
		Symbol:   strings.ToUpper(strings.TrimSpace(symbol)),
		Name:     strings.ToUpper(strings.TrimSpace(symbol)),
		Decimals: uint8(decimals),
	}, nil
}
