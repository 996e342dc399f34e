package token

import (
	"context"
	"math/big"
	"sort"
	"strings"

	"swapScope/internal/model"
)

// Listing is a token with the liquidity summed across the pools it appears in.
type Listing struct {
	Token     model.TokenMeta `json:"token"`
	Liquidity *big.Int        `json:"liquidity"`
}

// Pair is a tradable symbol pair backed by a pool.
type Pair struct {
	TokenIn  string     `json:"token_in"`
	TokenOut string     `json:"token_out"`
	Pool     model.Pool `json:"pool"`
}

// Catalog answers token listing questions over a pool set.
type Catalog struct {
	resolver *Resolver
}

func NewCatalog(resolver *Resolver) *Catalog {
	if resolver == nil {
		resolver = NewResolver(nil, nil, nil, nil)
	}
	return &Catalog{resolver: resolver}
}

// Top lists registered tokens present in the pools, most liquid first.
func (c *Catalog) Top(pools []model.Pool, limit int) []Listing {
	registry := c.resolver.Registry()
	liquidity := sumLiquidity(pools)

	listings := make([]Listing, 0)
	seen := make(map[string]bool)
	for _, pool := range pools {
		for _, addr := range []string{pool.Token0, pool.Token1} {
			key := Canonical(addr)
			if seen[key] {
				continue
			}
			meta, ok := registry.Lookup(addr)
			if !ok {
				continue
			}
			seen[key] = true
			listings = append(listings, Listing{Token: meta, Liquidity: liquidity[key]})
		}
	}

	sortByLiquidity(listings)
	return truncate(listings, limit)
}

// Paired lists tokens sharing a pool with from. Registered tokens come first.
func (c *Catalog) Paired(ctx context.Context, pools []model.Pool, from string, limit int) []Listing {
	registry := c.resolver.Registry()
	liquidity := make(map[string]*big.Int)
	keyHashes := make(map[string]string)
	order := make([]string, 0)

	for _, pool := range pools {
		var other string
		switch {
		case SameAddress(pool.Token0, from):
			other = pool.Token1
		case SameAddress(pool.Token1, from):
			other = pool.Token0
		default:
			continue
		}
		key := Canonical(other)
		if _, ok := liquidity[key]; !ok {
			liquidity[key] = new(big.Int)
			keyHashes[key] = pool.KeyHash
			order = append(order, other)
		}
		liquidity[key].Add(liquidity[key], pool.LiquidityInt())
	}

	listings := make([]Listing, 0, len(order))
	for _, addr := range order {
		key := Canonical(addr)
		meta := c.resolver.Describe(ctx, addr, keyHashes[key])
		listings = append(listings, Listing{Token: meta, Liquidity: liquidity[key]})
	}

	sort.SliceStable(listings, func(i, j int) bool {
		ki, kj := registry.Known(listings[i].Token.Address), registry.Known(listings[j].Token.Address)
		if ki != kj {
			return ki
		}
		return listings[i].Liquidity.Cmp(listings[j].Liquidity) > 0
	})
	return truncate(listings, limit)
}

// Search matches query against symbol, name and address. Exact symbol
// matches rank first, then symbol prefixes, then liquidity.
func (c *Catalog) Search(pools []model.Pool, query string, limit int) []Listing {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Top(pools, limit)
	}

	liquidity := sumLiquidity(pools)
	seen := make(map[string]bool)
	matches := make([]Listing, 0)
	for _, pool := range pools {
		for _, addr := range []string{pool.Token0, pool.Token1} {
			key := Canonical(addr)
			if seen[key] {
				continue
			}
			seen[key] = true
			meta := c.resolver.Describe(context.Background(), addr, "")
			if !matchesQuery(meta, q) {
				continue
			}
			matches = append(matches, Listing{Token: meta, Liquidity: liquidity[key]})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		ri, rj := relevance(matches[i].Token, q), relevance(matches[j].Token, q)
		if ri != rj {
			return ri < rj
		}
		return matches[i].Liquidity.Cmp(matches[j].Liquidity) > 0
	})
	return truncate(matches, limit)
}

// Pairs lists registered symbol pairs in both directions.
func (c *Catalog) Pairs(pools []model.Pool) []Pair {
	registry := c.resolver.Registry()
	pairs := make([]Pair, 0)
	for _, pool := range pools {
		m0, ok0 := registry.Lookup(pool.Token0)
		m1, ok1 := registry.Lookup(pool.Token1)
		if !ok0 || !ok1 {
			continue
		}
		pairs = append(pairs,
			Pair{TokenIn: m0.Symbol, TokenOut: m1.Symbol, Pool: pool},
			Pair{TokenIn: m1.Symbol, TokenOut: m0.Symbol, Pool: pool},
		)
	}
	return pairs
}

func matchesQuery(meta model.TokenMeta, q string) bool {
	return strings.Contains(strings.ToLower(meta.Symbol), q) ||
		strings.Contains(strings.ToLower(meta.Name), q) ||
		strings.Contains(strings.ToLower(meta.Address), q)
}

func relevance(meta model.TokenMeta, q string) int {
	symbol := strings.ToLower(meta.Symbol)
	switch {
	case symbol == q:
		return 0
	case strings.HasPrefix(symbol, q):
		return 1
	default:
		return 2
	}
}

func sumLiquidity(pools []model.Pool) map[string]*big.Int {
	totals := make(map[string]*big.Int)
	for _, pool := range pools {
		liq := pool.LiquidityInt()
		for _, addr := range []string{pool.Token0, pool.Token1} {
			key := Canonical(addr)
			if _, ok := totals[key]; !ok {
				totals[key] = new(big.Int)
			}
			totals[key].Add(totals[key], liq)
		}
	}
	return totals
}

func sortByLiquidity(listings []Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].Liquidity.Cmp(listings[j].Liquidity) > 0
	})
}

func truncate(listings []Listing, limit int) []Listing {
	if limit > 0 && len(listings) > limit {
		return listings[:limit]
	}
	return listings
}
