package token

import (
	"context"
	"testing"

	"swapScope/internal/model"
)

func catalogPools() []model.Pool {
	return []model.Pool{
		{KeyHash: "0x1", Token0: ethAddress, Token1: usdcAddress, Liquidity: "1000"},
		{KeyHash: "0x2", Token0: strkAddress, Token1: ethAddress, Liquidity: "5000"},
		{KeyHash: "0x3", Token0: "0xfeed", Token1: ethAddress, Liquidity: "10"},
		{KeyHash: "0x4", Token0: ethAddress, Token1: usdcAddress, Liquidity: "0x10"},
	}
}

func TestCatalogTop(t *testing.T) {
	c := NewCatalog(nil)
	top := c.Top(catalogPools(), 10)

	if len(top) != 3 {
		t.Fatalf("len(top) = %d, want 3", len(top))
	}
	if top[0].Token.Symbol != "ETH" || top[0].Liquidity.String() != "6026" {
		t.Fatalf("unexpected first listing: %+v %s", top[0].Token, top[0].Liquidity)
	}
	if top[1].Token.Symbol != "STRK" || top[2].Token.Symbol != "USDC" {
		t.Fatalf("unexpected order: %s, %s", top[1].Token.Symbol, top[2].Token.Symbol)
	}

	if got := c.Top(catalogPools(), 1); len(got) != 1 {
		t.Fatalf("limit not applied: %d", len(got))
	}
}

func TestCatalogPaired(t *testing.T) {
	c := NewCatalog(nil)
	paired := c.Paired(context.Background(), catalogPools(), "0x49d36570d4e46f48e99674bd3fcc84644ddd6b96f7c741b1562b82f9e004dc7", 0)

	if len(paired) != 3 {
		t.Fatalf("len(paired) = %d, want 3", len(paired))
	}
	if paired[0].Token.Symbol != "STRK" || paired[1].Token.Symbol != "USDC" {
		t.Fatalf("unexpected order: %s, %s", paired[0].Token.Symbol, paired[1].Token.Symbol)
	}
	if paired[1].Liquidity.String() != "1016" {
		t.Fatalf("usdc liquidity = %s", paired[1].Liquidity)
	}
	if !paired[2].Token.Unknown || paired[2].Token.Symbol != "TFEED" {
		t.Fatalf("unknown token should rank last: %+v", paired[2].Token)
	}
}

func TestCatalogSearch(t *testing.T) {
	c := NewCatalog(nil)

	got := c.Search(catalogPools(), "usd", 0)
	if len(got) != 1 || got[0].Token.Symbol != "USDC" {
		t.Fatalf("search usd = %+v", got)
	}

	got = c.Search(catalogPools(), "t", 0)
	if len(got) == 0 || got[0].Token.Symbol != "TFEED" {
		t.Fatalf("prefix match should rank first: %+v", got)
	}

	got = c.Search(catalogPools(), "eth", 0)
	if got[0].Token.Symbol != "ETH" {
		t.Fatalf("exact match should rank first: %+v", got[0].Token)
	}

	if got := c.Search(catalogPools(), "", 2); len(got) != 2 {
		t.Fatalf("empty query should list top tokens")
	}
}

func TestCatalogPairs(t *testing.T) {
	pairs := NewCatalog(nil).Pairs(catalogPools())
	if len(pairs) != 6 {
		t.Fatalf("len(pairs) = %d, want 6", len(pairs))
	}
	if pairs[0].TokenIn != "ETH" || pairs[0].TokenOut != "USDC" || pairs[1].TokenIn != "USDC" {
		t.Fatalf("unexpected pairs: %+v %+v", pairs[0], pairs[1])
	}
}
