package token

import (
	"context"
	"errors"
	"testing"

	"swapScope/internal/model"
)

type fakeDetails struct {
	details model.PoolDetails
	err     error
	calls   int
}

func (f *fakeDetails) PoolDetails(_ context.Context, _ string) (model.PoolDetails, error) {
	f.calls++
	return f.details, f.err
}

func TestResolverStaticFirst(t *testing.T) {
	details := &fakeDetails{}
	r := NewResolver(nil, nil, details, nil)

	d0, d1 := r.Decimals(context.Background(), model.Pool{Token0: ethAddress, Token1: usdcAddress, KeyHash: "0x1"})
	if d0 != 18 || d1 != 6 {
		t.Fatalf("decimals = %d/%d", d0, d1)
	}
	if details.calls != 0 {
		t.Fatalf("details should not be consulted for known tokens")
	}
}

func TestResolverUsesPoolDetailsAndCaches(t *testing.T) {
	details := &fakeDetails{details: model.PoolDetails{
		Key:    model.PoolKey{Token0: "0xaaa", Token1: usdcAddress},
		Token0: model.TokenMeta{Symbol: "LORDS", Name: "Lords", Decimals: 9},
		Token1: model.TokenMeta{Symbol: "USDC", Name: "USD Coin", Decimals: 6},
	}}
	r := NewResolver(nil, nil, details, nil)
	pool := model.Pool{Token0: "0x0aaa", Token1: usdcAddress, KeyHash: "0xkey"}

	d0, d1 := r.Decimals(context.Background(), pool)
	if d0 != 9 || d1 != 6 {
		t.Fatalf("decimals = %d/%d", d0, d1)
	}

	meta := r.Describe(context.Background(), "0xaaa", "0xkey")
	if meta.Symbol != "LORDS" || meta.Unknown {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	if details.calls != 1 {
		t.Fatalf("details calls = %d, want 1", details.calls)
	}
}

func TestResolverDefaultsOnLookupFailure(t *testing.T) {
	details := &fakeDetails{err: errors.New("boom")}
	r := NewResolver(nil, nil, details, nil)

	meta := r.Describe(context.Background(), "0xbeef", "0xkey")
	if !meta.Unknown || meta.Decimals != DefaultDecimals || meta.Symbol != "TBEEF" {
		t.Fatalf("unexpected placeholder: %+v", meta)
	}
}

func TestResolverWithoutDetailsSource(t *testing.T) {
	r := NewResolver(nil, nil, nil, nil)
	if got := r.Describe(context.Background(), "0xbeef", "0xkey").Decimals; got != DefaultDecimals {
		t.Fatalf("decimals = %d", got)
	}
}
