package fiat

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"swapScope/internal/amount"
	"swapScope/internal/token"
)

func TestStringToFelt(t *testing.T) {
	if got := StringToFelt("hello"); got != "0x68656c6c6f" {
		t.Fatalf("StringToFelt(hello) = %s", got)
	}
	if got := StringToFelt(""); got != "0x0" {
		t.Fatalf("StringToFelt(\"\") = %s", got)
	}

	long := "abcdefghijklmnopqrstuvwxyz0123456789"
	back, err := FeltToString(StringToFelt(long))
	if err != nil {
		t.Fatalf("FeltToString failed: %v", err)
	}
	if back != long[:MaxShortStringBytes] {
		t.Fatalf("truncated string = %q", back)
	}
}

func TestFeltToStringInvalid(t *testing.T) {
	if _, err := FeltToString("0xnothex"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewTransactionID(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	id := NewTransactionID(now)
	if !regexp.MustCompile(`^tx_1700000000123_[0-9a-z]{9}$`).MatchString(id) {
		t.Fatalf("unexpected id %q", id)
	}
	if len(id) > MaxShortStringBytes {
		t.Fatalf("id %q does not fit a felt", id)
	}
	back, err := FeltToString(StringToFelt(id))
	if err != nil || back != id {
		t.Fatalf("id round trip = %q, %v", back, err)
	}
}

func TestBuildInitiate(t *testing.T) {
	call, err := BuildInitiate(token.DefaultRegistry(), "0xdex", "usdc", "1.5", "12.345", "tx_1_abc")
	if err != nil {
		t.Fatalf("BuildInitiate failed: %v", err)
	}
	if call.Token != "USDC" || call.TokenAddress != "0x053b40a647cedfca6ca84f542a0fe36736031905a9639a7f19a3c1e66bfd5080" {
		t.Fatalf("unexpected token: %+v", call)
	}
	if call.Amount.String() != "1500000000000000000" {
		t.Fatalf("amount = %s", call.Amount)
	}
	if call.FiatAmount.String() != "1234" {
		t.Fatalf("fiat amount = %s", call.FiatAmount)
	}
	if call.TransactionFelt != StringToFelt("tx_1_abc") {
		t.Fatalf("felt = %s", call.TransactionFelt)
	}

	data := call.Calldata()
	want := []string{call.TokenAddress, "0x14d1120d7b160000", "0x0", "0x4d2", "0x0", call.TransactionFelt}
	if len(data) != len(want) {
		t.Fatalf("calldata = %v", data)
	}
	for i := range want {
		if data[i] != want[i] {
			t.Fatalf("calldata[%d] = %s, want %s", i, data[i], want[i])
		}
	}
}

func TestBuildInitiateRejects(t *testing.T) {
	registry := token.DefaultRegistry()

	cases := []struct {
		name   string
		symbol string
		amount string
		fiat   string
		id     string
		want   error
	}{
		{"unknown token", "DOGE", "1", "10", "tx", token.ErrUnknownToken},
		{"zero fiat", "ETH", "1", "0", "tx", ErrInvalidFiatAmount},
		{"negative fiat", "ETH", "1", "-5", "tx", ErrInvalidFiatAmount},
		{"non numeric fiat", "ETH", "1", "ten", "tx", ErrInvalidFiatAmount},
		{"zero amount", "ETH", "0", "10", "tx", ErrInvalidAmount},
		{"bad amount", "ETH", "1,5", "10", "tx", amount.ErrInvalidFormat},
		{"missing id", "ETH", "1", "10", " ", ErrMissingID},
	}
	for _, tc := range cases {
		_, err := BuildInitiate(registry, "0xdex", tc.symbol, tc.amount, tc.fiat, tc.id)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestBuildConfirm(t *testing.T) {
	call, err := BuildConfirm("0xdex", "0xuser", "tx_1_abc")
	if err != nil {
		t.Fatalf("BuildConfirm failed: %v", err)
	}
	data := call.Calldata()
	if len(data) != 2 || data[0] != "0xuser" || data[1] != StringToFelt("tx_1_abc") {
		t.Fatalf("calldata = %v", data)
	}

	if _, err := BuildConfirm("0xdex", "0xuser", ""); !errors.Is(err, ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
	if _, err := BuildConfirm("0xdex", "", "tx"); err == nil {
		t.Fatalf("expected error for missing user")
	}
}
