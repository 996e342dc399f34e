package fiat

import (
	"errors"
	"fmt"
	"math/big"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"swapScope/internal/amount"
	"swapScope/internal/chain"
	"swapScope/internal/token"
)

const (
	// TokenDecimals is the precision used for the token leg of fiat transactions.
	TokenDecimals uint8 = 18
	// FiatDecimals is the precision of fiat amounts (cents).
	FiatDecimals uint8 = 2
)

var (
	ErrInvalidFiatAmount = errors.New("fiat amount must be greater than 0")
	ErrInvalidAmount     = errors.New("invalid token amount")
	ErrMissingID         = errors.New("transaction id is required")
)

// InitiateCall is the initiate_fiat_transaction payload.
type InitiateCall struct {
	Contract        string   `json:"contract"`
	Token           string   `json:"token"`
	TokenAddress    string   `json:"token_address"`
	Amount          *big.Int `json:"amount"`
	FiatAmount      *big.Int `json:"fiat_amount"`
	TransactionID   string   `json:"transaction_id"`
	TransactionFelt string   `json:"transaction_felt"`
}

// Calldata serializes the call: token, amount (u256), fiat amount (u256), id.
func (c InitiateCall) Calldata() []string {
	amountLow, amountHigh := chain.SplitU256(c.Amount)
	fiatLow, fiatHigh := chain.SplitU256(c.FiatAmount)
	return []string{c.TokenAddress, amountLow, amountHigh, fiatLow, fiatHigh, c.TransactionFelt}
}

// ConfirmCall is the confirm_fiat_transaction payload.
type ConfirmCall struct {
	Contract        string `json:"contract"`
	User            string `json:"user"`
	TransactionID   string `json:"transaction_id"`
	TransactionFelt string `json:"transaction_felt"`
}

func (c ConfirmCall) Calldata() []string {
	return []string{c.User, c.TransactionFelt}
}

// BuildInitiate validates and encodes a fiat conversion request.
func BuildInitiate(registry *token.Registry, contract, symbol, tokenAmount, fiatAmount, transactionID string) (InitiateCall, error) {
	if registry == nil {
		registry = token.DefaultRegistry()
	}
	tokenAddress, err := registry.ResolveAddress(symbol)
	if err != nil {
		return InitiateCall{}, err
	}

	fiatValue, err := strconv.ParseFloat(strings.TrimSpace(fiatAmount), 64)
	if err != nil || !(fiatValue > 0) {
		return InitiateCall{}, fmt.Errorf("fiat amount %q: %w", fiatAmount, ErrInvalidFiatAmount)
	}
	fiatBase, err := encode(fiatAmount, FiatDecimals)
	if err != nil {
		return InitiateCall{}, fmt.Errorf("fiat amount: %w", err)
	}

	amountBase, err := encode(tokenAmount, TokenDecimals)
	if err != nil {
		return InitiateCall{}, fmt.Errorf("token amount: %w", err)
	}
	if amountBase.Sign() <= 0 {
		return InitiateCall{}, fmt.Errorf("token amount %q: %w", tokenAmount, ErrInvalidAmount)
	}

	if strings.TrimSpace(transactionID) == "" {
		return InitiateCall{}, ErrMissingID
	}

	return InitiateCall{
		Contract:        contract,
		Token:           strings.ToUpper(strings.TrimSpace(symbol)),
		TokenAddress:    tokenAddress,
		Amount:          amountBase,
		FiatAmount:      fiatBase,
		TransactionID:   transactionID,
		TransactionFelt: StringToFelt(transactionID),
	}, nil
}

// BuildConfirm encodes a confirmation for a previously initiated transaction.
func BuildConfirm(contract, user, transactionID string) (ConfirmCall, error) {
	if strings.TrimSpace(user) == "" {
		return ConfirmCall{}, errors.New("user address is required")
	}
	if strings.TrimSpace(transactionID) == "" {
		return ConfirmCall{}, ErrMissingID
	}
	return ConfirmCall{
		Contract:        contract,
		User:            user,
		TransactionID:   transactionID,
		TransactionFelt: StringToFelt(transactionID),
	}, nil
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewTransactionID returns an id of the form tx_<unix ms>_<9 base36 chars>,
// short enough to pack into one felt.
func NewTransactionID(now time.Time) string {
	var suffix [9]byte
	for i := range suffix {
		suffix[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return fmt.Sprintf("tx_%d_%s", now.UnixMilli(), suffix[:])
}

func encode(value string, decimals uint8) (*big.Int, error) {
	v := amount.Encode(value, decimals)
	if !v.Valid {
		return nil, fmt.Errorf("%q: %w", value, v.Err)
	}
	out, ok := new(big.Int).SetString(v.Amount, 10)
	if !ok {
		return nil, fmt.Errorf("%q: %w", value, amount.ErrInvalidFormat)
	}
	return out, nil
}
