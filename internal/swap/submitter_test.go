package swap

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"swapScope/internal/amount"
	"swapScope/internal/model"
)

const (
	ethAddress  = "0x049d36570d4e46f48e99674bd3fcc84644ddd6b96f7c741b1562b82f9e004dc7"
	usdcAddress = "0x053b40a647cedfca6ca84f542a0fe36736031905a9639a7f19a3c1e66bfd5080"
)

var testKey = model.PoolKey{
	Token0:      ethAddress,
	Token1:      usdcAddress,
	Fee:         "170141183460469231731687303715884105",
	TickSpacing: 1000,
	Extension:   "0x0",
}

type fakeQuoter struct {
	quote  model.Quote
	key    model.PoolKey
	keyErr error
}

func (f fakeQuoter) Quote(context.Context, string, string, string) (model.Quote, error) {
	return f.quote, nil
}

func (f fakeQuoter) PoolKeyForSwap(context.Context, string, string) (model.PoolKey, error) {
	return f.key, f.keyErr
}

type fakeExecutor struct {
	errs      []error
	calls     []Call
	approvals []*big.Int
}

func (f *fakeExecutor) SwapExactInput(_ context.Context, call Call) (string, error) {
	f.calls = append(f.calls, call)
	idx := len(f.calls) - 1
	if idx < len(f.errs) && f.errs[idx] != nil {
		return "", f.errs[idx]
	}
	return "0xtx", nil
}

func (f *fakeExecutor) Approve(_ context.Context, _, _ string, amount *big.Int) (string, error) {
	f.approvals = append(f.approvals, amount)
	return "0xapprove", nil
}

type fakeFunds struct {
	balance    *big.Int
	allowance  *big.Int
	balanceErr error
}

func (f fakeFunds) BalanceOf(context.Context, string, string) (*big.Int, error) {
	return f.balance, f.balanceErr
}

func (f fakeFunds) Allowance(context.Context, string, string, string) (*big.Int, error) {
	return f.allowance, nil
}

type memoryJournal struct {
	records []model.SwapRecord
}

func (m *memoryJournal) PutSwapRecords(records []model.SwapRecord) error {
	m.records = append(m.records, records...)
	return nil
}

func newTestQuoter() fakeQuoter {
	return fakeQuoter{
		quote: model.Quote{
			AmountOut:        "2063.215669",
			PoolKey:          testKey,
			TokenInDecimals:  18,
			TokenOutDecimals: 6,
		},
		key: testKey,
	}
}

func ethToUSDC() Request {
	return Request{TokenIn: "ETH", TokenOut: "USDC", AmountIn: "1", MinAmountOut: "2000", Recipient: "0xme"}
}

func TestSubmitterSwapFirstAttempt(t *testing.T) {
	executor := &fakeExecutor{}
	journal := &memoryJournal{}
	s := NewSubmitter(Config{Contract: "0xdex"}, newTestQuoter(), executor, nil, journal, nil)

	result, err := s.Swap(context.Background(), ethToUSDC())
	require.NoError(t, err)
	require.Equal(t, "0xtx", result.TxHash)
	require.Equal(t, 1, result.Attempts)
	require.Len(t, executor.calls, 1)

	call := executor.calls[0]
	require.Equal(t, "1000000000000000000", call.AmountIn.String())
	require.Equal(t, "206321566", call.MinAmountOut.String())
	require.Equal(t, ethAddress, call.TokenIn)
	require.Equal(t, usdcAddress, call.TokenOut)
	require.Equal(t, "0xdex", call.Contract)

	require.Len(t, journal.records, 1)
	require.Equal(t, "success", journal.records[0].Outcome)
	require.Equal(t, "206321566", journal.records[0].MinOutBase)
}

func TestSubmitterOverflowRetriesWithZeroMinimum(t *testing.T) {
	overflow := errors.New("u256_sub Overflow")
	executor := &fakeExecutor{errs: []error{overflow}}
	journal := &memoryJournal{}
	s := NewSubmitter(Config{Contract: "0xdex"}, newTestQuoter(), executor, nil, journal, nil)

	result, err := s.Swap(context.Background(), ethToUSDC())
	require.NoError(t, err)
	require.Equal(t, 2, result.Attempts)
	require.Len(t, executor.calls, 2)
	require.Equal(t, "206321566", executor.calls[0].MinAmountOut.String())
	require.Equal(t, "0", executor.calls[1].MinAmountOut.String())
	require.Equal(t, "0", result.Plan.MinOut)

	require.Len(t, journal.records, 2)
	require.Equal(t, "overflow_retry", journal.records[0].Outcome)
	require.Equal(t, journal.records[0].ID, journal.records[1].ID)
	require.Equal(t, 2, journal.records[1].Attempt)
}

func TestSubmitterOverflowExhausted(t *testing.T) {
	overflow := errors.New("u256_sub Overflow")
	executor := &fakeExecutor{errs: []error{overflow, overflow, overflow, overflow}}
	s := NewSubmitter(Config{Contract: "0xdex"}, newTestQuoter(), executor, nil, nil, nil)

	result, err := s.Swap(context.Background(), ethToUSDC())
	require.ErrorIs(t, err, ErrRetriesExhausted)
	require.Equal(t, 3, result.Attempts)
	require.Len(t, executor.calls, DefaultMaxAttempts)
}

func TestSubmitterFatalError(t *testing.T) {
	executor := &fakeExecutor{errs: []error{errors.New("Insufficient fee balance")}}
	s := NewSubmitter(Config{Contract: "0xdex"}, newTestQuoter(), executor, nil, nil, nil)

	_, err := s.Swap(context.Background(), ethToUSDC())
	require.ErrorIs(t, err, ErrInsufficientFunds)
	require.Len(t, executor.calls, 1)
}

func TestSubmitterPreflightInsufficientBalance(t *testing.T) {
	executor := &fakeExecutor{}
	funds := fakeFunds{balance: big.NewInt(1), allowance: big.NewInt(0)}
	s := NewSubmitter(Config{Contract: "0xdex", Account: "0xme"}, newTestQuoter(), executor, funds, nil, nil)

	_, err := s.Swap(context.Background(), ethToUSDC())
	require.ErrorIs(t, err, ErrInsufficientFunds)
	require.Contains(t, err.Error(), "required 1")
	require.Empty(t, executor.calls)
}

func TestSubmitterPreflightApprovesTwice(t *testing.T) {
	executor := &fakeExecutor{}
	oneEth, _ := new(big.Int).SetString("1000000000000000000", 10)
	funds := fakeFunds{balance: new(big.Int).Mul(oneEth, big.NewInt(5)), allowance: big.NewInt(0)}
	s := NewSubmitter(Config{Contract: "0xdex", Account: "0xme"}, newTestQuoter(), executor, funds, nil, nil)

	result, err := s.Swap(context.Background(), ethToUSDC())
	require.NoError(t, err)
	require.Equal(t, "0xapprove", result.ApprovalTx)
	require.Len(t, executor.approvals, 1)
	require.Equal(t, "2000000000000000000", executor.approvals[0].String())
}

func TestSubmitterPreflightReadFailureProceeds(t *testing.T) {
	executor := &fakeExecutor{}
	funds := fakeFunds{balanceErr: errors.New("rpc down")}
	s := NewSubmitter(Config{Contract: "0xdex", Account: "0xme"}, newTestQuoter(), executor, funds, nil, nil)

	result, err := s.Swap(context.Background(), ethToUSDC())
	require.NoError(t, err)
	require.Equal(t, "0xtx", result.TxHash)
}

func TestSubmitterPrepareValidation(t *testing.T) {
	s := NewSubmitter(Config{Contract: "0xdex", Account: "0xme"}, newTestQuoter(), nil, nil, nil, nil)

	prepared, err := s.Prepare(context.Background(), Request{TokenIn: "ETH", TokenOut: "USDC", AmountIn: "1"})
	require.NoError(t, err)
	require.Equal(t, "0xme", prepared.Call.Recipient)

	_, err = s.Swap(context.Background(), ethToUSDC())
	require.ErrorIs(t, err, ErrNoExecutor)

	_, err = s.Prepare(context.Background(), Request{TokenIn: "ETH", TokenOut: "USDC", AmountIn: "abc"})
	require.ErrorIs(t, err, amount.ErrInvalidFormat)

	_, err = s.Prepare(context.Background(), Request{TokenIn: "ETH", TokenOut: "USDC", AmountIn: "0"})
	require.Error(t, err)

	badFee := newTestQuoter()
	badFee.key.Fee = new(big.Int).Lsh(big.NewInt(1), 130).String()
	s = NewSubmitter(Config{Contract: "0xdex"}, badFee, nil, nil, nil, nil)
	_, err = s.Prepare(context.Background(), ethToUSDC())
	require.ErrorIs(t, err, amount.ErrExceedsI129Magnitude)

	keyErr := newTestQuoter()
	keyErr.keyErr = errors.New("no pool")
	s = NewSubmitter(Config{Contract: "0xdex"}, keyErr, nil, nil, nil, nil)
	_, err = s.Prepare(context.Background(), ethToUSDC())
	require.ErrorContains(t, err, "no pool")
}

func TestSubmitterPlanJournalsWithoutSubmitting(t *testing.T) {
	journal := &memoryJournal{}
	s := NewSubmitter(Config{Contract: "0xdex", Account: "0xme"}, newTestQuoter(), nil, nil, journal, nil)

	prepared, err := s.Plan(context.Background(), ethToUSDC())
	require.NoError(t, err)
	require.Equal(t, "206321566", prepared.Call.MinAmountOut.String())

	require.Len(t, journal.records, 1)
	require.Equal(t, OutcomePlanned, journal.records[0].Outcome)
	require.Equal(t, 0, journal.records[0].Attempt)
	require.Empty(t, journal.records[0].TxHash)
}

func TestCallCalldata(t *testing.T) {
	call := Call{
		PoolKey:      testKey,
		TokenIn:      ethAddress,
		TokenOut:     usdcAddress,
		AmountIn:     big.NewInt(1000),
		MinAmountOut: big.NewInt(10),
		Recipient:    "0xme",
	}
	data, err := call.Calldata()
	require.NoError(t, err)
	require.Equal(t, []string{
		ethAddress, usdcAddress,
		"0x20c49ba5e353f7ced916872b020c49", "0x3e8", "0x0",
		ethAddress, usdcAddress,
		"0x3e8", "0x0",
		"0xa", "0x0",
		"0xme",
	}, data)
}
