package swap

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"swapScope/internal/amount"
	"swapScope/internal/model"
	"swapScope/internal/token"
)

// ErrNoExecutor is returned by Swap when no executor is configured.
var ErrNoExecutor = errors.New("no swap executor configured")

// Quoter supplies quotes and pool keys.
type Quoter interface {
	Quote(ctx context.Context, tokenIn, tokenOut, amountIn string) (model.Quote, error)
	PoolKeyForSwap(ctx context.Context, tokenIn, tokenOut string) (model.PoolKey, error)
}

// Executor submits transactions on behalf of the account. Implementations
// return the transaction hash.
type Executor interface {
	SwapExactInput(ctx context.Context, call Call) (string, error)
	Approve(ctx context.Context, token, spender string, amount *big.Int) (string, error)
}

// Funds reads the account's token balance and allowance.
type Funds interface {
	BalanceOf(ctx context.Context, token, owner string) (*big.Int, error)
	Allowance(ctx context.Context, token, owner, spender string) (*big.Int, error)
}

// Journal records swap attempts.
type Journal interface {
	PutSwapRecords(records []model.SwapRecord) error
}

// OutcomePlanned marks a journaled call that was prepared but not submitted.
const OutcomePlanned = "planned"

// Config holds submitter settings.
type Config struct {
	Contract    string
	Account     string
	MaxAttempts int
	Registry    *token.Registry
}

// Request is a user swap intent. Tokens may be symbols or addresses.
type Request struct {
	TokenIn      string
	TokenOut     string
	AmountIn     string
	MinAmountOut string
	Recipient    string
}

// Prepared is a validated swap ready for submission.
type Prepared struct {
	Quote model.Quote `json:"quote"`
	Plan  Plan        `json:"plan"`
	Call  Call        `json:"call"`
}

// Result describes a submitted swap.
type Result struct {
	Prepared
	TxHash     string `json:"tx_hash"`
	ApprovalTx string `json:"approval_tx,omitempty"`
	Attempts   int    `json:"attempts"`
}

// Submitter prepares swaps and drives them through the retry machine.
type Submitter struct {
	cfg      Config
	registry *token.Registry
	quoter   Quoter
	executor Executor
	funds    Funds
	journal  Journal
	machine  Machine
	logger   *zap.Logger
	now      func() time.Time
}

// NewSubmitter wires a submitter. executor, funds and journal may be nil;
// without an executor only Prepare is usable.
func NewSubmitter(cfg Config, quoter Quoter, executor Executor, funds Funds, journal Journal, logger *zap.Logger) *Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := cfg.Registry
	if registry == nil {
		registry = token.DefaultRegistry()
	}
	return &Submitter{
		cfg:      cfg,
		registry: registry,
		quoter:   quoter,
		executor: executor,
		funds:    funds,
		journal:  journal,
		machine:  Machine{MaxAttempts: cfg.MaxAttempts},
		logger:   logger,
		now:      time.Now,
	}
}

// Prepare quotes the swap, plans the minimum output and validates the call.
func (s *Submitter) Prepare(ctx context.Context, req Request) (Prepared, error) {
	tokenIn, err := s.registry.ResolveAddress(req.TokenIn)
	if err != nil {
		return Prepared{}, err
	}
	tokenOut, err := s.registry.ResolveAddress(req.TokenOut)
	if err != nil {
		return Prepared{}, err
	}

	quote, err := s.quoter.Quote(ctx, tokenIn, tokenOut, req.AmountIn)
	if err != nil {
		return Prepared{}, fmt.Errorf("get quote: %w", err)
	}

	encoded := amount.Encode(req.AmountIn, quote.TokenInDecimals)
	if !encoded.Valid {
		return Prepared{}, fmt.Errorf("input amount %q: %w", req.AmountIn, encoded.Err)
	}
	amountIn, _ := new(big.Int).SetString(encoded.Amount, 10)

	plan, err := PlanMinimumOutput(quote.AmountOut, req.MinAmountOut, quote.TokenOutDecimals)
	if err != nil {
		return Prepared{}, err
	}

	key, err := s.quoter.PoolKeyForSwap(ctx, tokenIn, tokenOut)
	if err != nil {
		return Prepared{}, fmt.Errorf("get pool key: %w", err)
	}

	recipient := req.Recipient
	if recipient == "" {
		recipient = s.cfg.Account
	}

	call := Call{
		Contract:     s.cfg.Contract,
		PoolKey:      key,
		TokenIn:      tokenIn,
		TokenOut:     tokenOut,
		AmountIn:     amountIn,
		MinAmountOut: plan.MinOutInt(),
		Recipient:    recipient,
	}
	if err := call.Validate(); err != nil {
		return Prepared{}, err
	}

	s.logger.Info("swap prepared",
		zap.String("token_in", tokenIn),
		zap.String("token_out", tokenOut),
		zap.String("amount_in", amountIn.String()),
		zap.String("quote_out", quote.AmountOut),
		zap.Float64("floor", plan.Floor),
		zap.String("min_out", plan.MinOut),
	)

	return Prepared{Quote: quote, Plan: plan, Call: call}, nil
}

// Swap prepares and submits the swap. Overflow rejections are retried with a
// zero minimum output until the attempt budget is spent.
func (s *Submitter) Swap(ctx context.Context, req Request) (Result, error) {
	if s.executor == nil {
		return Result{}, ErrNoExecutor
	}

	prepared, err := s.Prepare(ctx, req)
	if err != nil {
		return Result{}, err
	}
	result := Result{Prepared: prepared}

	approvalTx, err := s.preflight(ctx, prepared)
	if err != nil {
		return result, err
	}
	result.ApprovalTx = approvalTx

	id := fmt.Sprintf("swap_%d", s.now().UnixMilli())
	call := prepared.Call
	attempt := 1
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if prepared.Plan.ExceedsHalfQuote(prepared.Quote.AmountOut, prepared.Quote.TokenOutDecimals) {
			s.logger.Warn("minimum output above half of quote, submitting with zero minimum",
				zap.String("min_out", call.MinAmountOut.String()),
			)
			call = call.WithMinimum(new(big.Int))
		}

		txHash, err := s.executor.SwapExactInput(ctx, call)
		next := s.machine.Next(attempt, err)
		result.Attempts = attempt
		s.record(id, attempt, prepared, call, next.Kind.String(), txHash, next.Err, req)

		switch next.Kind {
		case Success:
			result.TxHash = txHash
			result.Call = call
			s.logger.Info("swap submitted", zap.String("tx_hash", txHash), zap.Int("attempt", attempt))
			return result, nil
		case OverflowRetry:
			s.logger.Warn("swap overflow, retrying with zero minimum",
				zap.Int("attempt", attempt),
				zap.Int("next_attempt", next.Attempt),
				zap.Error(err),
			)
			call = call.WithMinimum(new(big.Int))
			prepared.Plan = prepared.Plan.WithZeroMinimum()
			attempt = next.Attempt
		default:
			s.logger.Error("swap failed", zap.Int("attempt", attempt), zap.Error(next.Err))
			return result, next.Err
		}
	}
}

// preflight checks balance and allowance. Read failures are logged and
// skipped; a short balance is fatal; a short allowance is approved at twice
// the input amount.
func (s *Submitter) preflight(ctx context.Context, p Prepared) (string, error) {
	if s.funds == nil || s.cfg.Account == "" {
		return "", nil
	}
	check := CheckFunds(ctx, s.funds, p.Call, s.cfg.Account)
	if check.BalanceErr != nil {
		s.logger.Warn("balance check failed, proceeding", zap.Error(check.BalanceErr))
		return "", nil
	}
	if !check.Sufficient {
		return "", fmt.Errorf("required %s, available %s: %w",
			amount.Decode(p.Call.AmountIn, p.Quote.TokenInDecimals),
			amount.Decode(check.Balance, p.Quote.TokenInDecimals),
			ErrInsufficientFunds,
		)
	}
	if check.AllowanceErr != nil {
		s.logger.Warn("allowance check failed, proceeding", zap.Error(check.AllowanceErr))
		return "", nil
	}
	if !check.NeedsApproval {
		return "", nil
	}

	txHash, err := s.executor.Approve(ctx, p.Call.TokenIn, p.Call.Contract, check.ApproveAmount)
	if err != nil {
		return "", fmt.Errorf("token approval failed: %w", err)
	}
	s.logger.Info("approval submitted",
		zap.String("tx_hash", txHash),
		zap.String("amount", amount.Decode(check.ApproveAmount, p.Quote.TokenInDecimals)),
	)
	return txHash, nil
}

// Plan prepares the swap without submitting it and journals the planned
// call as attempt 0.
func (s *Submitter) Plan(ctx context.Context, req Request) (Prepared, error) {
	prepared, err := s.Prepare(ctx, req)
	if err != nil {
		return Prepared{}, err
	}
	id := fmt.Sprintf("swap_%d", s.now().UnixMilli())
	s.record(id, 0, prepared, prepared.Call, OutcomePlanned, "", nil, req)
	return prepared, nil
}

func (s *Submitter) record(id string, attempt int, p Prepared, call Call, outcome, txHash string, failure error, req Request) {
	if s.journal == nil {
		return
	}
	rec := model.SwapRecord{
		ID:           id,
		Attempt:      attempt,
		TokenIn:      call.TokenIn,
		TokenOut:     call.TokenOut,
		AmountIn:     req.AmountIn,
		AmountInBase: call.AmountIn.String(),
		QuoteOut:     p.Quote.AmountOut,
		MinOutBase:   call.MinAmountOut.String(),
		PoolKey:      call.PoolKey,
		Outcome:      outcome,
		TxHash:       txHash,
		RecordedAt:   s.now().UTC().Format(time.RFC3339),
	}
	if failure != nil {
		rec.Error = failure.Error()
	}
	if err := s.journal.PutSwapRecords([]model.SwapRecord{rec}); err != nil {
		s.logger.Warn("journal swap attempt failed", zap.Error(err))
	}
}
