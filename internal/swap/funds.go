package swap

import (
	"context"
	"math/big"
)

// FundsCheck is the result of reading an owner's balance and allowance for a
// call. A failed read leaves its value nil and records the error; the
// allowance is not read when the balance read fails.
type FundsCheck struct {
	Balance       *big.Int
	Allowance     *big.Int
	BalanceErr    error
	AllowanceErr  error
	Sufficient    bool
	NeedsApproval bool
	ApproveAmount *big.Int
}

// CheckFunds reads owner's balance of the input token and its allowance
// for the call's contract. A short allowance asks for twice the input amount.
func CheckFunds(ctx context.Context, funds Funds, call Call, owner string) FundsCheck {
	var check FundsCheck

	check.Balance, check.BalanceErr = funds.BalanceOf(ctx, call.TokenIn, owner)
	if check.BalanceErr != nil {
		check.Balance = nil
		return check
	}
	check.Sufficient = check.Balance.Cmp(call.AmountIn) >= 0

	check.Allowance, check.AllowanceErr = funds.Allowance(ctx, call.TokenIn, owner, call.Contract)
	if check.AllowanceErr != nil {
		check.Allowance = nil
		return check
	}
	if check.Allowance.Cmp(call.AmountIn) < 0 {
		check.NeedsApproval = true
		check.ApproveAmount = new(big.Int).Lsh(call.AmountIn, 1)
	}
	return check
}
