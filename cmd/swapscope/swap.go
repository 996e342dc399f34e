package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swapScope/internal/amount"
	"swapScope/internal/chain"
	"swapScope/internal/model"
	"swapScope/internal/storage"
	"swapScope/internal/storage/postgres"
	"swapScope/internal/swap"
)

func newSwapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap <token-in> <token-out> <amount>",
		Short: "Plan and validate a swap call, journaling the result",
		Args:  cobra.ExactArgs(3),
		RunE:  runSwap,
	}

	addCommonFlags(cmd)
	cmd.Flags().String("min-out", "", "user minimum output (decimal); the slippage floor applies when higher")
	cmd.Flags().String("recipient", "", "recipient address, defaults to --account")
	cmd.Flags().String("contract", "", "swap contract address")
	cmd.Flags().String("account", "", "sender account address")
	cmd.Flags().String("rpc", "", "Starknet JSON-RPC URL for preflight reads")
	cmd.Flags().String("journal", "./data/swaps.jsonl", "swap journal JSONL path")
	cmd.Flags().String("pg-dsn", "", "Postgres DSN, also journals into swap_journal")
	cmd.Flags().Bool("migrate", false, "create journal tables before writing to Postgres")

	return cmd
}

type preflightReport struct {
	ChainID          string `json:"chain_id"`
	ContractDeployed bool   `json:"contract_deployed"`
	Balance          string `json:"balance,omitempty"`
	Allowance        string `json:"allowance,omitempty"`
	Sufficient       bool   `json:"sufficient"`
	NeedsApproval    bool   `json:"needs_approval"`
	ApproveAmount    string `json:"approve_amount,omitempty"`
}

type swapPlanOutput struct {
	swap.Prepared
	Calldata  []string         `json:"calldata"`
	Preflight *preflightReport `json:"preflight,omitempty"`
}

func runSwap(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	if a.cfg.Contract == "" {
		return fmt.Errorf("swap contract address is required")
	}

	ctx, stop := signalContext()
	defer stop()

	journals := multiJournal{storage.NewJsonlStorage(a.cfg.Journal)}
	if a.cfg.PgDSN != "" {
		store, err := postgres.NewStore(ctx, a.cfg.PgDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()

		if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
			if err := store.Migrate(ctx); err != nil {
				return err
			}
		}
		journals = append(journals, store)
	}

	minOut, _ := cmd.Flags().GetString("min-out")
	recipient, _ := cmd.Flags().GetString("recipient")

	submitter := swap.NewSubmitter(swap.Config{
		Contract: a.cfg.Contract,
		Account:  a.cfg.Account,
		Registry: a.registry,
	}, a.quoter, nil, nil, journals, a.logger)

	prepared, err := submitter.Plan(ctx, swap.Request{
		TokenIn:      args[0],
		TokenOut:     args[1],
		AmountIn:     args[2],
		MinAmountOut: minOut,
		Recipient:    recipient,
	})
	if err != nil {
		return err
	}

	calldata, err := prepared.Call.Calldata()
	if err != nil {
		return err
	}
	out := swapPlanOutput{Prepared: prepared, Calldata: calldata}

	if a.cfg.RPCURL != "" {
		report, err := preflight(ctx, a, prepared)
		if err != nil {
			return err
		}
		out.Preflight = report
	}

	return printJSON(cmd, out)
}

func preflight(ctx context.Context, a *app, p swap.Prepared) (*preflightReport, error) {
	client, err := chain.NewClient(ctx, a.cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("connect rpc: %w", err)
	}
	defer client.Close()

	report := &preflightReport{}
	if report.ChainID, err = client.ChainID(ctx); err != nil {
		return nil, err
	}
	if report.ContractDeployed, err = client.ContractExists(ctx, p.Call.Contract); err != nil {
		return nil, err
	}
	if !report.ContractDeployed {
		return report, fmt.Errorf("swap contract %s is not deployed on %s", p.Call.Contract, report.ChainID)
	}

	if decimals, err := client.Decimals(ctx, p.Call.TokenIn); err != nil {
		a.logger.Warn("on-chain decimals read failed", zap.String("token", p.Call.TokenIn), zap.Error(err))
	} else if decimals != p.Quote.TokenInDecimals {
		a.logger.Warn("input token decimals differ from quote",
			zap.Uint8("on_chain", decimals),
			zap.Uint8("quoted", p.Quote.TokenInDecimals),
		)
	}

	if a.cfg.Account == "" {
		return report, nil
	}

	check := swap.CheckFunds(ctx, client, p.Call, a.cfg.Account)
	if check.BalanceErr != nil {
		a.logger.Warn("balance check failed", zap.Error(check.BalanceErr))
		return report, nil
	}
	report.Balance = amount.Decode(check.Balance, p.Quote.TokenInDecimals)
	report.Sufficient = check.Sufficient
	if check.AllowanceErr != nil {
		a.logger.Warn("allowance check failed", zap.Error(check.AllowanceErr))
		return report, nil
	}
	report.Allowance = amount.Decode(check.Allowance, p.Quote.TokenInDecimals)
	report.NeedsApproval = check.NeedsApproval
	if check.NeedsApproval {
		report.ApproveAmount = amount.Decode(check.ApproveAmount, p.Quote.TokenInDecimals)
	}
	return report, nil
}

// multiJournal writes every record to each sink, returning the first failure.
type multiJournal []swap.Journal

func (m multiJournal) PutSwapRecords(records []model.SwapRecord) error {
	var first error
	for _, j := range m {
		if err := j.PutSwapRecords(records); err != nil && first == nil {
			first = err
		}
	}
	return first
}
