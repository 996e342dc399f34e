package main

import (
	"time"

	"github.com/spf13/cobra"

	"swapScope/internal/fiat"
)

func newFiatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fiat",
		Short: "Build fiat conversion contract payloads",
	}

	initiateCmd := &cobra.Command{
		Use:   "initiate <token> <token-amount> <fiat-amount>",
		Short: "Build an initiate_fiat_transaction payload",
		Args:  cobra.ExactArgs(3),
		RunE:  runFiatInitiate,
	}
	addCommonFlags(initiateCmd)
	initiateCmd.Flags().String("contract", "", "fiat conversion contract address")
	initiateCmd.Flags().String("tx-id", "", "transaction id, generated when empty")

	confirmCmd := &cobra.Command{
		Use:   "confirm <user> <tx-id>",
		Short: "Build a confirm_fiat_transaction payload",
		Args:  cobra.ExactArgs(2),
		RunE:  runFiatConfirm,
	}
	addCommonFlags(confirmCmd)
	confirmCmd.Flags().String("contract", "", "fiat conversion contract address")

	cmd.AddCommand(initiateCmd, confirmCmd)
	return cmd
}

type fiatOutput struct {
	Call     any      `json:"call"`
	Calldata []string `json:"calldata"`
}

func runFiatInitiate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	txID, _ := cmd.Flags().GetString("tx-id")
	if txID == "" {
		txID = fiat.NewTransactionID(time.Now())
	}

	call, err := fiat.BuildInitiate(a.registry, a.cfg.Contract, args[0], args[1], args[2], txID)
	if err != nil {
		return err
	}
	return printJSON(cmd, fiatOutput{Call: call, Calldata: call.Calldata()})
}

func runFiatConfirm(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	call, err := fiat.BuildConfirm(a.cfg.Contract, args[0], args[1])
	if err != nil {
		return err
	}
	return printJSON(cmd, fiatOutput{Call: call, Calldata: call.Calldata()})
}
