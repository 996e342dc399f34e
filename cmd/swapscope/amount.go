package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"swapScope/internal/amount"
)

func newAmountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "amount",
		Short: "Convert between decimal amounts and base units",
	}

	encodeCmd := &cobra.Command{
		Use:   "encode <amount>",
		Short: "Encode a decimal amount into base units",
		Args:  cobra.ExactArgs(1),
		RunE:  runAmountEncode,
	}
	encodeCmd.Flags().Uint8("decimals", 18, "token decimals")

	decodeCmd := &cobra.Command{
		Use:   "decode <base-units>",
		Short: "Decode base units into a decimal amount",
		Args:  cobra.ExactArgs(1),
		RunE:  runAmountDecode,
	}
	decodeCmd.Flags().Uint8("decimals", 18, "token decimals")

	cmd.AddCommand(encodeCmd, decodeCmd)
	return cmd
}

func runAmountEncode(cmd *cobra.Command, args []string) error {
	decimals, _ := cmd.Flags().GetUint8("decimals")
	v := amount.Encode(args[0], decimals)
	if !v.Valid {
		return fmt.Errorf("encode %q: %w", args[0], v.Err)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), v.Amount)
	return err
}

func runAmountDecode(cmd *cobra.Command, args []string) error {
	decimals, _ := cmd.Flags().GetUint8("decimals")
	out, err := amount.DecodeString(args[0], decimals)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
