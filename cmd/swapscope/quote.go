package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newQuoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote <token-in> <token-out> <amount>",
		Short: "Quote an exact-input swap against the deepest pool",
		Args:  cobra.ExactArgs(3),
		RunE:  runQuote,
	}

	addCommonFlags(cmd)

	return cmd
}

func runQuote(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signalContext()
	defer stop()

	q, err := a.quoter.Quote(ctx, args[0], args[1], args[2])
	if err != nil {
		return err
	}
	if q.Degraded {
		a.logger.Warn("quote is degraded", zap.String("reason", q.DegradedReason))
	}
	return printJSON(cmd, q)
}
